package ui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/wschat/internal/client/connection"
	"github.com/yourusername/wschat/internal/client/messagelog"
	"github.com/yourusername/wschat/internal/client/transport"
)

type stubTransport struct {
	mu      sync.Mutex
	state   transport.ReadyState
	handler transport.Handler
	sent    []string
}

func (s *stubTransport) ReadyState() transport.ReadyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubTransport) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, text)
	return nil
}

func (s *stubTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transport.Closed
	return nil
}

func (s *stubTransport) open() {
	s.mu.Lock()
	s.state = transport.Open
	s.mu.Unlock()
	s.handler(transport.Event{Kind: transport.EventOpened})
}

type stubDialer struct {
	dialed []*stubTransport
}

func (d *stubDialer) Dial(url string, h transport.Handler) transport.Transport {
	t := &stubTransport{state: transport.Connecting, handler: h}
	d.dialed = append(d.dialed, t)
	return t
}

func newTestModel() (Model, *connection.Manager, *stubDialer) {
	d := &stubDialer{}
	mgr := connection.NewManager(d, messagelog.New())
	return NewModel("ws://localhost:3000/ws", mgr), mgr, d
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func lastEntry(mgr *connection.Manager) messagelog.Entry {
	entries := mgr.Log().Entries()
	return entries[len(entries)-1]
}

func TestModel_SendWhileDisconnectedKeepsInput(t *testing.T) {
	m, mgr, _ := newTestModel()

	m = typeText(t, m, "hello")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "hello", m.InputValue())
	assert.Equal(t, connection.TextNotConnected, lastEntry(mgr).Text)
	assert.Contains(t, m.View(), connection.TextNotConnected)
}

func TestModel_EnterWithBlankInputIsNoop(t *testing.T) {
	m, mgr, _ := newTestModel()

	m = typeText(t, m, "   ")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Zero(t, mgr.Log().Len())
	assert.Equal(t, "   ", m.InputValue())
}

func TestModel_ConnectSendDisconnect(t *testing.T) {
	m, mgr, d := newTestModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Len(t, d.dialed, 1)
	assert.Equal(t, connection.StatusConnecting, m.Status())
	assert.False(t, m.canConnect())

	// A second connect while connecting is disabled
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Len(t, d.dialed, 1)

	d.dialed[0].open()
	m = update(t, m, connectionEventMsg{event: connection.StatusChangedEvent{Status: connection.StatusOpen}})
	assert.Equal(t, connection.StatusOpen, m.Status())
	assert.Contains(t, m.View(), connection.TextConnected)

	m = typeText(t, m, "world")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.InputValue())
	assert.Equal(t, []string{"world"}, d.dialed[0].sent)
	assert.Equal(t, messagelog.KindSent, lastEntry(mgr).Kind)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, connection.StatusDisconnected, m.Status())
	assert.Equal(t, connection.StatusDisconnected, mgr.Status())
	assert.True(t, m.canConnect())
}

func TestModel_DisconnectDisabledWithoutTransport(t *testing.T) {
	m, mgr, _ := newTestModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Zero(t, mgr.Log().Len())
	assert.Equal(t, connection.StatusDisconnected, m.Status())
	assert.Contains(t, m.renderHelp(), "ctrl+x")
}

func TestModel_EventNotificationsAreCoalesced(t *testing.T) {
	m, _, d := newTestModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	// Several manager events while nobody is listening must not block
	d.dialed[0].open()
	d.dialed[0].handler(transport.Event{Kind: transport.EventMessage, Data: "first-reply"})
	d.dialed[0].handler(transport.Event{Kind: transport.EventMessage, Data: "second-reply"})

	msg := listenForEventsCmd(m.eventChan)()
	m = update(t, m, msg)

	view := m.View()
	assert.Contains(t, view, "first-reply")
	assert.Contains(t, view, "second-reply")
	assert.Equal(t, connection.StatusOpen, m.Status())
}

func TestModel_QuitKeys(t *testing.T) {
	m, _, _ := newTestModel()

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 116, m.transcript.Width)
	assert.Equal(t, 40-chromeHeight, m.transcript.Height)
}
