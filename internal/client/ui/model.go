package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/wschat/internal/client/connection"
)

// Layout rows taken by everything except the transcript
const chromeHeight = 9

// Model is the main Bubble Tea model
type Model struct {
	connMgr   *connection.Manager
	eventChan chan connection.Event // Coalesced change notifications from connMgr

	serverURL   string
	autoConnect bool
	status      connection.Status

	input      textinput.Model
	transcript viewport.Model
	width      int
	height     int
}

// Option configures a Model
type Option func(*Model)

// WithAutoConnect connects to the server as soon as the program starts
func WithAutoConnect() Option {
	return func(m *Model) {
		m.autoConnect = true
	}
}

// NewModel creates the chat model on top of an existing connection manager
func NewModel(serverURL string, connMgr *connection.Manager, opts ...Option) Model {
	// Notifications only say "something changed"; the view re-reads the
	// manager, so one pending notification is enough.
	eventChan := make(chan connection.Event, 1)
	connMgr.OnEvent(func(event connection.Event) {
		select {
		case eventChan <- event:
		default:
		}
	})

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Focus()

	m := Model{
		connMgr:    connMgr,
		eventChan:  eventChan,
		serverURL:  serverURL,
		input:      input,
		transcript: viewport.New(80, 24-chromeHeight),
		width:      80,
		height:     24,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.resize(m.width, m.height)
	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		listenForEventsCmd(m.eventChan),
	}
	if m.autoConnect {
		cmds = append(cmds, connectCmd(m.connMgr, m.serverURL))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.updateChat(msg)

	case connectionEventMsg:
		m.refresh()
		return m, listenForEventsCmd(m.eventChan)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the current view
func (m Model) View() string {
	return m.viewChat()
}

// Status returns the connection status the view was last rendered with
func (m Model) Status() connection.Status {
	return m.status
}

// InputValue returns the current contents of the input buffer
func (m Model) InputValue() string {
	return m.input.Value()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.transcript.Width = max(width-4, 10)
	m.transcript.Height = max(height-chromeHeight, 3)
	m.input.Width = max(width-8, 10)
}

// refresh re-reads status and transcript from the connection manager
func (m *Model) refresh() {
	m.status = m.connMgr.Status()
	m.transcript.SetContent(renderTranscript(m.connMgr.Log().Entries(), m.transcript.Width))
	m.transcript.GotoBottom()
}

// canConnect reports whether the connect affordance is enabled
func (m Model) canConnect() bool {
	return m.status == connection.StatusDisconnected
}

// canDisconnect reports whether the disconnect affordance is enabled
func (m Model) canDisconnect() bool {
	return m.status != connection.StatusDisconnected
}

// canSend reports whether the send affordance is enabled
func (m Model) canSend() bool {
	return m.status == connection.StatusOpen
}
