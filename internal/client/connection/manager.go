package connection

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yourusername/wschat/internal/client/messagelog"
	"github.com/yourusername/wschat/internal/client/transport"
)

// owned is the identity of one dialed transport. Events carry it so the
// manager can tell the current transport from stale ones.
type owned struct {
	t transport.Transport
}

// Manager owns at most one transport to the server and records everything
// that happens on it in the transcript.
type Manager struct {
	dialer        transport.Dialer
	log           *messagelog.Log
	logger        zerolog.Logger
	eventCallback func(Event)
	current       *owned
	mu            sync.Mutex

	// sendMu is held across a write and its sent entry, so a reply to the
	// message is never logged ahead of it. mu is not held during the write.
	sendMu sync.Mutex
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager that dials through dialer and appends to log.
// The dialer must not deliver events from inside Dial.
func NewManager(dialer transport.Dialer, log *messagelog.Log, opts ...Option) *Manager {
	m := &Manager{
		dialer: dialer,
		log:    log,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnEvent sets the callback for events
func (m *Manager) OnEvent(callback func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCallback = callback
}

// Log returns the transcript the manager writes to
func (m *Manager) Log() *messagelog.Log {
	return m.log
}

// Status returns the current derived status
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

// Connect dials url unless a connection is already open. A transport that
// exists but is not open is closed and replaced.
func (m *Manager) Connect(url string) {
	m.mu.Lock()

	if m.current != nil {
		if m.current.t.ReadyState() == transport.Open {
			m.mu.Unlock()
			return
		}
		m.closeTransport(m.current.t, "replace")
		m.current = nil
	}

	own := &owned{}
	own.t = m.dialer.Dial(url, func(ev transport.Event) {
		m.handle(own, ev)
	})
	m.current = own
	status := m.statusLocked()
	m.mu.Unlock()

	m.logger.Info().Str("url", url).Msg("[connection] connecting")
	m.sendEvent(StatusChangedEvent{Status: status})
}

// Disconnect closes the current transport and gives it up immediately,
// without waiting for the close to complete.
func (m *Manager) Disconnect() {
	if m.release("disconnect") {
		m.sendEvent(StatusChangedEvent{Status: StatusDisconnected})
	}
}

// Close releases the transport on shutdown
func (m *Manager) Close() {
	m.release("shutdown")
}

// Send writes text to the server. It returns true when the message went out,
// which tells the caller to clear its input.
func (m *Manager) Send(text string) bool {
	msg := strings.TrimSpace(text)
	if msg == "" {
		return false
	}

	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.Lock()
	if m.statusLocked() != StatusOpen {
		entry := m.log.Append(TextNotConnected, messagelog.KindError)
		m.mu.Unlock()
		m.sendEvent(EntryAppendedEvent{Entry: entry})
		return false
	}
	t := m.current.t
	m.mu.Unlock()

	if err := t.Send(msg); err != nil {
		// The transport reports the failure itself through its events
		m.logger.Warn().Err(err).Msg("[connection] send failed")
		return false
	}

	entry := m.log.Append(msg, messagelog.KindSent)
	m.sendEvent(EntryAppendedEvent{Entry: entry})
	return true
}

// handle applies a transport event. Events from a transport that is no longer
// current are still logged but cannot change ownership.
func (m *Manager) handle(src *owned, ev transport.Event) {
	tr := transitionFor(ev)

	m.sendMu.Lock()
	defer m.sendMu.Unlock()

	m.mu.Lock()
	entry := m.log.Append(tr.text, tr.kind)
	events := []Event{EntryAppendedEvent{Entry: entry}}

	if m.current == src {
		if tr.terminal {
			m.current = nil
		}
		if tr.terminal || ev.Kind == transport.EventOpened {
			events = append(events, StatusChangedEvent{Status: m.statusLocked()})
		}
	} else {
		m.logger.Debug().Stringer("event", ev.Kind).Msg("[connection] event from released transport")
	}
	m.mu.Unlock()

	for _, e := range events {
		m.sendEvent(e)
	}
}

// release drops ownership of the current transport and closes it.
// It reports whether there was anything to release.
func (m *Manager) release(reason string) bool {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return false
	}
	t := m.current.t
	m.current = nil
	m.mu.Unlock()

	m.closeTransport(t, reason)
	m.logger.Info().Str("reason", reason).Msg("[connection] released transport")
	return true
}

// closeTransport closes t; failures are diagnostic only
func (m *Manager) closeTransport(t transport.Transport, reason string) {
	if err := t.Close(); err != nil {
		m.logger.Debug().Err(err).Str("reason", reason).Msg("[connection] close transport failed")
	}
}

func (m *Manager) statusLocked() Status {
	if m.current == nil {
		return statusOf(nil)
	}
	return statusOf(m.current.t)
}

// sendEvent sends an event to the callback if set
func (m *Manager) sendEvent(event Event) {
	m.mu.Lock()
	callback := m.eventCallback
	m.mu.Unlock()

	if callback != nil {
		callback(event)
	}
}
