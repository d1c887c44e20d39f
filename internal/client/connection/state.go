package connection

import (
	"github.com/yourusername/wschat/internal/client/messagelog"
	"github.com/yourusername/wschat/internal/client/transport"
)

// Status is the connection state as seen by the user
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusOpen
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Transcript texts for lifecycle events
const (
	TextConnected    = "Connected to server"
	TextDisconnected = "Disconnected from server"
	TextError        = "Connection error"
	TextNotConnected = "Not connected to server"
)

// statusOf derives the status from the owned transport, if any
func statusOf(t transport.Transport) Status {
	if t == nil {
		return StatusDisconnected
	}
	switch t.ReadyState() {
	case transport.Connecting:
		return StatusConnecting
	case transport.Open:
		return StatusOpen
	default:
		return StatusDisconnected
	}
}

// transition is what a transport event does: the entry it logs, and whether
// the transport that raised it is finished.
type transition struct {
	text     string
	kind     messagelog.Kind
	terminal bool
}

func transitionFor(ev transport.Event) transition {
	switch ev.Kind {
	case transport.EventOpened:
		return transition{text: TextConnected, kind: messagelog.KindSystem}
	case transport.EventMessage:
		return transition{text: ev.Data, kind: messagelog.KindReceived}
	case transport.EventClosed:
		return transition{text: TextDisconnected, kind: messagelog.KindSystem, terminal: true}
	default:
		return transition{text: TextError, kind: messagelog.KindError, terminal: true}
	}
}
