// Package transport defines the contract the chat client expects from its
// connection to the server, and a gorilla/websocket implementation of it.
package transport

import (
	"errors"
	"fmt"
)

// ReadyState mirrors the readiness of an underlying socket
type ReadyState int

const (
	Connecting ReadyState = iota
	Open
	Closing
	Closed
)

func (s ReadyState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventKind identifies a lifecycle event reported by a transport
type EventKind int

const (
	EventOpened EventKind = iota
	EventMessage
	EventClosed
	EventErrored
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventMessage:
		return "message"
	case EventClosed:
		return "closed"
	case EventErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Event is a single lifecycle notification. Data is only set for EventMessage.
type Event struct {
	Kind EventKind
	Data string
}

// Handler receives the events of one transport, in delivery order.
type Handler func(Event)

// Transport is a single bidirectional text channel to the server.
type Transport interface {
	ReadyState() ReadyState
	Send(text string) error
	Close() error
}

// Dialer creates transports. The returned transport starts opening right away;
// Dial itself never blocks on the handshake.
type Dialer interface {
	Dial(url string, h Handler) Transport
}

var (
	// ErrNotOpen is returned by Send when the transport is not open
	ErrNotOpen = errors.New("transport not open")

	// ErrClosed is returned by Close on a transport that is already closing or closed
	ErrClosed = errors.New("transport already closed")
)

// CloseError reports that the close handshake could not be started.
// The transport is torn down regardless.
type CloseError struct {
	Err error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close transport: %v", e.Err)
}

func (e *CloseError) Unwrap() error {
	return e.Err
}
