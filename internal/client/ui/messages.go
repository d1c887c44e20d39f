package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yourusername/wschat/internal/client/connection"
)

// connectionEventMsg wraps events from the connection manager
type connectionEventMsg struct {
	event connection.Event
}

// listenForEventsCmd waits for the next connection event
func listenForEventsCmd(eventChan <-chan connection.Event) tea.Cmd {
	return func() tea.Msg {
		return connectionEventMsg{event: <-eventChan}
	}
}

// connectCmd starts connecting to the server
func connectCmd(connMgr *connection.Manager, serverURL string) tea.Cmd {
	return func() tea.Msg {
		connMgr.Connect(serverURL)
		return nil
	}
}
