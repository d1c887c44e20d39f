package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/wschat/internal/client/connection"
)

// updateChat handles key presses on the chat screen
func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+o":
		if m.canConnect() {
			m.connMgr.Connect(m.serverURL)
			m.refresh()
		}
		return m, nil

	case "ctrl+x":
		if m.canDisconnect() {
			m.connMgr.Disconnect()
			m.refresh()
		}
		return m, nil

	case "enter":
		if m.connMgr.Send(m.input.Value()) {
			m.input.Reset()
		}
		m.refresh()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// viewChat renders the chat screen
func (m Model) viewChat() string {
	title := titleStyle.Render("WebSocket Client")
	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		m.renderStatusBadge(),
		mutedStyle.Render("  "+m.serverURL),
	)

	transcript := transcriptBoxStyle.
		Width(m.transcript.Width + 2).
		Render(m.transcript.View())

	input := inputBoxStyle.
		Width(m.input.Width + 4).
		Render(m.input.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		transcript,
		input,
		m.renderHelp(),
	)
}

func (m Model) renderStatusBadge() string {
	label := "● Disconnected"
	switch m.status {
	case connection.StatusConnecting:
		label = "◐ Connecting…"
	case connection.StatusOpen:
		label = "● Connected"
	}
	return statusStyles[m.status].Render(label)
}

// renderHelp lists the key bindings, dimming the ones that are disabled
func (m Model) renderHelp() string {
	hint := func(key, action string, enabled bool) string {
		if !enabled {
			return disabledStyle.Render(key + " " + action)
		}
		return highlightStyle.Render(key) + " " + mutedStyle.Render(action)
	}

	return instructionStyle.Render(
		hint("ctrl+o", "connect", m.canConnect()) + "  •  " +
			hint("ctrl+x", "disconnect", m.canDisconnect()) + "  •  " +
			hint("enter", "send", m.canSend()) + "  •  " +
			hint("esc", "quit", true))
}
