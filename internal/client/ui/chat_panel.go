package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/wschat/internal/client/messagelog"
)

// renderTranscript renders one line per entry, "HH:MM:SS: text", styled by kind
func renderTranscript(entries []messagelog.Entry, width int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No messages yet")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, renderEntry(e, width))
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e messagelog.Entry, width int) string {
	style, ok := kindStyles[e.Kind]
	if !ok {
		style = mutedStyle
	}

	stamp := timestampStyle.Render(e.Timestamp + ": ")
	textWidth := width - len(e.Timestamp) - 2
	if textWidth < 1 {
		return stamp + style.Render(e.Text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, stamp, style.Width(textWidth).Render(e.Text))
}
