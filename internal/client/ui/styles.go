package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yourusername/wschat/internal/client/connection"
	"github.com/yourusername/wschat/internal/client/messagelog"
)

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	secondaryColor = lipgloss.Color("#7EBB81") // Light forest green
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	successColor   = lipgloss.Color("#B5D99C") // Bright sage
	mutedColor     = lipgloss.Color("#B8A890") // Light taupe
	fgColor        = lipgloss.Color("#F5F3ED") // Warm white
	warnColor      = lipgloss.Color("#F0DEB4") // Cream
	errorColor     = lipgloss.Color("#E07B7B")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	transcriptBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accentColor).
				Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	highlightStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	disabledStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Faint(true).
			Strikethrough(true)

	instructionStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// Transcript line styles by entry kind
var kindStyles = map[messagelog.Kind]lipgloss.Style{
	messagelog.KindSystem:   lipgloss.NewStyle().Foreground(mutedColor).Italic(true),
	messagelog.KindReceived: lipgloss.NewStyle().Foreground(fgColor),
	messagelog.KindSent:     lipgloss.NewStyle().Foreground(secondaryColor),
	messagelog.KindError:    lipgloss.NewStyle().Foreground(errorColor).Bold(true),
}

// Status badge styles
var statusStyles = map[connection.Status]lipgloss.Style{
	connection.StatusDisconnected: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	connection.StatusConnecting:   lipgloss.NewStyle().Foreground(warnColor).Bold(true),
	connection.StatusOpen:         lipgloss.NewStyle().Foreground(successColor).Bold(true),
}
