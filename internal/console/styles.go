// Package console is the operator terminal for a booth. It drives a headless
// booth over the same surface a kiosk front-end would use and renders the
// resulting presentation state.
package console

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#10B981")
	accentColor  = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	dimColor     = lipgloss.Color("#6B7280")
	textColor    = lipgloss.Color("#F9FAFB")
	bgColor      = lipgloss.Color("#1F2937")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimColor).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Padding(0, 1)

	captureStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	activeStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	statusKeyStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(bgColor).
			Padding(0, 1).
			Bold(true)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)
