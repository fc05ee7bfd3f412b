package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	selectedStyle = accentStyle.Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	clockStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))

	exerciseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1).
			MarginBottom(1)
	previousStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FF4D4F")).
			Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Width(8).Foreground(lipgloss.Color("#F0F0F0"))
	focusedCellStyle = cellStyle.Underline(true).Foreground(lipgloss.Color("#60A5FA"))
)

// statusLine renders a one-line message, red when isErr.
func statusLine(msg string, isErr bool) string {
	if msg == "" {
		return ""
	}
	if isErr {
		return errorStyle.Render(msg)
	}
	return okStyle.Render(msg)
}
