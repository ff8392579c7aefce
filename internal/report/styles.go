package report

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#2196F3")
	warning     = lipgloss.Color("#FFC107")
	destructive = lipgloss.Color("#e53935")
	border      = lipgloss.Color("#2a3850")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(border)

	severityStyles = map[string]lipgloss.Style{
		"warning":  cellStyle.Foreground(warning),
		"critical": cellStyle.Bold(true).Foreground(destructive),
	}
)
