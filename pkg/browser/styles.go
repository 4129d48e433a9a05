package browser

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	errorColor   = lipgloss.Color("196")
	okColor      = lipgloss.Color("42")
	mutedColor   = lipgloss.Color("241")
	borderColor  = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	countStyle = lipgloss.NewStyle().Foreground(mutedColor)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	rowCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("237")).
			Bold(true)

	rowMarkedStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	statusErrStyle = lipgloss.NewStyle().Foreground(errorColor)
	statusOKStyle  = lipgloss.NewStyle().Foreground(okColor)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	previewTitleStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor)
)
