package modal

import "github.com/charmbracelet/lipgloss"

// Colors shared with the browser's style table.
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Info         = lipgloss.Color("45")
	Muted        = lipgloss.Color("241")
	BorderNormal = lipgloss.Color("240")
)

func variantColor(v Variant) lipgloss.Color {
	switch v {
	case VariantDanger:
		return Error
	case VariantWarning:
		return Warning
	case VariantInfo:
		return Info
	}
	return BorderNormal
}

// Button styles.
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonHovered = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245")).
			Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true).
				Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Foreground(Muted).
			Background(lipgloss.Color("236")).
			Padding(0, 2)
)

// ApplyButtonColors overrides the primary (focused) and secondary (resting)
// button backgrounds. The styles are package-level, so this affects every
// modal rendered afterwards.
func ApplyButtonColors(primary, secondary lipgloss.Color) {
	ButtonFocused = ButtonFocused.Background(primary)
	ListCursor = ListCursor.Foreground(primary)
	ButtonStyle = ButtonStyle.Background(secondary)
	ButtonDanger = ButtonDanger.Background(secondary)
}

// Text and chrome styles.
var (
	ModalTitle   = lipgloss.NewStyle().Bold(true)
	MutedText    = lipgloss.NewStyle().Foreground(Muted)
	CloseControl = lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
)

// Collapsible header styles.
var (
	SectionHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	SectionHeaderFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("237")).
				Bold(true)

	SectionHeaderHovered = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Bold(true).
				Underline(true)
)

// List styles.
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)
