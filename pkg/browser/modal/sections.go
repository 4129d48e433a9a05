package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// textSection renders static, pre-styled text.
type textSection struct {
	text string
	wrap bool
}

// Text creates a static text section. Content is wrapped to the modal's
// content width.
func Text(text string) Section {
	return &textSection{text: text, wrap: true}
}

// RawText creates a static text section rendered as-is, without wrapping.
// Use it for content that is already laid out (markdown output, code).
func RawText(text string) Section {
	return &textSection{text: text}
}

func (s *textSection) Render(contentWidth int, _, _ string) RenderedSection {
	if !s.wrap {
		return RenderedSection{Content: s.text}
	}
	wrapped := lipgloss.NewStyle().Width(contentWidth).Render(s.text)
	return RenderedSection{Content: wrapped}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) {
	return "", nil
}

// spacerSection renders n blank lines.
type spacerSection struct {
	lines int
}

// Spacer creates a section of n blank lines.
func Spacer(lines int) Section {
	if lines < 1 {
		lines = 1
	}
	return &spacerSection{lines: lines}
}

func (s *spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: strings.Repeat("\n", s.lines-1)}
}

func (s *spacerSection) Update(tea.Msg, string) (string, tea.Cmd) {
	return "", nil
}

// ButtonDef describes one button in a Buttons row. Action doubles as the
// button's focus and hit-region ID.
type ButtonDef struct {
	Label    string
	Action   string
	Danger   bool
	Disabled bool
}

// Btn is shorthand for a ButtonDef literal.
func Btn(label, action string) ButtonDef {
	return ButtonDef{Label: label, Action: action}
}

// buttonsSection renders a horizontal row of buttons.
type buttonsSection struct {
	buttons []ButtonDef
	align   lipgloss.Position
}

// Buttons creates a right-aligned row of buttons.
func Buttons(buttons ...ButtonDef) Section {
	return &buttonsSection{buttons: buttons, align: lipgloss.Right}
}

// ButtonsLeft creates a left-aligned row of buttons.
func ButtonsLeft(buttons ...ButtonDef) Section {
	return &buttonsSection{buttons: buttons, align: lipgloss.Left}
}

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	var parts []string
	var focusables []FocusableInfo
	x := 0

	for i, b := range s.buttons {
		style := ButtonStyle
		switch {
		case b.Disabled:
			style = ButtonDisabled
		case b.Action == focusID:
			style = ButtonFocused
			if b.Danger {
				style = ButtonDangerFocused
			}
		case b.Action == hoverID:
			style = ButtonHovered
		case b.Danger:
			style = ButtonDanger
		}
		rendered := style.Render(b.Label)
		if i > 0 {
			x += 2 // gap
		}
		w := lipgloss.Width(rendered)
		if !b.Disabled {
			focusables = append(focusables, FocusableInfo{
				ID: b.Action, OffsetX: x, OffsetY: 0, Width: w, Height: 1,
			})
		}
		x += w
		parts = append(parts, rendered)
	}

	row := strings.Join(parts, "  ")
	if s.align == lipgloss.Right && x < contentWidth {
		pad := contentWidth - x
		row = strings.Repeat(" ", pad) + row
		for i := range focusables {
			focusables[i].OffsetX += pad
		}
	}
	return RenderedSection{Content: row, Focusables: focusables}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" && key.String() != " " {
		return "", nil
	}
	for _, b := range s.buttons {
		if !b.Disabled && b.Action == focusID {
			return b.Action, nil
		}
	}
	return "", nil
}

// collapsibleSection renders a toggleable header with an optional body.
// The expanded flag is owned by the caller so state survives rebuilds.
type collapsibleSection struct {
	id       string
	label    string
	expanded *bool
	body     func(width int) string
}

// Collapsible creates a section with a clickable header that shows or
// hides its body. The action "toggle:<id>" is returned when the header is
// activated; the caller flips *expanded and persists it.
func Collapsible(id, label string, expanded *bool, body func(width int) string) Section {
	return &collapsibleSection{id: id, label: label, expanded: expanded, body: body}
}

// ToggleAction returns the action string a Collapsible with the given id
// emits when its header is activated.
func ToggleAction(id string) string {
	return "toggle:" + id
}

func (s *collapsibleSection) action() string { return ToggleAction(s.id) }

func (s *collapsibleSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	glyph := "▸"
	if *s.expanded {
		glyph = "▾"
	}
	header := glyph + " " + s.label
	header = ansi.Truncate(header, contentWidth, "…")

	style := SectionHeader
	switch s.action() {
	case focusID:
		style = SectionHeaderFocused
	case hoverID:
		style = SectionHeaderHovered
	}

	var b strings.Builder
	b.WriteString(style.Render(header))
	if *s.expanded && s.body != nil {
		b.WriteString("\n")
		b.WriteString(s.body(contentWidth))
	}

	return RenderedSection{
		Content: b.String(),
		Focusables: []FocusableInfo{{
			ID: s.action(), OffsetX: 0, OffsetY: 0,
			Width: lipgloss.Width(header), Height: 1,
		}},
	}
}

func (s *collapsibleSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.action() {
		return "", nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	switch key.String() {
	case "enter", " ":
		return s.action(), nil
	}
	return "", nil
}
