package browser

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Renderer turns card field text into terminal output at a given width.
// The implementation is chosen once at startup; rendering code never
// branches on markdown availability.
type Renderer interface {
	Render(text string, width int) string
}

// NewRenderer returns a glamour-backed renderer, or the plain-text
// fallback when glamour cannot initialize in this environment.
func NewRenderer() Renderer {
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return passthroughRenderer{}
	}
	return &glamourRenderer{tr: tr, width: 80}
}

type glamourRenderer struct {
	tr    *glamour.TermRenderer
	width int
}

func (g *glamourRenderer) Render(text string, width int) string {
	if width > 0 && width != g.width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			g.tr = tr
			g.width = width
		}
	}
	out, err := g.tr.Render(text)
	if err != nil {
		return passthroughRenderer{}.Render(text, width)
	}
	// Glamour pads with margins and trailing newlines.
	return strings.Trim(out, "\n")
}

// passthroughRenderer preserves the text verbatim, wrapped to width, with
// newlines intact.
type passthroughRenderer struct{}

func (passthroughRenderer) Render(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
