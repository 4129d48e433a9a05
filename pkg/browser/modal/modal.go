package modal

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/charview/pkg/browser/mouse"
)

// Reserved region and action identifiers.
const (
	// ActionClose is returned by every dismissal trigger: the close
	// control, the backdrop, and the Escape key.
	ActionClose = "close"

	// scrollStep is the PgUp/PgDn viewport movement in rows.
	scrollStep = 5

	regionBackdrop = "modal.backdrop"
	regionBody     = "modal.body"
	regionClose    = "modal.close"
)

// Variant selects the modal's visual accent.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// FocusableInfo describes one keyboard/mouse target inside a rendered
// section, positioned relative to the section's first content cell.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is the output of one section render pass.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// Section is one vertical block of modal content. Render is called every
// frame with the currently focused and hovered target IDs; Update receives
// messages when one of the section's targets is focused and returns an
// action string ("" for none).
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// Modal is a declarative overlay dialog. Sections are rendered top to
// bottom; hit regions are registered from the same measurements used to
// draw, and keyboard focus cycles through whatever the sections declared
// focusable on the last render.
type Modal struct {
	title           string
	width           int
	heightPct       int
	padding         int
	border          lipgloss.Border
	dim             int
	variant         Variant
	showHints       bool
	showClose       bool
	primaryAction   string
	closeOnBackdrop bool
	sections        []Section

	focusIdx   int
	focusables []FocusableInfo
	scroll     int
	maxScroll  int
}

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the outer modal width.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithHeightPct caps the modal height at a percentage of the screen;
// overflowing content scrolls (PgUp/PgDn, mouse wheel).
func WithHeightPct(pct int) Option {
	return func(m *Modal) {
		if pct > 0 && pct <= 100 {
			m.heightPct = pct
		}
	}
}

// WithPadding sets the horizontal padding inside the border.
func WithPadding(p int) Option {
	return func(m *Modal) {
		if p >= 0 && p <= 3 {
			m.padding = p
		}
	}
}

// WithBorder sets the border style.
func WithBorder(b lipgloss.Border) Option {
	return func(m *Modal) { m.border = b }
}

// WithBackdropDim fills the backdrop with a shade pattern; strength runs
// 0 (off) to 100 (darkest).
func WithBackdropDim(strength int) Option {
	return func(m *Modal) {
		if strength >= 0 && strength <= 100 {
			m.dim = strength
		}
	}
}

// WithVariant sets the visual accent.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithCloseControl toggles the ✕ control in the title bar.
func WithCloseControl(show bool) Option {
	return func(m *Modal) { m.showClose = show }
}

// WithPrimaryAction sets the action returned by Enter when no focused
// target consumed it.
func WithPrimaryAction(action string) Option {
	return func(m *Modal) { m.primaryAction = action }
}

// WithCloseOnBackdropClick controls whether clicking outside the modal
// body dismisses it.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// New creates a modal with the given title.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:           title,
		width:           50,
		padding:         1,
		border:          lipgloss.RoundedBorder(),
		showHints:       true,
		showClose:       true,
		closeOnBackdrop: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// ScrollBy moves the content viewport; clamped during the next render.
func (m *Modal) ScrollBy(delta int) {
	m.scroll += delta
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// FocusID returns the currently focused target ID, or "".
func (m *Modal) FocusID() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusables) {
		return ""
	}
	return m.focusables[m.focusIdx].ID
}

// FocusOn moves focus to the target with the given ID, if present.
func (m *Modal) FocusOn(id string) {
	for i, f := range m.focusables {
		if f.ID == id {
			m.focusIdx = i
			return
		}
	}
}

// cycleFocus moves focus by delta, wrapping.
func (m *Modal) cycleFocus(delta int) {
	if len(m.focusables) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(m.focusables)) % len(m.focusables)
}

// HandleKey routes a key event. It returns an action string: ActionClose
// for Escape, a section-defined action, the primary action for an
// unconsumed Enter, or "".
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return ActionClose, nil
	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		m.cycleFocus(delta)
		return "", nil
	case "pgup":
		m.ScrollBy(-scrollStep)
		return "", nil
	case "pgdown":
		m.ScrollBy(scrollStep)
		return "", nil
	}

	focusID := m.FocusID()
	var cmds []tea.Cmd
	for _, s := range m.sections {
		action, cmd := s.Update(msg, focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action != "" {
			return action, tea.Batch(cmds...)
		}
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		return m.primaryAction, tea.Batch(cmds...)
	}
	return "", tea.Batch(cmds...)
}

// HandleMouse routes a resolved mouse action. Clicks inside the modal body
// never dismiss it; only the backdrop, the close control, or Escape do.
func (m *Modal) HandleMouse(act mouse.Action) (string, tea.Cmd) {
	if act.Type != mouse.ActionClick || act.Region == nil {
		return "", nil
	}

	switch act.Region.ID {
	case regionBackdrop:
		if m.closeOnBackdrop {
			return ActionClose, nil
		}
		return "", nil
	case regionBody:
		// Click on non-interactive modal content: swallowed.
		return "", nil
	case regionClose:
		return ActionClose, nil
	}

	// A focusable target: focus it and treat the click as activation.
	m.FocusOn(act.Region.ID)
	return act.Region.ID, nil
}

// Render draws the modal centered on the screen and registers its hit
// regions (backdrop first, body, then interactive targets) on handler.
// Passing a nil handler skips region registration.
func (m *Modal) Render(screenW, screenH int, handler *mouse.Handler) string {
	contentWidth := m.width - 2 - 2*m.padding // border + horizontal padding
	if contentWidth < 20 {
		contentWidth = 20
	}

	// Title bar: title left, close control right.
	titleText := ModalTitle.Render(m.title)
	titleLine := titleText
	if m.showClose {
		closeGlyph := CloseControl.Render("✕")
		gap := contentWidth - lipgloss.Width(titleText) - lipgloss.Width(closeGlyph)
		if gap < 1 {
			titleLine = ansi.Truncate(titleText, contentWidth-2, "…") + " " + closeGlyph
		} else {
			titleLine = titleText + strings.Repeat(" ", gap) + closeGlyph
		}
	}

	focusID := m.FocusID()
	hoverID := ""
	if handler != nil {
		hoverID = handler.HoverID()
	}

	// Render sections, tracking vertical offsets for focusables.
	var body strings.Builder
	body.WriteString(titleLine)
	body.WriteString("\n\n")
	yOffset := 2 // title + blank line

	m.focusables = m.focusables[:0]
	type placed struct {
		info FocusableInfo
		y    int
	}
	var targets []placed

	for i, s := range m.sections {
		rendered := s.Render(contentWidth, focusID, hoverID)
		if i > 0 {
			body.WriteString("\n")
			yOffset++
		}
		body.WriteString(rendered.Content)
		for _, f := range rendered.Focusables {
			targets = append(targets, placed{info: f, y: yOffset + f.OffsetY})
			m.focusables = append(m.focusables, f)
		}
		yOffset += lipgloss.Height(rendered.Content)
	}

	if m.showHints {
		body.WriteString("\n\n")
		body.WriteString(MutedText.Render("tab: focus • enter: select • esc: close"))
	}

	if m.focusIdx >= len(m.focusables) {
		m.focusIdx = 0
	}

	// Clamp the viewport and slice overflowing content. The title line and
	// the blank line under it stay pinned.
	const pinned = 2
	content := body.String()
	lines := strings.Split(content, "\n")
	maxBody := screenH - 4
	if m.heightPct > 0 {
		if h := screenH*m.heightPct/100 - 2; h < maxBody {
			maxBody = h
		}
	}
	if maxBody < pinned+3 {
		maxBody = pinned + 3
	}
	m.maxScroll = len(lines) - maxBody
	if m.maxScroll < 0 {
		m.maxScroll = 0
	}
	if m.scroll > m.maxScroll {
		m.scroll = m.maxScroll
	}
	if m.maxScroll > 0 {
		rest := lines[pinned:]
		lo := m.scroll
		hi := lo + (maxBody - pinned)
		if hi > len(rest) {
			hi = len(rest)
		}
		visible := append(append([]string{}, lines[:pinned]...), rest[lo:hi]...)
		if lo > 0 {
			visible[pinned] = MutedText.Render("↑ more (pgup)")
		}
		if hi < len(rest) {
			visible[len(visible)-1] = MutedText.Render("↓ more (pgdn)")
		}
		content = strings.Join(visible, "\n")
	}

	box := lipgloss.NewStyle().
		Border(m.border).
		BorderForeground(variantColor(m.variant)).
		Padding(0, m.padding).
		Width(m.width - 2).
		Render(content)

	boxW := lipgloss.Width(box)
	boxH := lipgloss.Height(box)
	boxX := (screenW - boxW) / 2
	boxY := (screenH - boxH) / 2
	if boxX < 0 {
		boxX = 0
	}
	if boxY < 0 {
		boxY = 0
	}

	if handler != nil {
		handler.HitMap.Clear()
		handler.HitMap.AddRect(regionBackdrop, 0, 0, screenW, screenH, nil)
		handler.HitMap.AddRect(regionBody, boxX, boxY, boxW, boxH, nil)
		if m.showClose {
			// The close glyph occupies the last three content cells of
			// the title line.
			handler.HitMap.AddRect(regionClose, boxX+boxW-1-m.padding-3, boxY+1, 3, 1, nil)
		}
		// Content cell origin: border + padding horizontal, border vertical.
		for _, tgt := range targets {
			ty := tgt.y
			if m.maxScroll > 0 && ty >= pinned {
				ty -= m.scroll
				if ty < pinned || ty >= maxBody {
					continue // scrolled out of view
				}
			}
			handler.HitMap.AddRect(tgt.info.ID,
				boxX+1+m.padding+tgt.info.OffsetX,
				boxY+1+ty,
				tgt.info.Width, tgt.info.Height, nil)
		}
	}

	if m.dim > 0 {
		return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box,
			lipgloss.WithWhitespaceChars("░"),
			lipgloss.WithWhitespaceForeground(dimShade(m.dim)))
	}
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}

// dimShade maps a 1-100 dim strength onto the 256-color grayscale ramp
// (255 lightest, 232 darkest).
func dimShade(strength int) lipgloss.Color {
	idx := 255 - strength*23/100
	return lipgloss.Color(strconv.Itoa(idx))
}
