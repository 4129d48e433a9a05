package browser

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/charview/internal/models"
	"github.com/marcus/charview/pkg/browser/modal"
)

// Card modal action IDs.
const (
	actionChat      = "chat"
	actionGreetPrev = "greet.prev"
	actionGreetNext = "greet.next"
)

func greetToggleID(i int) string {
	return "greet:" + strconv.Itoa(i)
}

// modalWidth derives the modal's outer width from the configured
// percentage, clamped to the content-width cap and the screen.
func modalWidth(settings models.Settings, screenW int) int {
	w := screenW * settings.ModalWidthPct / 100
	if maxW := settings.ContentWidthMax + 4; settings.ContentWidthMax > 0 && w > maxW {
		w = maxW
	}
	if w > screenW-2 {
		w = screenW - 2
	}
	if w < 40 {
		w = 40
	}
	return w
}

// modalBorder maps the configured border name to a lipgloss border.
func modalBorder(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "double":
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// modalChrome is the appearance options shared by every card modal state.
func modalChrome(settings models.Settings, width int) []modal.Option {
	return []modal.Option{
		modal.WithWidth(width),
		modal.WithPadding(settings.ModalPadding),
		modal.WithBorder(modalBorder(settings.ModalBorder)),
		modal.WithBackdropDim(settings.DimStrength),
	}
}

// buildCardUI (re)constructs the modal widget for the instance's current
// state. Expansion flags and the greeting navigator persist on the instance
// across rebuilds; focus does not (the caller restores it when needed).
func buildCardUI(inst *modalInstance, settings models.Settings, rend Renderer, screenW int) *modal.Modal {
	width := modalWidth(settings, screenW)
	chrome := modalChrome(settings, width)

	if inst.loading {
		return modal.New("Loading", chrome...).
			AddSection(modal.Text(modal.MutedText.Render("Fetching card…"))).
			AddSection(modal.Spacer(1)).
			AddSection(modal.Buttons(modal.Btn(" Close ", modal.ActionClose)))
	}

	if inst.err != nil {
		return modal.New("Error", append(chrome, modal.WithVariant(modal.VariantDanger))...).
			AddSection(modal.Text(inst.err.Error())).
			AddSection(modal.Spacer(1)).
			AddSection(modal.Buttons(modal.Btn(" Close ", modal.ActionClose)))
	}

	card := inst.card
	sections := buildSections(card, settings)

	if inst.expanded == nil {
		inst.expanded = make(map[models.SectionKind]*bool, len(sections))
	}
	for _, sec := range sections {
		if _, ok := inst.expanded[sec.Kind]; !ok {
			e := sec.Expanded
			inst.expanded[sec.Kind] = &e
		}
	}
	if inst.greetings == nil {
		sectionExpanded := false
		if e, ok := inst.expanded[models.SectionFirstMessage]; ok {
			sectionExpanded = *e
		}
		inst.greetings = newGreetingNav(card, settings.GreetingMode, sectionExpanded)
	}

	m := modal.New(card.DisplayName(), append(chrome,
		modal.WithHeightPct(settings.ModalHeightPct),
		modal.WithPrimaryAction(actionChat),
	)...)

	if card.Avatar != "" {
		m.AddSection(modal.Text(modal.MutedText.Render("◈ " + card.Avatar)))
		m.AddSection(modal.Spacer(1))
	}

	textStyle := lipgloss.NewStyle()
	if !settings.FontColor.UseTheme && settings.FontColor.Custom != "" {
		textStyle = textStyle.Foreground(lipgloss.Color(settings.FontColor.Custom))
	}

	for _, sec := range sections {
		if sec.Kind == models.SectionFirstMessage {
			addGreetingSections(m, inst, rend)
			continue
		}
		body := literalBody(textStyle, sec.Content)
		if sec.Markdown {
			body = markdownBody(rend, sec.Content)
		}
		m.AddSection(modal.Collapsible(string(sec.Kind), sec.Label, inst.expanded[sec.Kind], body))
	}

	m.AddSection(modal.Spacer(1))
	m.AddSection(modal.Buttons(
		modal.Btn(" Chat ", actionChat),
		modal.Btn(" Close ", modal.ActionClose),
	))
	return m
}

// addGreetingSections appends the first-message block in the configured
// greeting mode. Swipe: one collapsible plus prev/next controls when more
// than one greeting exists. Accordion: one collapsible per greeting.
func addGreetingSections(m *modal.Modal, inst *modalInstance, rend Renderer) {
	nav := inst.greetings
	if nav.Empty() {
		return
	}

	if nav.mode == models.GreetingModeAccordion && nav.Multi() {
		for i := 0; i < nav.Len(); i++ {
			msg := nav.MessageAt(i)
			expanded := &nav.expanded[i]
			m.AddSection(modal.Collapsible(greetToggleID(i), nav.HeaderAt(i), expanded, markdownBody(rend, msg)))
		}
		return
	}

	expanded := inst.expanded[models.SectionFirstMessage]
	m.AddSection(modal.Collapsible(string(models.SectionFirstMessage), nav.Header(), expanded, markdownBody(rend, nav.Current())))
	if *expanded && nav.Multi() {
		m.AddSection(modal.ButtonsLeft(
			modal.ButtonDef{Label: " ‹ Prev ", Action: actionGreetPrev, Disabled: !nav.CanPrev()},
			modal.ButtonDef{Label: " Next › ", Action: actionGreetNext, Disabled: !nav.CanNext()},
		))
	}
}

func markdownBody(rend Renderer, content string) func(int) string {
	return func(width int) string {
		return rend.Render(content, width)
	}
}

func literalBody(style lipgloss.Style, content string) func(int) string {
	return func(width int) string {
		return style.Width(width).Render(content)
	}
}
