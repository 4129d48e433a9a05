package browser

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/marcus/charview/internal/config"
	"github.com/marcus/charview/internal/models"
	"github.com/marcus/charview/pkg/browser/modal"
)

// settingsDraft holds the form's string-typed working copy of the settings.
type settingsDraft struct {
	greetingMode      string
	modalWidth        string
	modalHeight       string
	modalPadding      string
	modalBorder       string
	contentWidth      string
	avatarMaxLines    string
	breakpointCols    string
	dimStrength       string
	overlayOpacity    string
	backgroundOpacity string
	fontColor         string // empty = theme default
	backgroundColor   string
	primaryColor      string
	secondaryColor    string
	visible           []string
	chatCommand       string
	galleryURL        string
	importDir         string
	reset             bool
}

func newSettingsDraft(s models.Settings) *settingsDraft {
	d := &settingsDraft{
		greetingMode:      string(s.GreetingMode),
		modalWidth:        strconv.Itoa(s.ModalWidthPct),
		modalHeight:       strconv.Itoa(s.ModalHeightPct),
		modalPadding:      strconv.Itoa(s.ModalPadding),
		modalBorder:       s.ModalBorder,
		contentWidth:      strconv.Itoa(s.ContentWidthMax),
		avatarMaxLines:    strconv.Itoa(s.AvatarMaxLines),
		breakpointCols:    strconv.Itoa(s.BreakpointCols),
		dimStrength:       strconv.Itoa(s.DimStrength),
		overlayOpacity:    strconv.Itoa(s.OverlayOpacity),
		backgroundOpacity: strconv.Itoa(s.BackgroundOpacity),
		chatCommand:       s.ChatCommand,
		galleryURL:        s.GalleryURL,
		importDir:         s.ImportDir,
	}
	if !s.FontColor.UseTheme {
		d.fontColor = s.FontColor.Custom
	}
	if !s.BackgroundColor.UseTheme {
		d.backgroundColor = s.BackgroundColor.Custom
	}
	if !s.PrimaryButtonColor.UseTheme {
		d.primaryColor = s.PrimaryButtonColor.Custom
	}
	if !s.SecondaryButtonColor.UseTheme {
		d.secondaryColor = s.SecondaryButtonColor.Custom
	}
	for _, kind := range s.OrderedSections() {
		if s.Sections[kind].Visible {
			d.visible = append(d.visible, string(kind))
		}
	}
	return d
}

// apply parses the draft back into a settings value. Parse errors keep the
// previous value for that field.
func (d *settingsDraft) apply(s models.Settings) models.Settings {
	out := s.Clone()
	if models.GreetingMode(d.greetingMode) == models.GreetingModeSwipe ||
		models.GreetingMode(d.greetingMode) == models.GreetingModeAccordion {
		out.GreetingMode = models.GreetingMode(d.greetingMode)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.modalWidth)); err == nil && n >= 20 && n <= 100 {
		out.ModalWidthPct = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.modalHeight)); err == nil && n >= 20 && n <= 100 {
		out.ModalHeightPct = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.modalPadding)); err == nil && n >= 0 && n <= 3 {
		out.ModalPadding = n
	}
	switch d.modalBorder {
	case "rounded", "normal", "double":
		out.ModalBorder = d.modalBorder
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.contentWidth)); err == nil && n >= 40 {
		out.ContentWidthMax = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.avatarMaxLines)); err == nil && n >= 1 && n <= 100 {
		out.AvatarMaxLines = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.breakpointCols)); err == nil && n >= 40 && n <= 500 {
		out.BreakpointCols = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.dimStrength)); err == nil && n >= 0 && n <= 100 {
		out.DimStrength = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.overlayOpacity)); err == nil && n >= 0 && n <= 100 {
		out.OverlayOpacity = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.backgroundOpacity)); err == nil && n >= 0 && n <= 100 {
		out.BackgroundOpacity = n
	}
	out.FontColor = colorFromDraft(out.FontColor, d.fontColor)
	out.BackgroundColor = colorFromDraft(out.BackgroundColor, d.backgroundColor)
	out.PrimaryButtonColor = colorFromDraft(out.PrimaryButtonColor, d.primaryColor)
	out.SecondaryButtonColor = colorFromDraft(out.SecondaryButtonColor, d.secondaryColor)
	out.ChatCommand = strings.TrimSpace(d.chatCommand)
	out.GalleryURL = strings.TrimSpace(d.galleryURL)
	out.ImportDir = strings.TrimSpace(d.importDir)

	chosen := make(map[string]bool, len(d.visible))
	for _, v := range d.visible {
		chosen[v] = true
	}
	for kind, cfg := range out.Sections {
		cfg.Visible = chosen[string(kind)]
		out.Sections[kind] = cfg
	}
	return out
}

// colorFromDraft interprets the form value: empty means use the terminal
// theme, keeping the prior custom value as the stored fallback.
func colorFromDraft(prev models.ColorSetting, value string) models.ColorSetting {
	if c := strings.TrimSpace(value); c != "" {
		return models.ColorSetting{UseTheme: false, Custom: c}
	}
	prev.UseTheme = true
	return prev
}

func newSettingsForm(d *settingsDraft) *huh.Form {
	var sectionOpts []huh.Option[string]
	for _, kind := range models.SectionKinds {
		sectionOpts = append(sectionOpts, huh.NewOption(models.SectionLabel(kind), string(kind)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Greeting mode").
				Options(
					huh.NewOption("Swipe", string(models.GreetingModeSwipe)),
					huh.NewOption("Accordion", string(models.GreetingModeAccordion)),
				).
				Value(&d.greetingMode),
			huh.NewMultiSelect[string]().
				Title("Visible sections").
				Options(sectionOpts...).
				Value(&d.visible),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Modal width (% of screen)").
				Validate(intInRange(20, 100)).
				Value(&d.modalWidth),
			huh.NewInput().
				Title("Modal height (% of screen)").
				Validate(intInRange(20, 100)).
				Value(&d.modalHeight),
			huh.NewInput().
				Title("Modal padding (0-3)").
				Validate(intInRange(0, 3)).
				Value(&d.modalPadding),
			huh.NewSelect[string]().
				Title("Modal border").
				Options(
					huh.NewOption("Rounded", "rounded"),
					huh.NewOption("Normal", "normal"),
					huh.NewOption("Double", "double"),
				).
				Value(&d.modalBorder),
			huh.NewInput().
				Title("Content width cap (columns)").
				Validate(intInRange(40, 500)).
				Value(&d.contentWidth),
			huh.NewInput().
				Title("Avatar max height (lines)").
				Validate(intInRange(1, 100)).
				Value(&d.avatarMaxLines),
			huh.NewInput().
				Title("Preview pane breakpoint (columns)").
				Validate(intInRange(40, 500)).
				Value(&d.breakpointCols),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Backdrop dim strength (0-100)").
				Validate(intInRange(0, 100)).
				Value(&d.dimStrength),
			huh.NewInput().
				Title("Overlay opacity (0-100)").
				Validate(intInRange(0, 100)).
				Value(&d.overlayOpacity),
			huh.NewInput().
				Title("Background opacity (0-100)").
				Validate(intInRange(0, 100)).
				Value(&d.backgroundOpacity),
			huh.NewInput().
				Title("Font color (ANSI code, empty = theme)").
				Value(&d.fontColor),
			huh.NewInput().
				Title("Background color (ANSI code, empty = theme)").
				Value(&d.backgroundColor),
			huh.NewInput().
				Title("Primary button color (ANSI code, empty = theme)").
				Value(&d.primaryColor),
			huh.NewInput().
				Title("Secondary button color (ANSI code, empty = theme)").
				Value(&d.secondaryColor),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Chat command (%s = card id)").
				Value(&d.chatCommand),
			huh.NewInput().
				Title("Gallery URL (empty = local only)").
				Value(&d.galleryURL),
			huh.NewInput().
				Title("Import directory to watch").
				Value(&d.importDir),
			huh.NewConfirm().
				Title("Reset all settings to defaults?").
				Affirmative("Reset").
				Negative("Keep").
				Value(&d.reset),
		),
	)
}

func intInRange(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be %d-%d", lo, hi)
		}
		return nil
	}
}

// commitSettings applies the completed draft to the store. The reset
// confirm wins over every other field.
func (m *Model) commitSettings() string {
	if m.draft.reset {
		m.cfg.Reset()
		applyButtonTheme(m.cfg.Settings())
		return "settings reset to defaults"
	}
	m.cfg.Replace(m.draft.apply(m.cfg.Settings()))
	m.cfg.Save()
	applyButtonTheme(m.cfg.Settings())
	return "settings saved"
}

func (m *Model) openSettingsForm() {
	m.draft = newSettingsDraft(m.cfg.Settings())
	m.form = newSettingsForm(m.draft)
	m.mode = modeSettings
}

func (m *Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.form = nil
		m.draft = nil
		m.mode = modeList
		return m, nil
	}

	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		status := m.commitSettings()
		m.form = nil
		m.draft = nil
		m.mode = modeList
		return m, m.setStatus(status, false)
	case huh.StateAborted:
		m.form = nil
		m.draft = nil
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// Section-order modal: reorder with u/d, toggle visibility with enter.

const orderListID = "sections.order"

func (m *Model) buildOrderModal() *modal.Modal {
	settings := m.cfg.Settings()
	var items []modal.ListItem
	for _, kind := range settings.OrderedSections() {
		marker := "○"
		cfg := settings.Sections[kind]
		if cfg.Visible {
			marker = "●"
		}
		expanded := "▸"
		if cfg.Expanded {
			expanded = "▾"
		}
		items = append(items, modal.ListItem{
			ID:     string(kind),
			Label:  marker + " " + expanded + " " + models.SectionLabel(kind),
			Dimmed: !cfg.Visible,
		})
	}
	return modal.New("Section Order",
		modal.WithWidth(44),
		modal.WithHints(false),
	).
		AddSection(modal.List(orderListID, items, &m.orderSel,
			modal.WithMaxVisible(len(models.SectionKinds)),
			modal.WithKeyAction("u", "move-up"),
			modal.WithKeyAction("d", "move-down"),
			modal.WithKeyAction("e", "expand"),
		)).
		AddSection(modal.Spacer(1)).
		AddSection(modal.Text(modal.MutedText.Render("u/d: move • enter: show/hide • e: expand by default • esc: close"))).
		AddSection(modal.Spacer(1)).
		AddSection(modal.Buttons(modal.Btn(" Done ", modal.ActionClose)))
}

func (m *Model) openOrderModal() {
	m.orderSel = 0
	m.orderUI = m.buildOrderModal()
	m.mode = modeOrder
}

func (m *Model) updateOrderModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.orderUI == nil {
		m.mode = modeList
		return m, nil
	}
	action, cmd := m.orderUI.HandleKey(msg)
	model, actionCmd := m.handleOrderAction(action)
	if actionCmd != nil {
		return model, tea.Batch(cmd, actionCmd)
	}
	return model, cmd
}

func (m *Model) handleOrderAction(action string) (tea.Model, tea.Cmd) {
	switch {
	case action == "":
		return m, nil

	case action == modal.ActionClose:
		m.orderUI = nil
		m.mode = modeList
		m.cfg.Save()
		return m, nil

	case strings.HasPrefix(action, "move-up:"):
		kind := models.SectionKind(strings.TrimPrefix(action, "move-up:"))
		m.cfg.Reorder(kind, config.Up)
		if m.orderSel > 0 {
			m.orderSel--
		}
		m.orderUI = m.buildOrderModal()
		return m, nil

	case strings.HasPrefix(action, "move-down:"):
		kind := models.SectionKind(strings.TrimPrefix(action, "move-down:"))
		m.cfg.Reorder(kind, config.Down)
		if m.orderSel < len(models.SectionKinds)-1 {
			m.orderSel++
		}
		m.orderUI = m.buildOrderModal()
		return m, nil

	case strings.HasPrefix(action, "expand:"):
		kind := models.SectionKind(strings.TrimPrefix(action, "expand:"))
		m.cfg.SetExpanded(kind, !m.cfg.Settings().Sections[kind].Expanded)
		m.orderUI = m.buildOrderModal()
		return m, nil

	default:
		// Enter on a row toggles its visibility.
		if models.IsValidSectionKind(models.SectionKind(action)) {
			m.cfg.ToggleVisibility(models.SectionKind(action))
			m.orderUI = m.buildOrderModal()
		}
		return m, nil
	}
}
