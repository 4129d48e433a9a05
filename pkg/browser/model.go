package browser

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/charview/internal/client"
	"github.com/marcus/charview/internal/config"
	"github.com/marcus/charview/internal/library"
	"github.com/marcus/charview/internal/models"
	"github.com/marcus/charview/pkg/browser/modal"
	"github.com/marcus/charview/pkg/browser/mouse"
)

const fetchTimeout = 10 * time.Second

// uiMode tracks which surface owns keyboard and mouse input.
type uiMode int

const (
	modeList uiMode = iota
	modeModal
	modeSettings
	modeOrder
)

// Options configures a browser Model.
type Options struct {
	Config  *config.Store
	Library *library.Library
	Watcher *library.Watcher // optional
	Log     zerolog.Logger
}

// Model is the bubbletea model for the card browser.
type Model struct {
	cfg     *config.Store
	lib     *library.Library
	client  *client.Client // nil when no gallery is configured
	watcher *library.Watcher
	log     zerolog.Logger
	rend    Renderer

	width  int
	height int
	mode   uiMode

	cards   []models.CharacterCard
	visible []int // indexes into cards after filtering
	cursor  int   // index into visible

	filter    textinput.Model
	filtering bool

	marking bool
	marked  map[string]bool

	previewExpanded bool
	prevPreview     bool

	controller modalController
	mouse      *mouse.Handler

	form  *huh.Form
	draft *settingsDraft

	orderSel int
	orderUI  *modal.Modal

	status      string
	statusIsErr bool
	statusSeq   int
}

// New builds the browser model. A gallery client is created only when the
// settings name a gallery URL; otherwise detail opens fall back to the
// local library record.
func New(opts Options) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter cards"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	m := &Model{
		cfg:     opts.Config,
		lib:     opts.Library,
		watcher: opts.Watcher,
		log:     opts.Log,
		rend:    NewRenderer(),
		filter:  filter,
		marked:  make(map[string]bool),
		mouse:   mouse.NewHandler(),
	}
	if gallery := strings.TrimSpace(opts.Config.Settings().GalleryURL); gallery != "" {
		m.client = client.New(gallery)
	}
	applyButtonTheme(opts.Config.Settings())
	return m
}

// applyButtonTheme pushes custom button colors into the modal styles.
func applyButtonTheme(s models.Settings) {
	primary := modal.Primary
	if !s.PrimaryButtonColor.UseTheme && s.PrimaryButtonColor.Custom != "" {
		primary = lipgloss.Color(s.PrimaryButtonColor.Custom)
	}
	secondary := lipgloss.Color("238")
	if !s.SecondaryButtonColor.UseTheme && s.SecondaryButtonColor.Custom != "" {
		secondary = lipgloss.Color(s.SecondaryButtonColor.Custom)
	}
	modal.ApplyButtonColors(primary, secondary)
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCards()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForLibraryChange())
	}
	return tea.Batch(cmds...)
}

// loadCards queries the library off the event loop.
func (m *Model) loadCards() tea.Cmd {
	return func() tea.Msg {
		cards, err := m.lib.ListCards()
		return cardsLoadedMsg{cards: cards, err: err}
	}
}

// waitForLibraryChange blocks on the watcher's coalesced signal channel.
func (m *Model) waitForLibraryChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.watcher.Events(); !ok {
			return nil
		}
		return libraryChangedMsg{}
	}
}

// fetchDetail issues the async detail load tagged with the open-attempt
// generation. With a gallery configured the fetch goes over HTTP; without
// one the local record flows through the same message path so the
// generation protocol holds either way.
func (m *Model) fetchDetail(generation uint64, card *models.CharacterCard) tea.Cmd {
	if m.client != nil && card.Avatar != "" {
		cli, avatar := m.client, card.Avatar
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			detail, err := cli.FetchDetail(ctx, avatar)
			return cardDetailsMsg{generation: generation, card: detail, err: err}
		}
	}
	local := card
	return func() tea.Msg {
		return cardDetailsMsg{generation: generation, card: local}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusIsErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// openCard resolves the ID against the local library first; a miss is
// logged and surfaced on the status line without opening anything. On a
// hit the controller supersedes any prior instance and the tagged fetch is
// issued.
func (m *Model) openCard(cardID string) tea.Cmd {
	card, err := m.lib.GetCard(cardID)
	if err != nil {
		m.log.Error().Err(err).Str("card", cardID).Msg("card lookup failed")
		return m.setStatus("card not found: "+cardID, true)
	}

	if !m.controller.isOpen() {
		m.prevPreview = m.previewExpanded
	}
	m.previewExpanded = false

	inst := m.controller.open(cardID)
	inst.ui = buildCardUI(inst, m.cfg.Settings(), m.rend, m.width)
	m.mode = modeModal
	return m.fetchDetail(inst.generation, card)
}

// closeModal tears down the active instance and restores the preview
// pane markers saved when it opened. Idempotent.
func (m *Model) closeModal() {
	if m.controller.close() {
		m.previewExpanded = m.prevPreview
	}
	if m.mode == modeModal {
		m.mode = modeList
	}
}

// rebuildModal reconstructs the modal UI after a state change and restores
// focus to the acted-on target when it still exists.
func (m *Model) rebuildModal(inst *modalInstance, focus string) {
	inst.ui = buildCardUI(inst, m.cfg.Settings(), m.rend, m.width)
	if focus != "" {
		inst.ui.Render(m.width, m.height, nil)
		inst.ui.FocusOn(focus)
	}
}

func (m *Model) handleModalAction(action string) tea.Cmd {
	inst := m.controller.activeModal()
	if action == "" || inst == nil {
		return nil
	}

	switch {
	case action == modal.ActionClose:
		m.closeModal()

	case action == actionChat:
		card := inst.card
		m.closeModal()
		if card != nil {
			return m.startChat(card)
		}

	case action == actionGreetPrev:
		inst.greetings.Prev()
		m.rebuildModal(inst, action)

	case action == actionGreetNext:
		inst.greetings.Next()
		m.rebuildModal(inst, action)

	case strings.HasPrefix(action, "toggle:"):
		id := strings.TrimPrefix(action, "toggle:")
		if idx, ok := strings.CutPrefix(id, "greet:"); ok {
			if i, err := strconv.Atoi(idx); err == nil {
				inst.greetings.ToggleAt(i)
			}
		} else if flag, ok := inst.expanded[models.SectionKind(id)]; ok {
			*flag = !*flag
		}
		m.rebuildModal(inst, action)
	}
	return nil
}

// applyFilter recomputes the visible rows from the filter query.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	m.visible = m.visible[:0]
	if query == "" {
		for i := range m.cards {
			m.visible = append(m.visible, i)
		}
	} else {
		targets := make([]string, len(m.cards))
		for i, c := range m.cards {
			targets[i] = c.DisplayName() + " " + c.CreatorNotes
		}
		for _, match := range fuzzy.Find(query, targets) {
			m.visible = append(m.visible, match.Index)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedCard returns the card under the cursor, or nil.
func (m *Model) selectedCard() *models.CharacterCard {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.cards[m.visible[m.cursor]]
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.controller.isOpen() {
			m.previewExpanded = msg.Width >= m.cfg.Settings().BreakpointCols
		}
		return m, nil

	case cardsLoadedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("library list failed")
			return m, m.setStatus("library error: "+msg.err.Error(), true)
		}
		m.cards = msg.cards
		m.applyFilter()
		return m, nil

	case libraryChangedMsg:
		return m, tea.Batch(m.loadCards(), m.waitForLibraryChange())

	case cardDetailsMsg:
		inst, ok := m.controller.resolve(msg.generation, msg.card, msg.err)
		if !ok {
			m.log.Debug().Uint64("generation", msg.generation).Msg("discarding stale card fetch")
			return m, nil
		}
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("card", inst.cardID).Msg("card fetch failed")
			m.closeModal()
			return m, m.setStatus("fetch failed: "+msg.err.Error(), true)
		}
		m.rebuildModal(inst, "")
		return m, nil

	case chatFinishedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("card", msg.cardID).Msg("chat command failed")
			return m, m.setStatus("chat failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("chat ended", false)

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.mode == modeSettings && m.form != nil {
		return m.updateSettingsForm(msg)
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeModal:
		inst := m.controller.activeModal()
		if inst == nil || inst.ui == nil {
			m.mode = modeList
			return m, nil
		}
		action, cmd := inst.ui.HandleKey(msg)
		if actionCmd := m.handleModalAction(action); actionCmd != nil {
			return m, tea.Batch(cmd, actionCmd)
		}
		return m, cmd

	case modeSettings:
		return m.updateSettingsForm(msg)

	case modeOrder:
		return m.updateOrderModal(msg)
	}

	// List mode.
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.applyFilter()
			return m, nil
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Top):
		m.cursor = 0

	case key.Matches(msg, keys.Bottom):
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}

	case key.Matches(msg, keys.Open):
		if card := m.selectedCard(); card != nil {
			return m, m.openCard(card.ID)
		}

	case key.Matches(msg, keys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Marking):
		m.marking = !m.marking
		if !m.marking {
			clear(m.marked)
		}

	case key.Matches(msg, keys.Mark):
		if m.marking {
			if card := m.selectedCard(); card != nil {
				m.marked[card.ID] = !m.marked[card.ID]
			}
		}

	case key.Matches(msg, keys.Preview):
		m.previewExpanded = !m.previewExpanded

	case key.Matches(msg, keys.Order):
		m.openOrderModal()

	case key.Matches(msg, keys.Config):
		m.openSettingsForm()
		return m, m.form.Init()

	case key.Matches(msg, keys.Reload):
		return m, m.loadCards()
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel scrolling works regardless of hit regions.
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		up := msg.Button == tea.MouseButtonWheelUp
		switch m.mode {
		case modeList:
			if up && m.cursor > 0 {
				m.cursor--
			} else if !up && m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case modeModal:
			if inst := m.controller.activeModal(); inst != nil && inst.ui != nil {
				if up {
					inst.ui.ScrollBy(-3)
				} else {
					inst.ui.ScrollBy(3)
				}
			}
			return m, nil
		}
	}

	act := m.mouse.HandleMouse(msg)

	switch m.mode {
	case modeModal:
		inst := m.controller.activeModal()
		if inst == nil || inst.ui == nil {
			return m, nil
		}
		action, cmd := inst.ui.HandleMouse(act)
		if actionCmd := m.handleModalAction(action); actionCmd != nil {
			return m, tea.Batch(cmd, actionCmd)
		}
		return m, cmd

	case modeOrder:
		if m.orderUI != nil {
			action, _ := m.orderUI.HandleMouse(act)
			return m.handleOrderAction(action)
		}
		return m, nil

	case modeSettings:
		return m, nil
	}

	if act.Type != mouse.ActionClick {
		return m, nil
	}
	if act.Region != nil && act.Region.ID == "preview.toggle" {
		m.previewExpanded = !m.previewExpanded
		return m, nil
	}

	decision := decideClick(act.Region, m.marking, msg.Ctrl)
	switch decision.Decision {
	case DecisionIgnore:
		return m, nil
	case DecisionPassThrough:
		if decision.Row >= 0 && decision.Row < len(m.visible) {
			m.cursor = decision.Row
			if m.marking && decision.CardID != "" {
				m.marked[decision.CardID] = !m.marked[decision.CardID]
			}
		}
		return m, nil
	case DecisionIntercept:
		if decision.Row >= 0 && decision.Row < len(m.visible) {
			m.cursor = decision.Row
		}
		return m, m.openCard(decision.CardID)
	}
	return m, nil
}
