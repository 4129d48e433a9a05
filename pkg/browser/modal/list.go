package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListItem is one row in a list section.
type ListItem struct {
	ID     string
	Label  string
	Dimmed bool
}

// ListOption configures a list section.
type ListOption func(*listSection)

// listSection renders a scrollable, selectable list. The list registers a
// single focusable (the list itself) so Tab moves between sections; rows
// remain individually clickable through their hit regions.
type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
	keyActions   map[string]string
}

// List creates a list section. selectedIdx points at the caller-owned
// selection so it survives rebuilds.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets how many rows are shown before scrolling.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// WithKeyAction binds a key to an action emitted for the selected row as
// "<action>:<item id>". Used for row-level commands like reordering.
func WithKeyAction(key, action string) ListOption {
	return func(s *listSection) {
		if s.keyActions == nil {
			s.keyActions = make(map[string]string)
		}
		s.keyActions[key] = action
	}
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: MutedText.Render("(no items)")}
	}

	visible := min(s.maxVisible, len(s.items))
	selected := 0
	if s.selectedIdx != nil {
		selected = *s.selectedIdx
	}

	// Keep the selection in view.
	if selected < s.scrollOffset {
		s.scrollOffset = selected
	} else if selected >= s.scrollOffset+visible {
		s.scrollOffset = selected - visible + 1
	}
	if maxScroll := len(s.items) - visible; s.scrollOffset > maxScroll {
		s.scrollOffset = maxScroll
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}

	listFocused := focusID == s.id

	var sb strings.Builder
	rows := 0
	for i := 0; i < visible; i++ {
		idx := s.scrollOffset + i
		if idx >= len(s.items) {
			break
		}
		item := s.items[idx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == idx

		style := ListItemNormal
		switch {
		case isSelected && listFocused:
			style = ListItemFocused
		case isSelected, item.ID == hoverID:
			style = SectionHeaderFocused
		case item.Dimmed:
			style = MutedText
		}

		cursor := "  "
		if isSelected {
			cursor = ListCursor.Render("> ")
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cursor + style.Render(item.Label))
		rows++
	}

	content := sb.String()
	if s.scrollOffset > 0 {
		content = MutedText.Render("↑ more above") + "\n" + content
		rows++
	}
	if s.scrollOffset+visible < len(s.items) {
		content = content + "\n" + MutedText.Render("↓ more below")
		rows++
	}

	return RenderedSection{
		Content: content,
		Focusables: []FocusableInfo{{
			ID: s.id, OffsetX: 0, OffsetY: 0,
			Width: contentWidth, Height: rows,
		}},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch key.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	default:
		if action, ok := s.keyActions[key.String()]; ok {
			if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
				return action + ":" + s.items[*s.selectedIdx].ID, nil
			}
		}
	}
	return "", nil
}
