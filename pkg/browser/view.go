package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	previewWidth  = 44
	previewGutter = 4
	headerRows    = 2 // title line + filter/blank line
	footerRows    = 1 // status line
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.mode {
	case modeModal:
		if inst := m.controller.activeModal(); inst != nil && inst.ui != nil {
			return m.overlayWithStatus(inst.ui.Render(m.width, m.height-footerRows, m.mouse))
		}
	case modeOrder:
		if m.orderUI != nil {
			return m.overlayWithStatus(m.orderUI.Render(m.width, m.height-footerRows, m.mouse))
		}
	case modeSettings:
		if m.form != nil {
			body := lipgloss.Place(m.width, m.height-footerRows,
				lipgloss.Center, lipgloss.Center, m.form.View())
			return body + "\n" + m.statusLine()
		}
	}

	return m.viewList()
}

func (m *Model) overlayWithStatus(overlay string) string {
	return overlay + "\n" + m.statusLine()
}

func (m *Model) viewList() string {
	m.mouse.HitMap.Clear()

	listWidth := m.width
	showPreview := m.previewExpanded && m.width >= m.cfg.Settings().BreakpointCols
	showGutter := !m.previewExpanded && m.width >= m.cfg.Settings().BreakpointCols
	if showPreview {
		listWidth = m.width - previewWidth
	} else if showGutter {
		listWidth = m.width - previewGutter
	}

	var b strings.Builder

	// Header.
	title := titleStyle.Render("charview")
	count := countStyle.Render(fmt.Sprintf(" %d cards", len(m.visible)))
	if m.marking {
		count += rowMarkedStyle.Render(fmt.Sprintf("  marking (%d)", len(m.marked)))
	}
	b.WriteString(ansi.Truncate(title+count, m.width, "…"))
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(ansi.Truncate(m.filter.View(), listWidth, "…"))
	}
	b.WriteString("\n")

	rows := m.height - headerRows - footerRows
	if rows < 1 {
		rows = 1
	}

	// Scroll window around the cursor.
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}

	var listLines []string
	for i := 0; i < rows; i++ {
		idx := start + i
		if idx >= len(m.visible) {
			listLines = append(listLines, "")
			continue
		}
		card := m.cards[m.visible[idx]]

		marker := "  "
		if m.marked[card.ID] {
			marker = rowMarkedStyle.Render("✓ ")
		}
		label := card.DisplayName()
		if n := len(card.Greetings()); n > 1 {
			label += mutedStyle.Render(fmt.Sprintf("  (%d greetings)", n))
		}

		style := rowStyle
		if idx == m.cursor {
			style = rowCursorStyle
		}
		line := marker + style.Render(ansi.Truncate(label, listWidth-4, "…"))
		listLines = append(listLines, line)

		m.mouse.HitMap.AddRect(rowRegionID(idx), 0, headerRows+i, listWidth, 1, card.ID)
	}
	if len(m.visible) == 0 {
		listLines[0] = mutedStyle.Render("  no cards — run `charview import <dir>`")
	}

	listCol := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(listLines, "\n"))

	body := listCol
	if showPreview {
		preview := m.renderPreview(rows)
		m.mouse.HitMap.AddRect("preview.toggle", listWidth, headerRows, previewWidth, 1, nil)
		body = lipgloss.JoinHorizontal(lipgloss.Top, listCol, preview)
	} else if showGutter {
		gutter := mutedStyle.Render(" ◂ ")
		m.mouse.HitMap.AddRect("preview.toggle", listWidth, headerRows, previewGutter, 1, nil)
		body = lipgloss.JoinHorizontal(lipgloss.Top, listCol, gutter)
	}

	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

// renderPreview draws the side pane for the card under the cursor.
func (m *Model) renderPreview(rows int) string {
	inner := previewWidth - 4
	card := m.selectedCard()

	var lines []string
	header := previewTitleStyle.Render("Preview") +
		strings.Repeat(" ", max(1, inner-9)) + mutedStyle.Render("▸")
	lines = append(lines, ansi.Truncate(header, inner, "…"))

	if card == nil {
		lines = append(lines, mutedStyle.Render("nothing selected"))
	} else {
		lines = append(lines, previewTitleStyle.Render(ansi.Truncate(card.DisplayName(), inner, "…")))
		if card.Avatar != "" {
			lines = append(lines, mutedStyle.Render(ansi.Truncate("◈ "+card.Avatar, inner, "…")))
		}
		lines = append(lines, "")
		desc := strings.TrimSpace(card.Description)
		if desc == "" {
			lines = append(lines, mutedStyle.Render("(no description)"))
		} else {
			rendered := m.rend.Render(desc, inner)
			avail := rows - len(lines) - 3
			for i, l := range strings.Split(rendered, "\n") {
				if i >= avail {
					lines = append(lines, mutedStyle.Render("…"))
					break
				}
				lines = append(lines, l)
			}
		}
	}

	return previewStyle.
		Width(previewWidth - 2).
		Height(rows - 2).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	if m.status != "" {
		style := statusOKStyle
		if m.statusIsErr {
			style = statusErrStyle
		}
		return ansi.Truncate(style.Render(m.status), m.width, "…")
	}
	return ansi.Truncate(helpStyle.Render(helpLine), m.width, "…")
}
