// Package modal provides a declarative overlay dialog library with automatic
// hit region management for mouse support.
//
// Hit regions are registered from the same measurements used to render, so
// mouse targets cannot drift out of sync with the drawn content. Keyboard
// navigation (Tab/Shift+Tab, Enter, Esc) and hover styling come for free.
//
// # Quick Start
//
//	m := modal.New("Aria").
//	    AddSection(modal.Collapsible("description", "Description", &expanded, body)).
//	    AddSection(modal.Spacer(1)).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Chat ", "chat"),
//	        modal.Btn(" Close ", modal.ActionClose),
//	    ))
//
//	// In View():
//	content := m.Render(screenW, screenH, mouseHandler)
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action != "" {
//	    switch action {
//	    case "chat":
//	        return startChat()
//	    case modal.ActionClose:
//	        return closeModal()
//	    }
//	}
//
// # Built-in Sections
//
//   - Text(s string) - static text, wrapped to the content width
//   - RawText(s string) - pre-laid-out text (markdown output), no wrapping
//   - Spacer(n int) - n blank lines
//   - Buttons(btns ...ButtonDef) - right-aligned button row
//   - Collapsible(id, label string, expanded *bool, body) - toggleable block
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable list
//
// # Options
//
//   - WithWidth(w int) - outer modal width (default: 50)
//   - WithHeightPct(pct int) - height cap as % of the screen; overflow scrolls
//   - WithPadding(p int) - horizontal padding inside the border (default: 1)
//   - WithBorder(b lipgloss.Border) - border style (default: rounded)
//   - WithBackdropDim(strength int) - shaded backdrop fill, 0-100
//   - WithVariant(v Variant) - visual accent (Default, Danger, Warning, Info)
//   - WithHints(show bool) - keyboard hint line at the bottom
//   - WithCloseControl(show bool) - ✕ control in the title bar
//   - WithPrimaryAction(actionID string) - action for an unconsumed Enter
//   - WithCloseOnBackdropClick(close bool) - dismiss on backdrop click
//
// Dismissal is uniform: the close control, the backdrop (when enabled), and
// Escape all yield ActionClose. Clicks inside the modal body never dismiss.
// Content taller than the height cap scrolls with PgUp/PgDn (or the mouse
// wheel, routed through ScrollBy); the title line stays pinned.
package modal
