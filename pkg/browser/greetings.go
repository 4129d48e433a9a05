package browser

import (
	"fmt"

	"github.com/marcus/charview/internal/models"
)

// greetingNav holds the session-local greeting navigation state for one
// modal instance: the greeting set plus either a swipe index or per-message
// accordion expansion.
type greetingNav struct {
	mode     models.GreetingMode
	messages []string
	index    int
	expanded []bool
}

// newGreetingNav builds the navigator from a card's greeting set. In
// accordion mode only the first message may start expanded, and only when
// the first-message section itself is configured expanded.
func newGreetingNav(card *models.CharacterCard, mode models.GreetingMode, sectionExpanded bool) *greetingNav {
	n := &greetingNav{mode: mode}
	if card != nil {
		n.messages = card.Greetings()
	}
	n.expanded = make([]bool, len(n.messages))
	if len(n.expanded) > 0 && sectionExpanded {
		n.expanded[0] = true
	}
	return n
}

func (n *greetingNav) Len() int { return len(n.messages) }

func (n *greetingNav) Empty() bool { return len(n.messages) == 0 }

func (n *greetingNav) Index() int { return n.index }

func (n *greetingNav) Multi() bool { return len(n.messages) >= 2 }

func (n *greetingNav) CanPrev() bool { return n.index > 0 }

func (n *greetingNav) CanNext() bool { return n.index < len(n.messages)-1 }

// Current returns the message at the swipe index, or "".
func (n *greetingNav) Current() string {
	if n.index < 0 || n.index >= len(n.messages) {
		return ""
	}
	return n.messages[n.index]
}

// MessageAt returns message i, or "".
func (n *greetingNav) MessageAt(i int) string {
	if i < 0 || i >= len(n.messages) {
		return ""
	}
	return n.messages[i]
}

// Prev moves the swipe index back; a no-op at the first message.
func (n *greetingNav) Prev() {
	if n.CanPrev() {
		n.index--
	}
}

// Next moves the swipe index forward; a no-op at the last message.
func (n *greetingNav) Next() {
	if n.CanNext() {
		n.index++
	}
}

// Header returns the swipe-mode header: "First Message" for a single
// greeting, "First Message (i/n)" (1-based) otherwise.
func (n *greetingNav) Header() string {
	return n.HeaderAt(n.index)
}

// HeaderAt returns the header for message i under the same rule.
func (n *greetingNav) HeaderAt(i int) string {
	if len(n.messages) <= 1 {
		return "First Message"
	}
	return fmt.Sprintf("First Message (%d/%d)", i+1, len(n.messages))
}

// ExpandedAt reports accordion expansion for message i.
func (n *greetingNav) ExpandedAt(i int) bool {
	return i >= 0 && i < len(n.expanded) && n.expanded[i]
}

// ToggleAt flips accordion expansion for message i.
func (n *greetingNav) ToggleAt(i int) {
	if i >= 0 && i < len(n.expanded) {
		n.expanded[i] = !n.expanded[i]
	}
}
