package browser

import (
	"strings"

	"github.com/marcus/charview/internal/models"
)

// CardSection is one display block of the card modal, in final order.
type CardSection struct {
	Kind     models.SectionKind
	Label    string
	Content  string
	Markdown bool
	Expanded bool
}

// markdownKinds render through the markdown renderer; everything else is
// shown literally, newlines preserved.
var markdownKinds = map[models.SectionKind]bool{
	models.SectionDescription:  true,
	models.SectionFirstMessage: true,
}

// buildSections produces the card's visible sections sorted by the
// configured order. Sections whose field is empty after trimming are
// omitted; the first-message section is omitted when the card has no
// greetings at all. Unknown kinds in the settings map are skipped.
func buildSections(card *models.CharacterCard, settings models.Settings) []CardSection {
	if card == nil {
		return nil
	}

	var out []CardSection
	for _, kind := range settings.OrderedSections() {
		cfg, ok := settings.Sections[kind]
		if !ok || !cfg.Visible {
			continue
		}

		var content string
		switch kind {
		case models.SectionDescription:
			content = card.Description
		case models.SectionFirstMessage:
			if len(card.Greetings()) == 0 {
				continue
			}
			// Body is owned by the greeting navigator.
		case models.SectionScenario:
			content = card.Scenario
		case models.SectionPersonality:
			content = card.Personality
		case models.SectionCreatorNotes:
			content = card.CreatorNotes
		case models.SectionExampleMessages:
			content = card.ExampleMessages
		default:
			continue
		}

		content = strings.TrimSpace(content)
		if kind != models.SectionFirstMessage && content == "" {
			continue
		}

		out = append(out, CardSection{
			Kind:     kind,
			Label:    models.SectionLabel(kind),
			Content:  content,
			Markdown: markdownKinds[kind],
			Expanded: cfg.Expanded,
		})
	}
	return out
}
