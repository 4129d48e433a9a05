package cmd

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/charview/internal/models"
)

func TestRenderCardText(t *testing.T) {
	card := &models.CharacterCard{
		Name:               "Aria",
		Description:        "A wandering bard.",
		FirstMessage:       "Well met.",
		AlternateGreetings: []string{"You again?"},
		ExampleMessages:    "<START>\n{{user}}: hello",
	}

	out := ansi.Strip(renderCardText(card, 80))
	for _, want := range []string{"Aria", "A wandering bard.", "Well met.", "You again?", "<START>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderCardTextKeepsLiteralFieldsVerbatim(t *testing.T) {
	card := &models.CharacterCard{
		Name:        "Aria",
		Scenario:    "*wink* at the tavern",
		Personality: "# stubborn, not a heading",
	}

	out := ansi.Strip(renderCardText(card, 80))
	if !strings.Contains(out, "*wink*") {
		t.Errorf("scenario emphasis markers were interpreted: %q", out)
	}
	if !strings.Contains(out, "# stubborn") {
		t.Errorf("personality heading marker was interpreted: %q", out)
	}
}

func TestRenderCardTextEmptyFields(t *testing.T) {
	out := ansi.Strip(renderCardText(&models.CharacterCard{}, 80))
	if strings.Contains(out, "Scenario") || strings.Contains(out, "Description") {
		t.Error("empty fields produced headings")
	}
	if !strings.Contains(out, "(unnamed)") {
		t.Error("placeholder name missing")
	}
}
