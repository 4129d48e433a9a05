package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/charview/internal/models"
	"github.com/marcus/charview/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show [card-id]",
	Short: "Display a card's full details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer lib.Close()

		card, err := lib.GetCard(args[0])
		if err != nil {
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				output.JSONError("not_found", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(card)
		}

		fmt.Println(renderCardText(card, terminalWidth()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Machine-readable JSON")
}

// terminalWidth reports the stdout width, or a sane default when stdout is
// not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 120 {
		return 120
	}
	return w
}

func fencedBlock(s string) string {
	return "```text\n" + s + "\n```\n\n"
}

func renderCardText(card *models.CharacterCard, width int) string {
	var b strings.Builder
	b.WriteString("# " + card.DisplayName() + "\n\n")
	if card.Description != "" {
		b.WriteString("## Description\n\n" + card.Description + "\n\n")
	}
	for i, greeting := range card.Greetings() {
		if i == 0 {
			b.WriteString("## First Message\n\n")
		} else {
			b.WriteString(fmt.Sprintf("## Alternate Greeting %d\n\n", i))
		}
		b.WriteString(greeting + "\n\n")
	}
	// Literal fields are fenced so markdown syntax in them stays verbatim,
	// matching the browser's literal sections.
	if card.Scenario != "" {
		b.WriteString("## Scenario\n\n" + fencedBlock(card.Scenario))
	}
	if card.Personality != "" {
		b.WriteString("## Personality\n\n" + fencedBlock(card.Personality))
	}
	if card.CreatorNotes != "" {
		b.WriteString("## Creator Notes\n\n" + fencedBlock(card.CreatorNotes))
	}
	if card.ExampleMessages != "" {
		b.WriteString("## Example Messages\n\n" + fencedBlock(card.ExampleMessages))
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return b.String()
	}
	out, err := tr.Render(b.String())
	if err != nil {
		return b.String()
	}
	return out
}
