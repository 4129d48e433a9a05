package browser

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/charview/internal/models"
)

// startChat records the card as last-chatted and hands the terminal to the
// configured chat command. "%s" in the command expands to the card ID.
func (m *Model) startChat(card *models.CharacterCard) tea.Cmd {
	cmdline := strings.TrimSpace(m.cfg.Settings().ChatCommand)
	if cmdline == "" {
		return m.setStatus("no chat command configured", true)
	}

	if err := m.lib.TouchLastChat(card.ID); err != nil {
		m.log.Warn().Err(err).Str("card", card.ID).Msg("touch last chat failed")
	}

	parts := strings.Fields(strings.ReplaceAll(cmdline, "%s", card.ID))
	if len(parts) == 0 {
		return m.setStatus("no chat command configured", true)
	}
	proc := exec.Command(parts[0], parts[1:]...)

	cardID := card.ID
	m.log.Info().Str("card", cardID).Str("command", parts[0]).Msg("launching chat")
	return tea.ExecProcess(proc, func(err error) tea.Msg {
		if err != nil {
			err = fmt.Errorf("chat command: %w", err)
		}
		return chatFinishedMsg{cardID: cardID, err: err}
	})
}
