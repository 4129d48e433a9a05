package models

import (
	"strings"
	"time"
)

// CharacterCard is the detail record for one library entry. Every display
// field is optional; rendering code must tolerate any of them being empty.
// JSON tags follow the card-file field names used by common card exporters.
type CharacterCard struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Avatar             string    `json:"avatar"`
	Description        string    `json:"description"`
	Scenario           string    `json:"scenario"`
	Personality        string    `json:"personality"`
	CreatorNotes       string    `json:"creator_notes"`
	ExampleMessages    string    `json:"mes_example"`
	FirstMessage       string    `json:"first_mes"`
	AlternateGreetings []string  `json:"alternate_greetings,omitempty"`
	ImportedAt         time.Time `json:"imported_at,omitempty"`
	ContentHash        string    `json:"content_hash,omitempty"`
}

// DisplayName returns the card's name, or a placeholder when unset.
func (c *CharacterCard) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return "(unnamed)"
	}
	return c.Name
}

// Greetings returns the card's opening messages in display order: the first
// message followed by alternates, each trimmed, with empty entries dropped.
func (c *CharacterCard) Greetings() []string {
	var out []string
	if s := strings.TrimSpace(c.FirstMessage); s != "" {
		out = append(out, s)
	}
	for _, alt := range c.AlternateGreetings {
		if s := strings.TrimSpace(alt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
