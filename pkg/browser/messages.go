package browser

import "github.com/marcus/charview/internal/models"

// cardsLoadedMsg carries the result of a library list query.
type cardsLoadedMsg struct {
	cards []models.CharacterCard
	err   error
}

// cardDetailsMsg carries the result of a detail fetch, tagged with the
// open-attempt generation that issued it. Results whose generation is no
// longer current are discarded.
type cardDetailsMsg struct {
	generation uint64
	card       *models.CharacterCard
	err        error
}

// libraryChangedMsg signals that the watched import directory changed.
type libraryChangedMsg struct{}

// chatFinishedMsg reports the outcome of a launched chat command.
type chatFinishedMsg struct {
	cardID string
	err    error
}

// statusExpiredMsg clears the status line when still showing seq.
type statusExpiredMsg struct {
	seq int
}
