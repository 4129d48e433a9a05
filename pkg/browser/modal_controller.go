package browser

import (
	"github.com/marcus/charview/internal/models"
	"github.com/marcus/charview/pkg/browser/modal"
)

// modalInstance is the state of one open card modal: the fetched card (or
// loading/error state), the per-instance section expansion, the greeting
// navigator, and the built UI. Expansion and greeting index never outlive
// the instance.
type modalInstance struct {
	cardID     string
	generation uint64
	loading    bool
	err        error
	card       *models.CharacterCard
	greetings  *greetingNav
	expanded   map[models.SectionKind]*bool
	ui         *modal.Modal
}

// modalController enforces the at-most-one-modal lifecycle. Opening always
// closes the prior instance first and bumps the generation counter, so a
// detail fetch issued for a superseded open attempt can be recognized as
// stale and discarded.
type modalController struct {
	active     *modalInstance
	generation uint64
}

// open closes any prior instance and returns a fresh loading instance
// tagged with the new current generation.
func (c *modalController) open(cardID string) *modalInstance {
	c.close()
	c.generation++
	c.active = &modalInstance{
		cardID:     cardID,
		generation: c.generation,
		loading:    true,
	}
	return c.active
}

// close tears down the active instance. Safe to call when nothing is open;
// repeated calls are no-ops.
func (c *modalController) close() bool {
	if c.active == nil {
		return false
	}
	c.active = nil
	return true
}

// activeModal returns the open instance, or nil.
func (c *modalController) activeModal() *modalInstance {
	return c.active
}

// isOpen reports whether a modal instance is live.
func (c *modalController) isOpen() bool {
	return c.active != nil
}

// resolve applies a fetch result to the instance that requested it. It
// returns (nil, false) when the result is stale: the modal was closed, or a
// newer open attempt superseded the generation that issued the fetch.
func (c *modalController) resolve(generation uint64, card *models.CharacterCard, err error) (*modalInstance, bool) {
	if c.active == nil || c.active.generation != generation {
		return nil, false
	}
	c.active.loading = false
	c.active.card = card
	c.active.err = err
	return c.active, true
}
