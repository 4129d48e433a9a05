package browser

import (
	"strconv"
	"strings"

	"github.com/marcus/charview/pkg/browser/mouse"
)

// rowRegionPrefix prefixes list-row hit region IDs; Region.Data carries the
// row's card ID.
const rowRegionPrefix = "row:"

// Decision is the click interceptor's verdict for a list click.
type Decision int

const (
	// DecisionIgnore: the click resolves to nothing actionable.
	DecisionIgnore Decision = iota
	// DecisionPassThrough: let the click do its default work (move the
	// cursor, toggle a mark) without opening anything.
	DecisionPassThrough
	// DecisionIntercept: open the card modal for CardID.
	DecisionIntercept
)

// ClickDecision pairs a Decision with the resolved card ID and row index.
type ClickDecision struct {
	Decision Decision
	CardID   string
	Row      int
}

// decideClick is the pure interception rule for clicks on the card list.
// Marking (bulk-select) mode and ctrl-held clicks pass through so the click
// only moves or toggles the selection; clicks that do not resolve to a card
// are ignored; everything else intercepts and opens the card.
func decideClick(region *mouse.Region, marking, ctrlHeld bool) ClickDecision {
	if region == nil || !strings.HasPrefix(region.ID, rowRegionPrefix) {
		return ClickDecision{Decision: DecisionIgnore, Row: -1}
	}
	cardID, _ := region.Data.(string)
	row := rowIndexFromRegion(region.ID)
	if marking || ctrlHeld {
		return ClickDecision{Decision: DecisionPassThrough, CardID: cardID, Row: row}
	}
	if cardID == "" {
		return ClickDecision{Decision: DecisionIgnore, Row: row}
	}
	return ClickDecision{Decision: DecisionIntercept, CardID: cardID, Row: row}
}

func rowIndexFromRegion(id string) int {
	n, err := strconv.Atoi(id[len(rowRegionPrefix):])
	if err != nil {
		return -1
	}
	return n
}

func rowRegionID(row int) string {
	return rowRegionPrefix + strconv.Itoa(row)
}
