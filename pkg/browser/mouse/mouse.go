// Package mouse provides hit-region tracking for terminal mouse support.
// Views register rectangles as they render; Update resolves mouse events
// against them, so click routing never drifts from what was drawn.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Rect is a screen-space rectangle. Width and height are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is one registered hit area.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions registered for the current frame. Later
// registrations win on overlap, so callers add back-to-front.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Clear drops all regions. Called at the start of each render pass.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// Regions returns the registered regions.
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Test returns the topmost region containing the point, or nil.
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// doubleClickWindow is the maximum delay between clicks on the same region
// for the second to count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// ActionType classifies a resolved mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionRelease
)

// Action is the result of resolving one mouse event.
type Action struct {
	Type          ActionType
	Region        *Region // nil when nothing was hit
	X, Y          int
	IsDoubleClick bool
}

// ClickResult is returned by HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler resolves mouse events against a HitMap and tracks click timing
// and hover state.
type Handler struct {
	HitMap *HitMap

	hoverID       string
	lastClickTime time.Time
	lastClickID   string
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HoverID returns the region currently under the cursor, or "".
func (h *Handler) HoverID() string {
	return h.hoverID
}

// HandleClick resolves a press at (x, y) and tracks double clicks. A double
// click consumes the timing state so a third click starts over.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	isDouble := region.ID == h.lastClickID && time.Since(h.lastClickTime) < doubleClickWindow
	if isDouble {
		h.lastClickID = ""
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = time.Now()
	}
	return ClickResult{Region: region, IsDoubleClick: isDouble}
}

// HandleMouse resolves a bubbletea mouse event into an Action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
		}
		result := h.HandleClick(msg.X, msg.Y)
		return Action{
			Type:          ActionClick,
			Region:        result.Region,
			X:             msg.X,
			Y:             msg.Y,
			IsDoubleClick: result.IsDoubleClick,
		}

	case tea.MouseActionMotion:
		region := h.HitMap.Test(msg.X, msg.Y)
		if region != nil {
			h.hoverID = region.ID
		} else {
			h.hoverID = ""
		}
		return Action{Type: ActionHover, Region: region, X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		return Action{Type: ActionRelease, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}
	}

	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
