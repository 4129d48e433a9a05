package mouse

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	cases := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 10, 10, true},
		{"bottom-right inside", 29, 19, true},
		{"center", 15, 15, true},
		{"left of rect", 9, 10, false},
		{"right edge exclusive", 30, 10, false},
		{"above rect", 10, 9, false},
		{"bottom edge exclusive", 10, 20, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestHitMapResolvesTopmost(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("list", 0, 0, 100, 100, nil)
	hm.AddRect("row", 0, 4, 100, 1, "card-7")
	hm.AddRect("badge", 90, 4, 6, 1, nil)

	cases := []struct {
		name string
		x, y int
		want string // "" = no hit
	}{
		{"point in base region only", 5, 50, "list"},
		{"row wins over list", 5, 4, "row"},
		{"badge wins over row and list", 92, 4, "badge"},
		{"outside everything", 101, 4, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := hm.Test(tc.x, tc.y)
			switch {
			case tc.want == "" && got != nil:
				t.Errorf("Test(%d, %d) = %q, want no hit", tc.x, tc.y, got.ID)
			case tc.want != "" && (got == nil || got.ID != tc.want):
				t.Errorf("Test(%d, %d) = %v, want %q", tc.x, tc.y, got, tc.want)
			}
		})
	}

	if r := hm.Test(5, 4); r == nil || r.Data == nil || r.Data.(string) != "card-7" {
		t.Error("region data lost on resolve")
	}
}

func TestHitMapClearDropsRegions(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("a", 0, 0, 10, 10, nil)
	hm.AddRect("b", 20, 0, 10, 10, nil)
	if got := len(hm.Regions()); got != 2 {
		t.Fatalf("regions = %d, want 2", got)
	}

	hm.Clear()
	if got := len(hm.Regions()); got != 0 {
		t.Errorf("regions after Clear = %d, want 0", got)
	}
	if hm.Test(5, 5) != nil {
		t.Error("cleared region still hit-testable")
	}
}

func TestHandlerClickSequence(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("row", 10, 10, 30, 1, nil)

	steps := []struct {
		name       string
		x, y       int
		wantRegion string
		wantDouble bool
	}{
		{"first click", 20, 10, "row", false},
		{"second quick click doubles", 20, 10, "row", true},
		{"double click consumes timing", 20, 10, "row", false},
		{"miss hits nothing", 0, 0, "", false},
	}
	for _, step := range steps {
		got := h.HandleClick(step.x, step.y)
		switch {
		case step.wantRegion == "" && got.Region != nil:
			t.Errorf("%s: region = %q, want none", step.name, got.Region.ID)
		case step.wantRegion != "" && (got.Region == nil || got.Region.ID != step.wantRegion):
			t.Errorf("%s: region = %v, want %q", step.name, got.Region, step.wantRegion)
		}
		if got.IsDoubleClick != step.wantDouble {
			t.Errorf("%s: double = %v, want %v", step.name, got.IsDoubleClick, step.wantDouble)
		}
	}
}

func TestHandleMouseEvents(t *testing.T) {
	cases := []struct {
		name       string
		msg        tea.MouseMsg
		wantType   ActionType
		wantRegion string
		wantHover  string
	}{
		{
			name:       "left press inside region clicks",
			msg:        tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			wantType:   ActionClick,
			wantRegion: "row",
		},
		{
			name:     "right press is ignored",
			msg:      tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
			wantType: ActionNone,
		},
		{
			name:       "motion over region hovers",
			msg:        tea.MouseMsg{X: 25, Y: 10, Action: tea.MouseActionMotion},
			wantType:   ActionHover,
			wantRegion: "row",
			wantHover:  "row",
		},
		{
			name:     "motion off region clears hover",
			msg:      tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion},
			wantType: ActionHover,
		},
		{
			name:       "release reports the region under it",
			msg:        tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease},
			wantType:   ActionRelease,
			wantRegion: "row",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler()
			h.HitMap.AddRect("row", 10, 10, 30, 1, nil)

			act := h.HandleMouse(tc.msg)
			if act.Type != tc.wantType {
				t.Errorf("type = %v, want %v", act.Type, tc.wantType)
			}
			switch {
			case tc.wantRegion == "" && act.Region != nil:
				t.Errorf("region = %q, want none", act.Region.ID)
			case tc.wantRegion != "" && (act.Region == nil || act.Region.ID != tc.wantRegion):
				t.Errorf("region = %v, want %q", act.Region, tc.wantRegion)
			}
			if h.HoverID() != tc.wantHover {
				t.Errorf("hover = %q, want %q", h.HoverID(), tc.wantHover)
			}
		})
	}
}
