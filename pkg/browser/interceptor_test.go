package browser

import (
	"testing"

	"github.com/marcus/charview/pkg/browser/mouse"
)

func TestDecideClick(t *testing.T) {
	row := &mouse.Region{ID: "row:3", Data: "cv-abc"}

	tests := []struct {
		name     string
		region   *mouse.Region
		marking  bool
		ctrl     bool
		want     Decision
		wantCard string
		wantRow  int
	}{
		{name: "no region", region: nil, want: DecisionIgnore, wantRow: -1},
		{name: "non-row region", region: &mouse.Region{ID: "preview.toggle"}, want: DecisionIgnore, wantRow: -1},
		{name: "plain click intercepts", region: row, want: DecisionIntercept, wantCard: "cv-abc", wantRow: 3},
		{name: "marking passes through", region: row, marking: true, want: DecisionPassThrough, wantCard: "cv-abc", wantRow: 3},
		{name: "ctrl passes through", region: row, ctrl: true, want: DecisionPassThrough, wantCard: "cv-abc", wantRow: 3},
		{name: "row without card id ignored", region: &mouse.Region{ID: "row:0"}, want: DecisionIgnore, wantRow: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decideClick(tt.region, tt.marking, tt.ctrl)
			if got.Decision != tt.want {
				t.Errorf("decision = %v, want %v", got.Decision, tt.want)
			}
			if got.CardID != tt.wantCard {
				t.Errorf("card = %q, want %q", got.CardID, tt.wantCard)
			}
			if got.Row != tt.wantRow {
				t.Errorf("row = %d, want %d", got.Row, tt.wantRow)
			}
		})
	}
}

func TestRowRegionRoundTrip(t *testing.T) {
	for _, row := range []int{0, 7, 42, 1234} {
		id := rowRegionID(row)
		if got := rowIndexFromRegion(id); got != row {
			t.Errorf("round trip %d -> %q -> %d", row, id, got)
		}
	}
	if got := rowIndexFromRegion("row:abc"); got != -1 {
		t.Errorf("malformed row index = %d, want -1", got)
	}
}
