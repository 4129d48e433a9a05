package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/charview/pkg/browser/mouse"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestEscapeAlwaysCloses(t *testing.T) {
	m := New("Test")
	action, _ := m.HandleKey(keyMsg("esc"))
	if action != ActionClose {
		t.Errorf("esc action = %q, want %q", action, ActionClose)
	}
}

func TestTabCyclesFocus(t *testing.T) {
	m := New("Test").AddSection(Buttons(
		Btn(" OK ", "ok"),
		Btn(" Cancel ", "cancel"),
	))
	m.Render(80, 24, nil)

	if got := m.FocusID(); got != "ok" {
		t.Fatalf("initial focus = %q, want ok", got)
	}
	m.HandleKey(keyMsg("tab"))
	if got := m.FocusID(); got != "cancel" {
		t.Errorf("after tab focus = %q, want cancel", got)
	}
	m.HandleKey(keyMsg("tab"))
	if got := m.FocusID(); got != "ok" {
		t.Errorf("after wrap focus = %q, want ok", got)
	}
	m.HandleKey(keyMsg("shift+tab"))
	if got := m.FocusID(); got != "cancel" {
		t.Errorf("after shift+tab focus = %q, want cancel", got)
	}
}

func TestEnterActivatesFocusedButton(t *testing.T) {
	m := New("Test").AddSection(Buttons(Btn(" Save ", "save")))
	m.Render(80, 24, nil)

	action, _ := m.HandleKey(keyMsg("enter"))
	if action != "save" {
		t.Errorf("enter action = %q, want save", action)
	}
}

func TestPrimaryActionOnUnconsumedEnter(t *testing.T) {
	m := New("Test", WithPrimaryAction("submit")).
		AddSection(Text("body text"))
	m.Render(80, 24, nil)

	action, _ := m.HandleKey(keyMsg("enter"))
	if action != "submit" {
		t.Errorf("enter action = %q, want submit", action)
	}
}

func TestDisabledButtonsNotFocusable(t *testing.T) {
	m := New("Test").AddSection(Buttons(
		ButtonDef{Label: " Prev ", Action: "prev", Disabled: true},
		Btn(" Next ", "next"),
	))
	m.Render(80, 24, nil)

	if got := m.FocusID(); got != "next" {
		t.Errorf("focus = %q, want next (disabled skipped)", got)
	}
	m.HandleKey(keyMsg("tab"))
	if got := m.FocusID(); got != "next" {
		t.Errorf("focus after tab = %q, want next (only focusable)", got)
	}
}

func TestBackdropClick(t *testing.T) {
	handler := mouse.NewHandler()

	t.Run("closes by default", func(t *testing.T) {
		m := New("Test").AddSection(Text("hello"))
		m.Render(80, 24, handler)

		region := handler.HitMap.Test(0, 0)
		if region == nil || region.ID != regionBackdrop {
			t.Fatalf("corner region = %+v, want backdrop", region)
		}
		action, _ := m.HandleMouse(mouse.Action{Type: mouse.ActionClick, Region: region})
		if action != ActionClose {
			t.Errorf("backdrop click action = %q, want %q", action, ActionClose)
		}
	})

	t.Run("disabled by option", func(t *testing.T) {
		m := New("Test", WithCloseOnBackdropClick(false)).AddSection(Text("hello"))
		m.Render(80, 24, handler)

		region := handler.HitMap.Test(0, 0)
		action, _ := m.HandleMouse(mouse.Action{Type: mouse.ActionClick, Region: region})
		if action != "" {
			t.Errorf("backdrop click action = %q, want none", action)
		}
	})
}

func TestBodyClickSwallowed(t *testing.T) {
	handler := mouse.NewHandler()
	m := New("Test").AddSection(Text("hello"))
	m.Render(80, 24, handler)

	// Center of screen is inside the modal body.
	region := handler.HitMap.Test(40, 12)
	if region == nil || region.ID != regionBody {
		t.Fatalf("center region = %+v, want body", region)
	}
	action, _ := m.HandleMouse(mouse.Action{Type: mouse.ActionClick, Region: region})
	if action != "" {
		t.Errorf("body click action = %q, want none", action)
	}
}

func TestCloseControl(t *testing.T) {
	handler := mouse.NewHandler()
	m := New("Test").AddSection(Text("hello"))
	m.Render(80, 24, handler)

	var closeRegion *mouse.Region
	for _, r := range handler.HitMap.Regions() {
		if r.ID == regionClose {
			cp := r
			closeRegion = &cp
		}
	}
	if closeRegion == nil {
		t.Fatal("close control region not registered")
	}
	action, _ := m.HandleMouse(mouse.Action{Type: mouse.ActionClick, Region: closeRegion})
	if action != ActionClose {
		t.Errorf("close control action = %q, want %q", action, ActionClose)
	}
}

func TestClickFocusesAndActivates(t *testing.T) {
	m := New("Test").AddSection(Buttons(
		Btn(" OK ", "ok"),
		Btn(" Cancel ", "cancel"),
	))
	m.Render(80, 24, nil)

	action, _ := m.HandleMouse(mouse.Action{
		Type:   mouse.ActionClick,
		Region: &mouse.Region{ID: "cancel"},
	})
	if action != "cancel" {
		t.Errorf("click action = %q, want cancel", action)
	}
	if got := m.FocusID(); got != "cancel" {
		t.Errorf("focus after click = %q, want cancel", got)
	}
}

func TestCollapsible(t *testing.T) {
	expanded := false
	body := func(width int) string { return "the body" }

	m := New("Test").AddSection(Collapsible("desc", "Description", &expanded, body))
	out := m.Render(80, 24, nil)
	if strings.Contains(out, "the body") {
		t.Error("collapsed section rendered its body")
	}
	if !strings.Contains(out, "▸ Description") {
		t.Error("collapsed header glyph missing")
	}

	action, _ := m.HandleKey(keyMsg("enter"))
	if action != ToggleAction("desc") {
		t.Fatalf("enter on header action = %q, want %q", action, ToggleAction("desc"))
	}

	expanded = true
	out = m.Render(80, 24, nil)
	if !strings.Contains(out, "the body") {
		t.Error("expanded section did not render its body")
	}
	if !strings.Contains(out, "▾ Description") {
		t.Error("expanded header glyph missing")
	}
}

func TestListSection(t *testing.T) {
	items := []ListItem{
		{ID: "a", Label: "Alpha"},
		{ID: "b", Label: "Beta"},
		{ID: "c", Label: "Gamma"},
	}
	selected := 0
	m := New("Test").AddSection(List("order", items, &selected,
		WithKeyAction("u", "move-up"),
		WithKeyAction("d", "move-down"),
	))
	m.Render(80, 24, nil)

	if got := m.FocusID(); got != "order" {
		t.Fatalf("focus = %q, want order (list is a single focusable)", got)
	}

	m.HandleKey(keyMsg("down"))
	if selected != 1 {
		t.Errorf("selected = %d, want 1", selected)
	}

	action, _ := m.HandleKey(keyMsg("enter"))
	if action != "b" {
		t.Errorf("enter action = %q, want b", action)
	}

	action, _ = m.HandleKey(keyMsg("u"))
	if action != "move-up:b" {
		t.Errorf("key action = %q, want move-up:b", action)
	}

	m.HandleKey(keyMsg("up"))
	m.HandleKey(keyMsg("up"))
	if selected != 0 {
		t.Errorf("selected = %d, want 0 (clamped)", selected)
	}
}

func TestFocusablesRegisteredAsRegions(t *testing.T) {
	handler := mouse.NewHandler()
	m := New("Test").AddSection(Buttons(Btn(" OK ", "ok")))
	m.Render(80, 24, handler)

	found := false
	for _, r := range handler.HitMap.Regions() {
		if r.ID == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("button hit region not registered")
	}
}

func TestScrollClampsAndSkipsHiddenRegions(t *testing.T) {
	handler := mouse.NewHandler()
	m := New("Test", WithHeightPct(50)).
		AddSection(RawText(strings.Repeat("line\n", 30) + "line")).
		AddSection(Buttons(Btn(" OK ", "ok")))
	m.Render(80, 24, handler)

	if m.maxScroll == 0 {
		t.Fatal("expected overflowing content to produce a scroll range")
	}
	for _, r := range handler.HitMap.Regions() {
		if r.ID == "ok" {
			t.Error("off-screen button registered a hit region")
		}
	}

	// Scrolling past the end clamps to the last page.
	m.ScrollBy(1000)
	m.Render(80, 24, handler)
	if m.scroll != m.maxScroll {
		t.Errorf("scroll = %d, want clamp at %d", m.scroll, m.maxScroll)
	}
	found := false
	for _, r := range handler.HitMap.Regions() {
		if r.ID == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("button not registered after scrolling it into view")
	}

	m.ScrollBy(-1000)
	if m.scroll != 0 {
		t.Errorf("scroll = %d, want 0", m.scroll)
	}

	m.HandleKey(tea.KeyMsg{Type: tea.KeyPgDown})
	if m.scroll != scrollStep {
		t.Errorf("scroll after pgdown = %d, want %d", m.scroll, scrollStep)
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyPgUp})
	if m.scroll != 0 {
		t.Errorf("scroll after pgup = %d, want 0", m.scroll)
	}
}
