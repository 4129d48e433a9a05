package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/charview/internal/models"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestUpsertAndGetCard(t *testing.T) {
	lib := openTestLibrary(t)

	card := &models.CharacterCard{
		ID:                 "cv-abc123",
		Name:               "Aria",
		Avatar:             "aria.png",
		Description:        "A wanderer.",
		FirstMessage:       "Hello!",
		AlternateGreetings: []string{"Hi there!", ""},
		ContentHash:        "deadbeef",
	}
	if err := lib.UpsertCard(card); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}

	got, err := lib.GetCard("cv-abc123")
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if got.Name != "Aria" || got.Description != "A wanderer." {
		t.Errorf("GetCard returned %+v", got)
	}
	if len(got.AlternateGreetings) != 2 {
		t.Errorf("AlternateGreetings: got %d entries, want 2 (raw, unfiltered)", len(got.AlternateGreetings))
	}
	if got.ImportedAt.IsZero() {
		t.Error("ImportedAt not stamped on insert")
	}
}

func TestGetCardMissing(t *testing.T) {
	lib := openTestLibrary(t)
	if _, err := lib.GetCard("cv-nope"); err == nil {
		t.Error("expected error for unknown card")
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	lib := openTestLibrary(t)

	card := &models.CharacterCard{ID: "cv-1", Name: "Old"}
	if err := lib.UpsertCard(card); err != nil {
		t.Fatalf("UpsertCard failed: %v", err)
	}
	card.Name = "New"
	if err := lib.UpsertCard(card); err != nil {
		t.Fatalf("second UpsertCard failed: %v", err)
	}

	got, err := lib.GetCard("cv-1")
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("Name: got %q, want %q", got.Name, "New")
	}

	cards, err := lib.ListCards()
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if len(cards) != 1 {
		t.Errorf("ListCards: got %d cards, want 1", len(cards))
	}
}

func TestListCardsSortedByName(t *testing.T) {
	lib := openTestLibrary(t)

	for _, c := range []models.CharacterCard{
		{ID: "cv-3", Name: "zoe"},
		{ID: "cv-1", Name: "Aria"},
		{ID: "cv-2", Name: "Mika"},
	} {
		if err := lib.UpsertCard(&c); err != nil {
			t.Fatalf("UpsertCard failed: %v", err)
		}
	}

	cards, err := lib.ListCards()
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	var names []string
	for _, c := range cards {
		names = append(names, c.Name)
	}
	want := []string{"Aria", "Mika", "zoe"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ListCards order = %v, want %v", names, want)
		}
	}
}

func TestParseCardFile(t *testing.T) {
	t.Run("flat format", func(t *testing.T) {
		card, err := ParseCardFile([]byte(`{"name":"Aria","first_mes":"Hello!"}`))
		if err != nil {
			t.Fatalf("ParseCardFile failed: %v", err)
		}
		if card.Name != "Aria" || card.FirstMessage != "Hello!" {
			t.Errorf("parsed %+v", card)
		}
	})

	t.Run("v2 wrapper", func(t *testing.T) {
		raw := `{"spec":"chara_card_v2","spec_version":"2.0","data":{"name":"Mika","alternate_greetings":["Yo."]}}`
		card, err := ParseCardFile([]byte(raw))
		if err != nil {
			t.Fatalf("ParseCardFile failed: %v", err)
		}
		if card.Name != "Mika" || len(card.AlternateGreetings) != 1 {
			t.Errorf("parsed %+v", card)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseCardFile([]byte(`[1,2,3]`)); err == nil {
			t.Error("expected error for non-object card file")
		}
	})
}

func TestImportDir(t *testing.T) {
	lib := openTestLibrary(t)
	dir := t.TempDir()

	files := map[string]string{
		"aria.json":   `{"name":"Aria","description":"A wanderer.","first_mes":"Hello!"}`,
		"mika.json":   `{"spec":"chara_card_v2","data":{"name":"Mika"}}`,
		"broken.json": `{not json`,
		"notes.txt":   `ignore me`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("setup: write %s failed: %v", name, err)
		}
	}

	result, err := lib.ImportDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDir failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported: got %d, want 2", result.Imported)
	}
	if len(result.Failed) != 1 {
		t.Errorf("Failed: got %v, want one entry", result.Failed)
	}

	// Re-importing the same directory skips everything by content hash.
	again, err := lib.ImportDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("second ImportDir failed: %v", err)
	}
	if again.Imported != 0 {
		t.Errorf("re-import Imported: got %d, want 0", again.Imported)
	}
	if again.Skipped != 2 {
		t.Errorf("re-import Skipped: got %d, want 2", again.Skipped)
	}

	cards, err := lib.ListCards()
	if err != nil {
		t.Fatalf("ListCards failed: %v", err)
	}
	if len(cards) != 2 {
		t.Errorf("library has %d cards, want 2", len(cards))
	}
	for _, c := range cards {
		if c.ID == "" || c.ContentHash == "" {
			t.Errorf("imported card missing id or hash: %+v", c)
		}
	}
}

func TestNormalizeCardID(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"abc123":      "cv-abc123",
		"cv-abc123":   "cv-abc123",
		"cv-cv-weird": "cv-cv-weird",
	}
	for in, want := range cases {
		if got := NormalizeCardID(in); got != want {
			t.Errorf("NormalizeCardID(%q) = %q, want %q", in, got, want)
		}
	}
}
