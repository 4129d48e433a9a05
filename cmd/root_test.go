package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"show":     false,
		"import":   false,
		"settings": false,
		"version":  false,
	}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestOpenStoreFallsBackOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })

	store, err := openStore()
	if err != nil {
		t.Fatalf("openStore returned error for corrupt file: %v", err)
	}
	if store == nil {
		t.Fatal("openStore returned nil store")
	}
	if len(store.Settings().Sections) == 0 {
		t.Error("fallback store has no default sections")
	}
}
