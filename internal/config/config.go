package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/marcus/charview/internal/models"
)

const settingsFile = "settings.json"

// saveDelay coalesces bursts of mutations into one disk write.
const saveDelay = 200 * time.Millisecond

// Store owns the live settings and their persistence. All mutation goes
// through Store methods; every mutation schedules a debounced save.
type Store struct {
	mu       sync.Mutex
	path     string
	settings models.Settings

	// extras holds persisted top-level keys we do not recognize. They are
	// written back verbatim on save so older or newer versions of the tool
	// can share one settings file.
	extras map[string]json.RawMessage

	saveTimer *time.Timer
}

// DefaultPath returns the settings file path under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "charview", settingsFile), nil
}

// Defaults returns a store of pure defaults bound to path, for callers that
// must keep going when the persisted file cannot be parsed.
func Defaults(path string) *Store {
	return &Store{
		path:     path,
		settings: models.DefaultSettings(),
		extras:   make(map[string]json.RawMessage),
	}
}

// Load reads settings from path. A missing file yields pure defaults. Known
// keys absent from the file are backfilled from defaults, including section
// configs for kinds introduced after the file was written. Unknown keys are
// retained and survive the next save.
func Load(path string) (*Store, error) {
	s := &Store{
		path:     path,
		settings: models.DefaultSettings(),
		extras:   make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	// Unmarshal over the defaults: keys present in the file override, keys
	// absent keep their default value.
	if err := json.Unmarshal(data, &s.settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	// Backfill section configs for kinds the persisted file predates.
	// Unrecognized kinds stay in the map; readers skip them.
	if s.settings.Sections == nil {
		s.settings.Sections = make(map[models.SectionKind]models.SectionConfig)
	}
	for k, cfg := range models.DefaultSettings().Sections {
		if _, ok := s.settings.Sections[k]; !ok {
			s.settings.Sections[k] = cfg
		}
	}

	// Collect unknown top-level keys.
	known := knownKeys()
	for key, val := range raw {
		if !known[key] {
			s.extras[key] = val
		}
	}

	return s, nil
}

// knownKeys returns the JSON keys produced by marshaling Settings.
func knownKeys() map[string]bool {
	data, _ := json.Marshal(models.DefaultSettings())
	var m map[string]json.RawMessage
	_ = json.Unmarshal(data, &m)
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

// Settings returns a deep copy of the current settings.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Replace swaps in a whole new settings value (settings form submit) and
// schedules a save.
func (s *Store) Replace(next models.Settings) {
	s.mu.Lock()
	s.settings = next.Clone()
	s.mu.Unlock()
	s.Save()
}

// Reset restores hard-coded defaults and schedules a save. Unknown persisted
// keys are kept; reset only covers keys this version owns.
func (s *Store) Reset() {
	s.mu.Lock()
	s.settings = models.DefaultSettings()
	s.mu.Unlock()
	s.Save()
}

// Direction of a section reorder.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Reorder swaps the Order value of kind with its neighbor in the stable
// display order. No-op when kind is already at the boundary or unknown.
func (s *Store) Reorder(kind models.SectionKind, dir Direction) {
	s.mu.Lock()
	ordered := s.settings.OrderedSections()
	idx := -1
	for i, k := range ordered {
		if k == kind {
			idx = i
			break
		}
	}
	other := idx + int(dir)
	if idx < 0 || other < 0 || other >= len(ordered) {
		s.mu.Unlock()
		return
	}

	a, b := ordered[idx], ordered[other]
	ca, cb := s.settings.Sections[a], s.settings.Sections[b]
	ca.Order, cb.Order = cb.Order, ca.Order
	s.settings.Sections[a] = ca
	s.settings.Sections[b] = cb
	s.mu.Unlock()
	s.Save()
}

// ToggleVisibility flips a section's visibility and schedules a save.
func (s *Store) ToggleVisibility(kind models.SectionKind) {
	s.mu.Lock()
	if cfg, ok := s.settings.Sections[kind]; ok {
		cfg.Visible = !cfg.Visible
		s.settings.Sections[kind] = cfg
	}
	s.mu.Unlock()
	s.Save()
}

// SetExpanded sets a section's expanded-by-default flag and schedules a save.
func (s *Store) SetExpanded(kind models.SectionKind, expanded bool) {
	s.mu.Lock()
	if cfg, ok := s.settings.Sections[kind]; ok {
		cfg.Expanded = expanded
		s.settings.Sections[kind] = cfg
	}
	s.mu.Unlock()
	s.Save()
}

// Save schedules a debounced write. Callers never wait on it; Flush forces
// the write for shutdown paths and tests.
func (s *Store) Save() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(saveDelay, func() {
		_ = s.Flush()
	})
}

// Flush writes the settings file now, merging back any unknown keys that
// were present at load time.
func (s *Store) Flush() error {
	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	settings := s.settings.Clone()
	extras := make(map[string]json.RawMessage, len(s.extras))
	for k, v := range s.extras {
		extras[k] = v
	}
	path := s.path
	s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("merge settings: %w", err)
	}
	for k, v := range extras {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}
