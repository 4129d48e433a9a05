package models

import "sort"

// SectionKind identifies one collapsible block in the card modal.
type SectionKind string

const (
	SectionDescription     SectionKind = "description"
	SectionFirstMessage    SectionKind = "firstMessage"
	SectionScenario        SectionKind = "scenario"
	SectionPersonality     SectionKind = "personality"
	SectionCreatorNotes    SectionKind = "creatorNotes"
	SectionExampleMessages SectionKind = "exampleMessages"
)

// SectionKinds is the canonical declaration order. It is the tiebreak when
// two sections share an Order value, so display order stays stable.
var SectionKinds = []SectionKind{
	SectionDescription,
	SectionFirstMessage,
	SectionScenario,
	SectionPersonality,
	SectionCreatorNotes,
	SectionExampleMessages,
}

// IsValidSectionKind reports whether k is a recognized section kind.
func IsValidSectionKind(k SectionKind) bool {
	for _, known := range SectionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// SectionLabel returns the display label for a section kind.
func SectionLabel(k SectionKind) string {
	switch k {
	case SectionDescription:
		return "Description"
	case SectionFirstMessage:
		return "First Message"
	case SectionScenario:
		return "Scenario"
	case SectionPersonality:
		return "Personality"
	case SectionCreatorNotes:
		return "Creator Notes"
	case SectionExampleMessages:
		return "Example Messages"
	default:
		return string(k)
	}
}

// SectionConfig controls one section's placement and default state.
type SectionConfig struct {
	Order    int  `json:"order"`
	Visible  bool `json:"visible"`
	Expanded bool `json:"expanded"`
}

// GreetingMode selects how multiple opening messages are presented.
type GreetingMode string

const (
	GreetingModeSwipe     GreetingMode = "swipe"
	GreetingModeAccordion GreetingMode = "accordion"
)

// ColorSetting is one themeable color: either the terminal theme default or
// an explicit override. The fallback value is kept even while UseTheme is
// true so toggling back does not lose the custom choice.
type ColorSetting struct {
	UseTheme bool   `json:"use_theme"`
	Custom   string `json:"custom"`
}

// Settings is the full persisted configuration for the browser.
type Settings struct {
	// Modal geometry, as percentages of the terminal where noted.
	ModalWidthPct   int    `json:"modal_width_pct"`
	ModalHeightPct  int    `json:"modal_height_pct"`
	ModalPadding    int    `json:"modal_padding"`
	ModalBorder     string `json:"modal_border"` // "rounded", "normal", "double"
	ContentWidthMax int    `json:"content_width_max"`
	AvatarMaxLines  int    `json:"avatar_max_lines"`

	// Overlay appearance.
	OverlayOpacity    int `json:"overlay_opacity"`    // 0-100
	BackgroundOpacity int `json:"background_opacity"` // 0-100
	DimStrength       int `json:"dim_strength"`       // 0-100, backdrop dimming

	// Responsive breakpoint: below this many columns the preview pane
	// collapses and the modal goes near-fullscreen.
	BreakpointCols int `json:"breakpoint_cols"`

	// Colors.
	FontColor            ColorSetting `json:"font_color"`
	BackgroundColor      ColorSetting `json:"background_color"`
	PrimaryButtonColor   ColorSetting `json:"primary_button_color"`
	SecondaryButtonColor ColorSetting `json:"secondary_button_color"`

	// Content behavior.
	GreetingMode GreetingMode                  `json:"greeting_mode"`
	Sections     map[SectionKind]SectionConfig `json:"sections"`

	// Host integration.
	ChatCommand string `json:"chat_command"` // %s is replaced with the card ID
	GalleryURL  string `json:"gallery_url"`  // detail-fetch endpoint, empty = local only
	ImportDir   string `json:"import_dir"`
}

// DefaultSettings returns a fresh deep copy of the hard-coded defaults.
func DefaultSettings() Settings {
	return Settings{
		ModalWidthPct:     80,
		ModalHeightPct:    80,
		ModalPadding:      1,
		ModalBorder:       "rounded",
		ContentWidthMax:   100,
		AvatarMaxLines:    8,
		OverlayOpacity:    100,
		BackgroundOpacity: 100,
		DimStrength:       40,
		BreakpointCols:    100,
		FontColor:         ColorSetting{UseTheme: true, Custom: "252"},
		BackgroundColor:   ColorSetting{UseTheme: true, Custom: "235"},
		PrimaryButtonColor: ColorSetting{
			UseTheme: true, Custom: "212",
		},
		SecondaryButtonColor: ColorSetting{
			UseTheme: true, Custom: "238",
		},
		GreetingMode: GreetingModeSwipe,
		Sections: map[SectionKind]SectionConfig{
			SectionDescription:     {Order: 0, Visible: true, Expanded: true},
			SectionFirstMessage:    {Order: 1, Visible: true, Expanded: true},
			SectionScenario:        {Order: 2, Visible: true, Expanded: false},
			SectionPersonality:     {Order: 3, Visible: true, Expanded: false},
			SectionCreatorNotes:    {Order: 4, Visible: true, Expanded: false},
			SectionExampleMessages: {Order: 5, Visible: true, Expanded: false},
		},
		ChatCommand: "",
		GalleryURL:  "",
		ImportDir:   "",
	}
}

// canonicalIndex returns the tiebreak rank of a kind, or a large value for
// unknown kinds so they sort after recognized ones.
func canonicalIndex(k SectionKind) int {
	for i, known := range SectionKinds {
		if k == known {
			return i
		}
	}
	return len(SectionKinds)
}

// OrderedSections returns the recognized section kinds sorted by ascending
// Order, ties broken by canonical declaration order. Unknown kinds present in
// the map are dropped. Kinds missing from the map are dropped too; the
// settings loader backfills them, so this only matters for hand-built maps.
func (s *Settings) OrderedSections() []SectionKind {
	kinds := make([]SectionKind, 0, len(s.Sections))
	for k := range s.Sections {
		if IsValidSectionKind(k) {
			kinds = append(kinds, k)
		}
	}
	sort.SliceStable(kinds, func(i, j int) bool {
		oi, oj := s.Sections[kinds[i]].Order, s.Sections[kinds[j]].Order
		if oi != oj {
			return oi < oj
		}
		return canonicalIndex(kinds[i]) < canonicalIndex(kinds[j])
	})
	return kinds
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	out := s
	out.Sections = make(map[SectionKind]SectionConfig, len(s.Sections))
	for k, v := range s.Sections {
		out.Sections[k] = v
	}
	return out
}
