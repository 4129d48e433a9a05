package models

import (
	"reflect"
	"testing"
)

func TestIsValidSectionKind(t *testing.T) {
	for _, k := range SectionKinds {
		if !IsValidSectionKind(k) {
			t.Errorf("Expected %q to be a valid section kind", k)
		}
	}

	invalid := []SectionKind{"", "avatar", "firstmessage", "notes"}
	for _, k := range invalid {
		if IsValidSectionKind(k) {
			t.Errorf("Expected %q to be invalid", k)
		}
	}
}

func TestDefaultSettingsCoversAllSections(t *testing.T) {
	s := DefaultSettings()
	for _, k := range SectionKinds {
		if _, ok := s.Sections[k]; !ok {
			t.Errorf("DefaultSettings missing section config for %q", k)
		}
	}
	if len(s.Sections) != len(SectionKinds) {
		t.Errorf("DefaultSettings has %d section configs, want %d", len(s.Sections), len(SectionKinds))
	}
}

func TestOrderedSections(t *testing.T) {
	t.Run("ascending order", func(t *testing.T) {
		s := DefaultSettings()
		got := s.OrderedSections()
		want := []SectionKind{
			SectionDescription,
			SectionFirstMessage,
			SectionScenario,
			SectionPersonality,
			SectionCreatorNotes,
			SectionExampleMessages,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("OrderedSections = %v, want %v", got, want)
		}
	})

	t.Run("ties broken by declaration order", func(t *testing.T) {
		s := DefaultSettings()
		// Give everything the same order value; declaration order must win.
		for k, cfg := range s.Sections {
			cfg.Order = 7
			s.Sections[k] = cfg
		}
		got := s.OrderedSections()
		if !reflect.DeepEqual(got, SectionKinds) {
			t.Errorf("tied OrderedSections = %v, want %v", got, SectionKinds)
		}
	})

	t.Run("unknown kinds dropped", func(t *testing.T) {
		s := DefaultSettings()
		s.Sections["talkativeness"] = SectionConfig{Order: 0, Visible: true}
		got := s.OrderedSections()
		for _, k := range got {
			if k == "talkativeness" {
				t.Fatal("unknown kind survived OrderedSections")
			}
		}
		if len(got) != len(SectionKinds) {
			t.Errorf("got %d kinds, want %d", len(got), len(SectionKinds))
		}
	})
}

func TestGreetings(t *testing.T) {
	cases := []struct {
		name string
		card CharacterCard
		want []string
	}{
		{
			name: "primary plus alternates, empties dropped",
			card: CharacterCard{
				FirstMessage:       "Hello!",
				AlternateGreetings: []string{"Hi there!", "", "   "},
			},
			want: []string{"Hello!", "Hi there!"},
		},
		{
			name: "no primary, alternates only",
			card: CharacterCard{AlternateGreetings: []string{" Hey. "}},
			want: []string{"Hey."},
		},
		{
			name: "all empty",
			card: CharacterCard{FirstMessage: "  \n "},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.card.Greetings()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Greetings() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSettingsClone(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()

	cfg := c.Sections[SectionScenario]
	cfg.Order = 99
	c.Sections[SectionScenario] = cfg

	if s.Sections[SectionScenario].Order == 99 {
		t.Error("Clone shares the sections map with the original")
	}
}

func TestDisplayName(t *testing.T) {
	c := CharacterCard{Name: "  "}
	if got := c.DisplayName(); got != "(unnamed)" {
		t.Errorf("DisplayName = %q, want placeholder", got)
	}
	c.Name = "Aria"
	if got := c.DisplayName(); got != "Aria" {
		t.Errorf("DisplayName = %q, want %q", got, "Aria")
	}
}
