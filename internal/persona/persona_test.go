package persona

import (
	"strings"
	"testing"

	"github.com/ficachi/omeyo-goal-app/internal/footprint"
)

func TestResolveBaseTrait(t *testing.T) {
	tests := []struct {
		name    string
		profile *TraitProfile
		want    Trait
	}{
		{
			name:    "nil profile",
			profile: nil,
			want:    TraitDefault,
		},
		{
			name:    "high openness",
			profile: &TraitProfile{Openness: 85, Conscientiousness: 45, Extraversion: 60, Agreeableness: 70, Neuroticism: 30},
			want:    TraitOpenness,
		},
		{
			name:    "high conscientiousness",
			profile: &TraitProfile{Openness: 40, Conscientiousness: 90, Extraversion: 50, Agreeableness: 65, Neuroticism: 35},
			want:    TraitConscientiousness,
		},
		{
			name:    "high extraversion",
			profile: &TraitProfile{Openness: 60, Conscientiousness: 55, Extraversion: 88, Agreeableness: 75, Neuroticism: 25},
			want:    TraitExtraversion,
		},
		{
			name:    "high agreeableness",
			profile: &TraitProfile{Openness: 55, Conscientiousness: 60, Extraversion: 65, Agreeableness: 92, Neuroticism: 20},
			want:    TraitAgreeableness,
		},
		{
			name:    "high neuroticism",
			profile: &TraitProfile{Openness: 45, Conscientiousness: 50, Extraversion: 40, Agreeableness: 60, Neuroticism: 85},
			want:    TraitNeuroticism,
		},
		{
			name:    "balanced profile below threshold",
			profile: &TraitProfile{Openness: 55, Conscientiousness: 52, Extraversion: 58, Agreeableness: 54, Neuroticism: 51},
			want:    TraitDefault,
		},
		{
			name:    "all scores zero",
			profile: &TraitProfile{},
			want:    TraitDefault,
		},
		{
			name:    "tie resolves in evaluation order",
			profile: &TraitProfile{Openness: 70, Conscientiousness: 70, Extraversion: 70, Agreeableness: 70, Neuroticism: 70},
			want:    TraitOpenness,
		},
		{
			name:    "later tie resolves to earlier trait",
			profile: &TraitProfile{Openness: 10, Conscientiousness: 20, Extraversion: 80, Agreeableness: 80, Neuroticism: 30},
			want:    TraitExtraversion,
		},
		{
			name:    "exactly at threshold",
			profile: &TraitProfile{Extraversion: 60},
			want:    TraitExtraversion,
		},
		{
			name:    "just below threshold",
			profile: &TraitProfile{Extraversion: 59.9},
			want:    TraitDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBaseTrait(tt.profile)
			if got != tt.want {
				t.Errorf("ResolveBaseTrait() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTraitProfile(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *TraitProfile
	}{
		{
			name: "numeric scores",
			raw:  `{"openness": 85, "conscientiousness": 45, "extraversion": 60, "agreeableness": 70, "neuroticism": 30}`,
			want: &TraitProfile{Openness: 85, Conscientiousness: 45, Extraversion: 60, Agreeableness: 70, Neuroticism: 30},
		},
		{
			name: "string scores coerce",
			raw:  `{"openness": "85", "conscientiousness": "45.5"}`,
			want: &TraitProfile{Openness: 85, Conscientiousness: 45.5},
		},
		{
			name: "non-numeric strings count as zero",
			raw:  `{"openness": "very high", "extraversion": 72}`,
			want: &TraitProfile{Extraversion: 72},
		},
		{
			name: "null fields count as zero",
			raw:  `{"openness": null, "neuroticism": 40}`,
			want: &TraitProfile{Neuroticism: 40},
		},
		{
			name: "empty document",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace document",
			raw:  "   ",
			want: nil,
		},
		{
			name: "invalid JSON",
			raw:  "{not json",
			want: nil,
		},
		{
			name: "JSON array is not a profile",
			raw:  `[1, 2, 3]`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTraitProfile(tt.raw)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseTraitProfile() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseTraitProfile() = nil, want profile")
			}
			if *got != *tt.want {
				t.Errorf("ParseTraitProfile() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestBuildSystemPrompt_ContainsSentinelContract(t *testing.T) {
	profiles := []*TraitProfile{
		nil,
		{Openness: 90},
		{Neuroticism: 75},
		{Openness: 10, Conscientiousness: 10},
	}

	for _, p := range profiles {
		prompt := BuildSystemPrompt(p, nil)
		if prompt == "" {
			t.Fatal("BuildSystemPrompt returned empty prompt")
		}
		if !strings.Contains(prompt, footprint.OpenMarker) {
			t.Errorf("prompt missing %s marker", footprint.OpenMarker)
		}
		if !strings.Contains(prompt, footprint.CloseMarker) {
			t.Errorf("prompt missing %s marker", footprint.CloseMarker)
		}
	}
}

func TestBuildSystemPrompt_TraitTemplateSelection(t *testing.T) {
	prompt := BuildSystemPrompt(&TraitProfile{Conscientiousness: 95}, nil)
	if !strings.Contains(prompt, "organized, responsible, and detail-oriented") {
		t.Errorf("expected conscientiousness template, got %q", prompt)
	}

	prompt = BuildSystemPrompt(nil, nil)
	if !strings.Contains(prompt, "helpful and encouraging AI coach") {
		t.Errorf("expected default template, got %q", prompt)
	}
}

func TestBuildSystemPrompt_PersonaOverridesTraits(t *testing.T) {
	pp := &PersonaProfile{
		Title:             "The Explorer",
		Description:       "A curious guide who charts unknown territory.",
		MotivationalStyle: "gentle encouragement",
	}
	prompt := BuildSystemPrompt(&TraitProfile{Conscientiousness: 95}, pp)

	if !strings.Contains(prompt, "The Explorer") {
		t.Error("persona title missing from prompt")
	}
	if !strings.Contains(prompt, "charts unknown territory") {
		t.Error("persona description missing from prompt")
	}
	if !strings.Contains(prompt, "gentle encouragement") {
		t.Error("motivational style missing from prompt")
	}
	if strings.Contains(prompt, "organized, responsible, and detail-oriented") {
		t.Error("trait template should not appear when persona is present")
	}
	if !strings.Contains(prompt, footprint.OpenMarker) {
		t.Error("persona prompt missing sentinel contract")
	}
}

func TestBuildSystemPrompt_OmitsAbsentPersonaFields(t *testing.T) {
	pp := &PersonaProfile{Title: "The Guardian"}
	prompt := BuildSystemPrompt(nil, pp)

	if !strings.Contains(prompt, "The Guardian") {
		t.Error("persona title missing from prompt")
	}
	if strings.Contains(prompt, "Your motivational style:") {
		t.Error("absent motivational style should not be rendered")
	}
}

func TestBuildSystemPrompt_EmptyPersonaFallsBackToTraits(t *testing.T) {
	pp := &PersonaProfile{Label: "Dolphin", Icon: "🐬"}
	prompt := BuildSystemPrompt(&TraitProfile{Openness: 90}, pp)

	if !strings.Contains(prompt, "creative, imaginative") {
		t.Error("expected openness template when persona has no prompt content")
	}
}

func TestBuildSystemPrompt_Idempotent(t *testing.T) {
	p := &TraitProfile{Openness: 85, Agreeableness: 70}
	pp := &PersonaProfile{Title: "The Explorer", MotivationalStyle: "direct"}

	if BuildSystemPrompt(p, pp) != BuildSystemPrompt(p, pp) {
		t.Error("BuildSystemPrompt is not idempotent for identical inputs")
	}
	if BuildSystemPrompt(p, nil) != BuildSystemPrompt(p, nil) {
		t.Error("BuildSystemPrompt is not idempotent for trait path")
	}
}

func TestTraitString(t *testing.T) {
	tests := []struct {
		trait Trait
		want  string
	}{
		{TraitOpenness, "Openness"},
		{TraitConscientiousness, "Conscientiousness"},
		{TraitExtraversion, "Extraversion"},
		{TraitAgreeableness, "Agreeableness"},
		{TraitNeuroticism, "Neuroticism"},
		{TraitDefault, "Default"},
	}
	for _, tt := range tests {
		if got := tt.trait.String(); got != tt.want {
			t.Errorf("Trait(%d).String() = %q, want %q", tt.trait, got, tt.want)
		}
	}
}
