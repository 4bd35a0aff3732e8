// Package persona maps a user's OCEAN personality signal to the system
// prompt sent to the language model.
package persona

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Trait is one of the five OCEAN axes, plus Default for users without a
// dominant trait. The set is closed; there is no way to construct an
// unknown trait label.
type Trait int

const (
	TraitOpenness Trait = iota
	TraitConscientiousness
	TraitExtraversion
	TraitAgreeableness
	TraitNeuroticism
	TraitDefault
)

func (t Trait) String() string {
	switch t {
	case TraitOpenness:
		return "Openness"
	case TraitConscientiousness:
		return "Conscientiousness"
	case TraitExtraversion:
		return "Extraversion"
	case TraitAgreeableness:
		return "Agreeableness"
	case TraitNeuroticism:
		return "Neuroticism"
	default:
		return "Default"
	}
}

// dominantThreshold is the minimum score a trait needs to drive tone
// selection. Below it the coach falls back to the Default template.
const dominantThreshold = 60

// TraitProfile holds the five OCEAN scores, typically in [0,100].
// A new profile replaces the old on update; profiles are never mutated.
type TraitProfile struct {
	Openness          float64
	Conscientiousness float64
	Extraversion      float64
	Agreeableness     float64
	Neuroticism       float64
}

// ParseTraitProfile decodes a stored ocean_scores JSON document into a
// TraitProfile. Incoming score fields are loosely typed (numbers, numeric
// strings, nulls); anything that does not coerce to a number counts as 0.
// Returns nil when the document is empty or not a JSON object, which
// downstream treats as "no profile available".
func ParseTraitProfile(raw string) *TraitProfile {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	return &TraitProfile{
		Openness:          coerceScore(fields["openness"]),
		Conscientiousness: coerceScore(fields["conscientiousness"]),
		Extraversion:      coerceScore(fields["extraversion"]),
		Agreeableness:     coerceScore(fields["agreeableness"]),
		Neuroticism:       coerceScore(fields["neuroticism"]),
	}
}

func coerceScore(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return 0
}

// ResolveBaseTrait selects the trait that drives tone selection. The
// highest score wins; ties resolve in the fixed evaluation order
// Openness > Conscientiousness > Extraversion > Agreeableness >
// Neuroticism. A nil profile, or a maximum below the dominance threshold,
// yields TraitDefault. Never errors.
func ResolveBaseTrait(p *TraitProfile) Trait {
	if p == nil {
		return TraitDefault
	}

	scores := []struct {
		trait Trait
		value float64
	}{
		{TraitOpenness, p.Openness},
		{TraitConscientiousness, p.Conscientiousness},
		{TraitExtraversion, p.Extraversion},
		{TraitAgreeableness, p.Agreeableness},
		{TraitNeuroticism, p.Neuroticism},
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.value > best.value {
			best = s
		}
	}

	if best.value < dominantThreshold {
		return TraitDefault
	}
	return best.trait
}

// PersonaProfile is a richer archetype description that, when present,
// overrides trait-based tone selection. Any field may be empty; empty
// fields are omitted from the rendered prompt.
type PersonaProfile struct {
	Title             string
	Description       string
	MotivationalStyle string
	Label             string
	Icon              string
}

// IsEmpty reports whether the profile carries no prompt-relevant content.
func (p *PersonaProfile) IsEmpty() bool {
	return p == nil || (p.Title == "" && p.Description == "" && p.MotivationalStyle == "")
}

// BuildSystemPrompt produces the system prompt for a chat turn. When a
// non-empty persona is supplied it renders a persona-centred instruction
// block; otherwise it falls back to the template for the user's base
// trait. Both paths end with the footprint proposal contract so the
// extractor can always round-trip the model's reply. Pure function of its
// inputs.
func BuildSystemPrompt(scores *TraitProfile, persona *PersonaProfile) string {
	var b strings.Builder

	if !persona.IsEmpty() {
		if persona.Title != "" {
			b.WriteString("You are the user's personal AI coach, embodying the archetype ")
			b.WriteString(persona.Title)
			b.WriteString(".\n")
		}
		if persona.Description != "" {
			b.WriteString(persona.Description)
			b.WriteString("\n")
		}
		if persona.MotivationalStyle != "" {
			b.WriteString("Your motivational style: ")
			b.WriteString(persona.MotivationalStyle)
			b.WriteString("\n")
		}
	} else {
		b.WriteString(traitTemplates[ResolveBaseTrait(scores)])
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footprintContract)
	return b.String()
}
