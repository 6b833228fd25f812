package architect

import (
	"fmt"
	"strings"
)

// rejectedTerms are concepts with no mathematical standing. A blueprint
// mentioning any of them fails rigor validation outright.
var rejectedTerms = []string{
	"terryology",
	"numerology",
	"astrology",
	"sacred geometry",
	"perpetual motion",
	"free energy",
}

// Validator enforces mathematical rigor on blueprints.
type Validator struct {
	required []MathFoundation
}

// NewValidator creates a validator requiring the given foundations.
func NewValidator(required []MathFoundation) *Validator {
	return &Validator{required: required}
}

// Validate checks a blueprint's foundations and scans its text for rejected
// pseudoscientific concepts.
func (v *Validator) Validate(bp Blueprint) error {
	for _, req := range v.required {
		if !hasFoundation(bp.Foundations, req) {
			return fmt.Errorf("blueprint %s missing required foundation %s", bp.ID, req)
		}
	}

	text := strings.ToLower(bp.Name + " " + bp.Summary + " " + strings.Join(bp.Components, " "))
	for _, term := range rejectedTerms {
		if strings.Contains(text, term) {
			return fmt.Errorf("blueprint %s references rejected concept %q", bp.ID, term)
		}
	}

	// Post-quantum claims need a named hardness assumption.
	if (bp.Pillar == PillarPostQuantum || bp.Pillar == PillarQuantumAI) && len(bp.Hardness) == 0 {
		return fmt.Errorf("blueprint %s claims quantum resistance without a hardness assumption", bp.ID)
	}

	return nil
}

func hasFoundation(have []MathFoundation, want MathFoundation) bool {
	for _, f := range have {
		if f == want {
			return true
		}
	}
	return false
}
