package coach

import (
	"fmt"
	"strings"
)

// Source tags where the final phrase came from. Templates are valid by
// construction; AI variants must pass the validation gate first.
type Source string

const (
	SourceTemplate Source = "template"
	SourceAI       Source = "ai"
)

// Candidate is a phrase plus its provenance.
type Candidate struct {
	Text   string
	Source Source
}

// ValidationRules is the gate every AI-generated variant must clear
// before it can be spoken. All knobs are explicit so the rules can be
// tested and tuned independently of the selector.
type ValidationRules struct {
	MaxLength   int
	BannedWords []string

	// CadenceConflicts lists terms that contradict a phase's breathing
	// cadence, e.g. urging speed during recovery.
	CadenceConflicts map[Phase][]string
}

// DefaultValidationRules returns the standard gate.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MaxLength: 220,
		BannedWords: []string{
			"pain", "no excuses", "punish", "destroy yourself", "ignore the pain",
		},
		CadenceConflicts: map[Phase][]string{
			PhaseRecovery: {"speed up", "faster", "push harder", "sprint"},
			PhaseCooldown: {"speed up", "faster", "push harder", "sprint", "one more rep"},
			PhasePrep:     {"sprint", "max effort"},
		},
	}
}

// Validate checks an AI-generated candidate for a phase. lastSpoken is
// the previous coaching text; repeating it verbatim is rejected so the
// no-immediate-repetition guarantee also covers AI output.
func (r ValidationRules) Validate(phase Phase, text string, lastSpoken string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("empty text")
	}
	if r.MaxLength > 0 && len(trimmed) > r.MaxLength {
		return fmt.Errorf("text exceeds %d characters", r.MaxLength)
	}
	if lastSpoken != "" && trimmed == lastSpoken {
		return fmt.Errorf("repeats previous coaching text")
	}

	lower := strings.ToLower(trimmed)
	for _, banned := range r.BannedWords {
		if strings.Contains(lower, banned) {
			return fmt.Errorf("contains banned term %q", banned)
		}
	}
	for _, conflict := range r.CadenceConflicts[phase] {
		if strings.Contains(lower, conflict) {
			return fmt.Errorf("conflicts with %s cadence: %q", phase, conflict)
		}
	}
	return nil
}
