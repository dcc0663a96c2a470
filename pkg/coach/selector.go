package coach

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"breathcoach-be/pkg/llm"
)

// Selector resolves the final coaching text for a decision: a template
// draw from the phase's bank, optionally upgraded to an AI-generated
// variant when that variant clears the validation gate.
type Selector struct {
	lib      *Library
	provider llm.LLMProvider // nil disables AI variants
	rules    ValidationRules
	timeout  time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector builds a selector. provider may be nil, in which case
// every selection is a plain template draw.
func NewSelector(lib *Library, provider llm.LLMProvider, rules ValidationRules) *Selector {
	return &Selector{
		lib:      lib,
		provider: provider,
		rules:    rules,
		timeout:  5 * time.Second,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Select picks the text to speak. lastSpoken is excluded from the
// template draw whenever the bank has more than one candidate, so two
// consecutive messages are never identical.
func (s *Selector) Select(ctx context.Context, phase Phase, reason Reason, lastSpoken string) (Candidate, error) {
	bank, err := s.bankFor(phase, reason)
	if err != nil {
		return Candidate{}, err
	}

	tmpl := s.draw(bank, lastSpoken)

	if s.provider != nil {
		if variant, ok := s.aiVariant(ctx, phase, tmpl, lastSpoken); ok {
			return Candidate{Text: variant, Source: SourceAI}, nil
		}
	}
	return Candidate{Text: tmpl.Text, Source: SourceTemplate}, nil
}

func (s *Selector) bankFor(phase Phase, reason Reason) (PhraseBank, error) {
	if reason == ReasonFirstBreath {
		return s.lib.Welcome(), nil
	}
	return s.lib.BankFor(phase)
}

func (s *Selector) draw(bank PhraseBank, lastSpoken string) PhraseTemplate {
	candidates := bank
	if len(bank) > 1 && lastSpoken != "" {
		filtered := make(PhraseBank, 0, len(bank))
		for _, t := range bank {
			if t.Text != lastSpoken {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return candidates[s.rng.Intn(len(candidates))]
}

// aiVariant asks the LLM for a reworded variant seeded by the
// template's intent. A variant that fails validation is discarded; the
// template remains the fallback.
func (s *Selector) aiVariant(ctx context.Context, phase Phase, tmpl PhraseTemplate, lastSpoken string) (string, bool) {
	pattern, err := PatternFor(phase)
	if err != nil {
		return "", false
	}

	prompt := fmt.Sprintf(
		"You are a calm workout breathing coach. Rewrite the following cue in one short spoken sentence. "+
			"Keep the same intent (%s) and the breathing rhythm of the %s phase (inhale %ds, exhale %ds). "+
			"Do not add emojis or quotation marks.\nCue: %s",
		tmpl.Intent, phase, pattern.InhaleSeconds, pattern.ExhaleSeconds, tmpl.Text,
	)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.provider.Generate(genCtx, prompt, llm.WithTemperature(0.8))
	if err != nil {
		return "", false
	}

	variant := strings.Trim(strings.TrimSpace(out), `"`)
	if err := s.rules.Validate(phase, variant, lastSpoken); err != nil {
		return "", false
	}
	return variant, true
}
