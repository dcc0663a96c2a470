package coach

import (
	"context"
	"testing"

	"breathcoach-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns a canned response or an error.
type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.Generate(ctx, "", opts...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestSelectTemplateOnly(t *testing.T) {
	sel := NewSelector(DefaultLibrary(), nil, DefaultValidationRules())

	candidate, err := sel.Select(context.Background(), PhaseWarmup, ReasonIntervalElapsed, "")
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, candidate.Source)
	assert.NotEmpty(t, candidate.Text)
}

func TestSelectUsesWelcomeBankForFirstBreath(t *testing.T) {
	lib := DefaultLibrary()
	sel := NewSelector(lib, nil, DefaultValidationRules())

	welcomeTexts := map[string]bool{}
	for _, tmpl := range lib.Welcome() {
		welcomeTexts[tmpl.Text] = true
	}

	candidate, err := sel.Select(context.Background(), PhaseWarmup, ReasonFirstBreath, "")
	require.NoError(t, err)
	assert.True(t, welcomeTexts[candidate.Text], "first breath must come from the welcome bank")
}

func TestSelectNeverRepeatsLastSpoken(t *testing.T) {
	sel := NewSelector(DefaultLibrary(), nil, DefaultValidationRules())
	ctx := context.Background()

	last := ""
	for i := 0; i < 50; i++ {
		candidate, err := sel.Select(ctx, PhaseIntense, ReasonIntervalElapsed, last)
		require.NoError(t, err)
		if last != "" {
			assert.NotEqual(t, last, candidate.Text, "consecutive coaching texts must differ")
		}
		last = candidate.Text
	}
}

func TestSelectValidAIVariant(t *testing.T) {
	provider := &fakeLLM{response: "Nice and sharp now, two counts in, two counts out."}
	sel := NewSelector(DefaultLibrary(), provider, DefaultValidationRules())

	candidate, err := sel.Select(context.Background(), PhaseIntense, ReasonIntervalElapsed, "")
	require.NoError(t, err)
	assert.Equal(t, SourceAI, candidate.Source)
	assert.Equal(t, "Nice and sharp now, two counts in, two counts out.", candidate.Text)
	assert.Equal(t, 1, provider.calls)
}

func TestSelectFallsBackOnBannedAIVariant(t *testing.T) {
	provider := &fakeLLM{response: "Push through the pain, no excuses!"}
	sel := NewSelector(DefaultLibrary(), provider, DefaultValidationRules())

	candidate, err := sel.Select(context.Background(), PhaseIntense, ReasonIntervalElapsed, "")
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, candidate.Source, "banned AI text must never be spoken")
	assert.NotContains(t, candidate.Text, "pain")
}

func TestSelectFallsBackOnCadenceConflict(t *testing.T) {
	provider := &fakeLLM{response: "Speed up, you can go faster!"}
	sel := NewSelector(DefaultLibrary(), provider, DefaultValidationRules())

	candidate, err := sel.Select(context.Background(), PhaseRecovery, ReasonIntervalElapsed, "")
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, candidate.Source, "recovery must not be told to speed up")
}

func TestSelectFallsBackOnProviderError(t *testing.T) {
	provider := &fakeLLM{err: assert.AnError}
	sel := NewSelector(DefaultLibrary(), provider, DefaultValidationRules())

	candidate, err := sel.Select(context.Background(), PhaseCooldown, ReasonIntervalElapsed, "")
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, candidate.Source)
}
