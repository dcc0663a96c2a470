package coach

import (
	"testing"

	"breathcoach-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(phase Phase, elapsed int, lastText string, lastAt *int) *store.Session {
	return &store.Session{
		ID:               "s1",
		Phase:            string(phase),
		ElapsedSeconds:   elapsed,
		LastCoachingText: lastText,
		LastCoachingAt:   lastAt,
	}
}

func intPtr(v int) *int { return &v }

func TestDecide(t *testing.T) {
	cfg := DefaultPolicyConfig()

	tests := []struct {
		name       string
		session    *store.Session
		phase      Phase
		elapsed    int
		wantSpeak  bool
		wantReason Reason
	}{
		{
			name:       "first check-in is always a welcome",
			session:    sessionAt(PhasePrep, 0, "", nil),
			phase:      PhaseWarmup,
			elapsed:    5,
			wantSpeak:  true,
			wantReason: ReasonFirstBreath,
		},
		{
			name:       "welcome wins over phase transition",
			session:    sessionAt(PhasePrep, 10, "", nil),
			phase:      PhaseIntense,
			elapsed:    12,
			wantSpeak:  true,
			wantReason: ReasonFirstBreath,
		},
		{
			name:       "phase transition forces speaking before the interval",
			session:    sessionAt(PhaseWarmup, 20, "keep it steady", intPtr(18)),
			phase:      PhaseIntense,
			elapsed:    22,
			wantSpeak:  true,
			wantReason: ReasonPhaseTransition,
		},
		{
			name:       "interval not elapsed stays quiet",
			session:    sessionAt(PhaseWarmup, 5, "welcome", intPtr(5)),
			phase:      PhaseWarmup,
			elapsed:    20,
			wantSpeak:  false,
			wantReason: ReasonIntervalNotElapsed,
		},
		{
			name:       "interval elapsed speaks",
			session:    sessionAt(PhaseWarmup, 5, "welcome", intPtr(5)),
			phase:      PhaseWarmup,
			elapsed:    40,
			wantSpeak:  true,
			wantReason: ReasonIntervalElapsed,
		},
		{
			name:       "intense speaks after a 60s gap",
			session:    sessionAt(PhaseIntense, 100, "drive it", intPtr(100)),
			phase:      PhaseIntense,
			elapsed:    160,
			wantSpeak:  true,
			wantReason: ReasonIntervalElapsed,
		},
		{
			name:       "cooldown stays quiet after the same 60s gap",
			session:    sessionAt(PhaseCooldown, 100, "breathe out", intPtr(100)),
			phase:      PhaseCooldown,
			elapsed:    160,
			wantSpeak:  false,
			wantReason: ReasonIntervalNotElapsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := Decide(tt.session, tt.phase, tt.elapsed, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSpeak, decision.ShouldSpeak)
			assert.Equal(t, tt.wantReason, decision.Reason)
		})
	}
}

func TestEffectiveIntervalScaling(t *testing.T) {
	cfg := DefaultPolicyConfig()

	intense, err := cfg.EffectiveInterval(PhaseIntense)
	require.NoError(t, err)
	recovery, err := cfg.EffectiveInterval(PhaseRecovery)
	require.NoError(t, err)
	cooldown, err := cfg.EffectiveInterval(PhaseCooldown)
	require.NoError(t, err)

	assert.Less(t, intense, recovery, "intense coaching must be more frequent than recovery")
	assert.Less(t, intense, cooldown, "intense coaching must be more frequent than cooldown")
}

func TestParsePhase(t *testing.T) {
	for _, p := range AllPhases() {
		parsed, err := ParsePhase(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePhase("sprinting")
	assert.Error(t, err)
}

func TestPatternForUnknownPhase(t *testing.T) {
	_, err := PatternFor(Phase("nap"))
	assert.Error(t, err)
}
