package coach

import (
	"breathcoach-be/pkg/store"
)

// Reason explains a speak/no-speak decision. The codes are part of the
// API contract with the client.
type Reason string

const (
	ReasonFirstBreath        Reason = "first_breath_welcome"
	ReasonPhaseTransition    Reason = "phase_transition"
	ReasonIntervalElapsed    Reason = "cue_interval_elapsed"
	ReasonIntervalNotElapsed Reason = "cue_interval_not_elapsed"

	// ReasonSynthesisFailed replaces the decision reason when the
	// bundle degrades to text-only after a synthesis error.
	ReasonSynthesisFailed Reason = "synthesis_failed"
)

// Decision is the output of the coaching policy.
type Decision struct {
	ShouldSpeak bool
	Reason      Reason
}

// PolicyConfig holds the named tuning knobs of the decision policy.
type PolicyConfig struct {
	// IntervalMultipliers scale each phase's base cue interval.
	// Intense coaching is more frequent, recovery and cooldown calmer.
	IntervalMultipliers map[Phase]float64
}

// DefaultPolicyConfig returns the standard cadence scaling.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		IntervalMultipliers: map[Phase]float64{
			PhasePrep:     1.0,
			PhaseWarmup:   1.0,
			PhaseIntense:  0.6,
			PhaseRecovery: 1.5,
			PhaseCooldown: 1.6,
		},
	}
}

// EffectiveInterval returns the phase-scaled cue interval in seconds.
func (c PolicyConfig) EffectiveInterval(p Phase) (float64, error) {
	pattern, err := PatternFor(p)
	if err != nil {
		return 0, err
	}
	mult, ok := c.IntervalMultipliers[p]
	if !ok {
		mult = 1.0
	}
	return float64(pattern.CueIntervalSeconds) * mult, nil
}

// Decide applies the coaching policy to one check-in. The session is
// the state before any update. Precedence when several conditions
// hold: first breath > phase transition > cue interval.
func Decide(sess *store.Session, reported Phase, elapsedSeconds int, cfg PolicyConfig) (Decision, error) {
	if !sess.HasSpoken() {
		return Decision{ShouldSpeak: true, Reason: ReasonFirstBreath}, nil
	}

	if string(reported) != sess.Phase {
		return Decision{ShouldSpeak: true, Reason: ReasonPhaseTransition}, nil
	}

	interval, err := cfg.EffectiveInterval(reported)
	if err != nil {
		return Decision{}, err
	}
	sinceLast := elapsedSeconds - *sess.LastCoachingAt
	if float64(sinceLast) >= interval {
		return Decision{ShouldSpeak: true, Reason: ReasonIntervalElapsed}, nil
	}
	return Decision{ShouldSpeak: false, Reason: ReasonIntervalNotElapsed}, nil
}
