package coach

import "fmt"

// Phase is a named stage of a workout. Phases are ordered; within a
// session they only move forward unless the session is reset.
type Phase string

const (
	PhasePrep     Phase = "prep"
	PhaseWarmup   Phase = "warmup"
	PhaseIntense  Phase = "intense"
	PhaseRecovery Phase = "recovery"
	PhaseCooldown Phase = "cooldown"
)

var phaseOrder = map[Phase]int{
	PhasePrep:     0,
	PhaseWarmup:   1,
	PhaseIntense:  2,
	PhaseRecovery: 3,
	PhaseCooldown: 4,
}

// AllPhases lists the phases in workout order.
func AllPhases() []Phase {
	return []Phase{PhasePrep, PhaseWarmup, PhaseIntense, PhaseRecovery, PhaseCooldown}
}

// ParsePhase validates a phase name coming from the transport layer.
func ParsePhase(name string) (Phase, error) {
	p := Phase(name)
	if _, ok := phaseOrder[p]; !ok {
		return "", fmt.Errorf("unknown phase: %q", name)
	}
	return p, nil
}

// Index returns the position of the phase in workout order.
func (p Phase) Index() int {
	return phaseOrder[p]
}

// BreathingPattern describes the breathing rhythm of a phase and the
// base interval at which coaching cues recur during it.
type BreathingPattern struct {
	InhaleSeconds      int `json:"inhale_seconds"`
	ExhaleSeconds      int `json:"exhale_seconds"`
	CueIntervalSeconds int `json:"cue_interval_seconds"`
}

var patternTable = map[Phase]BreathingPattern{
	PhasePrep:     {InhaleSeconds: 4, ExhaleSeconds: 4, CueIntervalSeconds: 30},
	PhaseWarmup:   {InhaleSeconds: 3, ExhaleSeconds: 3, CueIntervalSeconds: 30},
	PhaseIntense:  {InhaleSeconds: 2, ExhaleSeconds: 2, CueIntervalSeconds: 40},
	PhaseRecovery: {InhaleSeconds: 4, ExhaleSeconds: 6, CueIntervalSeconds: 40},
	PhaseCooldown: {InhaleSeconds: 4, ExhaleSeconds: 8, CueIntervalSeconds: 45},
}

// PatternFor looks up the breathing pattern of a phase.
func PatternFor(p Phase) (BreathingPattern, error) {
	pattern, ok := patternTable[p]
	if !ok {
		return BreathingPattern{}, fmt.Errorf("no breathing pattern for phase: %q", p)
	}
	return pattern, nil
}
