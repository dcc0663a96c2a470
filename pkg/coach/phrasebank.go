package coach

import "fmt"

// Intent tags what a phrase template is trying to achieve.
type Intent string

const (
	IntentMotivate Intent = "motivate"
	IntentSafety   Intent = "safety"
	IntentRhythm   Intent = "rhythm"
	IntentCalm     Intent = "calm"
	IntentWelcome  Intent = "welcome"
)

// PhraseTemplate is one candidate coaching phrase. Templates are
// curated offline (see the phrasebank tool) and are always valid to
// speak as-is.
type PhraseTemplate struct {
	Text   string `json:"text"`
	Intent Intent `json:"intent"`
}

// PhraseBank is the set of candidate templates for one phase.
type PhraseBank []PhraseTemplate

// Library holds the phrase banks for all phases plus the welcome bank
// used for the very first message of a session. It is built once at
// boot (compiled-in defaults or the phrase catalog) and read-only
// afterwards.
type Library struct {
	banks   map[Phase]PhraseBank
	welcome PhraseBank
}

// NewLibrary builds a library from explicit banks. Every phase must
// have at least one template and the welcome bank must be non-empty.
func NewLibrary(banks map[Phase]PhraseBank, welcome PhraseBank) (*Library, error) {
	for _, p := range AllPhases() {
		if len(banks[p]) == 0 {
			return nil, fmt.Errorf("phrase bank for phase %q is empty", p)
		}
	}
	if len(welcome) == 0 {
		return nil, fmt.Errorf("welcome phrase bank is empty")
	}
	return &Library{banks: banks, welcome: welcome}, nil
}

// BankFor returns the phrase bank of a phase.
func (l *Library) BankFor(p Phase) (PhraseBank, error) {
	bank, ok := l.banks[p]
	if !ok {
		return nil, fmt.Errorf("no phrase bank for phase: %q", p)
	}
	return bank, nil
}

// Welcome returns the first-message bank.
func (l *Library) Welcome() PhraseBank {
	return l.welcome
}

// DefaultLibrary returns the compiled-in phrase banks. Deployments
// that maintain the catalog in Postgres override these at boot.
func DefaultLibrary() *Library {
	lib, err := NewLibrary(map[Phase]PhraseBank{
		PhasePrep: {
			{Text: "Find a comfortable stance and settle your breath.", Intent: IntentCalm},
			{Text: "Breathe in for four, out for four. Nice and even.", Intent: IntentRhythm},
			{Text: "Shoulders loose, jaw relaxed. We start in a moment.", Intent: IntentCalm},
		},
		PhaseWarmup: {
			{Text: "Ease into it. In through the nose, out through the mouth.", Intent: IntentRhythm},
			{Text: "Good start. Keep the breath light and steady.", Intent: IntentMotivate},
			{Text: "Let your breathing match your movement, three counts each way.", Intent: IntentRhythm},
		},
		PhaseIntense: {
			{Text: "Strong and sharp. Two in, two out.", Intent: IntentRhythm},
			{Text: "You have this. Drive the exhale.", Intent: IntentMotivate},
			{Text: "Stay tall, keep the breath punchy.", Intent: IntentMotivate},
			{Text: "If your form slips, shorten the stride, not the breath.", Intent: IntentSafety},
		},
		PhaseRecovery: {
			{Text: "Let the heart rate drift down. Long exhales now.", Intent: IntentCalm},
			{Text: "In for four, out for six. Let it slow.", Intent: IntentRhythm},
			{Text: "Well earned. Soften the shoulders and breathe out fully.", Intent: IntentCalm},
		},
		PhaseCooldown: {
			{Text: "Nearly there. In for four, out for eight.", Intent: IntentRhythm},
			{Text: "Let every exhale sink you a little deeper into the stretch.", Intent: IntentCalm},
			{Text: "Great session. Keep the breath long and quiet.", Intent: IntentCalm},
		},
	}, PhraseBank{
		{Text: "Welcome back. I'll guide your breathing through this workout.", Intent: IntentWelcome},
		{Text: "Good to see you. Settle in and follow my cues.", Intent: IntentWelcome},
		{Text: "Let's begin. Breathe with me and I'll keep you on rhythm.", Intent: IntentWelcome},
	})
	if err != nil {
		// Compiled-in banks are non-empty by construction.
		panic(err)
	}
	return lib
}
