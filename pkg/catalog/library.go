package catalog

import (
	"fmt"

	"breathcoach-be/pkg/coach"
)

// BuildLibrary converts catalog records into the runtime phrase
// library. Records in the "welcome" group feed the first-message bank.
func BuildLibrary(records []PhraseRecord) (*coach.Library, error) {
	banks := make(map[coach.Phase]coach.PhraseBank)
	var welcome coach.PhraseBank

	for _, rec := range records {
		tmpl := coach.PhraseTemplate{Text: rec.Text, Intent: coach.Intent(rec.Intent)}
		if rec.Phase == WelcomePhase {
			welcome = append(welcome, tmpl)
			continue
		}
		phase, err := coach.ParsePhase(rec.Phase)
		if err != nil {
			return nil, fmt.Errorf("catalog record %s: %w", rec.Id, err)
		}
		banks[phase] = append(banks[phase], tmpl)
	}

	return coach.NewLibrary(banks, welcome)
}
