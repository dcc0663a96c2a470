package catalog

import (
	"fmt"
	"io"
	"time"
)

// WriteReviewMarkdown renders the catalog as a human-readable review
// document, grouped by phase in workout order.
func WriteReviewMarkdown(w io.Writer, records []PhraseRecord) error {
	byPhase := make(map[string][]PhraseRecord)
	for _, rec := range records {
		byPhase[rec.Phase] = append(byPhase[rec.Phase], rec)
	}

	if _, err := fmt.Fprintf(w, "# Phrase catalog review\n\nGenerated %s. %d templates.\n",
		time.Now().Format("2006-01-02"), len(records)); err != nil {
		return err
	}

	order := []string{WelcomePhase, "prep", "warmup", "intense", "recovery", "cooldown"}
	for _, phase := range order {
		phrases := byPhase[phase]
		if len(phrases) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n## %s (%d)\n\n| Intent | Text |\n|---|---|\n", phase, len(phrases)); err != nil {
			return err
		}
		for _, rec := range phrases {
			if _, err := fmt.Fprintf(w, "| %s | %s |\n", rec.Intent, rec.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
