package catalog

import (
	"regexp"
	"strings"
)

var (
	multiSpace      = regexp.MustCompile(`\s{2,}`)
	spaceBeforePunc = regexp.MustCompile(`\s+([,.!?;:])`)
	danglingPunc    = regexp.MustCompile(`([,;:]){2,}`)
)

// CleanText removes banned terms from a phrase and tidies the
// whitespace and punctuation the removal leaves behind.
func CleanText(text string, banned []string) string {
	cleaned := text
	for _, term := range banned {
		if term == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(term))
		if err != nil {
			continue
		}
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	cleaned = multiSpace.ReplaceAllString(cleaned, " ")
	cleaned = spaceBeforePunc.ReplaceAllString(cleaned, "$1")
	cleaned = danglingPunc.ReplaceAllString(cleaned, "$1")
	cleaned = strings.Trim(cleaned, " ,;:")
	return strings.TrimSpace(cleaned)
}

// CleanRecords applies CleanText to every record and drops records
// whose text ends up empty.
func CleanRecords(records []PhraseRecord, banned []string) []PhraseRecord {
	out := make([]PhraseRecord, 0, len(records))
	for _, rec := range records {
		rec.Text = CleanText(rec.Text, banned)
		if rec.Text == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}
