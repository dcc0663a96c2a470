package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	sheet := strings.Join([]string{
		"phase,intent,text",
		`warmup,rhythm,"Ease into it, three counts each way."`,
		"Welcome,welcome,Good to see you.",
		"intense,motivate,   ",
		"cooldown,calm,Let it slow.",
	}, "\n")

	records, err := ReadCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, records, 3, "blank rows are skipped")

	assert.Equal(t, "warmup", records[0].Phase)
	assert.Equal(t, "rhythm", records[0].Intent)
	assert.Equal(t, "Ease into it, three counts each way.", records[0].Text)
	assert.Equal(t, WelcomePhase, records[1].Phase, "phase names are lowercased")
}

func TestReadCSVRejectsWrongHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("foo,bar,baz\nwarmup,rhythm,hello"))
	assert.Error(t, err)
}

func TestWriteReviewMarkdownGroupsByPhase(t *testing.T) {
	records := []PhraseRecord{
		{Phase: "warmup", Intent: "rhythm", Text: "Ease into it."},
		{Phase: WelcomePhase, Intent: "welcome", Text: "Good to see you."},
		{Phase: "warmup", Intent: "motivate", Text: "Good start."},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReviewMarkdown(&buf, records))
	doc := buf.String()

	assert.Contains(t, doc, "## welcome (1)")
	assert.Contains(t, doc, "## warmup (2)")
	assert.Contains(t, doc, "| rhythm | Ease into it. |")
	assert.Less(t, strings.Index(doc, "## welcome"), strings.Index(doc, "## warmup"))
}

func TestBuildLibraryFromCatalog(t *testing.T) {
	var records []PhraseRecord
	for _, phase := range []string{"prep", "warmup", "intense", "recovery", "cooldown"} {
		records = append(records, PhraseRecord{Phase: phase, Intent: "rhythm", Text: "Breathe for " + phase})
	}
	records = append(records, PhraseRecord{Phase: WelcomePhase, Intent: "welcome", Text: "Hello there."})

	lib, err := BuildLibrary(records)
	require.NoError(t, err)

	bank, err := lib.BankFor("intense")
	require.NoError(t, err)
	assert.Equal(t, "Breathe for intense", bank[0].Text)
	assert.Equal(t, "Hello there.", lib.Welcome()[0].Text)
}

func TestBuildLibraryRequiresEveryPhase(t *testing.T) {
	records := []PhraseRecord{
		{Phase: "warmup", Intent: "rhythm", Text: "Only warmup."},
		{Phase: WelcomePhase, Intent: "welcome", Text: "Hello."},
	}

	_, err := BuildLibrary(records)
	assert.Error(t, err)
}
