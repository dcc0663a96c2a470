package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvHeader is the expected column layout of the tabular source.
var csvHeader = []string{"phase", "intent", "text"}

// ReadCSV parses phrase templates from a phase,intent,text sheet.
func ReadCSV(r io.Reader) ([]PhraseRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return nil, fmt.Errorf("csv header must be %s", strings.Join(csvHeader, ","))
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("csv column %d must be %q, got %q", i+1, col, header[i])
		}
	}

	var records []PhraseRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		rec := PhraseRecord{
			Phase:  strings.ToLower(strings.TrimSpace(row[0])),
			Intent: strings.ToLower(strings.TrimSpace(row[1])),
			Text:   strings.TrimSpace(row[2]),
		}
		if rec.Text == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteCSV exports phrase templates back to the tabular layout.
func WriteCSV(w io.Writer, records []PhraseRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Phase, rec.Intent, rec.Text}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
