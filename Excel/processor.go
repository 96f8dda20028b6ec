package Excel

import (
	"Compass/Gemini"
	"Compass/Models"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidFileType is returned before any parsing when the upload does not
// carry a spreadsheet extension.
var ErrInvalidFileType = errors.New("invalid file type, expected .xlsx or .xls")

// Processor turns an uploaded schedule spreadsheet into structured events by
// flattening it to CSV and asking the generation API to extract them.
type Processor struct {
	Generator Gemini.TextGenerator
}

func NewProcessor(generator Gemini.TextGenerator) *Processor {
	return &Processor{Generator: generator}
}

// ProcessSchedule runs the full pipeline. It is a pure transformation;
// persisting the returned events is the caller's responsibility. An empty
// slice is a valid outcome when the model legitimately returns [].
func (p *Processor) ProcessSchedule(ctx context.Context, filename string, contents []byte) ([]Models.Event, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
	default:
		return nil, ErrInvalidFileType
	}

	csvData, err := FlattenSheet(contents)
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	reply, err := p.Generator.GenerateContent(ctx, buildPrompt(csvData))
	if err != nil {
		return nil, err
	}

	var events []Models.Event
	if err := Gemini.ExtractJSONArray(reply, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FlattenSheet converts the workbook's first sheet into CSV text, dropping
// rows where every cell is empty. Cell values are the computed results, not
// formulas. CSV keeps the prompt payload small.
func FlattenSheet(contents []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(contents))
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", err
	}

	var out strings.Builder
	w := csv.NewWriter(&out)
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func buildPrompt(csvData string) string {
	return fmt.Sprintf(`Analyze the following school schedule data and extract events.

[Data]
%s

[System Prompt]
Extract school events from this data. Return a valid JSON list of objects with these keys:
- title: Name of the event
- date: YYYY-MM-DD format
- time: Specific time (e.g. "14:00~16:00") or "All Day"
- location: Place of the event
- participants: Target audience (e.g. "1-6 Graders", "Teachers")
- manager: Person in charge
- type: "official", "trip", "personal"
- note: Any other details (e.g. "Business Trip to Seoul")

Rules:
- Ignore empty rows.
- Normalize dates to YYYY-MM-DD.
- If a field is missing, use empty string "".
- Return ONLY raw JSON.`, csvData)
}
