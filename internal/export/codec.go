// Package export serializes saved results for interchange: a JSON
// document for round-tripping between sessions, and CSV/Markdown
// reports for humans.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// SchemaError reports a structurally invalid export document.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid export document: %s", e.Reason)
}

// Document is the export envelope. ResultCount is advisory; Decode
// trusts the results array.
type Document struct {
	ExportedAt  time.Time               `json:"exported_at"`
	ResultCount int                     `json:"result_count"`
	Results     []models.AnalysisResult `json:"results"`
}

// Encode serializes results into an export document. Infinite battery
// projections survive the trip via the battery life sentinel encoding.
func Encode(results []models.AnalysisResult) ([]byte, error) {
	doc := Document{
		ExportedAt:  time.Now().UTC(),
		ResultCount: len(results),
		Results:     results,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// Decode parses an export document. A document without a top-level
// results key is rejected with a SchemaError; an explicit empty array
// is valid and yields no results.
func Decode(data []byte) ([]models.AnalysisResult, error) {
	var probe struct {
		Results *[]models.AnalysisResult `json:"results"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	if probe.Results == nil {
		return nil, &SchemaError{Reason: "missing results array"}
	}
	return *probe.Results, nil
}
