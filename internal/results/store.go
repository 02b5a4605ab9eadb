// Package results manages the ordered collection of committed
// time-range analyses for one session.
package results

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// Store is an ordered collection of analysis results. Insertion order
// is preserved; entries are immutable apart from label renames. The
// store owns its entries and hands out value copies only, so callers
// cannot hold a live reference across a delete.
//
// The store performs no locking: it belongs to exactly one session and
// is driven from that session's single thread of control.
type Store struct {
	results []models.AnalysisResult
}

// NewStore creates an empty result store.
func NewStore() *Store {
	return &Store{}
}

// AddParams carries the inputs for committing one analysis.
type AddParams struct {
	SourceFilename string
	ModeLabel      string
	StartTime      float64
	EndTime        float64
	Stats          models.StatisticsSnapshot
	ChartTheme     string

	// Label is optional; when empty the store assigns "Result {N}"
	// with N = count at insertion time + 1. Numbers are reused after
	// deletions; committed results keep whatever label they got.
	Label string

	// Metadata is an optional open key/value bag, copied on insert.
	Metadata map[string]string
}

// Add appends a new result and returns its generated id.
func (s *Store) Add(p AddParams) string {
	label := p.Label
	if label == "" {
		label = fmt.Sprintf("Result %d", len(s.results)+1)
	}

	result := models.AnalysisResult{
		ID:             uuid.NewString(),
		Label:          label,
		SourceFilename: p.SourceFilename,
		ModeLabel:      p.ModeLabel,
		StartTime:      p.StartTime,
		EndTime:        p.EndTime,
		Duration:       p.EndTime - p.StartTime,
		Stats:          p.Stats,
		CreatedAt:      time.Now(),
		ChartTheme:     p.ChartTheme,
		Metadata:       copyMetadata(p.Metadata),
	}

	s.results = append(s.results, result)
	return result.ID
}

// AddExisting appends an already-built result, as produced by the
// import codec or the archive. The caller supplies the id.
func (s *Store) AddExisting(r models.AnalysisResult) {
	s.results = append(s.results, r.Clone())
}

// All returns copies of every result in insertion order.
func (s *Store) All() []models.AnalysisResult {
	out := make([]models.AnalysisResult, len(s.results))
	for i, r := range s.results {
		out[i] = r.Clone()
	}
	return out
}

// GetByID returns a copy of the result with the given id, or nil.
func (s *Store) GetByID(id string) *models.AnalysisResult {
	for i := range s.results {
		if s.results[i].ID == id {
			r := s.results[i].Clone()
			return &r
		}
	}
	return nil
}

// GetByIndex returns a copy of the result at the given position, or
// nil when the index is out of range.
func (s *Store) GetByIndex(index int) *models.AnalysisResult {
	if index < 0 || index >= len(s.results) {
		return nil
	}
	r := s.results[index].Clone()
	return &r
}

// Rename updates a result's label. It reports whether the id exists;
// label validity is the caller's concern (see ValidateLabel).
func (s *Store) Rename(id, newLabel string) bool {
	for i := range s.results {
		if s.results[i].ID == id {
			s.results[i].Label = newLabel
			return true
		}
	}
	return false
}

// Delete removes a result by id, reporting whether it existed.
func (s *Store) Delete(id string) bool {
	for i := range s.results {
		if s.results[i].ID == id {
			s.results = append(s.results[:i], s.results[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteByIndex removes a result by position, reporting success.
func (s *Store) DeleteByIndex(index int) bool {
	if index < 0 || index >= len(s.results) {
		return false
	}
	s.results = append(s.results[:index], s.results[index+1:]...)
	return true
}

// ClearAll empties the store and returns the number of entries removed.
func (s *Store) ClearAll() int {
	count := len(s.results)
	s.results = nil
	return count
}

// Count returns the number of stored results.
func (s *Store) Count() int {
	return len(s.results)
}

// HasResults reports whether the store holds any results.
func (s *Store) HasResults() bool {
	return len(s.results) > 0
}

// FindByMode returns copies of all results with the given mode label.
func (s *Store) FindByMode(modeLabel string) []models.AnalysisResult {
	var out []models.AnalysisResult
	for _, r := range s.results {
		if r.ModeLabel == modeLabel {
			out = append(out, r.Clone())
		}
	}
	return out
}

// FindByFile returns copies of all results from the given source file.
func (s *Store) FindByFile(filename string) []models.AnalysisResult {
	var out []models.AnalysisResult
	for _, r := range s.results {
		if r.SourceFilename == filename {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Summary aggregates the whole store in a single pass. An empty store
// yields a zeroed summary, never an error.
func (s *Store) Summary() models.StoreSummary {
	summary := models.StoreSummary{
		Count: len(s.results),
		Modes: []string{},
		Files: []string{},
	}
	if len(s.results) == 0 {
		return summary
	}

	seenModes := map[string]bool{}
	seenFiles := map[string]bool{}
	for i, r := range s.results {
		if !seenModes[r.ModeLabel] {
			seenModes[r.ModeLabel] = true
			summary.Modes = append(summary.Modes, r.ModeLabel)
		}
		if !seenFiles[r.SourceFilename] {
			seenFiles[r.SourceFilename] = true
			summary.Files = append(summary.Files, r.SourceFilename)
		}

		p := r.Stats.AvgPowerMW
		if i == 0 {
			summary.PowerRange = models.PowerRange{MinMW: p, MaxMW: p}
			continue
		}
		if p < summary.PowerRange.MinMW {
			summary.PowerRange.MinMW = p
		}
		if p > summary.PowerRange.MaxMW {
			summary.PowerRange.MaxMW = p
		}
	}

	return summary
}

// ComparisonTable returns the canonical flat view of every result, one
// row per entry in insertion order. Both the UI and the report
// generators consume this shape.
func (s *Store) ComparisonTable() []models.ComparisonRow {
	rows := make([]models.ComparisonRow, len(s.results))
	for i, r := range s.results {
		rows[i] = models.FlattenResult(r)
	}
	return rows
}

func copyMetadata(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
