package series

import (
	"errors"
	"fmt"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// ErrEmptyResult is returned when a validated range still selects no
// rows, which can happen with sparse, non-uniform sampling.
var ErrEmptyResult = errors.New("no data in time range")

// FilterRange returns the rows whose time falls inside the range,
// inclusive on both ends. The caller is expected to have validated the
// range; an empty selection is reported, not silently tolerated. The
// source table is never mutated.
func (s *Store) FilterRange(r models.TimeRange) ([]models.Row, error) {
	var out []models.Row
	for _, row := range s.rows {
		if r.Contains(row.Time) {
			out = append(out, row)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: [%.3fs, %.3fs]", ErrEmptyResult, r.StartTime, r.EndTime)
	}

	return out, nil
}
