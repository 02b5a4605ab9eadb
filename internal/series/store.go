// Package series holds one cleaned, time-sorted measurement table and
// the range validation/filtering that operates on it.
package series

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

var (
	// ErrEmptyInput is returned when construction receives no rows, or
	// when cleaning leaves nothing behind.
	ErrEmptyInput = errors.New("series is empty")

	// ErrMissingTimeColumn is returned when the raw source does not
	// carry a time column.
	ErrMissingTimeColumn = errors.New("source has no time column")

	// ErrNonNumericTime is returned when every row's time value failed
	// numeric coercion.
	ErrNonNumericTime = errors.New("time column is not numeric")
)

// Store owns one cleaned measurement table and its metadata. Rows are
// sorted ascending by time; unusable times are dropped at build time.
type Store struct {
	rows []models.Row
	meta models.SeriesMetadata
}

// Build cleans the input and constructs a Store. Rows whose time is
// NaN, infinite or negative are dropped; dropping is only fatal when
// nothing survives. The input slice is not retained.
func Build(rows []models.Row) (*Store, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	cleaned := make([]models.Row, 0, len(rows))
	badTime := 0
	for _, r := range rows {
		if math.IsNaN(r.Time) || math.IsInf(r.Time, 0) {
			badTime++
			continue
		}
		if r.Time < 0 {
			continue
		}
		cleaned = append(cleaned, r)
	}

	if len(cleaned) == 0 {
		if badTime == len(rows) {
			return nil, ErrNonNumericTime
		}
		return nil, fmt.Errorf("no rows left after cleaning: %w", ErrEmptyInput)
	}

	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Time < cleaned[j].Time
	})

	return &Store{
		rows: cleaned,
		meta: calculateMetadata(cleaned),
	}, nil
}

func calculateMetadata(rows []models.Row) models.SeriesMetadata {
	meta := models.SeriesMetadata{
		MinTime:    rows[0].Time,
		MaxTime:    rows[len(rows)-1].Time,
		DataPoints: len(rows),
	}
	meta.TotalDuration = meta.MaxTime - meta.MinTime

	if len(rows) > 1 {
		sum := 0.0
		count := 0
		for i := 1; i < len(rows); i++ {
			delta := rows[i].Time - rows[i-1].Time
			if delta > 0 {
				sum += delta
				count++
			}
		}
		if count > 0 {
			meta.TimeResolution = sum / float64(count)
		}
	}

	return meta
}

// Metadata returns the derived time-range metadata.
func (s *Store) Metadata() models.SeriesMetadata {
	return s.meta
}

// Len returns the number of cleaned rows.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the cleaned table. The store keeps exclusive
// ownership of its backing slice.
func (s *Store) Rows() []models.Row {
	out := make([]models.Row, len(s.rows))
	copy(out, s.rows)
	return out
}
