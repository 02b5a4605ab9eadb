package series

import (
	"errors"
	"fmt"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

var (
	// ErrInvalidOrder is returned when a range starts at or after its end.
	ErrInvalidOrder = errors.New("start time must be before end time")

	// ErrOutOfBounds is returned when a range leaves the series bounds.
	ErrOutOfBounds = errors.New("time range outside series bounds")

	// ErrRangeTooSmall is returned when a range spans less than two
	// resolution units.
	ErrRangeTooSmall = errors.New("time range too small")
)

// Validate checks a candidate range against series metadata. Checks run
// in a fixed order and the first failure wins, so error messages stay
// deterministic:
//
//  1. start >= end
//  2. start below the series minimum
//  3. end above the series maximum
//  4. span below 2x the time resolution (skipped when resolution is 0)
//
// The returned errors wrap the package sentinels and carry the violated
// bound so callers can correct the input.
func Validate(r models.TimeRange, meta models.SeriesMetadata) error {
	if r.StartTime >= r.EndTime {
		return fmt.Errorf("%w: got start %.3fs, end %.3fs", ErrInvalidOrder, r.StartTime, r.EndTime)
	}

	if r.StartTime < meta.MinTime {
		return fmt.Errorf("%w: start %.3fs is before the series start %.3fs",
			ErrOutOfBounds, r.StartTime, meta.MinTime)
	}

	if r.EndTime > meta.MaxTime {
		return fmt.Errorf("%w: end %.3fs is after the series end %.3fs",
			ErrOutOfBounds, r.EndTime, meta.MaxTime)
	}

	// The full series span is always admissible, even when the series
	// is so short that it spans fewer than two resolution units.
	if r.StartTime == meta.MinTime && r.EndTime == meta.MaxTime {
		return nil
	}

	if meta.TimeResolution > 0 {
		minSpan := 2 * meta.TimeResolution
		if r.Span() < minSpan {
			return fmt.Errorf("%w: span %.6fs is below the minimum %.6fs",
				ErrRangeTooSmall, r.Span(), minSpan)
		}
	}

	return nil
}
