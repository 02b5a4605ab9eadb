// Package compare computes cross-result statistics and baseline
// deltas over a set of saved analysis results.
package compare

import (
	"errors"
	"fmt"
	"math"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/results"
)

var (
	// ErrTooFewResults is returned when a comparison is requested over
	// an empty selection.
	ErrTooFewResults = errors.New("comparison requires at least one result")

	// ErrUnknownResult is returned when a selected id is not in the
	// store.
	ErrUnknownResult = errors.New("unknown result id")
)

// Compare aggregates the selected results into a cross-result report.
// Ids resolve against the store; every id must exist. A single-result
// selection yields zero spread (std and range both 0).
func Compare(store *results.Store, ids []string) (models.ComparisonReport, error) {
	if len(ids) == 0 {
		return models.ComparisonReport{}, ErrTooFewResults
	}

	selected := make([]models.AnalysisResult, 0, len(ids))
	for _, id := range ids {
		r := store.GetByID(id)
		if r == nil {
			return models.ComparisonReport{}, fmt.Errorf("%w: %s", ErrUnknownResult, id)
		}
		selected = append(selected, *r)
	}
	return CompareResults(selected)
}

// CompareResults aggregates an already-resolved result slice. Battery
// projections that came out unlimited (non-positive average power)
// are excluded from the battery-hours statistics, so one idle capture
// does not blow up the aggregate.
func CompareResults(selected []models.AnalysisResult) (models.ComparisonReport, error) {
	if len(selected) == 0 {
		return models.ComparisonReport{}, ErrTooFewResults
	}

	power := make([]float64, 0, len(selected))
	hours := make([]float64, 0, len(selected))
	duration := make([]float64, 0, len(selected))
	modes := make([]string, 0, len(selected))
	files := make([]string, 0, len(selected))
	seenMode := make(map[string]bool)
	seenFile := make(map[string]bool)

	for _, r := range selected {
		power = append(power, r.Stats.AvgPowerMW)
		duration = append(duration, r.Duration)
		if !r.Stats.Battery.IsUnlimited() {
			hours = append(hours, r.Stats.Battery.Hours)
		}
		if r.ModeLabel != "" && !seenMode[r.ModeLabel] {
			seenMode[r.ModeLabel] = true
			modes = append(modes, r.ModeLabel)
		}
		if r.SourceFilename != "" && !seenFile[r.SourceFilename] {
			seenFile[r.SourceFilename] = true
			files = append(files, r.SourceFilename)
		}
	}

	return models.ComparisonReport{
		Power:        valueStats(power),
		BatteryHours: valueStats(hours),
		Duration:     valueStats(duration),
		Modes:        modes,
		Files:        files,
	}, nil
}

// BaselineRelative ranks the results against the lowest-power entry.
// The baseline's increase is 0%; a zero-power baseline pins every
// increase to 0 rather than dividing by zero.
func BaselineRelative(selected []models.AnalysisResult) ([]models.BaselineEntry, error) {
	if len(selected) == 0 {
		return nil, ErrTooFewResults
	}

	baseline := selected[0].Stats.AvgPowerW
	for _, r := range selected[1:] {
		if r.Stats.AvgPowerW < baseline {
			baseline = r.Stats.AvgPowerW
		}
	}

	entries := make([]models.BaselineEntry, 0, len(selected))
	for _, r := range selected {
		increase := 0.0
		if baseline > 0 {
			increase = (r.Stats.AvgPowerW - baseline) / baseline * 100
		}
		entries = append(entries, models.BaselineEntry{
			ID:                   r.ID,
			Label:                r.Label,
			AvgPowerW:            r.Stats.AvgPowerW,
			PowerIncreasePercent: increase,
		})
	}
	return entries, nil
}

// valueStats summarizes one column of the comparison. Cross-result
// spread uses the population std (divisor n), unlike the per-snapshot
// sample std: the selected results are the whole population under
// comparison, not a sample of one.
func valueStats(values []float64) models.ValueStats {
	if len(values) == 0 {
		return models.ValueStats{}
	}

	min, max := values[0], values[0]
	sum := 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return models.ValueStats{
		Min:   min,
		Max:   max,
		Mean:  mean,
		Std:   math.Sqrt(variance),
		Range: max - min,
	}
}
