// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// AnalysisResult is one committed time-range analysis. Statistics are
// frozen at commit time; only the label may change afterwards.
type AnalysisResult struct {
	ID             string             `json:"id"`
	Label          string             `json:"label"`
	SourceFilename string             `json:"source_filename"`
	ModeLabel      string             `json:"mode_label"`
	StartTime      float64            `json:"start_time"`
	EndTime        float64            `json:"end_time"`
	Duration       float64            `json:"duration"`
	Stats          StatisticsSnapshot `json:"stats"`
	CreatedAt      time.Time          `json:"created_at"`
	ChartTheme     string             `json:"chart_theme"`
	Metadata       map[string]string  `json:"metadata"`
}

// SummaryText returns a one-line description for lists and logs.
func (r AnalysisResult) SummaryText() string {
	return fmt.Sprintf("%s - %s (%.3fs-%.3fs)", r.Label, r.ModeLabel, r.StartTime, r.EndTime)
}

// Range returns the committed time range.
func (r AnalysisResult) Range() TimeRange {
	return TimeRange{StartTime: r.StartTime, EndTime: r.EndTime}
}

// Clone returns a deep copy, including the metadata bag.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	if r.Metadata != nil {
		out.Metadata = make(map[string]string, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// ComparisonRow is the canonical flat view of an AnalysisResult, shared
// by display tables and report generators.
type ComparisonRow struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	ModeLabel    string    `json:"mode_label"`
	Filename     string    `json:"filename"`
	StartTime    float64   `json:"start_time"`
	EndTime      float64   `json:"end_time"`
	Duration     float64   `json:"duration"`
	AvgPowerMW   float64   `json:"avg_power_mw"`
	MaxPowerMW   float64   `json:"max_power_mw"`
	AvgCurrentMA float64   `json:"avg_current_ma"`
	BatteryHours float64   `json:"battery_hours"`
	CreatedAt    time.Time `json:"created_at"`
}

// FlattenResult produces the comparison row for a result.
func FlattenResult(r AnalysisResult) ComparisonRow {
	return ComparisonRow{
		ID:           r.ID,
		Label:        r.Label,
		ModeLabel:    r.ModeLabel,
		Filename:     r.SourceFilename,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Duration:     r.Duration,
		AvgPowerMW:   r.Stats.AvgPowerMW,
		MaxPowerMW:   r.Stats.MaxPowerMW,
		AvgCurrentMA: r.Stats.AvgCurrentMA,
		BatteryHours: r.Stats.Battery.Hours,
		CreatedAt:    r.CreatedAt,
	}
}

// PowerRange is the min/max envelope of average power across results.
type PowerRange struct {
	MinMW float64 `json:"min"`
	MaxMW float64 `json:"max"`
}

// StoreSummary aggregates a result collection in a single pass.
// All fields are zeroed/empty for an empty collection.
type StoreSummary struct {
	Count      int        `json:"count"`
	Modes      []string   `json:"modes"`
	Files      []string   `json:"files"`
	PowerRange PowerRange `json:"power_range"`
}

// ValueStats describes one metric across a set of selected results.
type ValueStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Range float64 `json:"range"`
}

// ComparisonReport aggregates a selected subset of results.
type ComparisonReport struct {
	Power        ValueStats `json:"power_stats"`
	BatteryHours ValueStats `json:"battery_stats"`
	Duration     ValueStats `json:"duration_stats"`
	Modes        []string   `json:"modes"`
	Files        []string   `json:"files"`
}

// BaselineEntry reports one result relative to the selection baseline,
// the minimum average power among the selected set.
type BaselineEntry struct {
	ID                   string  `json:"id"`
	Label                string  `json:"label"`
	AvgPowerW            float64 `json:"avg_power_w"`
	PowerIncreasePercent float64 `json:"power_increase_percent"`
}
