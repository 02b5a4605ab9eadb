// Package models defines data structures and domain types.
package models

import "math"

// Row is a single power measurement sample. Time is seconds from the
// start of the capture; Voltage, Current and Power are SI units.
type Row struct {
	Time    float64 `json:"time"`
	Voltage float64 `json:"voltage"`
	Current float64 `json:"current"`
	Power   float64 `json:"power"`
}

// IsClean reports whether the row has a usable, non-negative time value.
func (r Row) IsClean() bool {
	return !math.IsNaN(r.Time) && !math.IsInf(r.Time, 0) && r.Time >= 0
}

// SeriesMetadata describes the time axis of a loaded series. It is
// derived from the cleaned table and read-only to consumers.
type SeriesMetadata struct {
	MinTime       float64 `json:"min_time"`
	MaxTime       float64 `json:"max_time"`
	TotalDuration float64 `json:"total_duration"`
	DataPoints    int     `json:"data_points"`

	// TimeResolution is the mean of strictly positive consecutive
	// time deltas, or 0 when fewer than 2 rows exist.
	TimeResolution float64 `json:"time_resolution"`
}

// TimeRange delimits a sub-interval of a loaded series. A range is not
// meaningful on its own; it must be validated against a SeriesMetadata
// before filtering or statistics.
type TimeRange struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Span returns the requested duration of the range.
func (r TimeRange) Span() float64 {
	return r.EndTime - r.StartTime
}

// Contains reports whether t falls inside the range, inclusive both ends.
func (r TimeRange) Contains(t float64) bool {
	return t >= r.StartTime && t <= r.EndTime
}
