package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/results"
	"github.com/FinnWang/device-power-analyzer/internal/series"
)

// ErrNoSeries is returned by preview and commit operations before any
// series has been loaded into the session.
var ErrNoSeries = errors.New("no series loaded")

// Session is the per-user analysis context: at most one loaded series,
// the preview cache for that series, the accumulated result store and
// the battery spec used for projections. A session is confined to a
// single goroutine; callers that share one across goroutines must
// serialize access themselves.
type Session struct {
	store          *series.Store
	sourceFilename string
	modeLabel      string

	battery    models.BatterySpec
	chartTheme string

	cache   *PreviewCache
	results *results.Store

	createdAt time.Time
}

// New creates an empty session with the given battery spec and chart
// theme.
func New(battery models.BatterySpec, chartTheme string) *Session {
	return &Session{
		battery:    battery,
		chartTheme: chartTheme,
		cache:      NewPreviewCache(),
		results:    results.NewStore(),
		createdAt:  time.Now(),
	}
}

// LoadSeries replaces the session's current series and clears the
// preview cache, since every cached preview was computed against the
// old series. Accumulated results are kept: they are self-contained
// snapshots and stay comparable across source files.
func (s *Session) LoadSeries(store *series.Store, sourceFilename, modeLabel string) {
	s.store = store
	s.sourceFilename = sourceFilename
	s.modeLabel = modeLabel
	s.cache.Clear()
}

// HasSeries reports whether a series is currently loaded.
func (s *Session) HasSeries() bool {
	return s.store != nil
}

// Series returns the loaded series store, or nil before LoadSeries.
func (s *Session) Series() *series.Store {
	return s.store
}

// SourceFilename returns the filename of the loaded series.
func (s *Session) SourceFilename() string {
	return s.sourceFilename
}

// ModeLabel returns the display mode label of the loaded series.
func (s *Session) ModeLabel() string {
	return s.modeLabel
}

// Results returns the session's result store.
func (s *Session) Results() *results.Store {
	return s.results
}

// Cache returns the session's preview cache.
func (s *Session) Cache() *PreviewCache {
	return s.cache
}

// Battery returns the battery spec currently applied to projections.
func (s *Session) Battery() models.BatterySpec {
	return s.battery
}

// SetBattery changes the battery spec and clears the preview cache,
// because cached snapshots embed a battery projection computed with
// the old spec.
func (s *Session) SetBattery(spec models.BatterySpec) {
	s.battery = spec
	s.cache.Clear()
}

// ChartTheme returns the theme stamped onto committed results.
func (s *Session) ChartTheme() string {
	return s.chartTheme
}

// SetChartTheme changes the theme stamped onto committed results.
func (s *Session) SetChartTheme(theme string) {
	s.chartTheme = theme
}

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Preview evaluates the range against the loaded series, using the
// cache. Returns ErrNoSeries before LoadSeries.
func (s *Session) Preview(r models.TimeRange) (*Preview, error) {
	if s.store == nil {
		return nil, ErrNoSeries
	}
	return s.cache.GetOrCompute(s.store, r, s.battery)
}

// Commit evaluates the range and saves it as a named result. An empty
// label gets the store's count-based default. A non-empty label is
// validated against the store's label rules first, so a commit cannot
// introduce a duplicate or oversized label.
func (s *Session) Commit(r models.TimeRange, label string, metadata map[string]string) (*models.AnalysisResult, error) {
	if s.store == nil {
		return nil, ErrNoSeries
	}
	if label != "" {
		if err := s.results.ValidateLabel(label); err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
	}
	p, err := s.cache.GetOrCompute(s.store, r, s.battery)
	if err != nil {
		return nil, err
	}
	id := s.results.Add(results.AddParams{
		Label:          label,
		SourceFilename: s.sourceFilename,
		ModeLabel:      s.modeLabel,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Stats:          p.Stats,
		ChartTheme:     s.chartTheme,
		Metadata:       metadata,
	})
	return s.results.GetByID(id), nil
}

// Reset drops the loaded series, empties the preview cache and clears
// all accumulated results.
func (s *Session) Reset() {
	s.store = nil
	s.sourceFilename = ""
	s.modeLabel = ""
	s.cache.Clear()
	s.results.ClearAll()
}
