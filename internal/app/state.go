// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/session"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// SeriesInfo describes the currently loaded capture for display.
type SeriesInfo struct {
	SourceFilename string
	ModeLabel      string
	Metadata       models.SeriesMetadata

	// PowerCurve and CurrentCurve are downsampled mW / mA series for
	// terminal charts, not the raw samples.
	PowerCurve   []float64
	CurrentCurve []float64
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Series  bool
	Preview bool
	Commit  bool
}

// State is the shared application state read by all tabs. Tabs read
// through the accessor methods; mutation happens in the root model's
// message handlers.
type State struct {
	mu sync.RWMutex

	series    *SeriesInfo
	timeRange models.TimeRange
	preview   *session.Preview

	results             []models.AnalysisResult
	selectedResultIndex int
	marked              map[string]bool

	comparison *models.ComparisonReport
	baseline   []models.BaselineEntry

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		results:       make([]models.AnalysisResult, 0),
		marked:        make(map[string]bool),
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "series":
		s.Loading.Series = loading
	case "preview":
		s.Loading.Preview = loading
	case "commit":
		s.Loading.Commit = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Series ||
		s.Loading.Preview ||
		s.Loading.Commit
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// SetSeries replaces the loaded series info, resets the selected range
// to the full span and drops the stale preview.
func (s *State) SetSeries(info *SeriesInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series = info
	s.preview = nil
	s.LastUpdated = time.Now()
	if info != nil {
		s.timeRange = models.TimeRange{
			StartTime: info.Metadata.MinTime,
			EndTime:   info.Metadata.MaxTime,
		}
	}
}

// GetSeries returns the loaded series info, or nil.
func (s *State) GetSeries() *SeriesInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series
}

// HasSeries reports whether a capture is loaded.
func (s *State) HasSeries() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.series != nil
}

// SetTimeRange updates the selected analysis range and invalidates the
// preview shown for the previous range.
func (s *State) SetTimeRange(r models.TimeRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeRange = r
	s.preview = nil
}

// GetTimeRange returns the selected analysis range.
func (s *State) GetTimeRange() models.TimeRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeRange
}

// SetPreview stores the computed preview for the current range.
func (s *State) SetPreview(p *session.Preview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = p
}

// GetPreview returns the preview for the current range, or nil.
func (s *State) GetPreview() *session.Preview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview
}

// SetResults replaces the result list and clamps the selection. Marks
// for results that no longer exist are dropped.
func (s *State) SetResults(results []models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = results
	s.LastUpdated = time.Now()

	if s.selectedResultIndex >= len(results) {
		s.selectedResultIndex = len(results) - 1
	}
	if s.selectedResultIndex < 0 {
		s.selectedResultIndex = 0
	}

	known := make(map[string]bool, len(results))
	for _, r := range results {
		known[r.ID] = true
	}
	for id := range s.marked {
		if !known[id] {
			delete(s.marked, id)
		}
	}
}

// GetResults returns a copy of the result list.
func (s *State) GetResults() []models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.AnalysisResult, len(s.results))
	copy(results, s.results)
	return results
}

// GetResultCount returns the number of committed results.
func (s *State) GetResultCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// GetSelectedResult returns the result under the cursor, or nil.
func (s *State) GetSelectedResult() *models.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedResultIndex < 0 || s.selectedResultIndex >= len(s.results) {
		return nil
	}
	r := s.results[s.selectedResultIndex].Clone()
	return &r
}

// GetSelectedResultIndex returns the cursor position in the result list.
func (s *State) GetSelectedResultIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedResultIndex
}

// SetSelectedResultIndex moves the cursor, clamped to the list bounds.
func (s *State) SetSelectedResultIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.results) && len(s.results) > 0 {
		idx = len(s.results) - 1
	}
	s.selectedResultIndex = idx
}

// ToggleMarked flips a result's comparison mark and reports its new state.
func (s *State) ToggleMarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.marked[id] {
		delete(s.marked, id)
		return false
	}
	s.marked[id] = true
	return true
}

// IsMarked reports whether a result is marked for comparison.
func (s *State) IsMarked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.marked[id]
}

// MarkedIDs returns the marked result IDs in result-list order.
func (s *State) MarkedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, r := range s.results {
		if s.marked[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// ClearMarks drops all comparison marks.
func (s *State) ClearMarks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = make(map[string]bool)
}

// SetComparison stores the latest cross-result report and baseline table.
func (s *State) SetComparison(report *models.ComparisonReport, baseline []models.BaselineEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparison = report
	s.baseline = baseline
}

// GetComparison returns the latest cross-result report, or nil.
func (s *State) GetComparison() *models.ComparisonReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.comparison
}

// GetBaseline returns the latest baseline table.
func (s *State) GetBaseline() []models.BaselineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Clear expired inline when reading
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  0,
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
