package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/services"
	"github.com/FinnWang/device-power-analyzer/internal/session"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// SeriesLoadedMsg carries the display view of a freshly loaded capture.
type SeriesLoadedMsg struct {
	Info *SeriesInfo
}

// LoadCaptureResultMsg contains the outcome of loading a capture file.
type LoadCaptureResultMsg struct {
	Path  string
	Error error
}

// PreviewComputedMsg contains range statistics for the selected range.
type PreviewComputedMsg struct {
	Range   models.TimeRange
	Preview *session.Preview
	Error   error
}

// CommitResultMsg contains the outcome of committing the selected range.
type CommitResultMsg struct {
	Result *models.AnalysisResult
	Error  error
}

// ResultsLoadedMsg carries the current committed-result list.
type ResultsLoadedMsg struct {
	Results []models.AnalysisResult
}

// DeleteResultResultMsg contains the outcome of a result deletion.
type DeleteResultResultMsg struct {
	ID      string
	Label   string
	Success bool
}

// RenameResultResultMsg contains the outcome of a result rename.
type RenameResultResultMsg struct {
	ID    string
	Label string
	Error error
}

// ClearResultsResultMsg contains the outcome of clearing all results.
type ClearResultsResultMsg struct {
	Removed int
}

// CompareComputedMsg contains a cross-result comparison.
type CompareComputedMsg struct {
	Report   models.ComparisonReport
	Baseline []models.BaselineEntry
	Error    error
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path   string
	Format string // "json", "csv", "markdown"
	Error  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "results", "preview"
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearNotificationsMsg requests clearing all notifications.
type ClearNotificationsMsg struct{}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// QuitMsg requests the application to quit.
type QuitMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// RangeChangedMsg signals that the selected analysis range moved.
type RangeChangedMsg struct {
	Range models.TimeRange
}

// SelectedResultChangedMsg signals that the result-list cursor moved.
type SelectedResultChangedMsg struct {
	Index int
	ID    string
}

// DelayedMsg wraps a message to be sent after a delay.
type DelayedMsg struct {
	Delay time.Duration
	Msg   tea.Msg
}
