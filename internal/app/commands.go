package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/compare"
	"github.com/FinnWang/device-power-analyzer/internal/export"
	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/services"
	"github.com/FinnWang/device-power-analyzer/internal/ui/components"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// chartResolution caps the number of samples fed to terminal charts.
	chartResolution = 512
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads the initial session view.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadSeriesCmd(mgr),
		loadResultsCmd(mgr),
	)
}

// loadSeriesCmd builds the display view of the loaded capture, chart
// curves included. Info is nil when no capture is loaded yet.
func loadSeriesCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		sess := mgr.Session()
		if !sess.HasSeries() {
			return SeriesLoadedMsg{Info: nil}
		}

		rows := sess.Series().Rows()
		power := make([]float64, len(rows))
		current := make([]float64, len(rows))
		for i, r := range rows {
			power[i] = r.Power * 1000
			current[i] = r.Current * 1000
		}

		return SeriesLoadedMsg{Info: &SeriesInfo{
			SourceFilename: sess.SourceFilename(),
			ModeLabel:      sess.ModeLabel(),
			Metadata:       sess.Series().Metadata(),
			PowerCurve:     components.Downsample(power, chartResolution),
			CurrentCurve:   components.Downsample(current, chartResolution),
		}}
	}
}

// loadResultsCmd returns a command that loads the committed results.
func loadResultsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return ResultsLoadedMsg{Results: mgr.Session().Results().All()}
	}
}

// loadCaptureCmd returns a command that loads a capture file.
func loadCaptureCmd(mgr *services.Manager, path string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.LoadCapture(path)
		return LoadCaptureResultMsg{Path: path, Error: err}
	}
}

// previewCmd returns a command that computes range statistics.
func previewCmd(mgr *services.Manager, r models.TimeRange) tea.Cmd {
	return func() tea.Msg {
		preview, err := mgr.Preview(r)
		return PreviewComputedMsg{Range: r, Preview: preview, Error: err}
	}
}

// commitCmd returns a command that commits the selected range.
func commitCmd(mgr *services.Manager, r models.TimeRange, label string) tea.Cmd {
	return func() tea.Msg {
		result, err := mgr.CommitRange(r, label, nil)
		return CommitResultMsg{Result: result, Error: err}
	}
}

// deleteResultCmd returns a command that deletes a result.
func deleteResultCmd(mgr *services.Manager, id, label string) tea.Cmd {
	return func() tea.Msg {
		ok := mgr.DeleteResult(id)
		return DeleteResultResultMsg{ID: id, Label: label, Success: ok}
	}
}

// renameResultCmd returns a command that renames a result.
func renameResultCmd(mgr *services.Manager, id, label string) tea.Cmd {
	return func() tea.Msg {
		err := mgr.RenameResult(id, label)
		return RenameResultResultMsg{ID: id, Label: label, Error: err}
	}
}

// clearResultsCmd returns a command that removes all results.
func clearResultsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		removed := mgr.ClearResults()
		return ClearResultsResultMsg{Removed: removed}
	}
}

// compareCmd returns a command that compares the given results.
func compareCmd(mgr *services.Manager, ids []string) tea.Cmd {
	return func() tea.Msg {
		report, err := mgr.Compare(ids)
		if err != nil {
			return CompareComputedMsg{Error: err}
		}

		store := mgr.Session().Results()
		selected := make([]models.AnalysisResult, 0, len(ids))
		for _, id := range ids {
			if r := store.GetByID(id); r != nil {
				selected = append(selected, *r)
			}
		}
		baseline, err := compare.BaselineRelative(selected)
		if err != nil {
			return CompareComputedMsg{Error: err}
		}

		return CompareComputedMsg{Report: report, Baseline: baseline}
	}
}

// exportCmd returns a command that writes the results to a file in the
// given directory. Format is "json", "csv" or "markdown".
func exportCmd(mgr *services.Manager, dir, format string) tea.Cmd {
	return func() tea.Msg {
		var (
			data []byte
			err  error
			ext  string
		)

		switch format {
		case "json":
			data, err = mgr.ExportJSON()
			ext = "json"
		case "csv":
			data, err = export.CSVReport(mgr.Session().Results().All())
			ext = "csv"
		case "markdown":
			data = []byte(export.MarkdownReport(mgr.Session().Results().All()))
			ext = "md"
		default:
			return ExportResultMsg{Format: format, Error: fmt.Errorf("unknown export format %q", format)}
		}
		if err != nil {
			return ExportResultMsg{Format: format, Error: err}
		}

		path := filepath.Join(dir, fmt.Sprintf("results-%s.%s", time.Now().Format("20060102-150405"), ext))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return ExportResultMsg{Format: format, Error: err}
		}

		return ExportResultMsg{Path: path, Format: format}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent is the public version for use in models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return services.WaitForEvent(ch)
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationWarning,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// batchCmds combines multiple commands into one.
func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

// quitCmd returns a command that quits the application.
func quitCmd() tea.Cmd {
	return tea.Quit
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadInitialData returns a command that loads the initial session view.
func (c *Commands) LoadInitialData() tea.Cmd {
	return loadInitialData(c.manager)
}

// LoadSeries returns a command that refreshes the series view.
func (c *Commands) LoadSeries() tea.Cmd {
	return loadSeriesCmd(c.manager)
}

// LoadResults returns a command that refreshes the result list.
func (c *Commands) LoadResults() tea.Cmd {
	return loadResultsCmd(c.manager)
}

// LoadCapture returns a command that loads a capture file.
func (c *Commands) LoadCapture(path string) tea.Cmd {
	return loadCaptureCmd(c.manager, path)
}

// Preview returns a command that computes range statistics.
func (c *Commands) Preview(r models.TimeRange) tea.Cmd {
	return previewCmd(c.manager, r)
}

// Commit returns a command that commits the selected range.
func (c *Commands) Commit(r models.TimeRange, label string) tea.Cmd {
	return commitCmd(c.manager, r, label)
}

// DeleteResult returns a command that deletes a result.
func (c *Commands) DeleteResult(id, label string) tea.Cmd {
	return deleteResultCmd(c.manager, id, label)
}

// RenameResult returns a command that renames a result.
func (c *Commands) RenameResult(id, label string) tea.Cmd {
	return renameResultCmd(c.manager, id, label)
}

// ClearResults returns a command that removes all results.
func (c *Commands) ClearResults() tea.Cmd {
	return clearResultsCmd(c.manager)
}

// Compare returns a command that compares the given results.
func (c *Commands) Compare(ids []string) tea.Cmd {
	return compareCmd(c.manager, ids)
}

// Export returns a command that writes results to dir in the given format.
func (c *Commands) Export(dir, format string) tea.Cmd {
	return exportCmd(c.manager, dir, format)
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return quitCmd()
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return batchCmds(cmds...)
}
