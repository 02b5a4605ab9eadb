// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"math"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/FinnWang/device-power-analyzer/internal/compare"
	"github.com/FinnWang/device-power-analyzer/internal/config"
	"github.com/FinnWang/device-power-analyzer/internal/db"
	"github.com/FinnWang/device-power-analyzer/internal/export"
	"github.com/FinnWang/device-power-analyzer/internal/loader"
	"github.com/FinnWang/device-power-analyzer/internal/logger"
	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/session"
)

type (
	// SeriesLoadedEvent is emitted when a capture file becomes the
	// session's active series.
	SeriesLoadedEvent struct {
		SourceFilename string
		ModeLabel      string
		Metadata       models.SeriesMetadata
	}

	// ResultCommittedEvent is emitted when a range is committed as a
	// result.
	ResultCommittedEvent struct {
		Result models.AnalysisResult
	}

	// ResultsChangedEvent is emitted when the result collection changes
	// other than by commit (delete, rename, clear, import).
	ResultsChangedEvent struct {
		Count int
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (SeriesLoadedEvent) isServiceEvent()    {}
func (ResultCommittedEvent) isServiceEvent() {}
func (ResultsChangedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()           {}

// Manager orchestrates the analysis session, capture watching, the
// result archive and event routing.
type Manager struct {
	mu          sync.RWMutex
	session     *session.Session
	watcher     *loader.Watcher
	database    *db.DB
	cfg         *config.Config
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		session:  session.New(cfg.Battery, cfg.ChartTheme),
		stopChan: make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.watcher, err = loader.NewWatcher(cfg.DataDir)
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to watch data directory: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes watcher events to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case ev, ok := <-m.watcher.Events():
			if !ok {
				return
			}
			if ev.Err != nil {
				m.broadcast(ErrorEvent{Service: "watcher", Error: ev.Err})
				continue
			}
			if err := m.LoadCapture(ev.Path); err != nil {
				m.broadcast(ErrorEvent{Service: "loader", Error: err})
			}

		case <-m.stopChan:
			return
		}
	}
}

// LoadCapture loads a capture file into the session and broadcasts the
// new series.
func (m *Manager) LoadCapture(path string) error {
	capture, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.session.LoadSeries(capture.Store, capture.SourceFilename, capture.Mode.Label())
	meta := capture.Store.Metadata()
	m.mu.Unlock()

	logger.Info("capture loaded",
		"file", capture.SourceFilename,
		"mode", capture.Mode.Label(),
		"points", meta.DataPoints)

	m.broadcast(SeriesLoadedEvent{
		SourceFilename: capture.SourceFilename,
		ModeLabel:      capture.Mode.Label(),
		Metadata:       meta,
	})
	return nil
}

// Preview evaluates a time range against the loaded series.
func (m *Manager) Preview(r models.TimeRange) (*session.Preview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Preview(r)
}

// CommitRange commits a range as a named result, archives it and
// notifies when projected battery life falls below the configured
// threshold.
func (m *Manager) CommitRange(r models.TimeRange, label string, metadata map[string]string) (*models.AnalysisResult, error) {
	m.mu.Lock()
	result, err := m.session.Commit(r, label, metadata)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := m.database.InsertResult(*result); err != nil {
		logger.Error("failed to archive result", "id", result.ID, "error", err)
	}

	m.checkNotification(result)
	m.broadcast(ResultCommittedEvent{Result: *result})
	return result, nil
}

// checkNotification raises a desktop notification when the committed
// result's battery projection undercuts the threshold.
func (m *Manager) checkNotification(result *models.AnalysisResult) {
	threshold := m.cfg.NotifyThreshold.Hours()
	if threshold <= 0 {
		return
	}
	hours := result.Stats.Battery.Hours
	if math.IsInf(hours, 1) || hours >= threshold {
		return
	}
	title := fmt.Sprintf("Low battery projection: %s", result.Label)
	body := fmt.Sprintf("Projected battery life %.1f h is below %.0f h", hours, threshold)
	_ = beeep.Notify(title, body, "")
}

// DeleteResult removes a result from the session and the archive.
func (m *Manager) DeleteResult(id string) bool {
	m.mu.Lock()
	deleted := m.session.Results().Delete(id)
	count := m.session.Results().Count()
	m.mu.Unlock()

	if _, err := m.database.DeleteResult(id); err != nil {
		logger.Error("failed to delete archived result", "id", id, "error", err)
	}
	if deleted {
		m.broadcast(ResultsChangedEvent{Count: count})
	}
	return deleted
}

// RenameResult validates and applies a new label, in memory and in the
// archive.
func (m *Manager) RenameResult(id, label string) error {
	m.mu.Lock()
	err := m.session.Results().ValidateLabel(label)
	if err == nil && !m.session.Results().Rename(id, label) {
		err = fmt.Errorf("%w: %s", db.ErrNotFound, id)
	}
	count := m.session.Results().Count()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	if err := m.database.UpdateResultLabel(id, label); err != nil {
		logger.Error("failed to rename archived result", "id", id, "error", err)
	}
	m.broadcast(ResultsChangedEvent{Count: count})
	return nil
}

// ClearResults drops every result from the session and the archive.
func (m *Manager) ClearResults() int {
	m.mu.Lock()
	n := m.session.Results().ClearAll()
	m.mu.Unlock()

	if _, err := m.database.ClearResults(); err != nil {
		logger.Error("failed to clear archive", "error", err)
	}
	if n > 0 {
		m.broadcast(ResultsChangedEvent{Count: 0})
	}
	return n
}

// RestoreArchive loads archived results into the session's result
// store. Used at startup to resume earlier work.
func (m *Manager) RestoreArchive() (int, error) {
	archived, err := m.database.ListResults()
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	for _, r := range archived {
		m.session.Results().AddExisting(r)
	}
	count := m.session.Results().Count()
	m.mu.Unlock()

	if len(archived) > 0 {
		m.broadcast(ResultsChangedEvent{Count: count})
	}
	return len(archived), nil
}

// Compare aggregates the selected results.
func (m *Manager) Compare(ids []string) (models.ComparisonReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return compare.Compare(m.session.Results(), ids)
}

// ExportJSON serializes all session results.
func (m *Manager) ExportJSON() ([]byte, error) {
	m.mu.RLock()
	all := m.session.Results().All()
	m.mu.RUnlock()
	return export.Encode(all)
}

// ImportJSON merges results from an export document into the session
// and the archive. Labels are uniqued against existing results.
func (m *Manager) ImportJSON(data []byte) (int, error) {
	imported, err := export.Decode(data)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	for i := range imported {
		imported[i].Label = m.session.Results().UniqueLabel(imported[i].Label)
		m.session.Results().AddExisting(imported[i])
	}
	count := m.session.Results().Count()
	m.mu.Unlock()

	for _, r := range imported {
		if err := m.database.InsertResult(r); err != nil {
			logger.Error("failed to archive imported result", "id", r.ID, "error", err)
		}
	}

	if len(imported) > 0 {
		m.broadcast(ResultsChangedEvent{Count: count})
	}
	return len(imported), nil
}

// Session returns the analysis session.
func (m *Manager) Session() *session.Session {
	return m.session
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.watcher.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := m.database.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
