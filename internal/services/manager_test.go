package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/config"
	"github.com/FinnWang/device-power-analyzer/internal/models"
)

const sampleCSV = `Time(s),Voltage(V),Current(A),Power(W)
0.0,5.00,0.010,0.050
1.0,5.01,0.011,0.055
2.0,4.99,0.010,0.050
3.0,5.00,0.012,0.060
4.0,5.00,0.010,0.050
`

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	cfg := &config.Config{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(tmpDir, "results.db"),
		Battery:      models.DefaultBatterySpec,
		ChartTheme:   "dark",
		// Disabled so tests never raise desktop notifications.
		NotifyThreshold: 0,
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func writeCapture(t *testing.T, m *Manager, name string) string {
	t.Helper()
	path := filepath.Join(m.cfg.DataDir, name)
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadCapture(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "mouse_breath_1.csv")

	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}

	if !m.Session().HasSeries() {
		t.Fatal("session has no series after load")
	}
	if m.Session().ModeLabel() != "Breathing" {
		t.Errorf("ModeLabel = %q, want Breathing", m.Session().ModeLabel())
	}
}

func TestCommitRange_ArchivesResult(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "mouse_flash_1.csv")
	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}

	result, err := m.CommitRange(models.TimeRange{StartTime: 0, EndTime: 4}, "Flash run", nil)
	if err != nil {
		t.Fatalf("CommitRange: %v", err)
	}

	archived, err := m.Database().GetResult(result.ID)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if archived.Label != "Flash run" {
		t.Errorf("archived label = %q, want %q", archived.Label, "Flash run")
	}
}

func TestRestoreArchive(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "mouse_nolight_1.csv")
	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}
	if _, err := m.CommitRange(models.TimeRange{StartTime: 0, EndTime: 4}, "", nil); err != nil {
		t.Fatalf("CommitRange: %v", err)
	}

	// A fresh session restores from the same archive.
	m.Session().Results().ClearAll()
	n, err := m.RestoreArchive()
	if err != nil {
		t.Fatalf("RestoreArchive: %v", err)
	}
	if n != 1 {
		t.Errorf("restored %d results, want 1", n)
	}
	if m.Session().Results().Count() != 1 {
		t.Errorf("session count = %d, want 1", m.Session().Results().Count())
	}
}

func TestDeleteResult_RemovesFromArchive(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "capture.csv")
	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}
	result, err := m.CommitRange(models.TimeRange{StartTime: 0, EndTime: 4}, "", nil)
	if err != nil {
		t.Fatalf("CommitRange: %v", err)
	}

	if !m.DeleteResult(result.ID) {
		t.Fatal("DeleteResult reported no deletion")
	}
	count, err := m.Database().CountResults()
	if err != nil {
		t.Fatalf("CountResults: %v", err)
	}
	if count != 0 {
		t.Errorf("archive count = %d, want 0", count)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "capture.csv")
	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}
	if _, err := m.CommitRange(models.TimeRange{StartTime: 0, EndTime: 4}, "Baseline", nil); err != nil {
		t.Fatalf("CommitRange: %v", err)
	}

	data, err := m.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	n, err := m.ImportJSON(data)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if n != 1 {
		t.Errorf("imported %d results, want 1", n)
	}
	// The imported copy's label must have been uniqued.
	all := m.Session().Results().All()
	if len(all) != 2 {
		t.Fatalf("session count = %d, want 2", len(all))
	}
	if all[0].Label == all[1].Label {
		t.Errorf("duplicate labels after import: %q", all[0].Label)
	}
}

func TestWatcher_AutoLoadsCapture(t *testing.T) {
	m := newTestManager(t)
	ch, _ := m.Subscribe()
	defer m.Unsubscribe(ch)

	writeCapture(t, m, "mouse_colorcycle_1.csv")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-ch:
			if loaded, ok := ev.(SeriesLoadedEvent); ok {
				if loaded.ModeLabel != "Color Cycle" {
					t.Errorf("ModeLabel = %q, want Color Cycle", loaded.ModeLabel)
				}
				return
			}
		case <-deadline:
			t.Fatal("no SeriesLoadedEvent after dropping a capture file")
		}
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	m := newTestManager(t)
	ch, cmd := m.Subscribe()
	if cmd == nil {
		t.Error("Subscribe returned nil cmd")
	}
	m.Unsubscribe(ch)

	// Channel is closed after unsubscribe.
	if _, ok := <-ch; ok {
		t.Error("channel still open after Unsubscribe")
	}
}

func TestCompare_ViaManager(t *testing.T) {
	m := newTestManager(t)
	path := writeCapture(t, m, "capture.csv")
	if err := m.LoadCapture(path); err != nil {
		t.Fatalf("LoadCapture: %v", err)
	}

	a, err := m.CommitRange(models.TimeRange{StartTime: 0, EndTime: 2}, "", nil)
	if err != nil {
		t.Fatalf("CommitRange: %v", err)
	}
	b, err := m.CommitRange(models.TimeRange{StartTime: 2, EndTime: 4}, "", nil)
	if err != nil {
		t.Fatalf("CommitRange: %v", err)
	}

	report, err := m.Compare([]string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if report.Power.Mean <= 0 {
		t.Errorf("power mean = %v, want positive", report.Power.Mean)
	}
}
