package info

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/config"
	"github.com/FinnWang/device-power-analyzer/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		DataDir:      "/tmp/dpa-data",
		DatabasePath: "/tmp/dpa-data/results.db",
		Battery: models.BatterySpec{
			CapacityMAh: 2000,
			Voltage:     3.7,
		},
		ChartTheme:      "dark",
		NotifyThreshold: 24 * time.Hour,
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_View(t *testing.T) {
	state := app.NewState()
	m := New(state, testConfig())
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "2000 mAh @ 3.7 V") {
		t.Error("view should contain the battery spec")
	}
	if !strings.Contains(view, "/tmp/dpa-data") {
		t.Error("view should contain the data directory")
	}
	if !strings.Contains(view, "0 committed") {
		t.Error("view should contain the result count")
	}
	if !strings.Contains(view, "none loaded") {
		t.Error("view should report no capture")
	}
}

func TestModel_View_WithSeries(t *testing.T) {
	state := app.NewState()
	state.SetSeries(&app.SeriesInfo{
		SourceFilename: "capture.csv",
		ModeLabel:      "Color Cycle",
		Metadata:       models.SeriesMetadata{MinTime: 0, MaxTime: 5},
	})

	m := New(state, testConfig())
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "capture.csv (Color Cycle)") {
		t.Errorf("view should name the loaded capture, got %q", view)
	}
}

func TestModel_View_NilConfig(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "No configuration loaded") {
		t.Error("view should handle a nil config")
	}
}

func TestModel_Update(t *testing.T) {
	m := New(app.NewState(), testConfig())
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if updated == nil {
		t.Error("Update returned nil model")
	}
}

func TestModel_SetSize(t *testing.T) {
	m := New(app.NewState(), testConfig())
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), testConfig())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
