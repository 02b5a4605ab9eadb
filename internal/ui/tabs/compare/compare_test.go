package compare

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/models"
)

func testReport() (*models.ComparisonReport, []models.BaselineEntry) {
	report := &models.ComparisonReport{
		Power:        models.ValueStats{Min: 50, Max: 120, Mean: 85, Std: 28.7, Range: 70},
		BatteryHours: models.ValueStats{Min: 30, Max: 74, Mean: 52, Std: 18, Range: 44},
		Duration:     models.ValueStats{Min: 4, Max: 10, Mean: 7, Std: 2.4, Range: 6},
		Modes:        []string{"Breathing", "Flash"},
		Files:        []string{"capture.csv"},
	}
	baseline := []models.BaselineEntry{
		{ID: "id-1", Label: "Breathing", AvgPowerW: 0.05, PowerIncreasePercent: 0},
		{ID: "id-2", Label: "Flash", AvgPowerW: 0.12, PowerIncreasePercent: 140},
	}
	return report, baseline
}

func TestNew(t *testing.T) {
	m := New(app.NewState(), nil)
	if m == nil {
		t.Fatal("New returned nil")
	}
}

func TestModel_Init(t *testing.T) {
	m := New(app.NewState(), nil)
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
}

func TestModel_View_Empty(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "Mark results with space") {
		t.Errorf("empty view should explain marking, got %q", view)
	}
}

func TestModel_View_MarkedHint(t *testing.T) {
	state := app.NewState()
	state.SetResults([]models.AnalysisResult{
		{ID: "id-1", Label: "A"},
		{ID: "id-2", Label: "B"},
	})
	state.ToggleMarked("id-1")
	state.ToggleMarked("id-2")

	m := New(state, nil)
	m.SetSize(80, 24)

	view := m.View()
	if !strings.Contains(view, "2 results marked") {
		t.Errorf("view should count marked results, got %q", view)
	}
}

func TestModel_View_WithReport(t *testing.T) {
	state := app.NewState()
	report, baseline := testReport()
	state.SetComparison(report, baseline)

	m := New(state, nil)
	m.SetSize(100, 40)

	view := m.View()
	if !strings.Contains(view, "Spread Across Selection") {
		t.Error("view should contain report card")
	}
	if !strings.Contains(view, "Breathing") {
		t.Error("view should contain baseline labels")
	}
	if !strings.Contains(view, "+140.0% over baseline") {
		t.Error("view should show the increase over baseline")
	}
}

func TestModel_RunKey_TooFewMarked(t *testing.T) {
	state := app.NewState()
	m := New(state, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a warning command")
	}
	msg := cmd()
	notif, ok := msg.(app.AddNotificationMsg)
	if !ok {
		t.Fatalf("msg = %T, want AddNotificationMsg", msg)
	}
	if notif.Type != app.NotificationWarning {
		t.Errorf("Type = %v, want warning", notif.Type)
	}
}

func TestModel_ClearMarksKey(t *testing.T) {
	state := app.NewState()
	state.SetResults([]models.AnalysisResult{{ID: "id-1", Label: "A"}})
	state.ToggleMarked("id-1")
	report, baseline := testReport()
	state.SetComparison(report, baseline)

	m := New(state, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	if len(state.MarkedIDs()) != 0 {
		t.Error("marks should be cleared")
	}
	if state.GetComparison() != nil {
		t.Error("comparison should be cleared")
	}
}

func TestModel_SetSize(t *testing.T) {
	m := New(app.NewState(), nil)
	m.SetSize(100, 50)
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState(), nil)
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp empty")
	}
}
