package compare

import (
	"errors"
	"math"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/results"
)

func resultWith(label, mode, file string, avgPowerMW, hours, duration float64) models.AnalysisResult {
	return models.AnalysisResult{
		ID:             "id-" + label,
		Label:          label,
		SourceFilename: file,
		ModeLabel:      mode,
		Duration:       duration,
		Stats: models.StatisticsSnapshot{
			AvgPowerW:  avgPowerMW / 1000,
			AvgPowerMW: avgPowerMW,
			Battery:    models.BatteryLife{Hours: hours, Days: hours / 24},
		},
	}
}

func TestCompareResults(t *testing.T) {
	selected := []models.AnalysisResult{
		resultWith("Idle", "No Light", "idle.csv", 40, 100, 30),
		resultWith("Breathing", "Breathing", "breath.csv", 60, 80, 30),
		resultWith("Flash", "Flash", "flash.csv", 110, 40, 60),
	}

	report, err := CompareResults(selected)
	if err != nil {
		t.Fatalf("CompareResults: %v", err)
	}

	if report.Power.Min != 40 || report.Power.Max != 110 {
		t.Errorf("power min/max = %v/%v, want 40/110", report.Power.Min, report.Power.Max)
	}
	if report.Power.Mean != 70 {
		t.Errorf("power mean = %v, want 70", report.Power.Mean)
	}
	if report.Power.Range != 70 {
		t.Errorf("power range = %v, want 70", report.Power.Range)
	}
	// Population std of {40, 60, 110}: sqrt(((-30)^2 + (-10)^2 + 40^2) / 3).
	wantStd := math.Sqrt((900.0 + 100.0 + 1600.0) / 3.0)
	if math.Abs(report.Power.Std-wantStd) > 1e-9 {
		t.Errorf("power std = %v, want %v", report.Power.Std, wantStd)
	}

	if report.BatteryHours.Min != 40 || report.BatteryHours.Max != 100 {
		t.Errorf("battery min/max = %v/%v, want 40/100", report.BatteryHours.Min, report.BatteryHours.Max)
	}
	if report.Duration.Mean != 40 {
		t.Errorf("duration mean = %v, want 40", report.Duration.Mean)
	}

	wantModes := []string{"No Light", "Breathing", "Flash"}
	if len(report.Modes) != len(wantModes) {
		t.Fatalf("Modes = %v, want %v", report.Modes, wantModes)
	}
	for i, m := range wantModes {
		if report.Modes[i] != m {
			t.Errorf("Modes[%d] = %q, want %q", i, report.Modes[i], m)
		}
	}
}

func TestCompareResults_SingleResultZeroSpread(t *testing.T) {
	report, err := CompareResults([]models.AnalysisResult{
		resultWith("Only", "Flash", "flash.csv", 80, 50, 10),
	})
	if err != nil {
		t.Fatalf("CompareResults: %v", err)
	}
	if report.Power.Std != 0 || report.Power.Range != 0 {
		t.Errorf("std/range = %v/%v, want 0/0", report.Power.Std, report.Power.Range)
	}
	if report.Power.Mean != 80 || report.Power.Min != 80 || report.Power.Max != 80 {
		t.Errorf("mean/min/max = %v/%v/%v, want all 80", report.Power.Mean, report.Power.Min, report.Power.Max)
	}
}

func TestCompareResults_Empty(t *testing.T) {
	if _, err := CompareResults(nil); !errors.Is(err, ErrTooFewResults) {
		t.Errorf("err = %v, want ErrTooFewResults", err)
	}
}

func TestCompareResults_UnlimitedBatteryExcluded(t *testing.T) {
	selected := []models.AnalysisResult{
		resultWith("Active", "Flash", "flash.csv", 100, 37, 10),
		resultWith("Charging", "No Light", "charge.csv", -5, math.Inf(1), 10),
	}
	report, err := CompareResults(selected)
	if err != nil {
		t.Fatalf("CompareResults: %v", err)
	}
	if report.BatteryHours.Mean != 37 || report.BatteryHours.Max != 37 {
		t.Errorf("battery mean/max = %v/%v, want 37/37", report.BatteryHours.Mean, report.BatteryHours.Max)
	}
	if math.IsInf(report.BatteryHours.Std, 0) || math.IsNaN(report.BatteryHours.Std) {
		t.Errorf("battery std = %v, want finite", report.BatteryHours.Std)
	}
}

func TestCompare_ResolvesIDs(t *testing.T) {
	store := results.NewStore()
	idA := store.Add(results.AddParams{
		Label: "A", StartTime: 0, EndTime: 10,
		Stats: models.StatisticsSnapshot{AvgPowerMW: 30, Battery: models.BatteryLife{Hours: 100}},
	})
	idB := store.Add(results.AddParams{
		Label: "B", StartTime: 0, EndTime: 10,
		Stats: models.StatisticsSnapshot{AvgPowerMW: 50, Battery: models.BatteryLife{Hours: 60}},
	})

	report, err := Compare(store, []string{idA, idB})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if report.Power.Mean != 40 {
		t.Errorf("power mean = %v, want 40", report.Power.Mean)
	}

	if _, err := Compare(store, []string{idA, "missing"}); !errors.Is(err, ErrUnknownResult) {
		t.Errorf("err = %v, want ErrUnknownResult", err)
	}
	if _, err := Compare(store, nil); !errors.Is(err, ErrTooFewResults) {
		t.Errorf("err = %v, want ErrTooFewResults", err)
	}
}

func TestBaselineRelative(t *testing.T) {
	selected := []models.AnalysisResult{
		resultWith("High", "Flash", "flash.csv", 80, 30, 10),
		resultWith("Low", "No Light", "idle.csv", 40, 90, 10),
		resultWith("Mid", "Breathing", "breath.csv", 60, 50, 10),
	}

	entries, err := BaselineRelative(selected)
	if err != nil {
		t.Fatalf("BaselineRelative: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	// Baseline is Low at 0.04 W.
	if math.Abs(entries[0].PowerIncreasePercent-100) > 1e-9 {
		t.Errorf("High increase = %v, want 100", entries[0].PowerIncreasePercent)
	}
	if entries[1].PowerIncreasePercent != 0 {
		t.Errorf("Low increase = %v, want 0", entries[1].PowerIncreasePercent)
	}
	if math.Abs(entries[2].PowerIncreasePercent-50) > 1e-9 {
		t.Errorf("Mid increase = %v, want 50", entries[2].PowerIncreasePercent)
	}
}

func TestBaselineRelative_ZeroBaseline(t *testing.T) {
	selected := []models.AnalysisResult{
		resultWith("Zero", "No Light", "idle.csv", 0, math.Inf(1), 10),
		resultWith("Some", "Flash", "flash.csv", 50, 70, 10),
	}
	entries, err := BaselineRelative(selected)
	if err != nil {
		t.Fatalf("BaselineRelative: %v", err)
	}
	for _, e := range entries {
		if e.PowerIncreasePercent != 0 {
			t.Errorf("%s increase = %v, want 0 with zero baseline", e.Label, e.PowerIncreasePercent)
		}
	}
}
