package session

import (
	"errors"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/results"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	s := New(models.DefaultBatterySpec, "dark")
	s.LoadSeries(testStore(t), "idle.csv", "No Light")
	return s
}

func TestPreview_NoSeries(t *testing.T) {
	s := New(models.DefaultBatterySpec, "dark")
	if _, err := s.Preview(models.TimeRange{StartTime: 0, EndTime: 1}); !errors.Is(err, ErrNoSeries) {
		t.Errorf("err = %v, want ErrNoSeries", err)
	}
	if _, err := s.Commit(models.TimeRange{StartTime: 0, EndTime: 1}, "", nil); !errors.Is(err, ErrNoSeries) {
		t.Errorf("Commit err = %v, want ErrNoSeries", err)
	}
}

func TestPreview_UsesCache(t *testing.T) {
	s := testSession(t)
	r := models.TimeRange{StartTime: 1, EndTime: 9}

	first, err := s.Preview(r)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	second, err := s.Preview(r)
	if err != nil {
		t.Fatalf("Preview (repeat): %v", err)
	}
	if first != second {
		t.Error("repeated preview returned a different object")
	}
}

func TestLoadSeries_ClearsCache(t *testing.T) {
	s := testSession(t)
	if _, err := s.Preview(models.TimeRange{StartTime: 0, EndTime: 10}); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	s.LoadSeries(testStore(t), "flash.csv", "Flash")
	if s.Cache().Len() != 0 {
		t.Errorf("cache not cleared on load (len = %d)", s.Cache().Len())
	}
	if s.SourceFilename() != "flash.csv" || s.ModeLabel() != "Flash" {
		t.Errorf("source = (%q, %q), want (flash.csv, Flash)", s.SourceFilename(), s.ModeLabel())
	}
}

func TestSetBattery_ClearsCache(t *testing.T) {
	s := testSession(t)
	if _, err := s.Preview(models.TimeRange{StartTime: 0, EndTime: 10}); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	s.SetBattery(models.BatterySpec{CapacityMAh: 500, Voltage: 3.7})
	if s.Cache().Len() != 0 {
		t.Errorf("cache not cleared on battery change (len = %d)", s.Cache().Len())
	}
}

func TestCommit(t *testing.T) {
	s := testSession(t)
	r := models.TimeRange{StartTime: 2, EndTime: 8}

	res, err := s.Commit(r, "", map[string]string{"note": "warmup excluded"})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Label != "Result 1" {
		t.Errorf("Label = %q, want %q", res.Label, "Result 1")
	}
	if res.SourceFilename != "idle.csv" || res.ModeLabel != "No Light" {
		t.Errorf("source = (%q, %q), want (idle.csv, No Light)", res.SourceFilename, res.ModeLabel)
	}
	if res.Duration != 6 {
		t.Errorf("Duration = %v, want 6", res.Duration)
	}
	if res.ChartTheme != "dark" {
		t.Errorf("ChartTheme = %q, want %q", res.ChartTheme, "dark")
	}
	if res.Metadata["note"] != "warmup excluded" {
		t.Errorf("Metadata = %v", res.Metadata)
	}
	if s.Results().Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Results().Count())
	}
}

func TestCommit_RejectsDuplicateLabel(t *testing.T) {
	s := testSession(t)
	r := models.TimeRange{StartTime: 0, EndTime: 10}

	if _, err := s.Commit(r, "Idle", nil); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	_, err := s.Commit(r, "Idle", nil)
	if !errors.Is(err, results.ErrLabelInvalid) {
		t.Errorf("err = %v, want ErrLabelInvalid", err)
	}
	if s.Results().Count() != 1 {
		t.Errorf("Count = %d, want 1 after rejected commit", s.Results().Count())
	}
}

func TestCommit_StatsMatchPreview(t *testing.T) {
	s := testSession(t)
	r := models.TimeRange{StartTime: 0, EndTime: 10}

	p, err := s.Preview(r)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	res, err := s.Commit(r, "", nil)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Stats.AvgPowerMW != p.Stats.AvgPowerMW {
		t.Errorf("committed AvgPowerMW = %v, preview = %v", res.Stats.AvgPowerMW, p.Stats.AvgPowerMW)
	}
	if res.Stats.DataPoints != p.Stats.DataPoints {
		t.Errorf("committed DataPoints = %d, preview = %d", res.Stats.DataPoints, p.Stats.DataPoints)
	}
}

func TestReset(t *testing.T) {
	s := testSession(t)
	if _, err := s.Commit(models.TimeRange{StartTime: 0, EndTime: 10}, "", nil); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	s.Reset()
	if s.HasSeries() {
		t.Error("series survived Reset")
	}
	if s.Results().Count() != 0 {
		t.Errorf("results survived Reset (count = %d)", s.Results().Count())
	}
	if s.Cache().Len() != 0 {
		t.Errorf("cache survived Reset (len = %d)", s.Cache().Len())
	}
}
