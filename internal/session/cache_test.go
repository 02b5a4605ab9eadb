package session

import (
	"errors"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/series"
)

func testStore(t *testing.T) *series.Store {
	t.Helper()
	rows := make([]models.Row, 11)
	for i := range rows {
		rows[i] = models.Row{
			Time:    float64(i),
			Voltage: 5.0,
			Current: 0.01,
			Power:   0.05,
		}
	}
	store, err := series.Build(rows)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return store
}

func TestGetOrCompute_CachesHit(t *testing.T) {
	store := testStore(t)
	cache := NewPreviewCache()
	r := models.TimeRange{StartTime: 2, EndTime: 8}

	first, err := cache.GetOrCompute(store, r, models.DefaultBatterySpec)
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	second, err := cache.GetOrCompute(store, r, models.DefaultBatterySpec)
	if err != nil {
		t.Fatalf("GetOrCompute (repeat): %v", err)
	}
	if first != second {
		t.Error("repeat lookup returned a different preview object")
	}
	if hits, misses := cache.HitRate(); hits != 1 || misses != 1 {
		t.Errorf("hit rate = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestGetOrCompute_KeyRoundsToMicro(t *testing.T) {
	store := testStore(t)
	cache := NewPreviewCache()

	a := models.TimeRange{StartTime: 2.0000001, EndTime: 8.0000004}
	b := models.TimeRange{StartTime: 2.0000003, EndTime: 8.0}

	if _, err := cache.GetOrCompute(store, a, models.DefaultBatterySpec); err != nil {
		t.Fatalf("GetOrCompute(a): %v", err)
	}
	if _, err := cache.GetOrCompute(store, b, models.DefaultBatterySpec); err != nil {
		t.Fatalf("GetOrCompute(b): %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1 (sub-microsecond ranges should collide)", cache.Len())
	}
}

func TestGetOrCompute_DistinctRangesDistinctEntries(t *testing.T) {
	store := testStore(t)
	cache := NewPreviewCache()

	ranges := []models.TimeRange{
		{StartTime: 0, EndTime: 10},
		{StartTime: 0, EndTime: 5},
		{StartTime: 5, EndTime: 10},
	}
	for _, r := range ranges {
		if _, err := cache.GetOrCompute(store, r, models.DefaultBatterySpec); err != nil {
			t.Fatalf("GetOrCompute(%v): %v", r, err)
		}
	}
	if cache.Len() != len(ranges) {
		t.Errorf("cache holds %d entries, want %d", cache.Len(), len(ranges))
	}
}

func TestGetOrCompute_FailureNotCached(t *testing.T) {
	store := testStore(t)
	cache := NewPreviewCache()
	bad := models.TimeRange{StartTime: 8, EndTime: 2}

	_, err := cache.GetOrCompute(store, bad, models.DefaultBatterySpec)
	if !errors.Is(err, series.ErrInvalidOrder) {
		t.Fatalf("err = %v, want ErrInvalidOrder", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed evaluation was cached (len = %d)", cache.Len())
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	cache := NewPreviewCache()

	if _, err := cache.GetOrCompute(store, models.TimeRange{StartTime: 0, EndTime: 10}, models.DefaultBatterySpec); err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if n := cache.Clear(); n != 1 {
		t.Errorf("Clear() = %d, want 1", n)
	}
	if cache.Len() != 0 {
		t.Errorf("cache not empty after Clear (len = %d)", cache.Len())
	}
}
