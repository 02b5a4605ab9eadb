package series

import (
	"errors"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

func testMetadata() models.SeriesMetadata {
	return models.SeriesMetadata{
		MinTime:        0,
		MaxTime:        10,
		TotalDuration:  10,
		DataPoints:     11,
		TimeResolution: 1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       models.TimeRange
		wantErr error
	}{
		{"valid interior range", models.TimeRange{StartTime: 2, EndTime: 8}, nil},
		{"full span", models.TimeRange{StartTime: 0, EndTime: 10}, nil},
		{"exactly two resolution units", models.TimeRange{StartTime: 3, EndTime: 5}, nil},
		{"reversed", models.TimeRange{StartTime: 5, EndTime: 3}, ErrInvalidOrder},
		{"degenerate", models.TimeRange{StartTime: 4, EndTime: 4}, ErrInvalidOrder},
		{"below lower bound", models.TimeRange{StartTime: -1, EndTime: 5}, ErrOutOfBounds},
		{"above upper bound", models.TimeRange{StartTime: 5, EndTime: 11}, ErrOutOfBounds},
		{"span too small", models.TimeRange{StartTime: 3, EndTime: 4.5}, ErrRangeTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.r, testMetadata())
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_OrderCheckedFirst(t *testing.T) {
	// A reversed range that also leaves the bounds must still report
	// InvalidOrder, not OutOfBounds.
	err := Validate(models.TimeRange{StartTime: 20, EndTime: -5}, testMetadata())
	if !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("Validate() = %v, want ErrInvalidOrder", err)
	}
}

func TestValidate_ZeroResolutionSkipsSpanCheck(t *testing.T) {
	meta := testMetadata()
	meta.TimeResolution = 0

	if err := Validate(models.TimeRange{StartTime: 1, EndTime: 1.0001}, meta); err != nil {
		t.Errorf("Validate() with zero resolution = %v, want nil", err)
	}
}

func TestValidate_FullSpanAlwaysValid(t *testing.T) {
	// Even with a resolution so coarse that 2x exceeds the full span.
	meta := models.SeriesMetadata{MinTime: 0, MaxTime: 1, TimeResolution: 1}

	if err := Validate(models.TimeRange{StartTime: 0, EndTime: 1}, meta); err != nil {
		t.Errorf("Validate(full span) = %v, want nil", err)
	}
}

func TestFilterRange(t *testing.T) {
	store, err := Build(uniformRows(10))
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	rows, err := store.FilterRange(models.TimeRange{StartTime: 2, EndTime: 5})
	if err != nil {
		t.Fatalf("FilterRange() failed: %v", err)
	}

	if len(rows) != 4 {
		t.Errorf("FilterRange() returned %d rows, want 4 (inclusive bounds)", len(rows))
	}
	if rows[0].Time != 2 || rows[len(rows)-1].Time != 5 {
		t.Errorf("FilterRange() bounds = [%v, %v], want [2, 5]", rows[0].Time, rows[len(rows)-1].Time)
	}
}

func TestFilterRange_Empty(t *testing.T) {
	// Sparse series: a range that validates against metadata but
	// contains no samples.
	store, err := Build([]models.Row{{Time: 0}, {Time: 10}})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	_, err = store.FilterRange(models.TimeRange{StartTime: 3, EndTime: 7})
	if !errors.Is(err, ErrEmptyResult) {
		t.Errorf("FilterRange() = %v, want ErrEmptyResult", err)
	}
}

func TestFilterRange_DoesNotMutateSource(t *testing.T) {
	store, err := Build(uniformRows(10))
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	rows, err := store.FilterRange(models.TimeRange{StartTime: 0, EndTime: 9})
	if err != nil {
		t.Fatalf("FilterRange() failed: %v", err)
	}
	rows[0].Power = 42

	if store.Rows()[0].Power == 42 {
		t.Error("FilterRange() result aliases the source table")
	}
}
