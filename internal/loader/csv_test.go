package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/series"
)

const sampleCSV = `Time(s),Voltage(V),Current(A),Power(W)
0.0,5.00,0.010,0.050
0.1,5.01,0.011,0.055
0.2,4.99,0.010,0.050
0.3,5.00,0.012,0.060
`

func TestLoadCSV(t *testing.T) {
	store, err := LoadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if store.Len() != 4 {
		t.Errorf("Len = %d, want 4", store.Len())
	}
	meta := store.Metadata()
	if meta.MinTime != 0 || meta.MaxTime != 0.3 {
		t.Errorf("time span = [%v, %v], want [0, 0.3]", meta.MinTime, meta.MaxTime)
	}
}

func TestLoadCSV_NoHeader(t *testing.T) {
	store, err := LoadCSV(strings.NewReader("0.0,5.0,0.01,0.05\n0.1,5.0,0.01,0.05\n"))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
}

func TestLoadCSV_DropsBadRows(t *testing.T) {
	input := `time,voltage,current,power
0.0,5.0,0.01,0.05
0.1,bad,0.01,0.05
0.2,5.0,0.01,-0.05
0.3,5.0,0.01,0.05
`
	store, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2 (non-numeric and negative-power rows dropped)", store.Len())
	}
}

func TestLoadCSV_TooFewColumns(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("time,power\n0.0,0.05\n"))
	if !errors.Is(err, series.ErrMissingTimeColumn) {
		t.Errorf("err = %v, want ErrMissingTimeColumn", err)
	}
}

func TestLoadCSV_NonNumericTimeColumn(t *testing.T) {
	input := `time,voltage,current,power
2026-01-01T00:00:00,5.0,0.01,0.05
2026-01-01T00:00:01,5.0,0.01,0.05
`
	_, err := LoadCSV(strings.NewReader(input))
	if !errors.Is(err, series.ErrNonNumericTime) {
		t.Errorf("err = %v, want ErrNonNumericTime", err)
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	if !errors.Is(err, series.ErrEmptyInput) {
		t.Errorf("err = %v, want ErrEmptyInput", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mouse_flash_1.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	capture, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if capture.SourceFilename != "mouse_flash_1.csv" {
		t.Errorf("SourceFilename = %q", capture.SourceFilename)
	}
	if capture.Mode != ModeFlash {
		t.Errorf("Mode = %q, want %q", capture.Mode, ModeFlash)
	}
	if capture.Store.Len() != 4 {
		t.Errorf("Len = %d, want 4", capture.Store.Len())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		filename string
		want     Mode
	}{
		{"mouse_nolight_1.csv", ModeNoLight},
		{"MOUSE_BREATH_2.CSV", ModeBreathing},
		{"colorcycle_capture.csv", ModeColorCycle},
		{"flash_test.csv", ModeFlash},
		{"colorcycle_flashy.csv", ModeColorCycle},
		{"capture_42.csv", ModeUnknown},
	}

	for _, tt := range tests {
		if got := DetectMode(tt.filename); got != tt.want {
			t.Errorf("DetectMode(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestModeLabel(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNoLight, "No Light"},
		{ModeBreathing, "Breathing"},
		{ModeColorCycle, "Color Cycle"},
		{ModeFlash, "Flash"},
		{ModeUnknown, "Unknown"},
		{Mode("bogus"), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
