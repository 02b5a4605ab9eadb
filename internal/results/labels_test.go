package results

import (
	"errors"
	"strings"
	"testing"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

func TestValidateLabel(t *testing.T) {
	store := NewStore()
	store.Add(AddParams{Label: "Idle", SourceFilename: "a.csv"})

	tests := []struct {
		name    string
		label   string
		wantErr bool
	}{
		{"fresh label", "Gaming", false},
		{"trims surrounding space", "  Office  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", 51), true},
		{"exactly max length", strings.Repeat("x", 50), false},
		{"duplicate", "Idle", true},
		{"case differs from existing", "idle", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.ValidateLabel(tt.label)
			if tt.wantErr && !errors.Is(err, ErrLabelInvalid) {
				t.Errorf("ValidateLabel(%q) = %v, want ErrLabelInvalid", tt.label, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateLabel(%q) = %v, want nil", tt.label, err)
			}
		})
	}
}

func TestValidateLabel_RenameToExistingFails(t *testing.T) {
	store := NewStore()
	store.Add(AddParams{Label: "First"})
	second := store.Add(AddParams{Label: "Second"})

	// Caller-side validation step before Rename.
	if err := store.ValidateLabel("First"); !errors.Is(err, ErrLabelInvalid) {
		t.Fatalf("ValidateLabel(First) = %v, want ErrLabelInvalid", err)
	}

	// Rename itself does not enforce uniqueness.
	if !store.Rename(second, "First") {
		t.Error("Rename() should only check existence, not uniqueness")
	}
}

func TestUniqueLabel(t *testing.T) {
	store := NewStore()
	store.Add(AddParams{Label: "Idle"})
	store.Add(AddParams{Label: "Idle (1)"})

	tests := []struct {
		base string
		want string
	}{
		{"Fresh", "Fresh"},
		{"Idle", "Idle (2)"},
		{"Idle (1)", "Idle (1) (1)"},
	}

	for _, tt := range tests {
		if got := store.UniqueLabel(tt.base); got != tt.want {
			t.Errorf("UniqueLabel(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestUniqueLabel_AbsentFromStore(t *testing.T) {
	store := NewStore()
	store.Add(AddParams{Label: "Run"})

	got := store.UniqueLabel("Run")
	if err := store.ValidateLabel(got); err != nil {
		t.Errorf("UniqueLabel() produced a label the store rejects: %v", err)
	}
}

func TestAutoLabel(t *testing.T) {
	tests := []struct {
		duration float64
		want     string
	}{
		{4, "Flash-short (4.0s)"},
		{30, "Flash-medium (30.0s)"},
		{120, "Flash-long (120.0s)"},
	}

	for _, tt := range tests {
		r := models.AnalysisResult{ModeLabel: "Flash", Duration: tt.duration}
		if got := AutoLabel(r); got != tt.want {
			t.Errorf("AutoLabel(%.0fs) = %q, want %q", tt.duration, got, tt.want)
		}
	}
}

func TestSuggestLabels(t *testing.T) {
	r := models.AnalysisResult{
		ModeLabel: "Breathing",
		StartTime: 0,
		Duration:  20,
		Stats:     models.StatisticsSnapshot{AvgPowerMW: 75},
	}

	got := SuggestLabels(r)
	want := []string{
		"Breathing - short test",
		"Breathing - medium power",
		"Breathing - opening segment",
	}

	if len(got) != len(want) {
		t.Fatalf("SuggestLabels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
