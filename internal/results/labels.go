package results

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// MaxLabelLength is the longest accepted result label.
const MaxLabelLength = 50

// ErrLabelInvalid is the sentinel wrapped by every label validation
// failure. The wrapping message carries the human-readable reason.
var ErrLabelInvalid = errors.New("invalid label")

// ValidateLabel checks a candidate label: non-empty after trimming, at
// most MaxLabelLength characters, and not already used by any stored
// result (case-sensitive exact match).
func (s *Store) ValidateLabel(label string) error {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return fmt.Errorf("%w: label is empty", ErrLabelInvalid)
	}
	if utf8.RuneCountInString(trimmed) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrLabelInvalid, MaxLabelLength)
	}
	for _, r := range s.results {
		if r.Label == trimmed {
			return fmt.Errorf("%w: label %q already in use", ErrLabelInvalid, trimmed)
		}
	}
	return nil
}

// UniqueLabel returns base unchanged if it is free, otherwise the base
// with the smallest " (n)" suffix, counting from 1, that is absent
// from the store.
func (s *Store) UniqueLabel(base string) string {
	if !s.labelExists(base) {
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", base, n)
		if !s.labelExists(candidate) {
			return candidate
		}
	}
}

func (s *Store) labelExists(label string) bool {
	for _, r := range s.results {
		if r.Label == label {
			return true
		}
	}
	return false
}

// AutoLabel derives a label from a result's mode and duration.
func AutoLabel(r models.AnalysisResult) string {
	var span string
	switch {
	case r.Duration < 10:
		span = "short"
	case r.Duration < 60:
		span = "medium"
	default:
		span = "long"
	}
	return fmt.Sprintf("%s-%s (%.1fs)", r.ModeLabel, span, r.Duration)
}

// SuggestLabels proposes labels for a result based on its duration,
// power level and position within the capture.
func SuggestLabels(r models.AnalysisResult) []string {
	var suggestions []string

	switch {
	case r.Duration < 5:
		suggestions = append(suggestions, r.ModeLabel+" - startup")
	case r.Duration < 30:
		suggestions = append(suggestions, r.ModeLabel+" - short test")
	case r.Duration < 300:
		suggestions = append(suggestions, r.ModeLabel+" - standard test")
	default:
		suggestions = append(suggestions, r.ModeLabel+" - long test")
	}

	switch avg := r.Stats.AvgPowerMW; {
	case avg < 50:
		suggestions = append(suggestions, r.ModeLabel+" - low power")
	case avg < 100:
		suggestions = append(suggestions, r.ModeLabel+" - medium power")
	default:
		suggestions = append(suggestions, r.ModeLabel+" - high power")
	}

	startRatio := 0.0
	if r.Duration > 0 {
		startRatio = r.StartTime / (r.StartTime + r.Duration)
	}
	switch {
	case startRatio < 0.1:
		suggestions = append(suggestions, r.ModeLabel+" - opening segment")
	case startRatio > 0.8:
		suggestions = append(suggestions, r.ModeLabel+" - closing segment")
	default:
		suggestions = append(suggestions, r.ModeLabel+" - middle segment")
	}

	return suggestions
}
