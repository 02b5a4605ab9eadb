package loader

import "strings"

// Mode is the device lighting mode a capture was recorded under.
type Mode string

// Known capture modes, matched against the source filename.
const (
	ModeNoLight    Mode = "nolight"
	ModeBreathing  Mode = "breath"
	ModeColorCycle Mode = "colorcycle"
	ModeFlash      Mode = "flash"
	ModeUnknown    Mode = "unknown"
)

var modeLabels = map[Mode]string{
	ModeNoLight:    "No Light",
	ModeBreathing:  "Breathing",
	ModeColorCycle: "Color Cycle",
	ModeFlash:      "Flash",
	ModeUnknown:    "Unknown",
}

// DetectMode infers the capture mode from a filename. Matching is
// case-insensitive substring search; colorcycle is checked before
// flash so "colorcycle_flashy.csv" does not misclassify.
func DetectMode(filename string) Mode {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, string(ModeNoLight)):
		return ModeNoLight
	case strings.Contains(name, string(ModeBreathing)):
		return ModeBreathing
	case strings.Contains(name, string(ModeColorCycle)):
		return ModeColorCycle
	case strings.Contains(name, string(ModeFlash)):
		return ModeFlash
	default:
		return ModeUnknown
	}
}

// Label returns the display name for the mode.
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return modeLabels[ModeUnknown]
}
