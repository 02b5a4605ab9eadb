// Package models defines data structures and domain types.
package models

import "fmt"

// FormatPower renders a power value in the most readable unit.
func FormatPower(powerW float64) string {
	if powerW >= 1 {
		return fmt.Sprintf("%.3f W", powerW)
	}
	return fmt.Sprintf("%.2f mW", powerW*1000)
}

// FormatDuration renders a duration in seconds as a human-scale string.
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1f s", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f min", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.1f h", seconds/3600)
	default:
		return fmt.Sprintf("%.1f d", seconds/86400)
	}
}

// FormatBatteryLife renders a projection, including the infinite case.
func FormatBatteryLife(life BatteryLife) string {
	if life.IsUnlimited() {
		return "unlimited (no net draw)"
	}
	if life.Hours < 48 {
		return fmt.Sprintf("%.1f hours", life.Hours)
	}
	return fmt.Sprintf("%.1f days", life.Days)
}
