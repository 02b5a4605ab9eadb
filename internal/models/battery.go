// Package models defines data structures and domain types.
package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// BatterySpec describes the battery used for life projections.
// Callers supply it; range sanity checks are a UI concern.
type BatterySpec struct {
	CapacityMAh float64 `json:"capacity_mah"`
	Voltage     float64 `json:"voltage"`
}

// EnergyJoules returns the total battery energy in joules.
func (b BatterySpec) EnergyJoules() float64 {
	return b.CapacityMAh * b.Voltage * 3.6
}

// DefaultBatterySpec is a typical 1000 mAh / 3.7 V wireless-device cell.
var DefaultBatterySpec = BatterySpec{CapacityMAh: 1000, Voltage: 3.7}

// BatteryLife is a projected runtime at a given average power draw.
// Hours and Days are +Inf when the average power is zero or negative.
type BatteryLife struct {
	Hours float64 `json:"hours"`
	Days  float64 `json:"days"`
}

// IsUnlimited reports whether the projection is the infinite sentinel.
func (b BatteryLife) IsUnlimited() bool {
	return math.IsInf(b.Hours, 1)
}

// infJSON is the textual encoding for the infinite projection. JSON has
// no Inf literal, so the sentinel round-trips through a string.
const infJSON = "inf"

type batteryLifeJSON struct {
	Hours any `json:"hours"`
	Days  any `json:"days"`
}

// MarshalJSON encodes infinite projections as the string "inf".
func (b BatteryLife) MarshalJSON() ([]byte, error) {
	doc := batteryLifeJSON{Hours: b.Hours, Days: b.Days}
	if math.IsInf(b.Hours, 1) {
		doc.Hours = infJSON
	}
	if math.IsInf(b.Days, 1) {
		doc.Days = infJSON
	}
	return json.Marshal(doc)
}

// UnmarshalJSON accepts numbers or the "inf" sentinel string.
func (b *BatteryLife) UnmarshalJSON(data []byte) error {
	var doc batteryLifeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	hours, err := jsonHours(doc.Hours, "hours")
	if err != nil {
		return err
	}
	days, err := jsonHours(doc.Days, "days")
	if err != nil {
		return err
	}
	b.Hours = hours
	b.Days = days
	return nil
}

func jsonHours(v any, field string) (float64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return t, nil
	case string:
		if t == infJSON {
			return math.Inf(1), nil
		}
	}
	return 0, fmt.Errorf("battery_life.%s: unsupported value %v", field, v)
}
