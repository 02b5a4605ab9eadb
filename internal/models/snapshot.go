// Package models defines data structures and domain types.
package models

// StatisticsSnapshot holds the descriptive statistics for one table,
// either the full series or a filtered time range. It is immutable once
// produced; a committed result owns its own value copy.
//
// Every electrical quantity carries both the SI field and the scaled
// display field (mW, mA) so consumers never rescale.
type StatisticsSnapshot struct {
	DataPoints int     `json:"data_points"`
	Duration   float64 `json:"duration_s"`

	AvgVoltageV float64 `json:"avg_voltage_v"`
	MaxVoltageV float64 `json:"max_voltage_v"`
	MinVoltageV float64 `json:"min_voltage_v"`
	StdVoltageV float64 `json:"std_voltage_v"`

	AvgCurrentA  float64 `json:"avg_current_a"`
	AvgCurrentMA float64 `json:"avg_current_ma"`
	MaxCurrentA  float64 `json:"max_current_a"`
	MaxCurrentMA float64 `json:"max_current_ma"`
	MinCurrentA  float64 `json:"min_current_a"`
	MinCurrentMA float64 `json:"min_current_ma"`
	StdCurrentA  float64 `json:"std_current_a"`
	StdCurrentMA float64 `json:"std_current_ma"`

	AvgPowerW  float64 `json:"avg_power_w"`
	AvgPowerMW float64 `json:"avg_power_mw"`
	MaxPowerW  float64 `json:"max_power_w"`
	MaxPowerMW float64 `json:"max_power_mw"`
	MinPowerW  float64 `json:"min_power_w"`
	MinPowerMW float64 `json:"min_power_mw"`
	StdPowerW  float64 `json:"std_power_w"`
	StdPowerMW float64 `json:"std_power_mw"`

	// TotalEnergyJ is the trapezoidal integral of power over time.
	TotalEnergyJ float64 `json:"total_energy_j"`

	// CVPower is std/mean of power, 0 when mean power is not positive.
	CVPower float64 `json:"cv_power"`

	Battery BatteryLife `json:"battery_life"`
}
