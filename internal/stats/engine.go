// Package stats computes descriptive statistics and battery-life
// projections over measurement tables.
package stats

import (
	"errors"
	"math"

	"github.com/FinnWang/device-power-analyzer/internal/models"
)

// ErrEmptyTable is returned when statistics are requested on zero rows.
var ErrEmptyTable = errors.New("cannot compute statistics on an empty table")

// Compute produces a statistics snapshot for a table, either a full
// series or a filtered range. Duration is the actual covered span of
// the table, not the requested range. Pure function, no I/O.
func Compute(rows []models.Row, battery models.BatterySpec) (models.StatisticsSnapshot, error) {
	if len(rows) == 0 {
		return models.StatisticsSnapshot{}, ErrEmptyTable
	}

	voltage := column(rows, func(r models.Row) float64 { return r.Voltage })
	current := column(rows, func(r models.Row) float64 { return r.Current })
	power := column(rows, func(r models.Row) float64 { return r.Power })

	minTime, maxTime := rows[0].Time, rows[0].Time
	for _, r := range rows {
		minTime = math.Min(minTime, r.Time)
		maxTime = math.Max(maxTime, r.Time)
	}

	snap := models.StatisticsSnapshot{
		DataPoints: len(rows),
		Duration:   maxTime - minTime,
	}

	snap.AvgVoltageV = mean(voltage)
	snap.MaxVoltageV = maxOf(voltage)
	snap.MinVoltageV = minOf(voltage)
	snap.StdVoltageV = sampleStd(voltage)

	snap.AvgCurrentA = mean(current)
	snap.MaxCurrentA = maxOf(current)
	snap.MinCurrentA = minOf(current)
	snap.StdCurrentA = sampleStd(current)
	snap.AvgCurrentMA = snap.AvgCurrentA * 1000
	snap.MaxCurrentMA = snap.MaxCurrentA * 1000
	snap.MinCurrentMA = snap.MinCurrentA * 1000
	snap.StdCurrentMA = snap.StdCurrentA * 1000

	snap.AvgPowerW = mean(power)
	snap.MaxPowerW = maxOf(power)
	snap.MinPowerW = minOf(power)
	snap.StdPowerW = sampleStd(power)
	snap.AvgPowerMW = snap.AvgPowerW * 1000
	snap.MaxPowerMW = snap.MaxPowerW * 1000
	snap.MinPowerMW = snap.MinPowerW * 1000
	snap.StdPowerMW = snap.StdPowerW * 1000

	snap.TotalEnergyJ = TrapezoidalEnergy(rows)

	if snap.AvgPowerW > 0 {
		snap.CVPower = snap.StdPowerW / snap.AvgPowerW
	}

	snap.Battery = BatteryLife(snap.AvgPowerW, battery)

	return snap, nil
}

// BatteryLife projects runtime from an average power draw. A draw of
// zero or less yields the explicit infinite sentinel, never an error.
func BatteryLife(avgPowerW float64, battery models.BatterySpec) models.BatteryLife {
	if avgPowerW <= 0 {
		return models.BatteryLife{Hours: math.Inf(1), Days: math.Inf(1)}
	}

	hours := battery.EnergyJoules() / (avgPowerW * 3600)
	return models.BatteryLife{Hours: hours, Days: hours / 24}
}

// TrapezoidalEnergy numerically integrates power over time. Fewer than
// two rows carry no span, so the integral is 0.
func TrapezoidalEnergy(rows []models.Row) float64 {
	if len(rows) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(rows); i++ {
		dt := rows[i].Time - rows[i-1].Time
		total += dt * (rows[i].Power + rows[i-1].Power) / 2
	}
	return total
}

func column(rows []models.Row, get func(models.Row) float64) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the n-1 normalized standard deviation, 0 with fewer
// than two values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

func minOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		out = math.Min(out, v)
	}
	return out
}

func maxOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		out = math.Max(out, v)
	}
	return out
}
