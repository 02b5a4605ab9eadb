package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FinnWang/device-power-analyzer/internal/compare"
	"github.com/FinnWang/device-power-analyzer/internal/models"
)

var csvHeader = []string{
	"label",
	"mode",
	"filename",
	"start_time_s",
	"end_time_s",
	"duration_s",
	"avg_power_mw",
	"max_power_mw",
	"avg_current_ma",
	"battery_hours",
	"created_at",
}

// CSVReport renders the comparison table as CSV. Internal ids are
// dropped; the report is for spreadsheets, not re-import.
func CSVReport(results []models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv report: %w", err)
	}
	for _, r := range results {
		row := models.FlattenResult(r)
		record := []string{
			row.Label,
			row.ModeLabel,
			row.Filename,
			formatFloat(row.StartTime),
			formatFloat(row.EndTime),
			formatFloat(row.Duration),
			formatFloat(row.AvgPowerMW),
			formatFloat(row.MaxPowerMW),
			formatFloat(row.AvgCurrentMA),
			formatFloat(row.BatteryHours),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv report: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv report: %w", err)
	}
	return buf.Bytes(), nil
}

// MarkdownReport renders a human-readable report: a summary header, a
// per-result section each, and cross-result power statistics when more
// than one result is present.
func MarkdownReport(results []models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Power Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Results: %d\n\n", len(results))

	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", r.Label)
		fmt.Fprintf(&b, "- Mode: %s\n", r.ModeLabel)
		if r.SourceFilename != "" {
			fmt.Fprintf(&b, "- Source: %s\n", r.SourceFilename)
		}
		fmt.Fprintf(&b, "- Range: %.3f s to %.3f s (%s)\n", r.StartTime, r.EndTime, models.FormatDuration(r.Duration))
		fmt.Fprintf(&b, "- Average power: %s\n", models.FormatPower(r.Stats.AvgPowerW))
		fmt.Fprintf(&b, "- Peak power: %s\n", models.FormatPower(r.Stats.MaxPowerW))
		fmt.Fprintf(&b, "- Average current: %.2f mA\n", r.Stats.AvgCurrentMA)
		fmt.Fprintf(&b, "- Total energy: %.3f J\n", r.Stats.TotalEnergyJ)
		fmt.Fprintf(&b, "- Battery life: %s\n\n", models.FormatBatteryLife(r.Stats.Battery))
	}

	if len(results) > 1 {
		report, err := compare.CompareResults(results)
		if err == nil {
			b.WriteString("## Cross-Result Power\n\n")
			fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
			fmt.Fprintf(&b, "| Min | %.2f mW |\n", report.Power.Min)
			fmt.Fprintf(&b, "| Max | %.2f mW |\n", report.Power.Max)
			fmt.Fprintf(&b, "| Mean | %.2f mW |\n", report.Power.Mean)
			fmt.Fprintf(&b, "| Std | %.2f mW |\n", report.Power.Std)
			fmt.Fprintf(&b, "| Range | %.2f mW |\n\n", report.Power.Range)
		}
	}

	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
