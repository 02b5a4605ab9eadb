package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/ui/components"
	"github.com/FinnWang/device-power-analyzer/internal/ui/styles"
)

// View renders the compare tab.
func (m *Model) View() string {
	report := m.state.GetComparison()
	if report == nil {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(report),
		m.renderReportCard(report),
		m.renderBaselineCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	marked := len(m.state.MarkedIDs())

	hint := "Mark results with space on the Results tab, then press enter here."
	if marked == 1 {
		hint = "One result marked. Mark at least one more, then press enter."
	} else if marked >= 2 {
		hint = fmt.Sprintf("%d results marked. Press enter to compare them.", marked)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Compare"),
		"",
		styles.HelpStyle.Render(hint),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(report *models.ComparisonReport) string {
	title := styles.TitleStyle.Render("Compare")

	subtitle := fmt.Sprintf("%d results across %s",
		len(m.state.GetBaseline()),
		pluralize(len(report.Modes), "mode"))
	if len(report.Files) > 0 {
		subtitle += fmt.Sprintf(", %s", pluralize(len(report.Files), "capture"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.HelpStyle.Render(subtitle),
		"",
	)
}

func (m *Model) renderReportCard(report *models.ComparisonReport) string {
	cardWidth := max(m.width-6, 40)

	rows := []string{
		styles.CardTitleStyle.Render("Spread Across Selection"),
		"",
		valueStatsBlock("Avg Power", report.Power, func(v float64) string {
			return fmt.Sprintf("%.2f mW", v)
		}),
		"",
		valueStatsBlock("Battery Life", report.BatteryHours, func(v float64) string {
			return fmt.Sprintf("%.1f h", v)
		}),
		"",
		valueStatsBlock("Duration", report.Duration, models.FormatDuration),
	}

	if len(report.Modes) > 0 {
		rows = append(rows, "",
			components.RenderStatRows([]components.StatRow{
				{Label: "Modes", Value: strings.Join(report.Modes, ", ")},
			}))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderBaselineCard() string {
	cardWidth := max(m.width-6, 40)

	baseline := m.state.GetBaseline()
	if len(baseline) == 0 {
		return ""
	}

	values := make([]float64, len(baseline))
	labels := make([]string, len(baseline))
	for i, e := range baseline {
		values[i] = e.AvgPowerW * 1000
		labels[i] = e.Label
	}

	rows := []string{
		styles.CardTitleStyle.Render("Relative to Lowest Draw"),
		"",
	}

	chart := components.RenderBarChart(values, labels, max(cardWidth-8, 30))
	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	rows = append(rows, "")
	for _, e := range baseline {
		delta := "baseline"
		if e.PowerIncreasePercent > 0 {
			delta = fmt.Sprintf("+%.1f%% over baseline", e.PowerIncreasePercent)
		}
		rows = append(rows, components.RenderStatRows([]components.StatRow{
			{Label: truncateLabel(e.Label, 16), Value: fmt.Sprintf("%.2f mW (%s)", e.AvgPowerW*1000, delta)},
		}))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func valueStatsBlock(name string, stats models.ValueStats, format func(float64) string) string {
	return components.RenderStatRows([]components.StatRow{
		{Label: name, Value: fmt.Sprintf("%s - %s", format(stats.Min), format(stats.Max))},
		{Label: "  mean", Value: format(stats.Mean)},
		{Label: "  std", Value: format(stats.Std)},
		{Label: "  range", Value: format(stats.Range)},
	})
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncateLabel(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 3 {
		return s[:limit]
	}
	return s[:limit-3] + "..."
}
