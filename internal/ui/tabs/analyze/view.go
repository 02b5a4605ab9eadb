package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/ui/components"
	"github.com/FinnWang/device-power-analyzer/internal/ui/styles"
)

// View renders the analyze tab.
func (m *Model) View() string {
	info := m.state.GetSeries()
	if info == nil {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(info),
		m.renderChart(info),
		m.renderRangeCard(info),
		m.renderPreviewCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Analyze"),
		"",
		styles.HelpStyle.Render("No capture loaded."),
		styles.HelpStyle.Render("Drop a CSV measurement file into the data directory to begin."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(info *app.SeriesInfo) string {
	title := styles.TitleStyle.Render("Analyze: " + info.SourceFilename)
	mode := styles.GetModeStyle(info.ModeLabel).Render(info.ModeLabel)

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", mode)

	subtitle := styles.HelpStyle.Render(fmt.Sprintf(
		"%d samples, %s, resolution %.4fs",
		info.Metadata.DataPoints,
		models.FormatDuration(info.Metadata.TotalDuration),
		info.Metadata.TimeResolution,
	))

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderChart(info *app.SeriesInfo) string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Power Draw"), "")

	chartWidth := max(cardWidth-12, 30)
	chartHeight := 8

	chart := components.RenderLineChart(info.PowerCurve, chartWidth, chartHeight, "Power (mW)")
	for _, line := range strings.Split(chart, "\n") {
		rows = append(rows, "  "+line)
	}

	// Selection strip under the chart
	r := m.state.GetTimeRange()
	span := info.Metadata.MaxTime - info.Metadata.MinTime
	if span > 0 {
		startFrac := (r.StartTime - info.Metadata.MinTime) / span
		endFrac := (r.EndTime - info.Metadata.MinTime) / span
		rows = append(rows, "", "  "+components.RenderRangeSparkline(info.PowerCurve, chartWidth, startFrac, endFrac))
	}

	rows = append(rows, "")
	legend := components.RenderLegend([]components.LegendItem{
		{Label: "Power", Color: components.ChartPowerColor},
	})
	rows = append(rows, "  "+legend)

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRangeCard(info *app.SeriesInfo) string {
	cardWidth := max(m.width-6, 40)
	r := m.state.GetTimeRange()

	rows := []string{
		styles.CardTitleStyle.Render("Selected Range"),
		"",
		components.RenderStatRows([]components.StatRow{
			{Label: "Start", Value: fmt.Sprintf("%.3f s", r.StartTime)},
			{Label: "End", Value: fmt.Sprintf("%.3f s", r.EndTime)},
			{Label: "Span", Value: models.FormatDuration(r.Span())},
		}),
		"",
		styles.HelpStyle.Render("[ ] move start   { } move end   a full span   p preview   c commit"),
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderPreviewCard() string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Range Statistics"), "")

	preview := m.state.GetPreview()
	switch {
	case m.state.Loading.Preview:
		rows = append(rows, styles.HelpStyle.Render("  Computing..."))
	case preview == nil:
		rows = append(rows, styles.HelpStyle.Render("  Press p to compute statistics for the selected range."))
	default:
		rows = append(rows, components.RenderStatRows(components.SnapshotRows(preview.Stats)))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
