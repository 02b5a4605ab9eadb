package results

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/ui/components"
	"github.com/FinnWang/device-power-analyzer/internal/ui/styles"
)

// View renders the results tab.
func (m *Model) View() string {
	results := m.state.GetResults()
	if len(results) == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(results),
		m.renderList(results),
		m.renderDetailCard(),
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
		styles.TitleStyle.Render("Results"),
		"",
		styles.HelpStyle.Render("No results committed yet."),
		styles.HelpStyle.Render("Select a range on the Analyze tab and press c to commit it."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(results []models.AnalysisResult) string {
	title := styles.TitleStyle.Render("Results")
	marked := len(m.state.MarkedIDs())

	subtitle := fmt.Sprintf("%d committed", len(results))
	if marked > 0 {
		subtitle += fmt.Sprintf(", %d marked for comparison", marked)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		styles.HelpStyle.Render(subtitle),
		"",
	)
}

func (m *Model) renderList(results []models.AnalysisResult) string {
	cardWidth := max(m.width-6, 40)
	selected := m.state.GetSelectedResultIndex()

	rows := []string{styles.CardTitleStyle.Render("Committed Ranges"), ""}

	for i, r := range results {
		row := models.FlattenResult(r)

		mark := "  "
		if m.state.IsMarked(r.ID) {
			mark = styles.MarkedStyle.Render("* ")
		}

		// Styling inside the fixed-width columns would skew the
		// padding, so list cells stay plain.
		line := fmt.Sprintf("%-20s %-12s %9.2f mW %12s %9s",
			truncateLabel(row.Label, 20),
			row.ModeLabel,
			row.AvgPowerMW,
			batteryCell(r.Stats.Battery),
			models.FormatDuration(row.Duration),
		)

		if i == selected {
			rows = append(rows, mark+styles.SelectedListItemStyle.Render(line))
		} else {
			rows = append(rows, mark+styles.ListItemStyle.Render(line))
		}
	}

	rows = append(rows, "",
		styles.HelpStyle.Render("space mark   d delete   e/E/m export JSON/CSV/report   X clear all"))

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderDetailCard() string {
	cardWidth := max(m.width-6, 40)

	sel := m.state.GetSelectedResult()
	if sel == nil {
		return ""
	}

	rows := []string{
		styles.CardTitleStyle.Render("Detail: " + sel.Label),
		"",
		components.RenderStatRows([]components.StatRow{
			{Label: "Source", Value: sel.SourceFilename},
			{Label: "Mode", Value: sel.ModeLabel, Style: styles.GetModeStyle(sel.ModeLabel)},
			{Label: "Range", Value: fmt.Sprintf("%.3f s - %.3f s", sel.StartTime, sel.EndTime)},
			{Label: "Committed", Value: sel.CreatedAt.Format("2006-01-02 15:04:05")},
		}),
		"",
		components.RenderStatRows(components.SnapshotRows(sel.Stats)),
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func batteryCell(life models.BatteryLife) string {
	if life.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("%.1f h", life.Hours)
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
