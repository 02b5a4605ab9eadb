package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/FinnWang/device-power-analyzer/internal/ui/components"
	"github.com/FinnWang/device-power-analyzer/internal/ui/styles"
	"github.com/FinnWang/device-power-analyzer/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		styles.TitleStyle.Render("Info"),
		"",
		m.renderSessionCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderSessionCard() string {
	cardWidth := max(m.width-6, 40)

	capture := "none loaded"
	if info := m.state.GetSeries(); info != nil {
		capture = fmt.Sprintf("%s (%s)", info.SourceFilename, info.ModeLabel)
	}

	rows := []string{
		styles.CardTitleStyle.Render("Session"),
		"",
		components.RenderStatRows([]components.StatRow{
			{Label: "Capture", Value: capture},
			{Label: "Results", Value: fmt.Sprintf("%d committed", m.state.GetResultCount())},
			{Label: "Marked", Value: fmt.Sprintf("%d for comparison", len(m.state.MarkedIDs()))},
		}),
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderConfigCard() string {
	cardWidth := max(m.width-6, 40)

	rows := []string{
		styles.CardTitleStyle.Render("Configuration"),
		"",
	}

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("  No configuration loaded."))
	} else {
		rows = append(rows, components.RenderStatRows([]components.StatRow{
			{Label: "Data Dir", Value: m.config.DataDir},
			{Label: "Database", Value: m.config.DatabasePath},
			{Label: "Battery", Value: fmt.Sprintf("%.0f mAh @ %.1f V",
				m.config.Battery.CapacityMAh, m.config.Battery.Voltage)},
			{Label: "Chart Theme", Value: m.config.ChartTheme},
			{Label: "Notify Below", Value: m.config.NotifyThreshold.String()},
		}))
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderAboutCard() string {
	cardWidth := max(m.width-6, 40)

	rows := []string{
		styles.CardTitleStyle.Render("About"),
		"",
		components.RenderStatRows([]components.StatRow{
			{Label: "Version", Value: version.GetVersion()},
			{Label: "Commit", Value: version.GetCommit()},
			{Label: "Built", Value: version.GetDate()},
			{Label: "Go", Value: runtime.Version()},
			{Label: "Platform", Value: runtime.GOOS + "/" + runtime.GOARCH},
		}),
	}

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
