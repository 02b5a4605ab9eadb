// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/ui/styles"
)

// AnimationTickMsg drives gauge fill animation.
type AnimationTickMsg time.Time

func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*50, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// gaugeFullScaleHours is the projected runtime that fills the gauge.
const gaugeFullScaleHours = 48.0

// BatteryGauge renders a projected-runtime bar with label and value.
type BatteryGauge struct {
	progress       progress.Model
	label          string
	life           models.BatteryLife
	isAnimating    bool
	targetPercent  float64
	currentPercent float64
}

// NewBatteryGauge creates a gauge with gradient colors at the given width.
func NewBatteryGauge(width int) BatteryGauge {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)

	return BatteryGauge{
		progress: p,
		label:    "Battery",
	}
}

// Init initializes the gauge model.
func (g BatteryGauge) Init() tea.Cmd {
	return nil
}

// Update handles animation ticks.
func (g BatteryGauge) Update(msg tea.Msg) (BatteryGauge, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(AnimationTickMsg); ok && g.isAnimating {
		switch {
		case g.currentPercent < g.targetPercent:
			step := (g.targetPercent - g.currentPercent) / 10
			if step < 0.5 {
				step = 0.5
			}
			g.currentPercent += step
			if g.currentPercent > g.targetPercent {
				g.currentPercent = g.targetPercent
			}
			cmds = append(cmds, animationTick())
		case g.currentPercent > g.targetPercent:
			step := (g.currentPercent - g.targetPercent) / 10
			if step < 0.5 {
				step = 0.5
			}
			g.currentPercent -= step
			if g.currentPercent < g.targetPercent {
				g.currentPercent = g.targetPercent
			}
			cmds = append(cmds, animationTick())
		default:
			g.isAnimating = false
		}
	}

	var cmd tea.Cmd
	model, cmd := g.progress.Update(msg)
	g.progress = model.(progress.Model)
	cmds = append(cmds, cmd)

	return g, tea.Batch(cmds...)
}

// SetLife sets the projection and starts the fill animation.
func (g BatteryGauge) SetLife(life models.BatteryLife) (BatteryGauge, tea.Cmd) {
	g.life = life
	g.targetPercent = lifePercent(life)

	if g.targetPercent == g.currentPercent {
		return g, nil
	}
	g.isAnimating = true
	return g, animationTick()
}

// SetLabel updates the gauge label.
func (g *BatteryGauge) SetLabel(label string) {
	g.label = label
}

// Life returns the current projection.
func (g BatteryGauge) Life() models.BatteryLife {
	return g.life
}

// Percent returns the current animated fill fraction in [0, 100].
func (g BatteryGauge) Percent() float64 {
	return g.currentPercent
}

// View renders the gauge with label and formatted runtime.
func (g BatteryGauge) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(10)
	bar := g.progress.ViewAs(g.currentPercent / 100)

	valueStyle := styles.GetBatteryStyle(g.life.Hours, g.life.IsUnlimited())
	value := valueStyle.Render(models.FormatBatteryLife(g.life))

	return labelStyle.Render(g.label) + " " + bar + " " + value
}

func lifePercent(life models.BatteryLife) float64 {
	if life.IsUnlimited() {
		return 100
	}
	pct := (life.Hours / gaugeFullScaleHours) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// StatRow is a single label/value pair in a statistics card.
type StatRow struct {
	Label string
	Value string
	Style lipgloss.Style
}

// RenderStatRows renders aligned label/value rows for summary cards.
func RenderStatRows(rows []StatRow) string {
	var lines []string
	for _, r := range rows {
		// Zero-value style renders plain text.
		value := r.Style.Render(r.Value)
		lines = append(lines, styles.StatLabelStyle.Render(r.Label)+" "+value)
	}
	return strings.Join(lines, "\n")
}

// SnapshotRows flattens a statistics snapshot into display rows.
func SnapshotRows(s models.StatisticsSnapshot) []StatRow {
	return []StatRow{
		{Label: "Samples", Value: fmt.Sprintf("%d", s.DataPoints)},
		{Label: "Duration", Value: models.FormatDuration(s.Duration)},
		{Label: "Avg Power", Value: models.FormatPower(s.AvgPowerW)},
		{Label: "Max Power", Value: models.FormatPower(s.MaxPowerW)},
		{Label: "Min Power", Value: models.FormatPower(s.MinPowerW)},
		{Label: "Avg Current", Value: fmt.Sprintf("%.2f mA", s.AvgCurrentMA)},
		{Label: "Avg Voltage", Value: fmt.Sprintf("%.3f V", s.AvgVoltageV)},
		{Label: "Energy", Value: fmt.Sprintf("%.3f J", s.TotalEnergyJ)},
		{
			Label: "Battery",
			Value: models.FormatBatteryLife(s.Battery),
			Style: styles.GetBatteryStyle(s.Battery.Hours, s.Battery.IsUnlimited()),
		},
	}
}
