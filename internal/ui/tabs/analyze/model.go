// Package analyze provides the range-analysis tab.
package analyze

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/services"
)

// rangeSteps is how many nudge steps span the full capture.
const rangeSteps = 20

// keyMap defines the key bindings specific to the analyze tab.
type keyMap struct {
	StartLeft  key.Binding
	StartRight key.Binding
	EndLeft    key.Binding
	EndRight   key.Binding
	FullSpan   key.Binding
	Preview    key.Binding
	Commit     key.Binding
	Up         key.Binding
	Down       key.Binding
}

// defaultKeyMap returns the default key bindings for the analyze tab.
func defaultKeyMap() keyMap {
	return keyMap{
		StartLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "start earlier"),
		),
		StartRight: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "start later"),
		),
		EndLeft: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "end earlier"),
		),
		EndRight: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "end later"),
		),
		FullSpan: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select full span"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "preview stats"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit range"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the analyze tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new analyze model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		commands: app.NewCommands(svc),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the analyze tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the analyze tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.StartLeft):
		m.nudgeRange(-1, 0)
	case key.Matches(msg, m.keys.StartRight):
		m.nudgeRange(1, 0)
	case key.Matches(msg, m.keys.EndLeft):
		m.nudgeRange(0, -1)
	case key.Matches(msg, m.keys.EndRight):
		m.nudgeRange(0, 1)

	case key.Matches(msg, m.keys.FullSpan):
		if info := m.state.GetSeries(); info != nil {
			m.state.SetTimeRange(models.TimeRange{
				StartTime: info.Metadata.MinTime,
				EndTime:   info.Metadata.MaxTime,
			})
		}

	case key.Matches(msg, m.keys.Preview):
		if m.services != nil && m.state.HasSeries() {
			m.state.SetLoading("preview", true)
			cmds = append(cmds, m.commands.Preview(m.state.GetTimeRange()))
		}

	case key.Matches(msg, m.keys.Commit):
		if m.services != nil && m.state.HasSeries() {
			m.state.SetLoading("commit", true)
			// Empty label commits with the auto-numbered default.
			cmds = append(cmds, m.commands.Commit(m.state.GetTimeRange(), ""))
		}

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// nudgeRange moves the range edges by whole steps, clamped to the
// series span and keeping start strictly before end.
func (m *Model) nudgeRange(startSteps, endSteps int) {
	info := m.state.GetSeries()
	if info == nil {
		return
	}

	meta := info.Metadata
	step := meta.TotalDuration / rangeSteps
	if step <= 0 {
		return
	}

	r := m.state.GetTimeRange()
	r.StartTime += float64(startSteps) * step
	r.EndTime += float64(endSteps) * step

	if r.StartTime < meta.MinTime {
		r.StartTime = meta.MinTime
	}
	if r.EndTime > meta.MaxTime {
		r.EndTime = meta.MaxTime
	}
	if r.StartTime >= r.EndTime {
		return
	}

	m.state.SetTimeRange(r)
}

// SetSize sets the available size for the analyze tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.StartLeft,
		m.keys.EndRight,
		m.keys.FullSpan,
		m.keys.Preview,
		m.keys.Commit,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.StartLeft, m.keys.StartRight, m.keys.EndLeft, m.keys.EndRight},
		{m.keys.FullSpan, m.keys.Preview, m.keys.Commit},
		{m.keys.Up, m.keys.Down},
	}
}
