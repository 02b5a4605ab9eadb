// Package results provides the committed-results tab.
package results

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/config"
	"github.com/FinnWang/device-power-analyzer/internal/services"
)

// keyMap defines the key bindings specific to the results tab.
type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Mark           key.Binding
	Delete         key.Binding
	ClearAll       key.Binding
	ExportJSON     key.Binding
	ExportCSV      key.Binding
	ExportMarkdown key.Binding
}

// defaultKeyMap returns the default key bindings for the results tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Mark: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark for compare"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete result"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export JSON"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export CSV"),
		),
		ExportMarkdown: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "export report"),
		),
	}
}

// Model represents the results tab state.
type Model struct {
	state     *app.State
	services  *services.Manager
	commands  *app.Commands
	exportDir string
	width     int
	height    int
	keys      keyMap
	viewport  viewport.Model
}

// New creates a new results model. Exports land in the data directory.
func New(state *app.State, svc *services.Manager, cfg *config.Config) *Model {
	exportDir := "."
	if cfg != nil {
		exportDir = cfg.DataDir
	}
	return &Model{
		state:     state,
		services:  svc,
		commands:  app.NewCommands(svc),
		exportDir: exportDir,
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
	}
}

// Init initializes the results tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Up):
		m.state.SetSelectedResultIndex(m.state.GetSelectedResultIndex() - 1)

	case key.Matches(msg, m.keys.Down):
		m.state.SetSelectedResultIndex(m.state.GetSelectedResultIndex() + 1)

	case key.Matches(msg, m.keys.Mark):
		if sel := m.state.GetSelectedResult(); sel != nil {
			m.state.ToggleMarked(sel.ID)
		}

	case key.Matches(msg, m.keys.Delete):
		if sel := m.state.GetSelectedResult(); sel != nil && m.services != nil {
			cmds = append(cmds, m.commands.DeleteResult(sel.ID, sel.Label))
		}

	case key.Matches(msg, m.keys.ClearAll):
		if m.services != nil && m.state.GetResultCount() > 0 {
			cmds = append(cmds, m.commands.ClearResults())
		}

	case key.Matches(msg, m.keys.ExportJSON):
		cmds = append(cmds, m.export("json"))

	case key.Matches(msg, m.keys.ExportCSV):
		cmds = append(cmds, m.export("csv"))

	case key.Matches(msg, m.keys.ExportMarkdown):
		cmds = append(cmds, m.export("markdown"))

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) export(format string) tea.Cmd {
	if m.services == nil || m.state.GetResultCount() == 0 {
		return nil
	}
	return m.commands.Export(m.exportDir, format)
}

// SetSize sets the available size for the results tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Mark,
		m.keys.Delete,
		m.keys.ExportJSON,
		m.keys.ExportMarkdown,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Mark},
		{m.keys.Delete, m.keys.ClearAll},
		{m.keys.ExportJSON, m.keys.ExportCSV, m.keys.ExportMarkdown},
	}
}
