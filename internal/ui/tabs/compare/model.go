// Package compare provides the cross-result comparison tab.
package compare

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/FinnWang/device-power-analyzer/internal/app"
	"github.com/FinnWang/device-power-analyzer/internal/services"
)

// keyMap defines the key bindings specific to the compare tab.
type keyMap struct {
	Run        key.Binding
	ClearMarks key.Binding
	Up         key.Binding
	Down       key.Binding
}

// defaultKeyMap returns the default key bindings for the compare tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "compare marked"),
		),
		ClearMarks: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear marks"),
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

// Model represents the compare tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	commands *app.Commands
	width    int
	height   int
	keys     keyMap
	viewport viewport.Model
}

// New creates a new compare model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		commands: app.NewCommands(svc),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the compare tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the compare tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Run):
		ids := m.state.MarkedIDs()
		if len(ids) < 2 {
			return m, m.commands.NotifyWarning("Mark at least two results on the Results tab first")
		}
		if m.services == nil {
			return m, nil
		}
		return m, m.commands.Compare(ids)

	case key.Matches(msg, m.keys.ClearMarks):
		m.state.ClearMarks()
		m.state.SetComparison(nil, nil)
		return m, nil

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

// SetSize sets the available size for the compare tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Run,
		m.keys.ClearMarks,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Run, m.keys.ClearMarks},
		{m.keys.Up, m.keys.Down},
	}
}
