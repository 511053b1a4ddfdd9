package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calgrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		// Packing does not depend on the terminal size; the next View
		// call draws the loaded view at the new size.
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case commands.RelayoutMsg:
		return m.relayout(msg.Generation)

	case commands.DayLoadedMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		v := msg.View
		m.dayView, m.monthView = &v, nil
		m.loaded = m.currentKey()
		m.loading = false
		m.err = nil
		return m, nil

	case commands.MonthLoadedMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		v := msg.View
		m.dayView, m.monthView = nil, &v
		m.loaded = m.currentKey()
		m.loading = false
		m.err = nil
		return m, nil

	case commands.ErrMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		LogError("load", msg.Err)
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}
