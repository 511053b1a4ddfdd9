package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/layout"
	"github.com/javiermolinar/calgrid/internal/tui/input"
)

type keyMap struct {
	Day      key.Binding
	Week     key.Binding
	Month    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Today    key.Binding
	Weekend  key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Prompt   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Complete key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Day:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Week:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Month:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Prev:     key.NewBinding(key.WithKeys("h", "left", "p"), key.WithHelp("h/←", "previous")),
		Next:     key.NewBinding(key.WithKeys("l", "right", "n"), key.WithHelp("l/→", "next")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Weekend:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "compress weekend")),
		Grow:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more days")),
		Shrink:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer days")),
		Prompt:   key.NewBinding(key.WithKeys(":", "/"), key.WithHelp(":", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		Cancel:   key.NewBinding(key.WithKeys("esc")),
		Complete: key.NewBinding(key.WithKeys("tab")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Day, k.Week, k.Month, k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Day, k.Week, k.Month},
		{k.Prev, k.Next, k.Today},
		{k.Weekend, k.Grow, k.Shrink},
		{k.Prompt, k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.prompting {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Prompt):
		m.prompting = true
		m.prompt.SetValue("")
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Day):
		m.mode = ModeDay
	case key.Matches(msg, m.keys.Week):
		m.mode = ModeWeek
	case key.Matches(msg, m.keys.Month):
		m.mode = ModeMonth
	case key.Matches(msg, m.keys.Prev):
		m.anchor = m.step(-1)
	case key.Matches(msg, m.keys.Next):
		m.anchor = m.step(1)
	case key.Matches(msg, m.keys.Today):
		m.anchor = dateutil.TruncateToDay(m.nowFunc())
	case key.Matches(msg, m.keys.Weekend):
		m.opts.CompressWeekend = !m.opts.CompressWeekend
	case key.Matches(msg, m.keys.Grow):
		m.resize(1)
	case key.Matches(msg, m.keys.Shrink):
		m.resize(-1)
	default:
		return m, nil
	}
	return m.requestRelayout()
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.prompting = false
		m.prompt.Blur()
		return m.handlePromptSubmit(m.prompt.Value())
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	cmd, arg := input.ParsePrompt(value)
	switch cmd {
	case "":
		return m, nil
	case "/day":
		m.mode = ModeDay
	case "/week":
		m.mode = ModeWeek
	case "/month":
		m.mode = ModeMonth
	case "/today":
		m.anchor = dateutil.TruncateToDay(m.nowFunc())
	case "/goto":
		date, err := dateutil.ParseRelativeDate(arg, m.nowFunc())
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		m.anchor = date
	case "/days":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > layout.MaxDays {
			m.statusMsg = "days must be between 1 and " + strconv.Itoa(layout.MaxDays)
			return m, nil
		}
		m.mode = ModeDay
		m.days = n
	default:
		m.statusMsg = "unknown command " + cmd
		return m, nil
	}
	return m.requestRelayout()
}

// step moves the anchor by n views.
func (m Model) step(n int) time.Time {
	switch m.mode {
	case ModeWeek:
		return m.anchor.AddDate(0, 0, 7*n)
	case ModeMonth:
		first := time.Date(m.anchor.Year(), m.anchor.Month(), 1, 0, 0, 0, 0, m.anchor.Location())
		return first.AddDate(0, n, 0)
	default:
		return m.anchor.AddDate(0, 0, m.days*n)
	}
}

// resize grows or shrinks the day count of the day view or the week count
// of the month view.
func (m *Model) resize(delta int) {
	switch m.mode {
	case ModeDay:
		m.days = min(max(m.days+delta, 1), layout.MaxDays)
	case ModeMonth:
		m.weeks = min(max(m.weeks+delta, 1), layout.MaxWeeks)
	}
}
