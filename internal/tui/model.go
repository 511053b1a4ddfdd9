// Package tui provides the interactive calendar viewer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calgrid/internal/calendar"
	"github.com/javiermolinar/calgrid/internal/config"
	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/theme"
	"github.com/javiermolinar/calgrid/internal/tui/commands"
)

// RelayoutDelay is how long the viewer waits for further changes before
// running a layout pass. Requests arriving within it are coalesced.
const RelayoutDelay = 80 * time.Millisecond

// Mode is the kind of calendar view shown.
type Mode int

const (
	ModeDay Mode = iota
	ModeWeek
	ModeMonth
)

func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeWeek:
		return "week"
	case ModeMonth:
		return "month"
	default:
		return "unknown"
	}
}

// viewKey identifies the events a loaded view was built from.
type viewKey struct {
	mode  Mode
	first time.Time
	span  int // days for day views, weeks otherwise
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config
	styles *Styles

	keys      keyMap
	help      help.Model
	prompt    textinput.Model
	prompting bool

	// What to show
	mode   Mode
	anchor time.Time
	days   int
	weeks  int
	opts   calendar.Options

	// generation is bumped by every relayout request; only the latest
	// request and the load it starts are acted upon.
	generation int
	loading    bool
	loaded     viewKey
	dayView    *calendar.DayView
	monthView  *calendar.MonthView

	// Terminal dimensions
	width  int
	height int

	statusMsg string
	err       error

	nowFunc func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithNow overrides the clock used for "today".
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.nowFunc = now
		m.anchor = dateutil.TruncateToDay(now())
	}
}

// WithMode sets the initial view mode.
func WithMode(mode Mode) ModelOption {
	return func(m *Model) {
		m.mode = mode
	}
}

// WithAnchor sets the initial anchor date.
func WithAnchor(anchor time.Time) ModelOption {
	return func(m *Model) {
		m.anchor = dateutil.TruncateToDay(anchor)
	}
}

// New creates a new TUI model.
func New(repo event.Repository, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "/goto friday"
	ti.CharLimit = 64
	ti.TextStyle = styles.PromptStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpStyle
	h.Styles.ShortDesc = styles.HelpStyle
	h.Styles.FullKey = styles.HelpStyle
	h.Styles.FullDesc = styles.HelpStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		prompt:  ti,
		mode:    ModeWeek,
		anchor:  dateutil.TruncateToDay(time.Now()),
		days:    cfg.View.DaysShown,
		weeks:   cfg.View.WeeksShown,
		opts:    calendar.OptionsFromConfig(cfg),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts loading the first view.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// Run starts the viewer.
func Run(repo event.Repository, cfg *config.Config, opts ...ModelOption) error {
	p := tea.NewProgram(New(repo, cfg, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) currentKey() viewKey {
	switch m.mode {
	case ModeWeek:
		return viewKey{mode: ModeWeek, first: dateutil.StartOfWeek(m.anchor, m.opts.WeekStart), span: 1}
	case ModeMonth:
		return viewKey{mode: ModeMonth, first: dateutil.MonthGridStart(m.anchor, m.opts.WeekStart), span: m.weeks}
	default:
		return viewKey{mode: ModeDay, first: dateutil.TruncateToDay(m.anchor), span: m.days}
	}
}

// load starts reading the current view from the repository.
func (m Model) load() tea.Cmd {
	loader := calendar.NewLoader(m.repo, m.opts)
	switch m.mode {
	case ModeWeek:
		return commands.LoadWeek(loader, m.generation, m.anchor)
	case ModeMonth:
		return commands.LoadMonth(loader, m.generation, m.anchor, m.weeks)
	default:
		return commands.LoadDays(loader, m.generation, m.anchor, m.days)
	}
}

// requestRelayout schedules a layout pass after RelayoutDelay. A newer
// request supersedes every pending one.
func (m Model) requestRelayout() (Model, tea.Cmd) {
	m.generation++
	return m, commands.ScheduleRelayout(m.generation, RelayoutDelay)
}

// relayout runs the pass requested by generation. Views already loaded for
// the same dates are repacked in place; anything else is loaded again.
func (m Model) relayout(generation int) (Model, tea.Cmd) {
	if generation != m.generation {
		return m, nil
	}

	if m.loaded == m.currentKey() {
		switch {
		case m.monthView != nil && m.mode != ModeDay:
			LogRelayout(m, "repack")
			m.monthView.Relayout(m.opts)
			return m, nil
		case m.dayView != nil && m.mode == ModeDay:
			LogRelayout(m, "redraw")
			return m, nil
		}
	}

	LogRelayout(m, "load")
	m.loading = true
	return m, m.load()
}
