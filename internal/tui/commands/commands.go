// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/calgrid/internal/calendar"
)

// RelayoutMsg asks the model to lay out the current view again. Only the
// message carrying the latest generation is acted upon.
type RelayoutMsg struct {
	Generation int
}

// DayLoadedMsg is sent when a day view is loaded.
type DayLoadedMsg struct {
	Generation int
	View       calendar.DayView
}

// MonthLoadedMsg is sent when a week or month view is loaded.
type MonthLoadedMsg struct {
	Generation int
	View       calendar.MonthView
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Generation int
	Err        error
}

// ScheduleRelayout emits a RelayoutMsg for generation after delay.
func ScheduleRelayout(generation int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RelayoutMsg{Generation: generation}
	})
}

// LoadDays loads a day view of days days starting at first.
func LoadDays(loader *calendar.Loader, generation int, first time.Time, days int) tea.Cmd {
	return func() tea.Msg {
		v, err := loader.Day(context.Background(), first, days)
		if err != nil {
			return ErrMsg{Generation: generation, Err: err}
		}
		return DayLoadedMsg{Generation: generation, View: v}
	}
}

// LoadWeek loads the week containing anchor.
func LoadWeek(loader *calendar.Loader, generation int, anchor time.Time) tea.Cmd {
	return func() tea.Msg {
		v, err := loader.Week(context.Background(), anchor)
		if err != nil {
			return ErrMsg{Generation: generation, Err: err}
		}
		return MonthLoadedMsg{Generation: generation, View: v}
	}
}

// LoadMonth loads weeks week rows for anchor's month.
func LoadMonth(loader *calendar.Loader, generation int, anchor time.Time, weeks int) tea.Cmd {
	return func() tea.Msg {
		v, err := loader.Month(context.Background(), anchor, weeks)
		if err != nil {
			return ErrMsg{Generation: generation, Err: err}
		}
		return MonthLoadedMsg{Generation: generation, View: v}
	}
}
