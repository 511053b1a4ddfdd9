// Package event defines the calendar event type and its storage interface.
package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/calgrid/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEndBeforeStart = errors.New("end must not be before start")
	ErrInvalidDays    = errors.New("an all-day event must cover at least one day")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrDuplicateUID  = errors.New("event with this UID already exists")
)

// Event is a calendar entry covering the half-open interval [Start, End).
// All-day events start and end at local midnights.
type Event struct {
	ID        int64
	UID       string // iCalendar UID, empty for events created locally
	Title     string
	Location  string
	Start     time.Time
	End       time.Time
	AllDay    bool
	CreatedAt time.Time
}

// New creates a new Event with validation.
// A zero-length timed event is allowed and marks a single instant.
// All-day events are aligned to midnight, and an empty all-day range
// is widened to one day.
func New(title string, start, end time.Time, allDay bool) (*Event, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}

	if allDay {
		start = dateutil.TruncateToDay(start)
		if end.After(dateutil.TruncateToDay(end)) {
			end = dateutil.TruncateToDay(end).AddDate(0, 0, 1)
		}
		if !end.After(start) {
			end = start.AddDate(0, 0, 1)
		}
	}

	return &Event{
		Title:     title,
		Start:     start,
		End:       end,
		AllDay:    allDay,
		CreatedAt: time.Now(),
	}, nil
}

// NewTimed creates an event on date from HH:MM clock strings in loc.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// An end of "24:00" means the following midnight.
func NewTimed(title, date, start, end string, loc *time.Location) (*Event, error) {
	day, err := dateutil.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}

	startMin, err := dateutil.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endMin, err := dateutil.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if endMin < startMin {
		return nil, ErrEndBeforeStart
	}

	return New(title, dateutil.At(day, startMin), dateutil.At(day, endMin), false)
}

// NewAllDay creates an all-day event starting on date and covering days days.
func NewAllDay(title, date string, days int, loc *time.Location) (*Event, error) {
	if days < 1 {
		return nil, ErrInvalidDays
	}
	day, err := dateutil.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	return New(title, day, day.AddDate(0, 0, days), true)
}

// Duration returns the length of the event.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether the event intersects [start, end).
// A zero-length event overlaps the window containing its instant.
func (e *Event) Overlaps(start, end time.Time) bool {
	if e.Start.Equal(e.End) {
		return !e.Start.Before(start) && e.Start.Before(end)
	}
	return e.Start.Before(end) && e.End.After(start)
}

// IsLong reports whether the event belongs in the whole-day banner rather
// than the time grid: it is all-day, or it runs past the midnight that
// follows its start.
func (e *Event) IsLong() bool {
	if e.AllDay {
		return true
	}
	nextMidnight := dateutil.TruncateToDay(e.Start).AddDate(0, 0, 1)
	return e.End.After(nextMidnight)
}

// Days returns the number of calendar days the event touches.
// An event ending exactly at midnight does not touch the following day.
func (e *Event) Days() int {
	first := dateutil.TruncateToDay(e.Start)
	last := first
	if e.End.After(e.Start) {
		last = dateutil.TruncateToDay(e.End.Add(-time.Nanosecond))
	}
	days := 1
	for d := first.AddDate(0, 0, 1); !d.After(last); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
