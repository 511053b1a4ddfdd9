// Package layout packs calendar events into display grids.
//
// Three packers share one day-bucketing helper:
//
//   - PackLongEvents stacks events covering whole days into banner rows.
//   - PackDayEvents places events inside a single day into a time-row by
//     column grid and widens them into free columns.
//   - PackWeekEvents splits multi-day events into spans at week-row and
//     weekend boundaries and stacks the spans inside day cells.
//
// Every pass is synchronous and deterministic. Packers only mutate the
// Assignment of the events they are given and allocate their grids per call.
// Events that cannot be shown are left with an empty footprint and reported
// to the debug log; no packer returns an error.
package layout

import "time"

const (
	// MaxDays is the widest day view the packers are tuned for.
	MaxDays = 10

	// MaxWeeks is the number of week rows a month view can show.
	MaxWeeks = 6

	// DefaultMaxRowsPerCell bounds how many spans stack in one day cell.
	DefaultMaxRowsPerCell = 10
)

// TimeRange is the half-open interval [Start, End).
// Start == End denotes a zero-length marker.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Clamp restricts r to [lo, hi].
func (r TimeRange) Clamp(lo, hi time.Time) TimeRange {
	if r.Start.Before(lo) {
		r.Start = lo
	}
	if r.End.After(hi) {
		r.End = hi
	}
	if r.End.Before(r.Start) {
		r.End = r.Start
	}
	return r
}

// Boundaries partitions N consecutive days with N+1 strictly increasing
// instants. Day d is [b[d], b[d+1]).
type Boundaries []time.Time

// Days returns the number of days the boundaries describe.
func (b Boundaries) Days() int {
	if len(b) < 2 {
		return 0
	}
	return len(b) - 1
}

// Assignment is the grid position computed for an event.
// Which fields are meaningful depends on the packer that ran last.
type Assignment struct {
	// Whole-day and week views.
	Row       int
	StartDay  int
	NumDays   int
	SpanIndex int
	NumSpans  int

	// Sub-day view.
	StartRow   int
	EndRow     int
	Column     int
	NumColumns int
}

// Event is a time-bounded item to place. ID is opaque to the packers.
type Event struct {
	ID    string
	Range TimeRange

	Assignment
}

// Placed reports whether the last whole-day or sub-day pass placed the event.
func (e *Event) Placed() bool {
	return e.NumColumns > 0
}

// Span is one day-contiguous piece of an event inside a packing unit.
type Span struct {
	Event    *Event
	StartDay int
	NumDays  int
	Row      int
}

// EndDay returns the last day covered by the span.
func (s Span) EndDay() int {
	return s.StartDay + s.NumDays - 1
}
