// Package calendar builds day, week and month views from stored events by
// running them through the layout packers.
package calendar

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/javiermolinar/calgrid/internal/config"
	"github.com/javiermolinar/calgrid/internal/dateutil"
	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/layout"
)

// Options holds the view settings the packers need.
type Options struct {
	WeekStart       time.Weekday
	DayStartMinutes int // first visible minute of a day
	DayEndMinutes   int // end of the visible window, up to 24*60
	MinutesPerRow   int
	MaxColumns      int
	MaxRowsPerCell  int
	CompressWeekend bool
}

// OptionsFromConfig derives view options from a validated config.
func OptionsFromConfig(cfg *config.Config) Options {
	start, end := cfg.VisibleMinutes()
	return Options{
		WeekStart:       cfg.WeekStartDay(),
		DayStartMinutes: start,
		DayEndMinutes:   end,
		MinutesPerRow:   cfg.View.MinutesPerRow,
		MaxColumns:      cfg.View.MaxColumns,
		MaxRowsPerCell:  cfg.View.MaxRowsPerCell,
		CompressWeekend: cfg.View.CompressWeekend,
	}
}

// Rows returns the number of time rows in a day column.
func (o Options) Rows() int {
	if o.MinutesPerRow <= 0 {
		return 0
	}
	return (o.DayEndMinutes - o.DayStartMinutes) / o.MinutesPerRow
}

// Item pairs a stored event with its grid placement.
type Item struct {
	Event *event.Event
	Slot  layout.Event
}

func newItem(e *event.Event) *Item {
	return &Item{
		Event: e,
		Slot: layout.Event{
			ID:    strconv.FormatInt(e.ID, 10),
			Range: layout.TimeRange{Start: e.Start, End: e.End},
		},
	}
}

// DayColumn is one day of a day view.
type DayColumn struct {
	Date  time.Time
	Items []*Item // timed events starting on Date, in packing order
	Grid  layout.DayGrid

	// Above and Below count events hidden outside the visible hours.
	Above int
	Below int
}

// DayView is a multi-day time grid with an all-day banner on top.
type DayView struct {
	Bounds        layout.Boundaries
	Long          []*Item // banner events, in packing order
	LongRows      int
	Days          []DayColumn
	Rows          int
	MinutesPerRow int
	StartMinutes  int
}

// Dates returns the first instant of each day in the view.
func (v DayView) Dates() []time.Time {
	return dates(v.Bounds)
}

// RowTime returns the wall clock instant at the top of row on day.
func (v DayView) RowTime(day, row int) time.Time {
	return dateutil.At(v.Bounds[day], v.StartMinutes+row*v.MinutesPerRow)
}

// MonthView is a grid of day cells, one row of cells per week, or a single
// week when built by BuildWeekView.
type MonthView struct {
	Bounds layout.Boundaries
	Items  []*Item
	Layout layout.WeekLayout
	Weeks  int

	// MultiWeek is set for month grids, where spans break at week rows.
	MultiWeek       bool
	CompressWeekend bool

	bySlot map[*layout.Event]*Item
}

// Dates returns the first instant of each day in the view.
func (v MonthView) Dates() []time.Time {
	return dates(v.Bounds)
}

// ItemOf returns the item owning span s.
func (v MonthView) ItemOf(s layout.Span) *Item {
	return v.bySlot[s.Event]
}

func dates(b layout.Boundaries) []time.Time {
	if b.Days() == 0 {
		return nil
	}
	return slices.Clone(b[:len(b)-1])
}

// BuildDayView lays out days days starting at first.
// Long events go to the banner with their ranges clamped to the view; the
// remaining events are packed into the column of the day they start on.
func BuildDayView(events []*event.Event, first time.Time, days int, opts Options) DayView {
	days = max(0, min(days, layout.MaxDays))
	bounds := layout.Boundaries(dateutil.DayBoundaries(first, days))
	v := DayView{
		Bounds:        bounds,
		Rows:          opts.Rows(),
		MinutesPerRow: opts.MinutesPerRow,
		StartMinutes:  opts.DayStartMinutes,
	}
	if days == 0 {
		return v
	}

	viewStart, viewEnd := bounds[0], bounds[days]
	v.Days = make([]DayColumn, days)
	for d := range v.Days {
		v.Days[d].Date = bounds[d]
	}

	var long []*layout.Event
	for _, e := range sortedForPacking(events) {
		if !e.Overlaps(viewStart, viewEnd) {
			continue
		}
		it := newItem(e)
		if e.IsLong() {
			it.Slot.Range = it.Slot.Range.Clamp(viewStart, viewEnd)
			v.Long = append(v.Long, it)
			long = append(long, &it.Slot)
			continue
		}
		d := layout.DayIndex(e.Start, bounds, false)
		if d < 0 || d >= days {
			continue
		}
		v.Days[d].Items = append(v.Days[d].Items, it)
	}
	v.LongRows = layout.PackLongEvents(long, days, bounds)

	for d := range v.Days {
		col := &v.Days[d]
		slots := make([]*layout.Event, len(col.Items))
		for i, it := range col.Items {
			slots[i] = &it.Slot
		}
		dayStart := dateutil.At(col.Date, opts.DayStartMinutes)
		col.Grid = layout.PackDayEvents(slots, layout.DayOptions{
			DayStart:      dayStart,
			Rows:          v.Rows,
			MinutesPerRow: opts.MinutesPerRow,
			MaxColumns:    opts.MaxColumns,
		})
		for _, it := range col.Items {
			if it.Slot.Placed() {
				continue
			}
			startRow, _ := layout.DayRows(it.Slot.Range, dayStart, opts.MinutesPerRow)
			switch {
			case startRow < 0:
				col.Above++
			case startRow >= v.Rows:
				col.Below++
			}
		}
	}

	return v
}

// BuildWeekView lays out the single week containing anchor.
func BuildWeekView(events []*event.Event, anchor time.Time, opts Options) MonthView {
	first := dateutil.StartOfWeek(anchor, opts.WeekStart)
	return buildSpans(events, first, 1, false, opts)
}

// BuildMonthView lays out weeks week rows, starting with the week that holds
// the first day of anchor's month.
func BuildMonthView(events []*event.Event, anchor time.Time, weeks int, opts Options) MonthView {
	first := dateutil.MonthGridStart(anchor, opts.WeekStart)
	return buildSpans(events, first, weeks, true, opts)
}

func buildSpans(events []*event.Event, first time.Time, weeks int, multiWeek bool, opts Options) MonthView {
	weeks = max(0, min(weeks, layout.MaxWeeks))
	days := weeks * 7
	bounds := layout.Boundaries(dateutil.DayBoundaries(first, days))
	v := MonthView{
		Bounds:          bounds,
		Weeks:           weeks,
		MultiWeek:       multiWeek,
		CompressWeekend: opts.CompressWeekend,
		bySlot:          make(map[*layout.Event]*Item),
	}
	if days == 0 {
		return v
	}

	var slots []*layout.Event
	for _, e := range events {
		if !e.Overlaps(bounds[0], bounds[days]) {
			continue
		}
		it := newItem(e)
		v.Items = append(v.Items, it)
		slots = append(slots, &it.Slot)
		v.bySlot[&it.Slot] = it
	}

	v.Layout = layout.PackWeekEvents(slots, nil, layout.WeekOptions{
		DaysShown:       days,
		MultiWeek:       multiWeek,
		CompressWeekend: opts.CompressWeekend,
		StartWeekday:    bounds[0].Weekday(),
		MaxRowsPerCell:  opts.MaxRowsPerCell,
	}, bounds)

	return v
}

// Relayout repacks v in place, reusing the span storage of the previous pass.
func (v *MonthView) Relayout(opts Options) {
	if v.Bounds.Days() == 0 {
		return
	}
	v.CompressWeekend = opts.CompressWeekend
	slots := make([]*layout.Event, len(v.Items))
	for i, it := range v.Items {
		slots[i] = &it.Slot
	}
	v.Layout = layout.PackWeekEvents(slots, v.Layout.Spans, layout.WeekOptions{
		DaysShown:       v.Bounds.Days(),
		MultiWeek:       v.MultiWeek,
		CompressWeekend: opts.CompressWeekend,
		StartWeekday:    v.Bounds[0].Weekday(),
		MaxRowsPerCell:  opts.MaxRowsPerCell,
	}, v.Bounds)
}

// sortedForPacking returns events ordered by start, longest first on ties.
func sortedForPacking(events []*event.Event) []*event.Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b *event.Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return b.End.Compare(a.End)
	})
	return sorted
}

// Loader reads events for a view from a repository.
type Loader struct {
	repo event.Repository
	opts Options
}

// NewLoader creates a Loader.
func NewLoader(repo event.Repository, opts Options) *Loader {
	return &Loader{repo: repo, opts: opts}
}

// Day loads and lays out days days starting at first.
func (l *Loader) Day(ctx context.Context, first time.Time, days int) (DayView, error) {
	start := dateutil.TruncateToDay(first)
	events, err := l.repo.ListEventsInRange(ctx, start, start.AddDate(0, 0, days))
	if err != nil {
		return DayView{}, fmt.Errorf("loading day view: %w", err)
	}
	return BuildDayView(events, start, days, l.opts), nil
}

// Week loads and lays out the week containing anchor.
func (l *Loader) Week(ctx context.Context, anchor time.Time) (MonthView, error) {
	first := dateutil.StartOfWeek(anchor, l.opts.WeekStart)
	events, err := l.repo.ListEventsInRange(ctx, first, first.AddDate(0, 0, 7))
	if err != nil {
		return MonthView{}, fmt.Errorf("loading week view: %w", err)
	}
	return BuildWeekView(events, anchor, l.opts), nil
}

// Month loads and lays out weeks week rows for anchor's month.
func (l *Loader) Month(ctx context.Context, anchor time.Time, weeks int) (MonthView, error) {
	first := dateutil.MonthGridStart(anchor, l.opts.WeekStart)
	events, err := l.repo.ListEventsInRange(ctx, first, first.AddDate(0, 0, weeks*7))
	if err != nil {
		return MonthView{}, fmt.Errorf("loading month view: %w", err)
	}
	return BuildMonthView(events, anchor, weeks, l.opts), nil
}
