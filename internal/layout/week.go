package layout

import (
	"slices"
	"time"

	"github.com/javiermolinar/calgrid/internal/debuglog"
)

// WeekOptions configures a week or month packing pass.
type WeekOptions struct {
	DaysShown       int
	MultiWeek       bool // month-style view made of 7-day week rows
	CompressWeekend bool // Saturday and Sunday share one cell
	StartWeekday    time.Weekday
	MaxRowsPerCell  int // 0 means DefaultMaxRowsPerCell
}

// WeekLayout is the result of PackWeekEvents.
type WeekLayout struct {
	// Spans holds the spans of every event. Event e owns
	// Spans[e.SpanIndex : e.SpanIndex+e.NumSpans].
	Spans []Span

	// RowsPerDay is the number of stacked rows used in each day cell.
	RowsPerDay []int
}

// SpansOf returns the spans owned by e.
func (l WeekLayout) SpansOf(e *Event) []Span {
	if e.NumSpans == 0 || e.SpanIndex+e.NumSpans > len(l.Spans) {
		return nil
	}
	return l.Spans[e.SpanIndex : e.SpanIndex+e.NumSpans]
}

// SortWeekEvents orders events by start, then by end descending, so the
// longest of several events starting together is placed first.
func SortWeekEvents(events []*Event) {
	slices.SortStableFunc(events, func(a, b *Event) int {
		if c := a.Range.Start.Compare(b.Range.Start); c != 0 {
			return c
		}
		return b.Range.End.Compare(a.Range.End)
	})
}

// PackWeekEvents lays out events in a week or month grid.
//
// events is sorted in place with SortWeekEvents. Each event's clamped day
// range is cut into spans that never cross a week row or, with a compressed
// weekend, go from Saturday into Sunday. Both cuts apply to the multi-week
// view only; a single week keeps the whole range in one span. Each span takes the lowest
// row free on all its days, up to opts.MaxRowsPerCell rows; a span that does
// not fit is dropped and the event simply shows fewer spans.
//
// prior is the span list of a previous pass. Its storage is reused and its
// content discarded.
func PackWeekEvents(events []*Event, prior []Span, opts WeekOptions, bounds Boundaries) WeekLayout {
	days := min(opts.DaysShown, bounds.Days())
	spans := prior[:0]
	if days <= 0 {
		for _, e := range events {
			e.Assignment = Assignment{}
		}
		return WeekLayout{Spans: spans}
	}

	maxRows := opts.MaxRowsPerCell
	if maxRows <= 0 {
		maxRows = DefaultMaxRowsPerCell
	}

	SortWeekEvents(events)

	p := &weekPacker{
		opts:       opts,
		days:       days,
		maxRows:    maxRows,
		grid:       newDayGrid(days, maxRows),
		rowsPerDay: make([]int, days),
		spans:      spans,
	}
	for _, e := range events {
		p.pack(e, bounds)
	}

	return WeekLayout{Spans: p.spans, RowsPerDay: p.rowsPerDay}
}

type weekPacker struct {
	opts       WeekOptions
	days       int
	maxRows    int
	grid       *dayGrid
	rowsPerDay []int
	spans      []Span
}

func (p *weekPacker) pack(e *Event, bounds Boundaries) {
	e.Assignment = Assignment{SpanIndex: len(p.spans)}

	startDay, endDay := EventDays(e.Range, bounds)
	if endDay < 0 || startDay >= p.days || endDay < startDay {
		debuglog.Log("LAYOUT_INVALID_RANGE", map[string]any{
			"event_id":  e.ID,
			"start_day": startDay,
			"end_day":   endDay,
			"days":      p.days,
		})
		return
	}
	startDay = max(startDay, 0)
	endDay = min(endDay, p.days-1)

	e.StartDay = startDay
	e.NumDays = endDay - startDay + 1

	for spanStart := startDay; spanStart <= endDay; {
		spanEnd := p.spanEnd(spanStart, endDay)
		if row, ok := p.freeRow(spanStart, spanEnd); ok {
			p.grid.mark(row, spanStart, spanEnd)
			for day := spanStart; day <= spanEnd; day++ {
				p.rowsPerDay[day] = max(p.rowsPerDay[day], row+1)
			}
			p.spans = append(p.spans, Span{
				Event:    e,
				StartDay: spanStart,
				NumDays:  spanEnd - spanStart + 1,
				Row:      row,
			})
			e.NumSpans++
		} else {
			debuglog.Log("LAYOUT_SPAN_DROPPED", map[string]any{
				"event_id":  e.ID,
				"start_day": spanStart,
				"end_day":   spanEnd,
				"max_rows":  p.maxRows,
			})
		}
		spanStart = spanEnd + 1
	}
}

// spanEnd returns the last day of the span starting at start.
func (p *weekPacker) spanEnd(start, endDay int) int {
	if !p.opts.MultiWeek {
		return endDay
	}
	end := min(endDay, start/7*7+6)
	if p.opts.CompressWeekend {
		for day := start; day < end; day++ {
			if p.weekday(day) == time.Saturday {
				return day
			}
		}
	}
	return end
}

func (p *weekPacker) weekday(day int) time.Weekday {
	return time.Weekday((int(p.opts.StartWeekday) + day) % 7)
}

func (p *weekPacker) freeRow(start, end int) (int, bool) {
	for row := 0; row < p.maxRows; row++ {
		if p.grid.free(row, start, end) {
			return row, true
		}
	}
	return 0, false
}
