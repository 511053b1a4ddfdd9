package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/calgrid/internal/calendar"
	"github.com/javiermolinar/calgrid/internal/layout"
)

// Month draws a week or month view as week rows of day cells.
// Each cell shows the date followed by its stacked span rows. When a day
// holds more rows than fit, its last visible line becomes "+N more".
func (r *Renderer) Month(v calendar.MonthView) string {
	days := v.Bounds.Days()
	if days == 0 {
		return ""
	}

	dates := v.Dates()
	widths := r.dayWidths(dates[0].Weekday(), v.CompressWeekend)

	lines := []string{r.styles.Title.Render(monthTitle(v))}
	if v.MultiWeek {
		lines = append(lines, r.weekdayHeader(dates[:7], widths))
	}

	for first := 0; first+7 <= days; first += 7 {
		week := dates[first : first+7]
		lines = append(lines, r.dateHeader(week, widths, v.MultiWeek))

		rows := r.cellRows(v.Layout.RowsPerDay[first : first+7])
		grid := spanGrid(v.Layout.Spans, first, rows)
		for k := 0; k < rows; k++ {
			lines = append(lines, r.spanLine(v, grid, first, k, rows, widths))
		}
	}
	return strings.Join(lines, "\n")
}

func monthTitle(v calendar.MonthView) string {
	if v.MultiWeek && v.Bounds.Days() >= 7 {
		// The seventh day of a month grid always falls in the anchor month.
		return v.Bounds[6].Format("January 2006")
	}
	return "Week of " + v.Bounds[0].Format("January 2 2006")
}

// dayWidths returns the width of each weekday column in a week row. With a
// compressed weekend, Saturday and Sunday each take half a column.
func (r *Renderer) dayWidths(start time.Weekday, compress bool) []int {
	cols := 7
	if compress {
		cols = 6
	}
	cellW := max(minDayWidth, r.opts.Width/cols)

	widths := make([]int, 7)
	for i := range widths {
		switch wd := (start + time.Weekday(i)) % 7; {
		case compress && wd == time.Saturday:
			widths[i] = cellW / 2
		case compress && wd == time.Sunday:
			widths[i] = cellW - cellW/2
		default:
			widths[i] = cellW
		}
	}
	return widths
}

func (r *Renderer) weekdayHeader(week []time.Time, widths []int) string {
	var b strings.Builder
	for i, day := range week {
		style := r.styles.Header
		if isWeekend(day) {
			style = r.styles.HeaderWeekend
		}
		b.WriteString(cell(" "+day.Format("Mon"), widths[i], style))
	}
	return b.String()
}

func (r *Renderer) dateHeader(week []time.Time, widths []int, multiWeek bool) string {
	var b strings.Builder
	for i, day := range week {
		label := day.Format("Mon 02")
		if multiWeek {
			label = day.Format("2")
			if day.Day() == 1 {
				label = day.Format("Jan 2")
			}
		}
		b.WriteString(cell(" "+label, widths[i], r.headerStyle(day)))
	}
	return b.String()
}

// cellRows returns the number of span lines drawn for a week row.
func (r *Renderer) cellRows(rowsPerDay []int) int {
	if r.opts.CellRows > 0 {
		return r.opts.CellRows
	}
	rows := 1
	for _, n := range rowsPerDay {
		rows = max(rows, n)
	}
	return rows
}

// spanGrid indexes the spans of the week row starting at day first by
// weekday column and row. Spans stacked below rows are kept so they can
// be counted.
func spanGrid(spans []layout.Span, first, rows int) [][]*layout.Span {
	grid := make([][]*layout.Span, 7)
	for i := range spans {
		s := &spans[i]
		if s.EndDay() < first || s.StartDay >= first+7 {
			continue
		}
		for day := max(s.StartDay, first); day <= min(s.EndDay(), first+6); day++ {
			col := day - first
			for len(grid[col]) <= s.Row {
				grid[col] = append(grid[col], nil)
			}
			grid[col][s.Row] = s
		}
	}
	return grid
}

// overflow returns how many spans are hidden behind the "+N more" line of
// a cell, or 0 when every row fits.
func overflow(column []*layout.Span, rows int) int {
	if len(column) <= rows {
		return 0
	}
	hidden := 0
	for _, s := range column[rows-1:] {
		if s != nil {
			hidden++
		}
	}
	return hidden
}

func (r *Renderer) spanLine(v calendar.MonthView, grid [][]*layout.Span, first, k, rows int, widths []int) string {
	masked := func(col int) bool {
		return k == rows-1 && overflow(grid[col], rows) > 0
	}
	at := func(col int) *layout.Span {
		if k < len(grid[col]) {
			return grid[col][k]
		}
		return nil
	}

	var b strings.Builder
	for col := 0; col < 7; {
		if masked(col) {
			b.WriteString(cell(fmt.Sprintf(" +%d more", overflow(grid[col], rows)), widths[col], r.styles.More))
			col++
			continue
		}
		s := at(col)
		if s == nil {
			style := r.styles.Empty
			if isWeekend(v.Bounds[first+col]) {
				style = r.styles.Weekend
			}
			b.WriteString(cell("", widths[col], style))
			col++
			continue
		}

		end, width := col, 0
		for end < 7 && at(end) == s && !masked(end) {
			width += widths[end]
			end++
		}
		b.WriteString(cell(bar+spanLabel(v.ItemOf(*s)), width, r.spanStyle(v.ItemOf(*s), k)))
		col = end
	}
	return b.String()
}

func spanLabel(it *calendar.Item) string {
	if it == nil {
		return ""
	}
	if it.Event.IsLong() {
		return it.Event.Title
	}
	return it.Event.Start.Format("15:04") + " " + it.Event.Title
}

func (r *Renderer) spanStyle(it *calendar.Item, row int) lipgloss.Style {
	if it != nil && it.Event.IsLong() {
		return alternate(row, r.styles.AllDay, r.styles.AllDayAlt)
	}
	return alternate(row, r.styles.Event, r.styles.EventAlt)
}
