package render

import (
	"fmt"
	"strings"

	"github.com/javiermolinar/calgrid/internal/calendar"
)

// Day draws a day view: a header per day, the banner of all-day and
// multi-day events, then one line per time row. Each day is split into the
// column budget of the row being drawn.
func (r *Renderer) Day(v calendar.DayView) string {
	days := len(v.Days)
	if days == 0 {
		return ""
	}
	dayW := max(minDayWidth, (r.opts.Width-timeLabelWidth)/days)

	lines := []string{
		r.styles.Title.Render(dayTitle(v)),
		r.dayHeader(v, dayW),
	}
	for row := 0; row < v.LongRows; row++ {
		lines = append(lines, r.bannerLine(v, row, dayW))
	}
	if line, ok := r.hiddenLine(v, dayW, true); ok {
		lines = append(lines, line)
	}

	occupied := make([][][]*calendar.Item, days)
	for d, col := range v.Days {
		occupied[d] = columnOccupancy(col, v.Rows)
	}
	for row := 0; row < v.Rows; row++ {
		lines = append(lines, r.gridLine(v, occupied, row, dayW))
	}

	if line, ok := r.hiddenLine(v, dayW, false); ok {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func dayTitle(v calendar.DayView) string {
	first := v.Days[0].Date
	last := v.Days[len(v.Days)-1].Date
	if len(v.Days) == 1 {
		return first.Format("Monday, January 2 2006")
	}
	return first.Format("Jan 2") + " - " + last.Format("Jan 2 2006")
}

func (r *Renderer) dayHeader(v calendar.DayView, dayW int) string {
	var b strings.Builder
	b.WriteString(fit("", timeLabelWidth))
	for _, col := range v.Days {
		b.WriteString(cell(" "+col.Date.Format("Mon 02"), dayW, r.headerStyle(col.Date)))
	}
	return b.String()
}

func (r *Renderer) bannerLine(v calendar.DayView, row, dayW int) string {
	days := len(v.Days)
	var b strings.Builder
	b.WriteString(fit("", timeLabelWidth))
	for d := 0; d < days; {
		it := bannerAt(v.Long, row, d)
		if it == nil {
			b.WriteString(cell("", dayW, r.styles.Empty))
			d++
			continue
		}
		n := min(it.Slot.StartDay+it.Slot.NumDays, days) - d
		b.WriteString(cell(bar+it.Event.Title, n*dayW, alternate(row, r.styles.AllDay, r.styles.AllDayAlt)))
		d += n
	}
	return b.String()
}

func bannerAt(items []*calendar.Item, row, day int) *calendar.Item {
	for _, it := range items {
		s := it.Slot
		if s.Placed() && s.Row == row && s.StartDay <= day && day < s.StartDay+s.NumDays {
			return it
		}
	}
	return nil
}

// hiddenLine reports events starting before (above) or after the visible
// hours. ok is false when no day has any.
func (r *Renderer) hiddenLine(v calendar.DayView, dayW int, above bool) (line string, ok bool) {
	arrow := "↓"
	if above {
		arrow = "↑"
	}
	var b strings.Builder
	b.WriteString(fit("", timeLabelWidth))
	for _, col := range v.Days {
		n := col.Below
		if above {
			n = col.Above
		}
		if n == 0 {
			b.WriteString(cell("", dayW, r.styles.Empty))
			continue
		}
		ok = true
		b.WriteString(cell(fmt.Sprintf(" %s %d", arrow, n), dayW, r.styles.More))
	}
	return b.String(), ok
}

// columnOccupancy maps every (row, column) cell of a day to the item
// covering it.
func columnOccupancy(col calendar.DayColumn, rows int) [][]*calendar.Item {
	grid := make([][]*calendar.Item, rows)
	for row := range grid {
		if row < len(col.Grid.ColumnsPerRow) {
			grid[row] = make([]*calendar.Item, col.Grid.ColumnsPerRow[row])
		}
	}
	for _, it := range col.Items {
		s := it.Slot
		if !s.Placed() {
			continue
		}
		for row := s.StartRow; row <= s.EndRow && row < rows; row++ {
			for c := s.Column; c < s.Column+s.NumColumns && c < len(grid[row]); c++ {
				grid[row][c] = it
			}
		}
	}
	return grid
}

func (r *Renderer) gridLine(v calendar.DayView, occupied [][][]*calendar.Item, row, dayW int) string {
	var b strings.Builder

	minute := v.StartMinutes + row*v.MinutesPerRow
	label := ""
	if minute%60 == 0 || row == 0 {
		label = fmt.Sprintf("%02d:%02d", minute/60, minute%60)
	}
	b.WriteString(r.styles.TimeLabel.Render(fit(label, timeLabelWidth)))

	for d := range v.Days {
		cols := occupied[d][row]
		if len(cols) == 0 {
			b.WriteString(cell("", dayW, r.styles.Empty))
			continue
		}
		for c := 0; c < len(cols); {
			it := cols[c]
			if it == nil {
				b.WriteString(cell("", share(dayW, len(cols), c), r.styles.Empty))
				c++
				continue
			}
			n := min(it.Slot.NumColumns, len(cols)-c)
			width := 0
			for i := c; i < c+n; i++ {
				width += share(dayW, len(cols), i)
			}
			style := alternate(it.Slot.Column, r.styles.Event, r.styles.EventAlt)
			b.WriteString(cell(blockText(it, row), width, style))
			c += n
		}
	}
	return b.String()
}

// blockText is the title on an event's first row, its time range on the
// second and a bare bar below.
func blockText(it *calendar.Item, row int) string {
	switch row - it.Slot.StartRow {
	case 0:
		return bar + it.Event.Title
	case 1:
		return bar + it.Event.Start.Format("15:04") + "-" + it.Event.End.Format("15:04")
	default:
		return bar
	}
}
