package layout

import "github.com/javiermolinar/calgrid/internal/debuglog"

// dayGrid tracks which day cells of each row are taken.
// Rows are appended on demand, so a first-fit search always terminates.
type dayGrid struct {
	days int
	rows [][]bool
}

func newDayGrid(days, rows int) *dayGrid {
	g := &dayGrid{days: days, rows: make([][]bool, 0, rows)}
	for i := 0; i < rows; i++ {
		g.addRow()
	}
	return g
}

func (g *dayGrid) addRow() {
	g.rows = append(g.rows, make([]bool, g.days))
}

// free reports whether days [start, end] are all empty in row.
func (g *dayGrid) free(row, start, end int) bool {
	if row >= len(g.rows) {
		return true
	}
	for day := start; day <= end; day++ {
		if g.rows[row][day] {
			return false
		}
	}
	return true
}

func (g *dayGrid) mark(row, start, end int) {
	for row >= len(g.rows) {
		g.addRow()
	}
	for day := start; day <= end; day++ {
		g.rows[row][day] = true
	}
}

// PackLongEvents stacks whole-day events into banner rows.
//
// Events are processed in input order. Each one takes the lowest row whose
// cells are free across all its days. Events with a day range outside the
// first daysShown days get NumColumns = 0. The number of rows used is
// returned.
func PackLongEvents(events []*Event, daysShown int, bounds Boundaries) int {
	days := min(daysShown, bounds.Days())
	if days <= 0 {
		for _, e := range events {
			e.Assignment = Assignment{}
		}
		return 0
	}

	grid := newDayGrid(days, 0)
	rowsUsed := 0
	for _, e := range events {
		if row, ok := packLongEvent(e, days, bounds, grid); ok {
			rowsUsed = max(rowsUsed, row+1)
		}
	}
	return rowsUsed
}

func packLongEvent(e *Event, days int, bounds Boundaries, grid *dayGrid) (int, bool) {
	e.Assignment = Assignment{}

	startDay, endDay := EventDays(e.Range, bounds)
	if startDay < 0 || startDay >= days || endDay < 0 || endDay >= days || endDay < startDay {
		debuglog.Log("LAYOUT_INVALID_RANGE", map[string]any{
			"event_id":  e.ID,
			"start_day": startDay,
			"end_day":   endDay,
			"days":      days,
		})
		return 0, false
	}

	row := 0
	for !grid.free(row, startDay, endDay) {
		row++
	}
	grid.mark(row, startDay, endDay)

	e.Row = row
	e.StartDay = startDay
	e.NumDays = endDay - startDay + 1
	e.NumColumns = 1
	return row, true
}
