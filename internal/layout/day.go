package layout

import (
	"time"

	"github.com/javiermolinar/calgrid/internal/debuglog"
)

// DayOptions configures a sub-day packing pass.
type DayOptions struct {
	DayStart      time.Time // instant of row 0
	Rows          int       // number of time rows
	MinutesPerRow int
	MaxColumns    int // 0 means unbounded
}

// DayGrid is the result of PackDayEvents.
type DayGrid struct {
	// ColumnsPerRow is the column budget of every row. Rows linked by an
	// event, directly or transitively, share the same budget.
	ColumnsPerRow []int

	// MaxColumns is the largest number of events found in any single row.
	MaxColumns int

	// MaxBudget is the widest entry of ColumnsPerRow. It exceeds MaxColumns
	// when first fit had to skip past columns blocked on other rows.
	MaxBudget int
}

// columnGrid keeps one growable column vector per time row.
type columnGrid [][]bool

func (g columnGrid) occupied(row, col int) bool {
	cells := g[row]
	return col < len(cells) && cells[col]
}

func (g columnGrid) free(col, startRow, endRow int) bool {
	for row := startRow; row <= endRow; row++ {
		if g.occupied(row, col) {
			return false
		}
	}
	return true
}

func (g columnGrid) mark(row, col int) {
	for len(g[row]) <= col {
		g[row] = append(g[row], false)
	}
	g[row][col] = true
}

// rowGroups is a disjoint-set forest over time rows.
type rowGroups []int

func newRowGroups(rows int) rowGroups {
	g := make(rowGroups, rows)
	for i := range g {
		g[i] = i
	}
	return g
}

func (g rowGroups) find(row int) int {
	for g[row] != row {
		g[row] = g[g[row]]
		row = g[row]
	}
	return row
}

func (g rowGroups) union(a, b int) {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return
	}
	// Keep the lowest row as root so groups read naturally when debugging.
	if rb < ra {
		ra, rb = rb, ra
	}
	g[rb] = ra
}

// PackDayEvents places events of one day into a time-row by column grid.
//
// Rows are derived from each event's minutes since opts.DayStart. Every event
// takes the first column free across all its rows, then rows linked by events
// are given a common column budget, and finally each event widens to the right
// while the next column is free in all its rows and within the budget.
func PackDayEvents(events []*Event, opts DayOptions) DayGrid {
	if opts.Rows <= 0 || opts.MinutesPerRow <= 0 {
		for _, e := range events {
			e.Assignment = Assignment{}
		}
		return DayGrid{}
	}

	grid := make(columnGrid, opts.Rows)
	groups := newRowGroups(opts.Rows)
	eventsInRow := make([]int, opts.Rows)

	for _, e := range events {
		placeDayEvent(e, opts, grid, groups, eventsInRow)
	}

	// A row's budget is its event count, or its highest used column when
	// first fit had to skip past columns blocked on other rows.
	budget := make(map[int]int)
	for row, n := range eventsInRow {
		root := groups.find(row)
		budget[root] = max(budget[root], n, len(grid[row]))
	}
	columnsPerRow := make([]int, opts.Rows)
	maxColumns, maxBudget := 0, 0
	for row := range columnsPerRow {
		columnsPerRow[row] = budget[groups.find(row)]
		maxColumns = max(maxColumns, eventsInRow[row])
		maxBudget = max(maxBudget, columnsPerRow[row])
	}

	for _, e := range events {
		if !e.Placed() {
			continue
		}
		for col := e.Column + 1; col < columnsPerRow[e.StartRow]; col++ {
			if !grid.free(col, e.StartRow, e.EndRow) {
				break
			}
			e.NumColumns++
		}
	}

	return DayGrid{ColumnsPerRow: columnsPerRow, MaxColumns: maxColumns, MaxBudget: maxBudget}
}

// DayRows returns the time rows covered by r, before clamping.
func DayRows(r TimeRange, dayStart time.Time, minutesPerRow int) (startRow, endRow int) {
	startMinute := minutesSince(dayStart, r.Start)
	endMinute := minutesSince(dayStart, r.End)
	startRow = floorDiv(startMinute, minutesPerRow)
	endRow = max(startRow, floorDiv(endMinute-1, minutesPerRow))
	return startRow, endRow
}

func placeDayEvent(e *Event, opts DayOptions, grid columnGrid, groups rowGroups, eventsInRow []int) {
	e.Assignment = Assignment{}

	startRow, endRow := DayRows(e.Range, opts.DayStart, opts.MinutesPerRow)
	if startRow >= opts.Rows || endRow < 0 {
		debuglog.Log("LAYOUT_OUT_OF_WINDOW", map[string]any{
			"event_id":  e.ID,
			"start_row": startRow,
			"end_row":   endRow,
			"rows":      opts.Rows,
		})
		return
	}
	startRow = max(startRow, 0)
	endRow = min(endRow, opts.Rows-1)

	col := 0
	for !grid.free(col, startRow, endRow) {
		col++
	}
	if opts.MaxColumns > 0 && col >= opts.MaxColumns {
		debuglog.Log("LAYOUT_COLUMN_LIMIT", map[string]any{
			"event_id":    e.ID,
			"start_row":   startRow,
			"end_row":     endRow,
			"max_columns": opts.MaxColumns,
		})
		return
	}

	e.StartRow = startRow
	e.EndRow = endRow
	e.Column = col
	e.NumColumns = 1

	for row := startRow; row <= endRow; row++ {
		grid.mark(row, col)
		eventsInRow[row]++
		groups.union(startRow, row)
	}
}

func minutesSince(origin, t time.Time) int {
	d := t.Sub(origin)
	m := int(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		m--
	}
	return m
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
