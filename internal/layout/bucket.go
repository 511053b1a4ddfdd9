package layout

import (
	"sort"
	"time"
)

// DayIndex returns the largest d with t >= bounds[d].
//
// With endTieBreak set the comparison becomes t > bounds[d], so an instant
// exactly on a boundary belongs to the day that ends there. This is what an
// event's end needs: an event ending at midnight does not occupy the next day.
//
// The result lies in [-1, N]: -1 means before the first day and N means at or
// after the end of the last day. Callers clamp.
func DayIndex(t time.Time, bounds Boundaries, endTieBreak bool) int {
	i := sort.Search(len(bounds), func(i int) bool {
		if endTieBreak {
			return !t.After(bounds[i])
		}
		return t.Before(bounds[i])
	})
	return i - 1
}

// EventDays returns the first and last day an event touches.
// A zero-length event collapses to its start day. A range ending before
// it starts can yield endDay < startDay, which packers treat as invalid.
func EventDays(r TimeRange, bounds Boundaries) (startDay, endDay int) {
	startDay = DayIndex(r.Start, bounds, false)
	if r.End.Equal(r.Start) {
		return startDay, startDay
	}
	endDay = DayIndex(r.End, bounds, true)
	return startDay, endDay
}
