package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/calgrid/internal/calendar"
	"github.com/javiermolinar/calgrid/internal/event"
)

type fakeRepo struct {
	event.Repository
	eventsByRange func(start, end time.Time) ([]*event.Event, error)
}

func (f fakeRepo) ListEventsInRange(_ context.Context, start, end time.Time) ([]*event.Event, error) {
	if f.eventsByRange == nil {
		return nil, errors.New("not implemented")
	}
	return f.eventsByRange(start, end)
}

func testLoader(repo event.Repository) *calendar.Loader {
	return calendar.NewLoader(repo, calendar.Options{
		WeekStart:       time.Monday,
		DayStartMinutes: 8 * 60,
		DayEndMinutes:   18 * 60,
		MinutesPerRow:   30,
		MaxRowsPerCell:  10,
	})
}

func TestLoadDays(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := fakeRepo{eventsByRange: func(start, end time.Time) ([]*event.Event, error) {
		gotStart, gotEnd = start, end
		return nil, nil
	}}

	first := time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC)
	msg := LoadDays(testLoader(repo), 3, first, 2)()

	loaded, ok := msg.(DayLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want DayLoadedMsg", msg)
	}
	if loaded.Generation != 3 {
		t.Errorf("got generation %d, want 3", loaded.Generation)
	}
	if len(loaded.View.Days) != 2 {
		t.Errorf("got %d days, want 2", len(loaded.View.Days))
	}
	if want := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC); !gotStart.Equal(want) || !gotEnd.Equal(want.AddDate(0, 0, 2)) {
		t.Errorf("got range [%v, %v)", gotStart, gotEnd)
	}
}

func TestLoadWeekAndMonth(t *testing.T) {
	repo := fakeRepo{eventsByRange: func(start, end time.Time) ([]*event.Event, error) {
		return nil, nil
	}}
	anchor := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	msg := LoadWeek(testLoader(repo), 1, anchor)()
	week, ok := msg.(MonthLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want MonthLoadedMsg", msg)
	}
	if week.View.Weeks != 1 || week.View.MultiWeek {
		t.Errorf("got %d weeks, multi-week %v", week.View.Weeks, week.View.MultiWeek)
	}

	msg = LoadMonth(testLoader(repo), 2, anchor, 6)()
	month, ok := msg.(MonthLoadedMsg)
	if !ok {
		t.Fatalf("got %T, want MonthLoadedMsg", msg)
	}
	if month.Generation != 2 || month.View.Weeks != 6 || !month.View.MultiWeek {
		t.Errorf("got generation %d, %d weeks", month.Generation, month.View.Weeks)
	}
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("boom")
	repo := fakeRepo{eventsByRange: func(start, end time.Time) ([]*event.Event, error) {
		return nil, boom
	}}

	msg := LoadMonth(testLoader(repo), 5, time.Now(), 5)()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("got %T, want ErrMsg", msg)
	}
	if errMsg.Generation != 5 || !errors.Is(errMsg.Err, boom) {
		t.Errorf("got %+v", errMsg)
	}
}

func TestScheduleRelayout(t *testing.T) {
	msg := ScheduleRelayout(7, time.Millisecond)()
	if got, ok := msg.(RelayoutMsg); !ok || got.Generation != 7 {
		t.Errorf("got %#v, want RelayoutMsg{7}", msg)
	}
}
