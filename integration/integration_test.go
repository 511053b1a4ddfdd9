package integration

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/calgrid/internal/calendar"
	"github.com/javiermolinar/calgrid/internal/config"
	"github.com/javiermolinar/calgrid/internal/db"
	"github.com/javiermolinar/calgrid/internal/event"
	"github.com/javiermolinar/calgrid/internal/ics"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// mustParseDate parses a local date string or fails the test.
func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("failed to parse date %q: %v", s, err)
	}
	return date
}

// createTimed is a helper to create and insert a timed event.
func createTimed(t *testing.T, repo *db.SQLite, title, date, start, end string) *event.Event {
	t.Helper()
	e, err := event.NewTimed(title, date, start, end, time.Local)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}
	return e
}

// createAllDay is a helper to create and insert an all-day event.
func createAllDay(t *testing.T, repo *db.SQLite, title, date string, days int) *event.Event {
	t.Helper()
	e, err := event.NewAllDay(title, date, days, time.Local)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}
	return e
}

func TestCreateEvent(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	e := createTimed(t, repo, "Integration test event", "2025-01-20", "08:00", "09:30")
	if e.ID == 0 {
		t.Error("expected event ID to be set after insert")
	}

	got, err := repo.GetEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("failed to get event: %v", err)
	}
	if got.Title != "Integration test event" {
		t.Errorf("Title: got %q, want %q", got.Title, "Integration test event")
	}
	if !got.Start.Equal(e.Start) || !got.End.Equal(e.End) {
		t.Errorf("got [%v, %v), want [%v, %v)", got.Start, got.End, e.Start, e.End)
	}
	if got.Duration() != 90*time.Minute {
		t.Errorf("Duration: got %v, want 90m", got.Duration())
	}
}

func TestNewEvent_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*event.Event, error)
		wantErr error
	}{
		{
			name:    "empty title",
			build:   func() (*event.Event, error) { return event.NewTimed("", "2025-01-20", "08:00", "09:00", time.Local) },
			wantErr: event.ErrEmptyTitle,
		},
		{
			name:    "end before start",
			build:   func() (*event.Event, error) { return event.NewTimed("x", "2025-01-20", "10:00", "09:00", time.Local) },
			wantErr: event.ErrEndBeforeStart,
		},
		{
			name:    "no days",
			build:   func() (*event.Event, error) { return event.NewAllDay("x", "2025-01-20", 0, time.Local) },
			wantErr: event.ErrInvalidDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetAndDeleteEvent_NotFound(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	if _, err := repo.GetEvent(ctx, 99999); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("GetEvent: got %v, want %v", err, event.ErrEventNotFound)
	}
	if err := repo.DeleteEvent(ctx, 99999); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("DeleteEvent: got %v, want %v", err, event.ErrEventNotFound)
	}
}

func TestListEventsInRange(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	createTimed(t, repo, "Before", "2025-01-19", "09:00", "10:00")
	createTimed(t, repo, "Morning", "2025-01-20", "09:00", "10:00")
	createTimed(t, repo, "Instant", "2025-01-20", "12:00", "12:00")
	createAllDay(t, repo, "Trip", "2025-01-18", 3) // ends at midnight on the 21st
	createAllDay(t, repo, "Later", "2025-01-21", 1)

	day := mustParseDate(t, "2025-01-20")
	events, err := repo.ListEventsInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("ListEventsInRange failed: %v", err)
	}

	var titles []string
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	if got, want := strings.Join(titles, ","), "Trip,Morning,Instant"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCreateEvents_DuplicateUID(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	dup, err := event.NewAllDay("Conference again", "2025-02-03", 3, time.Local)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	dup.UID = "conf@example.com"
	other, err := event.NewTimed("Call", "2025-02-04", "15:00", "15:30", time.Local)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	withUID, err := event.NewAllDay("Conference", "2025-02-03", 3, time.Local)
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	withUID.UID = "conf@example.com"
	if err := repo.CreateEvent(ctx, withUID); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if err := repo.CreateEvent(ctx, dup); !errors.Is(err, event.ErrDuplicateUID) {
		t.Errorf("got %v, want %v", err, event.ErrDuplicateUID)
	}

	inserted, err := repo.CreateEvents(ctx, []*event.Event{dup, other})
	if err != nil {
		t.Fatalf("CreateEvents failed: %v", err)
	}
	if inserted != 1 || other.ID == 0 || dup.ID != 0 {
		t.Errorf("got %d inserted, call ID %d, duplicate ID %d", inserted, other.ID, dup.ID)
	}
}

const offsite = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:offsite@example.com\r\n" +
	"DTSTAMP:20250101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20250109\r\n" +
	"DTEND;VALUE=DATE:20250114\r\n" +
	"SUMMARY:Offsite\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestFullWorkflow(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	// 1. Import a calendar with a trip that crosses a week boundary
	events, err := ics.Parse(strings.NewReader(offsite))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if n, err := repo.CreateEvents(ctx, events); err != nil || n != 1 {
		t.Fatalf("CreateEvents: got %d, %v", n, err)
	}

	// 2. Add overlapping meetings by hand
	a := createTimed(t, repo, "Planning", "2025-01-08", "09:00", "11:00")
	b := createTimed(t, repo, "Interview", "2025-01-08", "10:00", "12:00")
	c := createTimed(t, repo, "Lunch", "2025-01-08", "12:00", "13:00")

	cfg := config.Default()
	cfg.View.MinutesPerRow = 60
	loader := calendar.NewLoader(repo, calendar.OptionsFromConfig(cfg))

	// 3. Day view: the overlapping pair shares the width, lunch gets it all
	day, err := loader.Day(ctx, mustParseDate(t, "2025-01-08"), 1)
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	slots := make(map[int64]calendar.Item)
	for _, it := range day.Days[0].Items {
		slots[it.Event.ID] = *it
	}
	if s := slots[a.ID].Slot; s.Column != 0 || s.StartRow != 1 || s.EndRow != 2 {
		t.Errorf("planning: got column %d rows %d-%d", s.Column, s.StartRow, s.EndRow)
	}
	if s := slots[b.ID].Slot; s.Column != 1 {
		t.Errorf("interview: got column %d, want 1", s.Column)
	}
	if s := slots[c.ID].Slot; s.Column != 0 || day.Days[0].Grid.ColumnsPerRow[s.StartRow] != 1 {
		t.Errorf("lunch: got column %d", s.Column)
	}

	// 4. Month view: the offsite breaks at the weekend and at the week row
	month, err := loader.Month(ctx, mustParseDate(t, "2025-01-15"), 5)
	if err != nil {
		t.Fatalf("Month failed: %v", err)
	}
	var trip *calendar.Item
	for _, it := range month.Items {
		if it.Event.Title == "Offsite" {
			trip = it
		}
	}
	if trip == nil {
		t.Fatal("offsite missing from the month view")
	}
	spans := month.Layout.SpansOf(&trip.Slot)
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3 (Thu-Sat, Sun, Mon)", len(spans))
	}

	// 5. Repacking without compression joins the weekend
	opts := calendar.OptionsFromConfig(cfg)
	opts.CompressWeekend = false
	month.Relayout(opts)
	if spans := month.Layout.SpansOf(&trip.Slot); len(spans) != 2 {
		t.Errorf("got %d spans after relayout, want 2", len(spans))
	}

	// 6. Export round trip keeps the UID
	var buf strings.Builder
	all, err := repo.ListAllEvents(ctx)
	if err != nil {
		t.Fatalf("ListAllEvents failed: %v", err)
	}
	if err := ics.Write(&buf, all); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	back, err := ics.Parse(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(back) != 4 {
		t.Errorf("got %d events back, want 4", len(back))
	}
}
