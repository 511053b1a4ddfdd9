// Package db provides SQLite storage implementation.
package db

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/calgrid/internal/event"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

const eventColumns = `id, uid, title, location, start_at, end_at, all_day, created_at`

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateEvent adds a new event to the repository.
// Returns event.ErrDuplicateUID if the UID is already stored.
func (s *SQLite) CreateEvent(ctx context.Context, e *event.Event) error {
	id, err := insertEvent(ctx, s.db, "INSERT", e)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", event.ErrDuplicateUID, e.UID)
		}
		return fmt.Errorf("inserting event: %w", err)
	}
	e.ID = id
	return nil
}

// CreateEvents adds multiple events in a batch using a transaction.
// Events whose UID is already stored are skipped and keep a zero ID.
func (s *SQLite) CreateEvents(ctx context.Context, events []*event.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, e := range events {
		id, err := insertEvent(ctx, tx, "INSERT OR IGNORE", e)
		if err != nil {
			return 0, fmt.Errorf("inserting event %q: %w", e.Title, err)
		}
		if id != 0 {
			e.ID = id
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return inserted, nil
}

// insertEvent runs verb ("INSERT" or "INSERT OR IGNORE") for e and returns the
// new row ID, or 0 when the row was ignored.
func insertEvent(ctx context.Context, x execer, verb string, e *event.Event) (int64, error) {
	query := verb + ` INTO events (uid, title, location, start_at, end_at, all_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var uid sql.NullString
	if e.UID != "" {
		uid = sql.NullString{String: e.UID, Valid: true}
	}
	start, end := formatRange(e)
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	result, err := x.ExecContext(ctx, query,
		uid,
		e.Title,
		e.Location,
		start,
		end,
		e.AllDay,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return id, nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	e, err := scanEvent(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return e, nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %d", event.ErrEventNotFound, id)
	}

	return nil
}

// ListEventsInRange returns events overlapping [start, end), ordered by start.
// The query selects a superset padded by a day on each side, since all-day
// rows hold local dates; the exact overlap test runs on the loaded events.
func (s *SQLite) ListEventsInRange(ctx context.Context, start, end time.Time) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE start_at < ? AND end_at >= ?
		ORDER BY start_at, id`

	upper := end.UTC().AddDate(0, 0, 1).Format(timestampLayout)
	lower := start.UTC().AddDate(0, 0, -1).Format(dateLayout)

	all, err := s.queryEvents(ctx, query, upper, lower)
	if err != nil {
		return nil, err
	}

	events := all[:0]
	for _, e := range all {
		if e.Overlaps(start, end) {
			events = append(events, e)
		}
	}
	sortByStart(events)
	return events, nil
}

// ListAllEvents returns every stored event ordered by start.
func (s *SQLite) ListAllEvents(ctx context.Context) ([]*event.Event, error) {
	events, err := s.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_at, id`)
	if err != nil {
		return nil, err
	}
	sortByStart(events)
	return events, nil
}

func (s *SQLite) queryEvents(ctx context.Context, query string, args ...any) ([]*event.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []*event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*event.Event, error) {
	var (
		e         event.Event
		uid       sql.NullString
		location  sql.NullString
		startAt   string
		endAt     string
		createdAt string
	)

	if err := row.Scan(&e.ID, &uid, &e.Title, &location, &startAt, &endAt, &e.AllDay, &createdAt); err != nil {
		return nil, err
	}
	e.UID = uid.String
	e.Location = location.String

	var err error
	if e.Start, err = parseInstant(startAt); err != nil {
		return nil, fmt.Errorf("parsing start: %w", err)
	}
	if e.End, err = parseInstant(endAt); err != nil {
		return nil, fmt.Errorf("parsing end: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}
	e.CreatedAt = e.CreatedAt.Local()

	return &e, nil
}

// formatRange renders the stored form of an event's bounds.
// All-day events keep their calendar dates so they stay on the same days
// when read back in another time zone.
func formatRange(e *event.Event) (start, end string) {
	if e.AllDay {
		return e.Start.Format(dateLayout), e.End.Format(dateLayout)
	}
	return e.Start.UTC().Format(timestampLayout), e.End.UTC().Format(timestampLayout)
}

// parseInstant parses a stored bound.
// Date-only values are parsed as local midnight.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}

	formats := []string{
		timestampLayout,
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t.Local(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

// sortByStart orders events by start then ID. Stored bounds mix dates and
// UTC timestamps, so SQL ordering is only approximate.
func sortByStart(events []*event.Event) {
	slices.SortStableFunc(events, func(a, b *event.Event) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
