package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// CreateEvent adds a new event and sets its ID.
	// Returns ErrDuplicateUID if an event with the same non-empty UID exists.
	CreateEvent(ctx context.Context, e *Event) error

	// CreateEvents adds multiple events atomically.
	// Events whose UID already exists are skipped; the number inserted is returned.
	CreateEvents(ctx context.Context, events []*Event) (int, error)

	// GetEvent retrieves an event by ID.
	GetEvent(ctx context.Context, id int64) (*Event, error)

	// DeleteEvent removes an event by ID.
	DeleteEvent(ctx context.Context, id int64) error

	// ListEventsInRange returns events overlapping [start, end), ordered by start.
	ListEventsInRange(ctx context.Context, start, end time.Time) ([]*Event, error)

	// ListAllEvents returns every stored event ordered by start.
	ListAllEvents(ctx context.Context) ([]*Event, error)

	// Close releases any resources held by the repository.
	Close() error
}
