// Package storage defines the event archive interface. Fetched history is
// archived locally so the timeline, replay, and plot-turn views work
// without the backend being reachable.
package storage

import (
	"context"
	"time"

	"github.com/emergence-sim/emergence/internal/events"
	"github.com/emergence-sim/emergence/internal/storage/sqlite"
)

// Storage defines the interface for event archive backends.
type Storage interface {
	// StoreEvent archives a single event; storing the same ID twice is a no-op update
	StoreEvent(ctx context.Context, event *events.Event) error
	// StoreEvents archives a batch in one transaction, idempotent by ID
	StoreEvents(ctx context.Context, evts []*events.Event) error

	// GetEvents retrieves events matching the given filter, newest first
	GetEvents(ctx context.Context, filter events.EventFilter) ([]*events.Event, error)
	// GetRecentEvents retrieves the most recent events up to the specified limit
	GetRecentEvents(ctx context.Context, limit int) ([]*events.Event, error)
	// GetEventsInWindow retrieves events with start <= created_at <= end, newest first
	GetEventsInWindow(ctx context.Context, start, end time.Time) ([]*events.Event, error)
	// GetAllEvents retrieves the full archive, newest first
	GetAllEvents(ctx context.Context) ([]*events.Event, error)

	// CountEvents reports the total number of archived events
	CountEvents(ctx context.Context) (int, error)
	// EventTimeSpan reports the earliest and latest archived timestamps
	EventTimeSpan(ctx context.Context) (earliest, latest time.Time, err error)

	// CleanupEventsByAge deletes events older than the retention period
	CleanupEventsByAge(ctx context.Context, retention time.Duration) (int, error)

	// Lifecycle
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".emergence/events.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path: ".emergence/events.db",
	}
}

// NewStorage creates a new SQLite event archive.
// The ctx parameter is currently unused but kept for API consistency.
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = ".emergence/events.db"
	}
	return sqlite.New(cfg.Path)
}
