package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emergence-sim/emergence/internal/events"
)

const eventColumns = "id, event_type, created_at, agent_id, description, salience, category, sim_day, data"

// StoreEvent archives a single event. Re-storing an ID the archive already
// holds replaces the row, so overlapping fetches stay idempotent.
func (s *SQLiteStorage) StoreEvent(ctx context.Context, event *events.Event) error {
	dataJSON, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO events (
			id, event_type, created_at, agent_id, description,
			salience, category, sim_day, data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		event.ID,
		event.Type,
		formatTime(event.CreatedAt),
		event.AgentID,
		event.Description,
		event.Salience,
		event.Category,
		event.SimDay,
		string(dataJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to store event (type=%s, id=%s): %w", event.Type, event.ID, err)
	}

	return nil
}

// StoreEvents archives a batch of events in one transaction.
func (s *SQLiteStorage) StoreEvents(ctx context.Context, evts []*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO events (
			id, event_type, created_at, agent_id, description,
			salience, category, sim_day, data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, event := range evts {
		dataJSON, err := json.Marshal(event.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal event data (id=%s): %w", event.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			event.ID,
			event.Type,
			formatTime(event.CreatedAt),
			event.AgentID,
			event.Description,
			event.Salience,
			event.Category,
			event.SimDay,
			string(dataJSON),
		); err != nil {
			return fmt.Errorf("failed to store event (id=%s): %w", event.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event batch: %w", err)
	}
	return nil
}

// GetEvents retrieves events matching the given filter, newest first.
func (s *SQLiteStorage) GetEvents(ctx context.Context, filter events.EventFilter) ([]*events.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE 1=1"
	args := []interface{}{}

	if filter.Type != "" {
		query += " AND event_type = ?"
		args = append(args, filter.Type)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.AgentID != "" {
		query += " AND agent_id = ?"
		args = append(args, filter.AgentID)
	}
	if filter.MinSalience > 0 {
		query += " AND salience >= ?"
		args = append(args, filter.MinSalience)
	}
	if !filter.AfterTime.IsZero() {
		query += " AND created_at > ?"
		args = append(args, formatTime(filter.AfterTime))
	}
	if !filter.BeforeTime.IsZero() {
		query += " AND created_at <> '' AND created_at < ?"
		args = append(args, formatTime(filter.BeforeTime))
	}

	// Most recent first
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetRecentEvents retrieves the most recent events up to the specified limit.
func (s *SQLiteStorage) GetRecentEvents(ctx context.Context, limit int) ([]*events.Event, error) {
	query := "SELECT " + eventColumns + " FROM events ORDER BY created_at DESC LIMIT ?"

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsInWindow retrieves events with start <= created_at <= end,
// newest first. Events without timestamps are excluded; they cannot belong
// to a window.
func (s *SQLiteStorage) GetEventsInWindow(ctx context.Context, start, end time.Time) ([]*events.Event, error) {
	query := "SELECT " + eventColumns + ` FROM events
		WHERE created_at <> '' AND created_at >= ? AND created_at <= ?
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, formatTime(start), formatTime(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query events in window: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetAllEvents retrieves the full archive, newest first.
func (s *SQLiteStorage) GetAllEvents(ctx context.Context) ([]*events.Event, error) {
	query := "SELECT " + eventColumns + " FROM events ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountEvents reports the total number of archived events.
func (s *SQLiteStorage) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// EventTimeSpan reports the earliest and latest archived timestamps. Both
// are zero when the archive is empty or holds only timestampless events.
func (s *SQLiteStorage) EventTimeSpan(ctx context.Context) (time.Time, time.Time, error) {
	var earliest, latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT MIN(created_at), MAX(created_at) FROM events WHERE created_at <> ''",
	).Scan(&earliest, &latest)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to query event time span: %w", err)
	}
	if !earliest.Valid || !latest.Valid {
		return time.Time{}, time.Time{}, nil
	}
	return parseTime(earliest.String), parseTime(latest.String), nil
}

// CleanupEventsByAge deletes events older than the retention period,
// returning the number deleted. Timestampless events are retained.
func (s *SQLiteStorage) CleanupEventsByAge(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive (got %v)", retention)
	}

	cutoff := time.Now().Add(-retention)
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE created_at <> '' AND created_at < ?",
		formatTime(cutoff),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted events: %w", err)
	}
	return int(deleted), nil
}

// scanEvents is a helper function to scan rows into Event structs.
func scanEvents(rows *sql.Rows) ([]*events.Event, error) {
	var result []*events.Event

	for rows.Next() {
		var event events.Event
		var createdAt, dataJSON string

		err := rows.Scan(
			&event.ID,
			&event.Type,
			&createdAt,
			&event.AgentID,
			&event.Description,
			&event.Salience,
			&event.Category,
			&event.SimDay,
			&dataJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.CreatedAt = parseTime(createdAt)
		if dataJSON != "" && dataJSON != "null" {
			if err := json.Unmarshal([]byte(dataJSON), &event.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event data (id=%s): %w", event.ID, err)
			}
		}

		result = append(result, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}
	return result, nil
}
