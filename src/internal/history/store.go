// Package history records install and uninstall operations in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Action is the kind of operation an event records
type Action string

// Recorded actions
const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"
)

// Event is one recorded operation.
type Event struct {
	ID        int64
	Action    Action
	Component string
	Platform  string
	Provider  string
	Version   string
	Success   bool
	Error     string
	Duration  time.Duration
	Timestamp time.Time
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Component string
	Platform  string
	Limit     int
}

// Store provides SQLite database operations for the operation history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at dbPath.
// Use ":memory:" for in-memory databases (useful for testing).
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only allows one writer at a time
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts an event and sets its ID. A zero Timestamp is set to now.
func (s *Store) Record(e *Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO events
		(action, component, platform, provider, version, success, error_message, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.db.Exec(query,
		string(e.Action),
		e.Component,
		e.Platform,
		e.Provider,
		e.Version,
		e.Success,
		e.Error,
		e.Duration.Milliseconds(),
		e.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record %s of %s: %w", e.Action, e.Component, err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	return nil
}

// List returns matching events, newest first.
func (s *Store) List(f Filter) ([]Event, error) {
	query := `
		SELECT id, action, component, platform, provider, version, success, error_message, duration_ms, timestamp
		FROM events
		WHERE (? = '' OR component = ?) AND (? = '' OR platform = ?)
		ORDER BY timestamp DESC, id DESC
	`
	args := []any{f.Component, f.Component, f.Platform, f.Platform}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		var action string
		var timestamp int64
		var provider, version, errText sql.NullString
		var durationMS sql.NullInt64

		if err := rows.Scan(&e.ID, &action, &e.Component, &e.Platform, &provider, &version,
			&e.Success, &errText, &durationMS, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		e.Action = Action(action)
		e.Provider = provider.String
		e.Version = version.String
		e.Error = errText.String
		e.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		e.Timestamp = time.Unix(0, timestamp)

		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// Prune deletes events older than before and returns how many were removed.
func (s *Store) Prune(before time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE timestamp < ?", before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	return res.RowsAffected()
}
