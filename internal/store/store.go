// Package store persists backbones, session logs, and recommendation
// snapshots in a local SQLite database. The decision core itself is pure;
// this is the reference persistence collaborator the CLI wires in, and the
// seam a service deployment would replace.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a lookup for a row that does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS backbones (
	user_id                 TEXT PRIMARY KEY,
	training_stage          INTEGER NOT NULL,
	weekly_template         TEXT    NOT NULL,
	target_sessions         INTEGER NOT NULL,
	target_minutes          INTEGER NOT NULL,
	target_sets             INTEGER NOT NULL,
	target_reps             INTEGER NOT NULL,
	current_week            INTEGER NOT NULL,
	stage_start             TIMESTAMP NOT NULL,
	last_progression        TIMESTAMP,
	consecutive_good_weeks  INTEGER NOT NULL DEFAULT 0,
	medical_hold            INTEGER NOT NULL DEFAULT 0,
	hold_reason             TEXT    NOT NULL DEFAULT '',
	updated_at              TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS session_logs (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	date             TIMESTAMP NOT NULL,
	planned_type     TEXT NOT NULL DEFAULT '',
	actual_type      TEXT NOT NULL DEFAULT '',
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	rpe              INTEGER NOT NULL DEFAULT 0,
	completed        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_session_logs_user_date ON session_logs (user_id, date);

CREATE TABLE IF NOT EXISTS recommendations (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	exercise_id  TEXT NOT NULL,
	score        INTEGER NOT NULL,
	reason_codes TEXT NOT NULL,
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_user ON recommendations (user_id);
`

// Store wraps a SQLite handle. SQLite allows one writer at a time, so all
// writes serialize on the mutex; reads go straight through.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	return s.db.Close()
}
