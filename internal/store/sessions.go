package store

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/progression"
	"github.com/google/uuid"
)

// InsertSessionLog records one session and returns its generated id.
func (s *Store) InsertSessionLog(ctx context.Context, userID string, log progression.SessionLog) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_logs (id, user_id, date, planned_type, actual_type, duration_minutes, rpe, completed)
		 VALUES (?,?,?,?,?,?,?,?)`,
		id, userID, log.Date.UTC(), string(log.PlannedType), string(log.ActualType),
		log.DurationMinutes, log.RPE, log.Completed)
	if err != nil {
		return "", fmt.Errorf("inserting session log: %w", err)
	}
	return id, nil
}

// SessionLogsSince returns a patient's logs on or after since, oldest
// first.
func (s *Store) SessionLogsSince(ctx context.Context, userID string, since time.Time) ([]progression.SessionLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, planned_type, actual_type, duration_minutes, rpe, completed
		 FROM session_logs WHERE user_id = ? AND date >= ? ORDER BY date`,
		userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("querying session logs: %w", err)
	}
	defer rows.Close()

	var logs []progression.SessionLog
	for rows.Next() {
		var (
			log                 progression.SessionLog
			planned, actualType string
		)
		if err := rows.Scan(&log.Date, &planned, &actualType, &log.DurationMinutes, &log.RPE, &log.Completed); err != nil {
			return nil, fmt.Errorf("scanning session log: %w", err)
		}
		log.PlannedType = clinical.SessionType(planned)
		log.ActualType = clinical.SessionType(actualType)
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading session logs: %w", err)
	}
	return logs, nil
}
