package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SavedRecommendation is one persisted scoring result. Only the exercise
// reference is stored; the catalog remains the source of truth for the
// exercise itself.
type SavedRecommendation struct {
	ExerciseID  string   `json:"exerciseId"`
	Score       int      `json:"score"`
	ReasonCodes []string `json:"reasonCodes"`
}

// ReplaceRecommendations atomically swaps a patient's stored ranking for a
// new one. Rankings are snapshots of one scoring run, so partial mixes of
// two runs are never useful.
func (s *Store) ReplaceRecommendations(ctx context.Context, userID string, recs []SavedRecommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clearing recommendations: %w", err)
	}

	now := time.Now().UTC()
	for _, rec := range recs {
		codes, err := json.Marshal(rec.ReasonCodes)
		if err != nil {
			return fmt.Errorf("encoding reason codes: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recommendations (id, user_id, exercise_id, score, reason_codes, created_at)
			 VALUES (?,?,?,?,?,?)`,
			uuid.NewString(), userID, rec.ExerciseID, rec.Score, string(codes), now); err != nil {
			return fmt.Errorf("inserting recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing recommendations: %w", err)
	}
	return nil
}

// Recommendations returns a patient's stored ranking, highest score first.
func (s *Store) Recommendations(ctx context.Context, userID string) ([]SavedRecommendation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exercise_id, score, reason_codes
		 FROM recommendations WHERE user_id = ?
		 ORDER BY score DESC, exercise_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying recommendations: %w", err)
	}
	defer rows.Close()

	var recs []SavedRecommendation
	for rows.Next() {
		var (
			rec   SavedRecommendation
			codes string
		)
		if err := rows.Scan(&rec.ExerciseID, &rec.Score, &codes); err != nil {
			return nil, fmt.Errorf("scanning recommendation: %w", err)
		}
		if err := json.Unmarshal([]byte(codes), &rec.ReasonCodes); err != nil {
			return nil, fmt.Errorf("decoding reason codes: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recommendations: %w", err)
	}
	return recs, nil
}
