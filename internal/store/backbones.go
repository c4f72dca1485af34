package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/progression"
)

// SaveBackbone upserts a patient's backbone keyed by user id.
func (s *Store) SaveBackbone(ctx context.Context, b progression.Backbone) error {
	template, err := json.Marshal(b.WeeklyTemplate)
	if err != nil {
		return fmt.Errorf("encoding weekly template: %w", err)
	}

	var lastProgression any
	if b.LastProgressionDate != nil {
		lastProgression = b.LastProgressionDate.UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO backbones (user_id, training_stage, weekly_template,
		 target_sessions, target_minutes, target_sets, target_reps,
		 current_week, stage_start, last_progression,
		 consecutive_good_weeks, medical_hold, hold_reason, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   training_stage=excluded.training_stage,
		   weekly_template=excluded.weekly_template,
		   target_sessions=excluded.target_sessions,
		   target_minutes=excluded.target_minutes,
		   target_sets=excluded.target_sets,
		   target_reps=excluded.target_reps,
		   current_week=excluded.current_week,
		   stage_start=excluded.stage_start,
		   last_progression=excluded.last_progression,
		   consecutive_good_weeks=excluded.consecutive_good_weeks,
		   medical_hold=excluded.medical_hold,
		   hold_reason=excluded.hold_reason,
		   updated_at=excluded.updated_at`,
		b.UserID, int(b.TrainingStage), string(template),
		b.TargetSessionsPerWeek, b.TargetMinutesPerSession, b.TargetSetsPerExercise, b.TargetRepsPerSet,
		b.CurrentWeekNumber, b.StageStartDate.UTC(), lastProgression,
		b.ConsecutiveGoodWeeks, b.MedicalHoldActive, b.HoldReason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving backbone: %w", err)
	}
	return nil
}

// Backbone loads a patient's backbone. Missing rows return ErrNotFound.
func (s *Store) Backbone(ctx context.Context, userID string) (progression.Backbone, error) {
	var (
		b               progression.Backbone
		stage           int
		template        string
		lastProgression sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, training_stage, weekly_template,
		 target_sessions, target_minutes, target_sets, target_reps,
		 current_week, stage_start, last_progression,
		 consecutive_good_weeks, medical_hold, hold_reason
		 FROM backbones WHERE user_id = ?`, userID).
		Scan(&b.UserID, &stage, &template,
			&b.TargetSessionsPerWeek, &b.TargetMinutesPerSession, &b.TargetSetsPerExercise, &b.TargetRepsPerSet,
			&b.CurrentWeekNumber, &b.StageStartDate, &lastProgression,
			&b.ConsecutiveGoodWeeks, &b.MedicalHoldActive, &b.HoldReason)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.Backbone{}, ErrNotFound
	}
	if err != nil {
		return progression.Backbone{}, fmt.Errorf("loading backbone: %w", err)
	}

	b.TrainingStage = clinical.TrainingStage(stage).Clamped()
	if err := json.Unmarshal([]byte(template), &b.WeeklyTemplate); err != nil {
		return progression.Backbone{}, fmt.Errorf("decoding weekly template: %w", err)
	}
	if lastProgression.Valid {
		t := lastProgression.Time
		b.LastProgressionDate = &t
	}
	return b, nil
}
