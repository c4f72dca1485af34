package progression

import (
	"time"

	"github.com/claude/oncoplan/internal/clinical"
)

// Backbone is a patient's persistent weekly structure: the current training
// stage, its template, and the targets copied from the stage config at the
// last transition. The caller owns persistence; the core only reads and
// returns new values.
type Backbone struct {
	UserID                  string                  `json:"userId"`
	TrainingStage           clinical.TrainingStage  `json:"trainingStage"`
	WeeklyTemplate          clinical.WeeklyTemplate `json:"weeklyTemplate"`
	TargetSessionsPerWeek   int                     `json:"targetSessionsPerWeek"`
	TargetMinutesPerSession int                     `json:"targetMinutesPerSession"`
	TargetSetsPerExercise   int                     `json:"targetSetsPerExercise"`
	TargetRepsPerSet        int                     `json:"targetRepsPerSet"`
	CurrentWeekNumber       int                     `json:"currentWeekNumber"`
	StageStartDate          time.Time               `json:"stageStartDate"`
	LastProgressionDate     *time.Time              `json:"lastProgressionDate,omitempty"`
	ConsecutiveGoodWeeks    int                     `json:"consecutiveGoodWeeks"`
	MedicalHoldActive       bool                    `json:"medicalHoldActive"`
	HoldReason              string                  `json:"holdReason,omitempty"`
}

// NewDefaultBackbone builds a FOUNDATIONS backbone for a new patient.
func NewDefaultBackbone(userID string, now time.Time) Backbone {
	cfg := ConfigFor(clinical.StageFoundations)
	return Backbone{
		UserID:                  userID,
		TrainingStage:           clinical.StageFoundations,
		WeeklyTemplate:          cfg.WeeklyTemplate,
		TargetSessionsPerWeek:   cfg.SessionsPerWeek,
		TargetMinutesPerSession: cfg.MinutesPerSession,
		TargetSetsPerExercise:   cfg.SetsPerExercise,
		TargetRepsPerSet:        cfg.RepsPerSet,
		CurrentWeekNumber:       1,
		StageStartDate:          now,
	}
}

// ApplyStage moves the backbone to a new stage, refreshing the template and
// targets from the stage config. A no-op when the stage is unchanged.
func (b *Backbone) ApplyStage(stage clinical.TrainingStage, now time.Time) {
	if stage == b.TrainingStage {
		return
	}
	cfg := ConfigFor(stage)
	b.TrainingStage = stage
	b.WeeklyTemplate = cfg.WeeklyTemplate
	b.TargetSessionsPerWeek = cfg.SessionsPerWeek
	b.TargetMinutesPerSession = cfg.MinutesPerSession
	b.TargetSetsPerExercise = cfg.SetsPerExercise
	b.TargetRepsPerSet = cfg.RepsPerSet
	b.StageStartDate = now
	b.LastProgressionDate = &now
}

// PlannedSessionFor returns the template's session type for a date. A nil
// backbone falls back to the FOUNDATIONS template so new patients still get
// a plan before onboarding persists one.
func PlannedSessionFor(b *Backbone, date time.Time) clinical.SessionType {
	if b == nil {
		return ConfigFor(clinical.StageFoundations).WeeklyTemplate.For(date.Weekday())
	}
	return b.WeeklyTemplate.For(date.Weekday())
}

// SessionLog is one recorded session, planned versus actually performed.
type SessionLog struct {
	Date            time.Time            `json:"date"`
	PlannedType     clinical.SessionType `json:"plannedType,omitempty"`
	ActualType      clinical.SessionType `json:"actualType,omitempty"`
	DurationMinutes int                  `json:"durationMinutes,omitempty"`
	RPE             int                  `json:"rpe,omitempty"`
	Completed       bool                 `json:"completed"`
}
