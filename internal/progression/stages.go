// Package progression implements the long-horizon weekly state machine:
// five training stages with conservative, cancer-safe parameters, a weekly
// review that moves patients between them, and guideline ceilings that bound
// what any single week can accumulate.
package progression

import (
	"fmt"

	"github.com/claude/oncoplan/internal/clinical"
)

// StageConfig holds one training stage's weekly prescription.
type StageConfig struct {
	Name              string                  `json:"name"`
	Description       string                  `json:"description"`
	SessionsPerWeek   int                     `json:"sessionsPerWeek"`
	MinutesPerSession int                     `json:"minutesPerSession"`
	SetsPerExercise   int                     `json:"setsPerExercise"`
	RepsPerSet        int                     `json:"repsPerSet"`
	IntensityMax      int                     `json:"intensityMax"`
	RestDays          int                     `json:"restDays"`
	WeeklyTemplate    clinical.WeeklyTemplate `json:"weeklyTemplate"`
}

// stageConfigs is the progression ladder. Values climb gently on purpose:
// a stage transition changes at most one session, a few minutes, or one set.
var stageConfigs = map[clinical.TrainingStage]StageConfig{
	clinical.StageFoundations: {
		Name:              "Foundations",
		Description:       "Building confidence with gentle, short sessions",
		SessionsPerWeek:   2,
		MinutesPerSession: 10,
		SetsPerExercise:   1,
		RepsPerSet:        8,
		IntensityMax:      3,
		RestDays:          5,
		WeeklyTemplate: clinical.WeeklyTemplate{
			clinical.SessionRest,     // Sunday
			clinical.SessionStrength, // Monday
			clinical.SessionRest,
			clinical.SessionRest,
			clinical.SessionAerobic, // Thursday
			clinical.SessionRest,
			clinical.SessionRest,
		},
	},
	clinical.StageBuild1: {
		Name:              "Build 1",
		Description:       "Adding a third session with optional micro-movement",
		SessionsPerWeek:   3,
		MinutesPerSession: 12,
		SetsPerExercise:   2,
		RepsPerSet:        8,
		IntensityMax:      4,
		RestDays:          4,
		WeeklyTemplate: clinical.WeeklyTemplate{
			clinical.SessionRest,     // Sunday
			clinical.SessionStrength, // Monday
			clinical.SessionRest,
			clinical.SessionMindBody, // Wednesday
			clinical.SessionRest,
			clinical.SessionAerobic,  // Friday
			clinical.SessionOptional, // Saturday
		},
	},
	clinical.StageBuild2: {
		Name:              "Build 2",
		Description:       "Slightly longer sessions with varied focus",
		SessionsPerWeek:   3,
		MinutesPerSession: 15,
		SetsPerExercise:   2,
		RepsPerSet:        10,
		IntensityMax:      5,
		RestDays:          4,
		WeeklyTemplate: clinical.WeeklyTemplate{
			clinical.SessionRest,     // Sunday
			clinical.SessionStrength, // Monday
			clinical.SessionRest,
			clinical.SessionMixed, // Wednesday
			clinical.SessionRest,
			clinical.SessionAerobic,  // Friday
			clinical.SessionOptional, // Saturday
		},
	},
	clinical.StageGrow: {
		Name:              "Grow",
		Description:       "Four sessions with modest increases in duration",
		SessionsPerWeek:   4,
		MinutesPerSession: 18,
		SetsPerExercise:   2,
		RepsPerSet:        12,
		IntensityMax:      6,
		RestDays:          3,
		WeeklyTemplate: clinical.WeeklyTemplate{
			clinical.SessionRest,     // Sunday
			clinical.SessionStrength, // Monday
			clinical.SessionAerobic,  // Tuesday
			clinical.SessionRest,
			clinical.SessionMixed, // Thursday
			clinical.SessionRest,
			clinical.SessionMindBody, // Saturday
		},
	},
	clinical.StageMaintain: {
		Name:              "Maintain",
		Description:       "Stable routine with flexibility for how you feel",
		SessionsPerWeek:   4,
		MinutesPerSession: 20,
		SetsPerExercise:   3,
		RepsPerSet:        12,
		IntensityMax:      6,
		RestDays:          3,
		WeeklyTemplate: clinical.WeeklyTemplate{
			clinical.SessionOptional, // Sunday
			clinical.SessionStrength, // Monday
			clinical.SessionAerobic,  // Tuesday
			clinical.SessionRest,
			clinical.SessionMixed, // Thursday
			clinical.SessionRest,
			clinical.SessionMindBody, // Saturday
		},
	},
}

// ConfigFor returns the stage's parameters. Out-of-range stages fall back to
// FOUNDATIONS so arithmetic on stage values never dereferences a hole.
func ConfigFor(stage clinical.TrainingStage) StageConfig {
	if cfg, ok := stageConfigs[stage]; ok {
		return cfg
	}
	return stageConfigs[clinical.StageFoundations]
}

// StageDisplayInfo summarizes a stage for patient-facing surfaces.
type StageDisplayInfo struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	WeeklyOverview string `json:"weeklyOverview"`
}

// DisplayInfoFor builds the short patient-facing stage summary.
func DisplayInfoFor(stage clinical.TrainingStage) StageDisplayInfo {
	cfg := ConfigFor(stage)
	return StageDisplayInfo{
		Name:           cfg.Name,
		Description:    cfg.Description,
		WeeklyOverview: fmt.Sprintf("%d sessions, ~%d minutes each", cfg.SessionsPerWeek, cfg.MinutesPerSession),
	}
}
