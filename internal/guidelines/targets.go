// Package guidelines is the single owned home for the clinical guideline
// tables: weekly aerobic/strength targets per training stage, treatment-phase
// considerations, cancer-type guidance, and comorbidity effects. Both the
// dose selector and the recommendation engine read from here; nothing else in
// the repo re-declares these constants.
//
// The numbers align ACS/ACSM/ASCO and WHO guidance for people living with and
// beyond cancer. Stage targets are ceilings and orientations, not pass/fail
// minimums.
package guidelines

import (
	"math"

	"github.com/claude/oncoplan/internal/clinical"
)

// Full-guideline aerobic range: 150-300 moderate minutes/week, 75-150
// vigorous, with 1 vigorous minute counting as 2 moderate.
const (
	AerobicModerateMin      = 150
	AerobicModerateMax      = 300
	AerobicVigorousMin      = 75
	AerobicVigorousMax      = 150
	VigorousToModerateRatio = 2
	StrengthMinDaysPerWeek  = 2
)

// Meaningful-benefit anchor: ~90 moderate minutes/week already yields
// important symptom benefits, and even one strength session counts. Stage
// ceilings are expressed as percentages of this threshold.
const (
	BenefitAerobicMinutesPerWeek   = 90
	BenefitStrengthSessionsPerWeek = 1
)

// GuidelineRelationship describes where a stage sits relative to the full
// guideline range.
type GuidelineRelationship string

const (
	RelationshipBelow       GuidelineRelationship = "below"
	RelationshipApproaching GuidelineRelationship = "approaching"
	RelationshipWithin      GuidelineRelationship = "within"
)

// StageTarget holds the per-TrainingStage weekly target expressed as a
// percentage window of the benefit threshold plus a strength session range.
type StageTarget struct {
	AerobicPercentMin   int
	AerobicPercentMax   int
	StrengthSessionsMin int
	StrengthSessionsMax int
	Aim                 string
	Relationship        GuidelineRelationship
}

var stageTargets = map[clinical.TrainingStage]StageTarget{
	clinical.StageFoundations: {
		AerobicPercentMin:   30,
		AerobicPercentMax:   50,
		StrengthSessionsMin: 0,
		StrengthSessionsMax: 1,
		Aim:                 "Get moving safely and consistently",
		Relationship:        RelationshipBelow,
	},
	clinical.StageBuild1: {
		AerobicPercentMin:   50,
		AerobicPercentMax:   100,
		StrengthSessionsMin: 1,
		StrengthSessionsMax: 2,
		Aim:                 "Approach meaningful benefit threshold",
		Relationship:        RelationshipApproaching,
	},
	clinical.StageBuild2: {
		AerobicPercentMin:   100,
		AerobicPercentMax:   167,
		StrengthSessionsMin: 2,
		StrengthSessionsMax: 2,
		Aim:                 "Move towards the lower end of full guidelines",
		Relationship:        RelationshipApproaching,
	},
	clinical.StageGrow: {
		AerobicPercentMin:   167,
		AerobicPercentMax:   250,
		StrengthSessionsMin: 2,
		StrengthSessionsMax: 3,
		Aim:                 "Live within the guideline range",
		Relationship:        RelationshipWithin,
	},
	clinical.StageMaintain: {
		AerobicPercentMin:   100,
		AerobicPercentMax:   250,
		StrengthSessionsMin: 2,
		StrengthSessionsMax: 3,
		Aim:                 "Keep within your comfortable home zone",
		Relationship:        RelationshipWithin,
	},
}

// StageTargetFor returns the guideline target for a training stage. Unknown
// stages fall back to FOUNDATIONS, the most conservative window.
func StageTargetFor(stage clinical.TrainingStage) StageTarget {
	if t, ok := stageTargets[stage]; ok {
		return t
	}
	return stageTargets[clinical.StageFoundations]
}

// MinutesRange is an inclusive weekly minutes window.
type MinutesRange struct {
	Min int
	Max int
}

// SessionsRange is an inclusive weekly session count window.
type SessionsRange struct {
	Min int
	Max int
}

// StageAerobicRange converts a stage's percentage window into absolute weekly
// minutes against the benefit threshold.
func StageAerobicRange(stage clinical.TrainingStage) MinutesRange {
	t := StageTargetFor(stage)
	return MinutesRange{
		Min: int(math.Round(float64(t.AerobicPercentMin) / 100 * BenefitAerobicMinutesPerWeek)),
		Max: int(math.Round(float64(t.AerobicPercentMax) / 100 * BenefitAerobicMinutesPerWeek)),
	}
}

// StageStrengthRange returns a stage's weekly strength session window.
func StageStrengthRange(stage clinical.TrainingStage) SessionsRange {
	t := StageTargetFor(stage)
	return SessionsRange{Min: t.StrengthSessionsMin, Max: t.StrengthSessionsMax}
}

// Context captures the treatment and symptom situation that lowers weekly
// targets. Every active factor multiplies the reduction; reductions never
// raise a ceiling.
type Context struct {
	OnActiveChemo  bool
	OnRadiation    bool
	RecentSurgery  bool
	RedSymptomDays int
	PoorRecovery   bool
	ClinicianFlag  bool
}

// ReductionFactor composes the multiplicative reduction for the context.
// The result is always in (0, 1].
func (c Context) ReductionFactor() float64 {
	factor := 1.0
	if c.OnActiveChemo {
		factor *= 0.5
	}
	if c.OnRadiation {
		factor *= 0.7
	}
	if c.RecentSurgery {
		factor *= 0.4
	}
	switch {
	case c.RedSymptomDays >= 3:
		factor *= 0.6
	case c.RedSymptomDays >= 1:
		factor *= 0.8
	}
	if c.PoorRecovery {
		factor *= 0.7
	}
	if c.ClinicianFlag {
		factor *= 0.5
	}
	return factor
}

// AdjustedTargets is the context-reduced weekly window.
type AdjustedTargets struct {
	AerobicMinutes   MinutesRange
	StrengthSessions SessionsRange
}

// AdjustTargetsForContext lowers a stage's weekly window for active
// treatment, recent surgery, and symptom frequency. Micro-sessions still
// count, so the aerobic window never drops below 10-15 minutes. When the
// reduction is significant (factor < 0.6) strength collapses to 0-1 sessions.
func AdjustTargetsForContext(stage clinical.TrainingStage, ctx Context) AdjustedTargets {
	aerobic := StageAerobicRange(stage)
	strength := StageStrengthRange(stage)
	factor := ctx.ReductionFactor()

	adjusted := AdjustedTargets{
		AerobicMinutes: MinutesRange{
			Min: max(10, int(math.Round(float64(aerobic.Min)*factor))),
			Max: max(15, int(math.Round(float64(aerobic.Max)*factor))),
		},
		StrengthSessions: strength,
	}
	if factor < 0.6 {
		adjusted.StrengthSessions = SessionsRange{Min: 0, Max: min(1, strength.Max)}
	}
	return adjusted
}
