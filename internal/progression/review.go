package progression

import "github.com/claude/oncoplan/internal/clinical"

// Decision is the weekly review's verdict.
type Decision string

const (
	DecisionProgress Decision = "progress"
	DecisionHold     Decision = "hold"
	DecisionDeload   Decision = "deload"
)

// Progression thresholds. Completion is a percentage of planned sessions;
// RPE is the week's average on the 1-10 scale.
const (
	deloadCompletionBelow = 40
	holdCompletionBelow   = 70
	holdRPEMin            = 7
	progressRPEMax        = 5
	deloadRedDaysMin      = 3
	progressRedDaysMax    = 1
)

// ReviewData is one week's adherence and symptom summary.
type ReviewData struct {
	SessionsPlanned       int     `json:"sessionsPlanned"`
	SessionsCompleted     int     `json:"sessionsCompleted"`
	AverageRPE            float64 `json:"averageRpe"`
	RedSymptomDays        int     `json:"redSymptomDays"`
	AmberSymptomDays      int     `json:"amberSymptomDays"`
	TreatmentPhaseChanged bool    `json:"treatmentPhaseChanged"`
}

// CompletionRate returns the week's completion percentage. A week with no
// planned sessions counts as zero, which routes to the default hold.
func (r ReviewData) CompletionRate() float64 {
	if r.SessionsPlanned <= 0 {
		return 0
	}
	return float64(r.SessionsCompleted) / float64(r.SessionsPlanned) * 100
}

// ReviewOutcome is the decision plus the concrete weekly deltas a stage
// change implies and the message shown to the patient.
type ReviewOutcome struct {
	Decision       Decision               `json:"decision"`
	Reason         string                 `json:"reason"`
	NewStage       clinical.TrainingStage `json:"newStage"`
	MinutesChange  int                    `json:"minutesChange"`
	SessionsChange int                    `json:"sessionsChange"`
	SetsChange     int                    `json:"setsChange"`
	GentleMessage  string                 `json:"gentleMessage"`
}

// EvaluateWeeklyReview decides whether the patient progresses, holds, or
// deloads. Branch order is clinical precedence, not likelihood: safety
// overrides (medical hold, phase change) come first, then deload, then the
// hold conditions, and progression only when nothing above claimed the week.
func EvaluateWeeklyReview(backbone Backbone, week ReviewData) ReviewOutcome {
	stage := backbone.TrainingStage.Clamped()
	current := ConfigFor(stage)
	completion := week.CompletionRate()

	hold := func(reason, message string) ReviewOutcome {
		return ReviewOutcome{
			Decision:      DecisionHold,
			Reason:        reason,
			NewStage:      stage,
			GentleMessage: message,
		}
	}

	if backbone.MedicalHoldActive {
		return hold("Medical hold is active",
			"We're keeping your programme steady while your medical team advises. This is the right thing to do.")
	}

	if week.TreatmentPhaseChanged {
		return hold("Treatment phase recently changed",
			"Your treatment has changed, so we're keeping things steady to see how your body responds. Very sensible approach.")
	}

	if completion < deloadCompletionBelow && week.RedSymptomDays >= deloadRedDaysMin {
		newStage := (stage - 1).Clamped()
		next := ConfigFor(newStage)
		return ReviewOutcome{
			Decision:       DecisionDeload,
			Reason:         "Low completion with frequent severe symptoms",
			NewStage:       newStage,
			MinutesChange:  next.MinutesPerSession - current.MinutesPerSession,
			SessionsChange: next.SessionsPerWeek - current.SessionsPerWeek,
			SetsChange:     next.SetsPerExercise - current.SetsPerExercise,
			GentleMessage:  "We're gently stepping back your programme. This isn't failure - it's wisdom. Your body is telling us what it needs right now.",
		}
	}

	if completion >= deloadCompletionBelow && completion < holdCompletionBelow {
		return hold("Building consistency at current level",
			"You're building good habits. We'll keep the same level this week to help you feel confident and consistent.")
	}

	if week.AverageRPE >= holdRPEMin {
		return hold("Current level is appropriately challenging",
			"Your effort levels show this is a good challenge for you. We'll stay here to let your body adapt.")
	}

	if completion >= holdCompletionBelow &&
		week.AverageRPE <= progressRPEMax &&
		week.RedSymptomDays <= progressRedDaysMax &&
		stage < clinical.StageMaintain {
		newStage := (stage + 1).Clamped()
		next := ConfigFor(newStage)
		return ReviewOutcome{
			Decision:       DecisionProgress,
			Reason:         "Consistent completion with manageable effort",
			NewStage:       newStage,
			MinutesChange:  next.MinutesPerSession - current.MinutesPerSession,
			SessionsChange: next.SessionsPerWeek - current.SessionsPerWeek,
			SetsChange:     next.SetsPerExercise - current.SetsPerExercise,
			GentleMessage:  "Because you've been moving steadily and your body has been responding well, we're gently nudging your programme forward. You can always scale down if needed.",
		}
	}

	return hold("Maintaining current progress",
		"You're doing great at your current level. We'll continue building your foundation.")
}
