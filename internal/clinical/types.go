// Package clinical defines the value types shared by the decision core:
// treatment phases, safety flags, session templates, and dosed session
// outputs. Everything here is a plain immutable value; the core never
// mutates catalog data and always returns fresh outputs.
package clinical

import "time"

// Phase is the broad treatment timeline bucket, set externally by the
// treatment timeline and passed into every plan request.
type Phase string

const (
	PhasePrehab        Phase = "PREHAB"
	PhaseInTreatment   Phase = "IN_TREATMENT"
	PhasePostTreatment Phase = "POST_TREATMENT"
)

// ParsePhase normalizes a phase string. Unknown values report ok=false.
func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhasePrehab, PhaseInTreatment, PhasePostTreatment:
		return Phase(s), true
	}
	return "", false
}

// Stage is the intra-phase granularity used only for block eligibility.
type Stage string

const (
	StageEarly Stage = "EARLY"
	StageMid   Stage = "MID"
	StageLate  Stage = "LATE"
)

// Order maps a stage to its numeric position (EARLY=0, MID=1, LATE=2).
// Unknown stages map to 0, matching the catalog's permissive matching.
func (s Stage) Order() int {
	switch s {
	case StageMid:
		return 1
	case StageLate:
		return 2
	default:
		return 0
	}
}

// SafetyFlag is the three-tier symptom triage result. It is derived, never
// stored: every evaluation recomputes it from the current snapshot.
type SafetyFlag string

const (
	FlagGreen SafetyFlag = "GREEN"
	FlagAmber SafetyFlag = "AMBER"
	FlagRed   SafetyFlag = "RED"
)

func (f SafetyFlag) rank() int {
	switch f {
	case FlagRed:
		return 2
	case FlagAmber:
		return 1
	default:
		return 0
	}
}

// WorstFlag returns the more conservative of two safety flags
// (RED > AMBER > GREEN). The today-plan pipeline uses this to reconcile the
// safety gate's flag with the symptom-adaptation override.
func WorstFlag(a, b SafetyFlag) SafetyFlag {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// DoseBias is the gate's suggestion for how to dose the session.
type DoseBias string

const (
	BiasLowerDose DoseBias = "LOWER_DOSE"
	BiasNormal    DoseBias = "NORMAL"
)

// SessionType classifies a session or block.
type SessionType string

const (
	SessionStrength SessionType = "STRENGTH"
	SessionMobility SessionType = "MOBILITY"
	SessionAerobic  SessionType = "AEROBIC"
	SessionRecovery SessionType = "RECOVERY"
	SessionMixed    SessionType = "MIXED"
	SessionMindBody SessionType = "MIND_BODY"
	SessionRest     SessionType = "REST"
	SessionOptional SessionType = "OPTIONAL"
)

// TrainingStage is the long-horizon progression ladder, distinct from Stage.
// It is an int-backed enum so stage arithmetic (progress/deload by one) stays
// explicit; String() provides the single guideline lookup key.
type TrainingStage int

const (
	StageFoundations TrainingStage = iota
	StageBuild1
	StageBuild2
	StageGrow
	StageMaintain
)

var trainingStageNames = map[TrainingStage]string{
	StageFoundations: "FOUNDATIONS",
	StageBuild1:      "BUILD_1",
	StageBuild2:      "BUILD_2",
	StageGrow:        "GROW",
	StageMaintain:    "MAINTAIN",
}

func (ts TrainingStage) String() string {
	if name, ok := trainingStageNames[ts]; ok {
		return name
	}
	return "FOUNDATIONS"
}

// ParseTrainingStage is total: any unrecognized input falls back to
// FOUNDATIONS, the most conservative stage.
func ParseTrainingStage(s string) TrainingStage {
	for stage, name := range trainingStageNames {
		if name == s {
			return stage
		}
	}
	return StageFoundations
}

// Clamped returns the stage bounded to the valid ladder.
func (ts TrainingStage) Clamped() TrainingStage {
	if ts < StageFoundations {
		return StageFoundations
	}
	if ts > StageMaintain {
		return StageMaintain
	}
	return ts
}

// RepRange is an authored min/max bound for reps or sets.
type RepRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Valid reports whether the range is positive and ordered.
func (r RepRange) Valid() bool {
	return r.Min >= 1 && r.Min <= r.Max
}

// ClampInto bounds v into [r.Min, r.Max].
func (r RepRange) ClampInto(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Midpoint returns the rounded middle of the range.
func (r RepRange) Midpoint() int {
	return (r.Min + r.Max + 1) / 2
}

// BlockExercise is one authored exercise inside a block template.
type BlockExercise struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	SetRange RepRange `json:"setRange" yaml:"set_range"`
	RepRange RepRange `json:"repRange" yaml:"rep_range"`
	Notes    string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Block is an authored multi-week session template, eligible for a phase and
// an optional stage window. Catalog entries are read-only inputs to the core.
type Block struct {
	ID                string          `json:"id" yaml:"id"`
	Title             string          `json:"title" yaml:"title"`
	Phase             Phase           `json:"phase" yaml:"phase"`
	StageMin          Stage           `json:"stageMin,omitempty" yaml:"stage_min,omitempty"`
	StageMax          Stage           `json:"stageMax,omitempty" yaml:"stage_max,omitempty"`
	DaysPerWeekTarget int             `json:"daysPerWeekTarget" yaml:"days_per_week_target"`
	SessionType       SessionType     `json:"sessionType" yaml:"session_type"`
	Exercises         []BlockExercise `json:"exercises" yaml:"exercises"`
	IsRecoveryBlock   bool            `json:"isRecoveryBlock,omitempty" yaml:"is_recovery_block,omitempty"`
}

// MatchesStage reports whether the block's stage window covers the given
// stage. Unset bounds default to the full EARLY..LATE range.
func (b Block) MatchesStage(stage Stage) bool {
	min := 0
	if b.StageMin != "" {
		min = b.StageMin.Order()
	}
	max := 2
	if b.StageMax != "" {
		max = b.StageMax.Order()
	}
	n := stage.Order()
	return n >= min && n <= max
}

// BlockState is the caller-persisted continuity marker that keeps a patient
// on the same block across sessions instead of reselecting every day.
type BlockState struct {
	BlockID                  string `json:"blockId"`
	WeekInBlock              int    `json:"weekInBlock"`
	SessionsCompletedInBlock int    `json:"sessionsCompletedInBlock"`
}

// ExerciseOutput is a dosed instance of a BlockExercise for one session.
// RepsSuggested always lies within RepRange once dosing has run.
type ExerciseOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	SetsSuggested int      `json:"setsSuggested"`
	RepsSuggested int      `json:"repsSuggested"`
	RepRange      RepRange `json:"repRange"`
	Notes         string   `json:"notes,omitempty"`
}

// SessionOutput is a fully dosed session ready for the patient.
type SessionOutput struct {
	Title       string           `json:"title"`
	SessionType SessionType      `json:"sessionType"`
	Exercises   []ExerciseOutput `json:"exercises"`
}

// Clone returns a deep copy so adaptation layers never mutate their input.
func (s SessionOutput) Clone() SessionOutput {
	out := s
	out.Exercises = make([]ExerciseOutput, len(s.Exercises))
	copy(out.Exercises, s.Exercises)
	return out
}

// Caps bound the current session only, derived from Phase and SafetyFlag.
type Caps struct {
	IntensityRPEMax    int `json:"intensityRPEMax"`
	DurationMinutesMax int `json:"durationMinutesMax"`
}

// WeeklyTemplate maps each weekday to a planned session type, indexed by
// time.Weekday (Sunday = 0).
type WeeklyTemplate [7]SessionType

// For returns the planned session type for the given weekday.
func (w WeeklyTemplate) For(day time.Weekday) SessionType {
	return w[int(day)%7]
}
