package planner

import (
	"math/rand/v2"
	"time"

	"github.com/claude/oncoplan/internal/adapt"
	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
	"github.com/claude/oncoplan/internal/safety"
)

// Engine composes gate, selector, dose, and adaptation into the today-plan
// pipeline. Rand, when set, shuffles exercise order for session variety;
// a nil Rand keeps catalog order, which is what tests and replay rely on.
type Engine struct {
	Catalog *catalog.Catalog
	Rand    *rand.Rand
}

// WeeklyContext carries the progression backbone's view of the week so the
// plan can be held under the stage's guideline ceilings. It is optional: a
// caller without weekly tracking gets an uncapped single-session plan.
type WeeklyContext struct {
	TrainingStage    clinical.TrainingStage
	AerobicMinutes   float64
	StrengthSessions float64
	Context          guidelines.Context
}

// PlanInput is everything the pipeline needs for one day. Symptoms are the
// patient's self-report for today; BlockState is the caller-persisted
// continuity marker and may be nil on first contact.
type PlanInput struct {
	Phase      clinical.Phase
	Stage      clinical.Stage
	DayOfWeek  time.Weekday
	Symptoms   clinical.SymptomSnapshot
	BlockState *clinical.BlockState
	Weekly     *WeeklyContext
}

// PlanMeta echoes the inputs that shaped the plan, for logging and storage.
type PlanMeta struct {
	Phase     clinical.Phase      `json:"phase"`
	Stage     clinical.Stage      `json:"stage"`
	BlockID   string              `json:"blockId"`
	DayOfWeek time.Weekday        `json:"dayOfWeek"`
	Flag      clinical.SafetyFlag `json:"safetyFlag"`
}

// Plan is the pipeline's output: the dosed, symptom-adapted, ceiling-capped
// session plus every reason the layers produced along the way.
type Plan struct {
	SafetyFlag         clinical.SafetyFlag    `json:"safetyFlag"`
	Session            clinical.SessionOutput `json:"session"`
	Caps               clinical.Caps          `json:"caps"`
	AdaptationsApplied []string               `json:"adaptationsApplied"`
	Reasons            []string               `json:"reasons"`
	Meta               PlanMeta               `json:"meta"`
}

// TodayPlan runs the full pipeline: safety gate, block selection, coarse
// dosing, the fine symptom pass, then weekly guideline ceilings. The final
// flag is the most conservative view any layer took of today's symptoms.
func (e *Engine) TodayPlan(in PlanInput) (*Plan, error) {
	gate := safety.Evaluate(in.Symptoms)

	sel, err := SelectBlock(e.Catalog, in.Phase, in.Stage, in.BlockState, gate.SafetyFlag)
	if err != nil {
		return nil, err
	}

	dose := BuildSession(sel.Block, gate.SafetyFlag, in.Phase)

	reasons := append([]string{}, gate.Reasons...)
	reasons = append(reasons, sel.Reason)
	adaptations := append([]string{}, dose.Adaptations...)

	fine := adapt.Session(dose.Session, in.Symptoms)
	session := fine.Session
	reasons = append(reasons, fine.Reasons...)

	flag := gate.SafetyFlag
	if fine.SafetyOverride != "" {
		flag = clinical.WorstFlag(flag, fine.SafetyOverride)
	}

	caps := dose.Caps
	if in.Weekly != nil {
		session, caps, adaptations = applyWeeklyCeilings(session, caps, adaptations, *in.Weekly)
	}

	if e.Rand != nil && flag != clinical.FlagRed {
		e.Rand.Shuffle(len(session.Exercises), func(i, j int) {
			session.Exercises[i], session.Exercises[j] = session.Exercises[j], session.Exercises[i]
		})
	}

	return &Plan{
		SafetyFlag:         flag,
		Session:            session,
		Caps:               caps,
		AdaptationsApplied: adaptations,
		Reasons:            reasons,
		Meta: PlanMeta{
			Phase:     in.Phase,
			Stage:     in.Stage,
			BlockID:   sel.Block.ID,
			DayOfWeek: in.DayOfWeek,
			Flag:      flag,
		},
	}, nil
}

// restHeadroomMinutes is the aerobic headroom below which a session is not
// worth running and becomes rest instead of a token few minutes.
const restHeadroomMinutes = 5

// applyWeeklyCeilings holds the session under the training stage's
// context-adjusted weekly guideline ceilings. A week already at its aerobic
// ceiling converts today into rest; a strength ceiling retypes strength work
// as aerobic so movement continues without more resistance volume.
func applyWeeklyCeilings(session clinical.SessionOutput, caps clinical.Caps, adaptations []string, weekly WeeklyContext) (clinical.SessionOutput, clinical.Caps, []string) {
	targets := guidelines.AdjustTargetsForContext(weekly.TrainingStage, weekly.Context)

	remaining := float64(targets.AerobicMinutes.Max) - weekly.AerobicMinutes
	if float64(caps.DurationMinutesMax) > remaining {
		if remaining <= restHeadroomMinutes {
			session.SessionType = clinical.SessionRest
			session.Exercises = nil
			caps.DurationMinutesMax = 0
			adaptations = append(adaptations, "Weekly movement target already met - today is a rest day")
			return session, caps, adaptations
		}
		caps.DurationMinutesMax = int(remaining)
		adaptations = append(adaptations, "Session shortened to stay within this week's guideline ceiling")
	}

	if session.SessionType == clinical.SessionStrength || session.SessionType == clinical.SessionMixed {
		if weekly.StrengthSessions >= float64(targets.StrengthSessions.Max) {
			session.SessionType = clinical.SessionAerobic
			adaptations = append(adaptations, "Strength ceiling reached this week - converted to aerobic session")
		}
	}

	return session, caps, adaptations
}
