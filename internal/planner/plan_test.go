package planner

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return &Engine{Catalog: catalog.Default()}
}

// TestGreenPlanDosesMidSetsMaxReps verifies the GREEN dose rule against the
// authored post-treatment strength block.
func TestGreenPlanDosesMidSetsMaxReps(t *testing.T) {
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase:     clinical.PhasePostTreatment,
		Stage:     clinical.StageEarly,
		DayOfWeek: time.Monday,
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}

	if plan.SafetyFlag != clinical.FlagGreen {
		t.Fatalf("SafetyFlag = %q, want GREEN", plan.SafetyFlag)
	}
	if plan.Meta.BlockID != "post_rebuild_strength_A" {
		t.Fatalf("BlockID = %q, want post_rebuild_strength_A", plan.Meta.BlockID)
	}

	// sit_to_stand: set_range 2-3 -> round(2.5) = 3 sets; rep_range max 12.
	ex := plan.Session.Exercises[0]
	if ex.SetsSuggested != 3 || ex.RepsSuggested != 12 {
		t.Errorf("sit_to_stand dosed %d x %d, want 3 x 12", ex.SetsSuggested, ex.RepsSuggested)
	}
	if plan.Caps != (clinical.Caps{IntensityRPEMax: 7, DurationMinutesMax: 45}) {
		t.Errorf("Caps = %+v, want post-treatment base caps", plan.Caps)
	}
}

// TestRedPlanRoutesToRecoveryBlock verifies the RED path: recovery block,
// single minimal sets, and clamped caps.
func TestRedPlanRoutesToRecoveryBlock(t *testing.T) {
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase:    clinical.PhasePostTreatment,
		Stage:    clinical.StageEarly,
		Symptoms: clinical.SymptomSnapshot{Fatigue: 9},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}

	if plan.SafetyFlag != clinical.FlagRed {
		t.Fatalf("SafetyFlag = %q, want RED", plan.SafetyFlag)
	}
	if plan.Meta.BlockID != "post_mobility_reset" {
		t.Fatalf("BlockID = %q, want post_mobility_reset", plan.Meta.BlockID)
	}
	for _, ex := range plan.Session.Exercises {
		if ex.SetsSuggested != 1 {
			t.Errorf("%s: sets = %d, want 1", ex.ID, ex.SetsSuggested)
		}
		if ex.RepsSuggested != ex.RepRange.Min {
			t.Errorf("%s: reps = %d, want range min %d", ex.ID, ex.RepsSuggested, ex.RepRange.Min)
		}
	}
	if plan.Caps.IntensityRPEMax > 4 || plan.Caps.DurationMinutesMax > 15 {
		t.Errorf("Caps = %+v, want RPE<=4 and minutes<=15", plan.Caps)
	}
}

// TestAmberCapsTighten verifies the AMBER cap adjustments on the
// in-treatment base (RPE 6, 25 minutes).
func TestAmberCapsTighten(t *testing.T) {
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase:    clinical.PhaseInTreatment,
		Stage:    clinical.StageMid,
		Symptoms: clinical.SymptomSnapshot{Pain: 6},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}

	if plan.SafetyFlag != clinical.FlagAmber {
		t.Fatalf("SafetyFlag = %q, want AMBER", plan.SafetyFlag)
	}
	if plan.Caps != (clinical.Caps{IntensityRPEMax: 5, DurationMinutesMax: 15}) {
		t.Errorf("Caps = %+v, want {5 15}", plan.Caps)
	}
}

// TestBlockContinuity verifies a valid block state is kept over reselection
// and that a cross-phase state is discarded.
func TestBlockContinuity(t *testing.T) {
	e := testEngine(t)

	plan, err := e.TodayPlan(PlanInput{
		Phase:      clinical.PhasePrehab,
		Stage:      clinical.StageEarly,
		BlockState: &clinical.BlockState{BlockID: "prehab_foundation", WeekInBlock: 2},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}
	if plan.Meta.BlockID != "prehab_foundation" {
		t.Errorf("BlockID = %q, want continuity block", plan.Meta.BlockID)
	}

	// State pointing at a post-treatment block while in prehab is stale.
	plan, err = e.TodayPlan(PlanInput{
		Phase:      clinical.PhasePrehab,
		Stage:      clinical.StageEarly,
		BlockState: &clinical.BlockState{BlockID: "post_rebuild_strength_A"},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}
	if plan.Meta.BlockID == "post_rebuild_strength_A" {
		t.Errorf("stale cross-phase block state was honored")
	}
}

// TestRepsAlwaysWithinRange sweeps flags and phases and checks the dosing
// invariant that suggested reps stay inside the authored range.
func TestRepsAlwaysWithinRange(t *testing.T) {
	e := testEngine(t)
	symptomSets := []clinical.SymptomSnapshot{
		{},
		{Fatigue: 6},
		{Pain: 9},
		{Fatigue: 7, Pain: 7, Anxiety: 8},
	}
	phases := []clinical.Phase{clinical.PhasePrehab, clinical.PhaseInTreatment, clinical.PhasePostTreatment}

	for _, phase := range phases {
		for _, symptoms := range symptomSets {
			plan, err := e.TodayPlan(PlanInput{Phase: phase, Stage: clinical.StageMid, Symptoms: symptoms})
			if err != nil {
				t.Fatalf("TodayPlan(%s, %+v): %v", phase, symptoms, err)
			}
			for _, ex := range plan.Session.Exercises {
				if ex.RepsSuggested < ex.RepRange.Min || ex.RepsSuggested > ex.RepRange.Max {
					t.Errorf("%s/%+v: %s reps %d outside %d-%d", phase, symptoms, ex.ID, ex.RepsSuggested, ex.RepRange.Min, ex.RepRange.Max)
				}
			}
		}
	}
}

// TestFinePassEscalatesFlag verifies the conservative reconciliation: a
// snapshot the gate reads as AMBER and the fine pass reads as AMBER stays
// AMBER, and the result never reports a milder flag than either layer.
func TestFinePassEscalatesFlag(t *testing.T) {
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase:    clinical.PhasePostTreatment,
		Stage:    clinical.StageEarly,
		Symptoms: clinical.SymptomSnapshot{Anxiety: 7},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}
	if plan.SafetyFlag != clinical.FlagAmber {
		t.Errorf("SafetyFlag = %q, want AMBER", plan.SafetyFlag)
	}
}

// TestConfigurationError verifies an unknown phase surfaces the typed
// catalog error instead of a generic one.
func TestConfigurationError(t *testing.T) {
	_, err := testEngine(t).TodayPlan(PlanInput{Phase: clinical.Phase("HOSPICE"), Stage: clinical.StageEarly})
	var cfgErr *catalog.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *catalog.ConfigurationError", err)
	}
}

// TestWeeklyCeilingConvertsToRest verifies that 2 minutes of remaining
// aerobic headroom turns the session into rest.
func TestWeeklyCeilingConvertsToRest(t *testing.T) {
	rng := guidelines.StageAerobicRange(clinical.StageBuild2)
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase: clinical.PhasePostTreatment,
		Stage: clinical.StageEarly,
		Weekly: &WeeklyContext{
			TrainingStage:  clinical.StageBuild2,
			AerobicMinutes: float64(rng.Max) - 2,
		},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}
	if plan.Session.SessionType != clinical.SessionRest {
		t.Fatalf("SessionType = %q, want REST", plan.Session.SessionType)
	}
	if len(plan.Session.Exercises) != 0 || plan.Caps.DurationMinutesMax != 0 {
		t.Errorf("rest conversion left exercises=%d caps=%+v", len(plan.Session.Exercises), plan.Caps)
	}
}

// TestWeeklyCeilingShortensSession verifies mid-headroom capping and the
// strength-to-aerobic conversion at the strength ceiling.
func TestWeeklyCeilingShortensSession(t *testing.T) {
	rng := guidelines.StageAerobicRange(clinical.StageBuild2)
	strength := guidelines.StageStrengthRange(clinical.StageBuild2)
	plan, err := testEngine(t).TodayPlan(PlanInput{
		Phase: clinical.PhasePostTreatment,
		Stage: clinical.StageEarly,
		Weekly: &WeeklyContext{
			TrainingStage:    clinical.StageBuild2,
			AerobicMinutes:   float64(rng.Max) - 20,
			StrengthSessions: float64(strength.Max),
		},
	})
	if err != nil {
		t.Fatalf("TodayPlan: %v", err)
	}
	if plan.Caps.DurationMinutesMax != 20 {
		t.Errorf("DurationMinutesMax = %d, want 20", plan.Caps.DurationMinutesMax)
	}
	if plan.Session.SessionType != clinical.SessionAerobic {
		t.Errorf("SessionType = %q, want AEROBIC after strength ceiling", plan.Session.SessionType)
	}
}

// TestShuffleIsSeededAndStable verifies the variety shuffle is a pure
// function of the seed.
func TestShuffleIsSeededAndStable(t *testing.T) {
	order := func(seed uint64) []string {
		e := &Engine{Catalog: catalog.Default(), Rand: rand.New(rand.NewPCG(seed, 0))}
		plan, err := e.TodayPlan(PlanInput{Phase: clinical.PhasePostTreatment, Stage: clinical.StageEarly})
		if err != nil {
			t.Fatalf("TodayPlan: %v", err)
		}
		ids := make([]string, len(plan.Session.Exercises))
		for i, ex := range plan.Session.Exercises {
			ids[i] = ex.ID
		}
		return ids
	}

	a, b := order(7), order(7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different orders: %v vs %v", a, b)
		}
	}
}
