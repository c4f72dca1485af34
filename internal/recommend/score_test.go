package recommend

import (
	"testing"

	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/guidelines"
)

func scoringExercise() catalog.Exercise {
	return catalog.Exercise{
		ID:              "walk_easy",
		Name:            "Easy Walk",
		MovementType:    "walking",
		EnergyLevel:     2,
		Equipment:       []string{"none"},
		CancerTypes:     []guidelines.CancerType{guidelines.CancerBreast},
		TreatmentPhases: []guidelines.TreatmentPhase{guidelines.PhasePostTreatmentCare},
	}
}

// TestEnergyMatchOutscoresMismatch verifies the dominant scoring factor: an
// exact energy fit must rank strictly above a 2+ level gap.
func TestEnergyMatchOutscoresMismatch(t *testing.T) {
	ex := scoringExercise()

	exact, codes := ScoreExercise(ex, PatientProfile{}, Assessment{EnergyLevel: 2})
	if !hasCode(codes, "perfect_energy_match") {
		t.Errorf("codes = %v, want perfect_energy_match", codes)
	}

	far, codes := ScoreExercise(ex, PatientProfile{}, Assessment{EnergyLevel: 5})
	if !hasCode(codes, "energy_mismatch") {
		t.Errorf("codes = %v, want energy_mismatch", codes)
	}

	if exact <= far {
		t.Errorf("exact match scored %d, mismatch %d; want strict ordering", exact, far)
	}
	// Base 50 + 25 energy; equipment is not scored when the patient never
	// reported what they have.
	if exact != 75 {
		t.Errorf("exact = %d, want 75", exact)
	}
	if far != 25 {
		t.Errorf("far = %d, want 25", far)
	}
}

// TestCancerAndPhaseBonuses verifies the profile-matching bonuses stack.
func TestCancerAndPhaseBonuses(t *testing.T) {
	ex := scoringExercise()
	profile := PatientProfile{
		CancerType:     guidelines.CancerBreast,
		TreatmentPhase: guidelines.PhasePostTreatmentCare,
	}

	score, codes := ScoreExercise(ex, profile, Assessment{EnergyLevel: 2})
	// 50 + 25 energy + 20 cancer + 15 phase.
	if score != 100 {
		t.Errorf("score = %d, want 100 (clamped)", score)
	}
	if !hasCode(codes, "cancer_type_match") || !hasCode(codes, "treatment_stage_match") {
		t.Errorf("codes = %v", codes)
	}
}

// TestInjuryConflictPenalty verifies a frozen shoulder penalizes
// upper-body work.
func TestInjuryConflictPenalty(t *testing.T) {
	ex := scoringExercise()
	ex.BodyFocus = []string{"Shoulder", "arms"}

	score, codes := ScoreExercise(ex, PatientProfile{}, Assessment{
		EnergyLevel:   2,
		PriorInjuries: []string{"Frozen Shoulder"},
	})
	if !hasCode(codes, "injury_conflict") {
		t.Fatalf("codes = %v, want injury_conflict", codes)
	}
	if score != 65 {
		t.Errorf("score = %d, want 65", score)
	}
}

// TestSeatedOnlyMobility verifies seated-only patients are steered away
// from standing movement types and toward seated ones.
func TestSeatedOnlyMobility(t *testing.T) {
	standing := scoringExercise()
	_, codes := ScoreExercise(standing, PatientProfile{}, Assessment{EnergyLevel: 2, MobilityStatus: "seated only"})
	if !hasCode(codes, "mobility_mismatch") {
		t.Errorf("standing codes = %v, want mobility_mismatch", codes)
	}

	seated := scoringExercise()
	seated.MovementType = "seated"
	_, codes = ScoreExercise(seated, PatientProfile{}, Assessment{EnergyLevel: 2, MobilityStatus: "seated only"})
	if !hasCode(codes, "mobility_appropriate") {
		t.Errorf("seated codes = %v, want mobility_appropriate", codes)
	}
}

// TestDislikeAndEquipmentPenalties verifies scores clamp at zero under
// stacked penalties.
func TestDislikeAndEquipmentPenalties(t *testing.T) {
	ex := scoringExercise()
	ex.Equipment = []string{"treadmill"}

	score, codes := ScoreExercise(ex, PatientProfile{}, Assessment{
		EnergyLevel:        5, // mismatch: -25
		ExerciseDislikes:   []string{"walking"},
		EquipmentAvailable: []string{"bands"},
		MobilityStatus:     "seated only",
	})
	for _, want := range []string{"energy_mismatch", "disliked_exercise_type", "equipment_unavailable", "mobility_mismatch"} {
		if !hasCode(codes, want) {
			t.Errorf("codes = %v, missing %s", codes, want)
		}
	}
	// 50 - 25 - 20 - 5 - 10 = -10, clamped to 0.
	if score != 0 {
		t.Errorf("score = %d, want clamp to 0", score)
	}
}

// TestPreferenceAndEquipmentBonuses covers the positive equipment paths.
func TestPreferenceAndEquipmentBonuses(t *testing.T) {
	ex := scoringExercise()
	ex.Equipment = []string{"bands"}

	score, codes := ScoreExercise(ex, PatientProfile{}, Assessment{
		EnergyLevel:         2,
		ExercisePreferences: []string{"Walk"},
		EquipmentAvailable:  []string{"bands", "mat"},
	})
	if !hasCode(codes, "preference_match") || !hasCode(codes, "has_needed_equipment") {
		t.Fatalf("codes = %v", codes)
	}
	// 50 + 25 + 10 + 5.
	if score != 90 {
		t.Errorf("score = %d, want 90", score)
	}
}

// TestComorbidityRiskConflict verifies bone-risk comorbidities penalize
// high-impact traits harder than respiratory risk penalizes endurance
// traits, and that conflicts never stack.
func TestComorbidityRiskConflict(t *testing.T) {
	ex := scoringExercise()
	ex.Traits = []string{"high-impact", "prolonged-cardio"}

	clean, _ := ScoreExercise(ex, PatientProfile{}, Assessment{EnergyLevel: 2})

	boneScore, codes := ScoreExercise(ex, PatientProfile{
		Comorbidities: []guidelines.Comorbidity{guidelines.Osteoporosis},
	}, Assessment{EnergyLevel: 2})
	if !hasCode(codes, "comorbidity_risk_conflict") {
		t.Fatalf("codes = %v, want comorbidity_risk_conflict", codes)
	}
	if clean-boneScore != 15 {
		t.Errorf("bone penalty = %d, want 15", clean-boneScore)
	}

	lungScore, _ := ScoreExercise(ex, PatientProfile{
		Comorbidities: []guidelines.Comorbidity{guidelines.LungDisease},
	}, Assessment{EnergyLevel: 2})
	if clean-lungScore != 5 {
		t.Errorf("respiratory penalty = %d, want 5", clean-lungScore)
	}

	// Both conditions together apply the worst penalty once, not the sum.
	bothScore, _ := ScoreExercise(ex, PatientProfile{
		Comorbidities: []guidelines.Comorbidity{guidelines.Osteoporosis, guidelines.LungDisease},
	}, Assessment{EnergyLevel: 2})
	if bothScore != boneScore {
		t.Errorf("stacked score = %d, want worst-only %d", bothScore, boneScore)
	}
}

// TestRankExercisesStableOrder verifies descending score with id tiebreak
// over the embedded catalog.
func TestRankExercisesStableOrder(t *testing.T) {
	cat := catalog.Default()
	recs := RankExercises(cat, PatientProfile{}, Assessment{EnergyLevel: 2}, 0)

	if len(recs) != len(cat.Exercises) {
		t.Fatalf("ranked %d of %d exercises", len(recs), len(cat.Exercises))
	}
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		if cur.Score > prev.Score {
			t.Fatalf("order broken at %d: %d then %d", i, prev.Score, cur.Score)
		}
		if cur.Score == prev.Score && cur.Exercise.ID < prev.Exercise.ID {
			t.Fatalf("tiebreak broken at %d: %s then %s", i, prev.Exercise.ID, cur.Exercise.ID)
		}
	}

	limited := RankExercises(cat, PatientProfile{}, Assessment{EnergyLevel: 2}, 3)
	if len(limited) != 3 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

// TestRankProgramsUsesMemberAverage verifies programs inherit their member
// exercises' fit and gain the phase bonus.
func TestRankProgramsUsesMemberAverage(t *testing.T) {
	cat := catalog.Default()
	profile := PatientProfile{TreatmentPhase: guidelines.PhaseDuringTreatment}

	recs := RankPrograms(cat, profile, Assessment{EnergyLevel: 1}, 0)
	if len(recs) != len(cat.Programs) {
		t.Fatalf("ranked %d of %d programs", len(recs), len(cat.Programs))
	}
	top := recs[0]
	if top.Program.ID != "gentle_restart" {
		t.Errorf("top program = %s, want gentle_restart for low-energy during-treatment patient", top.Program.ID)
	}
	if !hasCode(top.ReasonCodes, "program_phase_match") {
		t.Errorf("ReasonCodes = %v, want program_phase_match", top.ReasonCodes)
	}
	if !hasCode(top.ReasonCodes, "program_commitment_fits_energy") {
		t.Errorf("ReasonCodes = %v, want program_commitment_fits_energy", top.ReasonCodes)
	}
	if len(top.MatchingExercises) == 0 {
		t.Error("MatchingExercises empty")
	}
}

// TestProgramDurationBonuses verifies a program's weekly time ask and length
// move its score: two programs with identical members must rank differently
// for a low-energy in-treatment patient when only their duration fields
// differ.
func TestProgramDurationBonuses(t *testing.T) {
	cat := &catalog.Catalog{
		Exercises: []catalog.Exercise{
			{ID: "stroll", Name: "Stroll", MovementType: "walking", EnergyLevel: 2, DurationMinutes: 15},
		},
	}
	lightWeek := catalog.Program{ID: "light_week", ExerciseIDs: []string{"stroll"}, DurationWeeks: 4, SessionsPerWeek: 2}
	heavyWeek := catalog.Program{ID: "heavy_week", ExerciseIDs: []string{"stroll"}, DurationWeeks: 8, SessionsPerWeek: 5}

	profile := PatientProfile{TreatmentPhase: guidelines.PhaseDuringTreatment}
	low := Assessment{EnergyLevel: 1}

	light := ScoreProgram(cat, lightWeek, profile, low)
	heavy := ScoreProgram(cat, heavyWeek, profile, low)

	if light.Score <= heavy.Score {
		t.Errorf("light_week score %d, heavy_week %d; want light_week higher for low energy", light.Score, heavy.Score)
	}
	// 2 sessions x 15 min fits a 30-minute budget; 5 x 15 blows past it.
	if !hasCode(light.ReasonCodes, "program_commitment_fits_energy") {
		t.Errorf("light ReasonCodes = %v, want program_commitment_fits_energy", light.ReasonCodes)
	}
	if !hasCode(heavy.ReasonCodes, "program_commitment_high_for_energy") {
		t.Errorf("heavy ReasonCodes = %v, want program_commitment_high_for_energy", heavy.ReasonCodes)
	}
	// 4 weeks suits a reduced-intensity phase; 8 weeks does not.
	if !hasCode(light.ReasonCodes, "program_length_fits_phase") {
		t.Errorf("light ReasonCodes = %v, want program_length_fits_phase", light.ReasonCodes)
	}
	if !hasCode(heavy.ReasonCodes, "program_length_long_for_phase") {
		t.Errorf("heavy ReasonCodes = %v, want program_length_long_for_phase", heavy.ReasonCodes)
	}

	// The same long program reads as habit-building in a full-intensity phase.
	recovered := ScoreProgram(cat, heavyWeek, PatientProfile{TreatmentPhase: guidelines.PhaseRecovery}, Assessment{EnergyLevel: 5})
	if !hasCode(recovered.ReasonCodes, "program_length_fits_phase") {
		t.Errorf("recovery ReasonCodes = %v, want program_length_fits_phase", recovered.ReasonCodes)
	}
}

// TestEngineCaching verifies cache read-through and invalidation.
func TestEngineCaching(t *testing.T) {
	e := &Engine{Catalog: catalog.Default(), Cache: NewMemoryCache()}
	profile := PatientProfile{}
	low := Assessment{EnergyLevel: 1}
	high := Assessment{EnergyLevel: 5}

	first := e.Exercises("patient-1", profile, low, 5)
	// Same key serves the cached ranking even though the assessment moved.
	cached := e.Exercises("patient-1", profile, high, 5)
	if cached[0].Exercise.ID != first[0].Exercise.ID {
		t.Errorf("cache miss on warm key")
	}

	e.InvalidateFor("patient-1")
	fresh := e.Exercises("patient-1", profile, high, 5)
	if fresh[0].Score == cached[0].Score && fresh[0].Exercise.ID == cached[0].Exercise.ID {
		// Different energy levels should reorder a mixed catalog.
		t.Log("rankings identical after invalidation; acceptable only if catalog is energy-flat")
	}
}

func hasCode(codes []string, want string) bool {
	for _, c := range codes {
		if c == want {
			return true
		}
	}
	return false
}
