package recommend

import (
	"sort"
	"strings"

	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/guidelines"
)

// Scoring weights. Energy fit dominates because mismatched effort is the
// main reason patients abandon a prescribed exercise; dislikes carry the
// only large penalty.
const (
	weightEnergy         = 25
	weightCancerType     = 20
	weightTreatmentStage = 15
	weightBodyFocus      = 10
	weightPreferences    = 10
	weightAccessibility  = 10
	weightEquipment      = 5
	penaltyDislike       = -20

	// Comorbidity risk penalties. Cardiac, bone, and balance risks carry
	// real injury potential and weigh heavier than the rest.
	penaltyHighRiskConflict = -15
	penaltyLowRiskConflict  = -5

	baseScore = 50
)

// ScoredExercise pairs a catalog exercise with its match score and the
// reason codes that produced it.
type ScoredExercise struct {
	Exercise    catalog.Exercise `json:"exercise"`
	Score       int              `json:"score"`
	ReasonCodes []string         `json:"reasonCodes"`
}

// injuryAreas maps reported injuries to the body-focus areas they rule out.
var injuryAreas = map[string][]string{
	"frozen shoulder": {"shoulder", "upper body", "arms"},
	"knee pain":       {"knee", "legs", "lower body"},
	"lymphedema":      {"arms", "upper body"},
	"low back pain":   {"back", "core", "lower body"},
}

// riskConflictTraits maps a comorbidity's risk category to the exercise
// traits it rules out.
var riskConflictTraits = map[guidelines.RiskCategory][]string{
	guidelines.RiskCardiac:     {"high-intensity", "heavy-resistance", "interval-training"},
	guidelines.RiskBone:        {"high-impact", "jumping", "twisting", "heavy-resistance"},
	guidelines.RiskBalance:     {"balance-unsupported", "single-leg", "rapid-position-changes"},
	guidelines.RiskRespiratory: {"prolonged-cardio", "breath-holding"},
	guidelines.RiskMetabolic:   {"prolonged-fasting-exercise"},
}

// seatedMovementTypes are the movement types compatible with a seated-only
// mobility status.
var seatedMovementTypes = map[string]bool{
	"seated": true,
	"chair":  true,
	"bed":    true,
}

// ScoreExercise rates one exercise for one patient. The result is clamped
// to 0-100 around the neutral base of 50.
func ScoreExercise(ex catalog.Exercise, profile PatientProfile, assessment Assessment) (int, []string) {
	score := baseScore
	var codes []string

	energy := assessment.EnergyOrDefault()
	exEnergy := ex.EnergyLevel
	if exEnergy <= 0 {
		exEnergy = 3
	}
	switch diff := abs(exEnergy - energy); {
	case diff == 0:
		score += weightEnergy
		codes = append(codes, "perfect_energy_match")
	case diff == 1:
		score += weightEnergy / 2
		codes = append(codes, "good_energy_match")
	default:
		score -= weightEnergy
		codes = append(codes, "energy_mismatch")
	}

	if profile.CancerType != "" && containsCancerType(ex, profile) {
		score += weightCancerType
		codes = append(codes, "cancer_type_match")
	}

	if profile.TreatmentPhase != "" && containsPhase(ex, profile) {
		score += weightTreatmentStage
		codes = append(codes, "treatment_stage_match")
	}

	if hasInjuryConflict(ex, assessment.PriorInjuries) {
		score -= weightBodyFocus
		codes = append(codes, "injury_conflict")
	}

	if penalty := comorbidityRiskPenalty(ex, profile.Comorbidities); penalty != 0 {
		score += penalty
		codes = append(codes, "comorbidity_risk_conflict")
	}

	if assessment.MobilityStatus != "" {
		if assessment.MobilityStatus == "seated only" && ex.MovementType != "" && !seatedMovementTypes[strings.ToLower(ex.MovementType)] {
			score -= weightAccessibility
			codes = append(codes, "mobility_mismatch")
		} else {
			score += weightAccessibility / 2
			codes = append(codes, "mobility_appropriate")
		}
	}

	if movementMatchesAny(ex.MovementType, assessment.ExercisePreferences) {
		score += weightPreferences
		codes = append(codes, "preference_match")
	}

	if movementMatchesAny(ex.MovementType, assessment.ExerciseDislikes) {
		score += penaltyDislike
		codes = append(codes, "disliked_exercise_type")
	}

	if len(assessment.EquipmentAvailable) > 0 {
		score, codes = scoreEquipment(ex, assessment, score, codes)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, codes
}

func scoreEquipment(ex catalog.Exercise, assessment Assessment, score int, codes []string) (int, []string) {
	required := make([]string, 0, len(ex.Equipment))
	for _, e := range ex.Equipment {
		if e != "none" {
			required = append(required, e)
		}
	}

	if len(required) == 0 {
		return score + weightEquipment, append(codes, "no_equipment_needed")
	}

	available := make(map[string]bool, len(assessment.EquipmentAvailable))
	for _, e := range assessment.EquipmentAvailable {
		available[e] = true
	}
	for _, e := range required {
		if !available[e] {
			return score - weightEquipment, append(codes, "equipment_unavailable")
		}
	}
	return score + weightEquipment, append(codes, "has_needed_equipment")
}

// comorbidityRiskPenalty returns the single worst trait-conflict penalty
// across the patient's comorbidities. Conflicts do not stack: one clear
// reason beats an opaque pile-up.
func comorbidityRiskPenalty(ex catalog.Exercise, comorbidities []guidelines.Comorbidity) int {
	if len(ex.Traits) == 0 {
		return 0
	}
	worst := 0
	for _, condition := range comorbidities {
		risk := guidelines.EffectFor(condition).Risk
		conflicts := riskConflictTraits[risk]
		if len(conflicts) == 0 || !traitsIntersect(ex.Traits, conflicts) {
			continue
		}
		penalty := penaltyLowRiskConflict
		switch risk {
		case guidelines.RiskCardiac, guidelines.RiskBone, guidelines.RiskBalance:
			penalty = penaltyHighRiskConflict
		}
		if penalty < worst {
			worst = penalty
		}
	}
	return worst
}

func traitsIntersect(traits, conflicts []string) bool {
	for _, t := range traits {
		lt := strings.ToLower(t)
		for _, c := range conflicts {
			if lt == c {
				return true
			}
		}
	}
	return false
}

func hasInjuryConflict(ex catalog.Exercise, injuries []string) bool {
	if len(ex.BodyFocus) == 0 {
		return false
	}
	for _, injury := range injuries {
		affected := injuryAreas[strings.ToLower(injury)]
		for _, area := range ex.BodyFocus {
			for _, hit := range affected {
				if strings.ToLower(area) == hit {
					return true
				}
			}
		}
	}
	return false
}

func containsCancerType(ex catalog.Exercise, profile PatientProfile) bool {
	for _, ct := range ex.CancerTypes {
		if ct == profile.CancerType {
			return true
		}
	}
	return false
}

func containsPhase(ex catalog.Exercise, profile PatientProfile) bool {
	for _, ph := range ex.TreatmentPhases {
		if ph == profile.TreatmentPhase {
			return true
		}
	}
	return false
}

func movementMatchesAny(movementType string, terms []string) bool {
	if movementType == "" {
		return false
	}
	mt := strings.ToLower(movementType)
	for _, term := range terms {
		if term != "" && strings.Contains(mt, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RankExercises scores every catalog exercise and returns the top entries,
// highest score first with ties broken by exercise id so ranking is stable
// across runs.
func RankExercises(cat *catalog.Catalog, profile PatientProfile, assessment Assessment, limit int) []ScoredExercise {
	scored := make([]ScoredExercise, 0, len(cat.Exercises))
	for _, ex := range cat.Exercises {
		score, codes := ScoreExercise(ex, profile, assessment)
		scored = append(scored, ScoredExercise{Exercise: ex, Score: score, ReasonCodes: codes})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Exercise.ID < scored[j].Exercise.ID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
