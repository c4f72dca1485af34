package guidelines

import "github.com/claude/oncoplan/internal/clinical"

// TreatmentPhase is the care-pathway phase used by the recommendation engine
// and FITT builders. It is finer-grained than clinical.Phase, which only
// buckets the timeline into pre/during/post treatment.
type TreatmentPhase string

const (
	PhasePreTreatment         TreatmentPhase = "PRE_TREATMENT"
	PhaseDuringTreatment      TreatmentPhase = "DURING_TREATMENT"
	PhasePostSurgery          TreatmentPhase = "POST_SURGERY"
	PhasePostTreatmentCare    TreatmentPhase = "POST_TREATMENT"
	PhaseMaintenanceTreatment TreatmentPhase = "MAINTENANCE_TREATMENT"
	PhaseRecovery             TreatmentPhase = "RECOVERY"
	PhaseAdvancedPalliative   TreatmentPhase = "ADVANCED_PALLIATIVE"
)

// ExerciseCategory classifies an exercise mode for guideline lookups.
type ExerciseCategory string

const (
	CategoryAerobic     ExerciseCategory = "aerobic"
	CategoryResistance  ExerciseCategory = "resistance"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
	CategoryOther       ExerciseCategory = "other"
)

// PhaseConsideration carries the per-phase training focus and the intensity
// modifier applied on top of all other scaling.
type PhaseConsideration struct {
	Focus             []ExerciseCategory
	Goal              string
	Approach          string
	IntensityModifier float64
}

var phaseConsiderations = map[TreatmentPhase]PhaseConsideration{
	PhasePreTreatment: {
		Focus:             []ExerciseCategory{CategoryAerobic, CategoryResistance},
		Goal:              "Improve cardiorespiratory fitness",
		Approach:          "Linear progression",
		IntensityModifier: 1.0,
	},
	PhaseDuringTreatment: {
		Focus:             []ExerciseCategory{CategoryAerobic, CategoryResistance},
		Goal:              "Maintain function, manage symptoms",
		Approach:          "As tolerated, non-linear approach",
		IntensityModifier: 0.7,
	},
	PhasePostSurgery: {
		Focus:             []ExerciseCategory{CategoryFlexibility, CategoryAerobic},
		Goal:              "Restore range of motion, regain function",
		Approach:          "Increasing ADLs, ensure full healing",
		IntensityModifier: 0.6,
	},
	PhasePostTreatmentCare: {
		Focus:             []ExerciseCategory{CategoryAerobic, CategoryResistance, CategoryFlexibility},
		Goal:              "Address consequences of treatment, improve fitness",
		Approach:          "Linear approach",
		IntensityModifier: 0.8,
	},
	PhaseMaintenanceTreatment: {
		Focus:             []ExerciseCategory{CategoryAerobic, CategoryResistance, CategoryFlexibility},
		Goal:              "Consider side effects of hormonal/targeted therapies",
		Approach:          "Linear approach",
		IntensityModifier: 0.8,
	},
	PhaseRecovery: {
		Focus:             []ExerciseCategory{CategoryAerobic, CategoryResistance, CategoryFlexibility, CategoryBalance},
		Goal:              "Return to optimal function, long-term health",
		Approach:          "Progressive overload",
		IntensityModifier: 0.9,
	},
	PhaseAdvancedPalliative: {
		Focus:             []ExerciseCategory{CategoryFlexibility, CategoryAerobic},
		Goal:              "Prioritize quality of life, symptom management",
		Approach:          "As tolerated, maintenance focus",
		IntensityModifier: 0.5,
	},
}

// ConsiderationFor returns the phase's training consideration. Unknown phases
// fall back to post-treatment, the original engine's default.
func ConsiderationFor(phase TreatmentPhase) PhaseConsideration {
	if c, ok := phaseConsiderations[phase]; ok {
		return c
	}
	return phaseConsiderations[PhasePostTreatmentCare]
}

// IntensityModifierFor returns just the phase's intensity modifier.
func IntensityModifierFor(phase TreatmentPhase) float64 {
	return ConsiderationFor(phase).IntensityModifier
}

// BaseSessionCaps is the phase-indexed ceiling for a single session before
// any safety-flag clamping. The dose selector applies flag adjustments on
// top of these.
func BaseSessionCaps(phase clinical.Phase) clinical.Caps {
	switch phase {
	case clinical.PhasePrehab:
		return clinical.Caps{IntensityRPEMax: 7, DurationMinutesMax: 40}
	case clinical.PhaseInTreatment:
		return clinical.Caps{IntensityRPEMax: 6, DurationMinutesMax: 25}
	default:
		return clinical.Caps{IntensityRPEMax: 7, DurationMinutesMax: 45}
	}
}
