package recommend

import (
	"strings"

	"github.com/claude/oncoplan/internal/guidelines"
)

// severeSymptoms are the onboarding answers that force a more conservative
// starting tier regardless of confidence.
var severeSymptoms = map[string]bool{
	"severe fatigue":       true,
	"severe pain":          true,
	"dizziness":            true,
	"chest pain":           true,
	"difficulty breathing": true,
	"bone pain":            true,
	"recent surgery":       true,
	"infection":            true,
}

// sessionPlansByTier suggests starter sessions per tier. Tier 1 is the
// floor and doubles as the fallback for out-of-range values.
var sessionPlansByTier = map[int][]string{
	1: {"Gentle Session 1 - Small Wins Start Here", "Seated Breathing Flow", "Balance Basics"},
	2: {"Gentle Session 2 - Balance & Breathe", "Chair & Band Strength", "Standing Stretch"},
	3: {"Gentle Session 3 - Steady with Bands", "Band Circuit", "Mobility Flow"},
	4: {"Weekly Functional Workout", "Light Resistance Split", "Dynamic Balance"},
}

// OnboardingInput is the intake questionnaire summary. Confidence and
// energy are 1-10 self-reports.
type OnboardingInput struct {
	CancerType      guidelines.CancerType     `json:"cancerType"`
	Symptoms        []string                  `json:"symptoms,omitempty"`
	ConfidenceScore int                       `json:"confidenceScore"`
	EnergyScore     int                       `json:"energyScore"`
	Comorbidities   []guidelines.Comorbidity  `json:"comorbidities,omitempty"`
	TreatmentPhase  guidelines.TreatmentPhase `json:"treatmentPhase"`
}

// OnboardingResult is the starting tier plus everything the patient-facing
// surface shows alongside it.
type OnboardingResult struct {
	Tier              int                       `json:"tier"`
	SuggestedSessions []string                  `json:"suggestedSessions"`
	Flags             []string                  `json:"flags"`
	TreatmentPhase    guidelines.TreatmentPhase `json:"treatmentPhase"`
	IntensityModifier float64                   `json:"intensityModifier"`
	SafetyFlag        bool                      `json:"safetyFlag"`
	Source            string                    `json:"source"`
}

// OnboardingTier places a new patient on the 1-4 starting ladder. The
// cancer type sets the base, severe symptoms pull it down, a strong
// combined confidence/energy score can lift it one step, and comorbidities
// adjust it further with their own cautionary flags.
func OnboardingTier(in OnboardingInput) OnboardingResult {
	guidance := guidelines.GuidanceFor(in.CancerType)
	tier := guidance.BaseTier

	severeCount := 0
	hasDizziness := false
	for _, symptom := range in.Symptoms {
		s := strings.ToLower(strings.TrimSpace(symptom))
		if severeSymptoms[s] {
			severeCount++
		}
		if s == "dizziness" {
			hasDizziness = true
		}
	}
	// Each severe symptom steps the tier down one, floored at 1.
	if severeCount > 0 {
		tier = max(1, tier-severeCount)
	}

	confidence := defaultScore(in.ConfidenceScore)
	energy := defaultScore(in.EnergyScore)
	avg := float64(confidence+energy) / 2
	if avg >= 8 && severeCount == 0 {
		tier = min(4, tier+1)
	} else if avg <= 3 {
		tier = max(1, tier-1)
	}

	var comorbidityFlags []string
	safetyFlag := false
	for _, condition := range in.Comorbidities {
		effect := guidelines.EffectFor(condition)
		tier = max(1, tier+effect.TierAdjust)
		comorbidityFlags = append(comorbidityFlags, effect.Flags...)
		// A tier-reducing condition plus dizziness is the combination that
		// warrants clinician review before any exercise.
		if effect.TierAdjust <= -1 && hasDizziness {
			safetyFlag = true
		}
	}

	flags := append([]string{}, guidance.Considerations...)
	if len(comorbidityFlags) > 0 {
		flags = append(flags, "Comorbidity Considerations:")
		for _, f := range comorbidityFlags {
			flags = append(flags, "- "+f)
		}
	}

	phase := in.TreatmentPhase
	if phase == "" {
		phase = guidelines.PhasePostTreatmentCare
	}

	sessions, ok := sessionPlansByTier[tier]
	if !ok {
		sessions = sessionPlansByTier[1]
	}

	return OnboardingResult{
		Tier:              tier,
		SuggestedSessions: sessions,
		Flags:             flags,
		TreatmentPhase:    phase,
		IntensityModifier: guidelines.IntensityModifierFor(phase),
		SafetyFlag:        safetyFlag,
		Source:            guidance.Source,
	}
}

func defaultScore(v int) int {
	if v <= 0 {
		return 5
	}
	return v
}
