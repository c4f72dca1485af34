// Package safety triages a symptom snapshot into a GREEN/AMBER/RED tier.
// The gate is a pure, total function: inputs are clamped, never rejected,
// and every tier carries human-readable reasons for the patient-facing copy.
package safety

import "github.com/claude/oncoplan/internal/clinical"

// Tier thresholds. The whole tuple is evaluated in precedence order: the RED
// rule wins before any AMBER axis is considered.
const (
	redFatigueMin   = 8
	redPainMin      = 8
	amberFatigueMin = 6
	amberPainMin    = 6
	amberAnxietyMin = 7
)

// GateResult is the gate's decision for one snapshot.
type GateResult struct {
	SafetyFlag    clinical.SafetyFlag `json:"safetyFlag"`
	Reasons       []string            `json:"reasons"`
	SuggestedBias clinical.DoseBias   `json:"suggestedBias"`
}

// Evaluate maps a symptom snapshot to a safety tier. Values outside 0-10 are
// clamped before the thresholds apply.
func Evaluate(symptoms clinical.SymptomSnapshot) GateResult {
	s := symptoms.Clamped()

	if s.Fatigue >= redFatigueMin || s.Pain >= redPainMin {
		var reasons []string
		if s.Fatigue >= redFatigueMin {
			reasons = append(reasons, "High fatigue level (8+) detected")
		}
		if s.Pain >= redPainMin {
			reasons = append(reasons, "High pain level (8+) detected")
		}
		reasons = append(reasons, "Recommending recovery-focused session")
		return GateResult{
			SafetyFlag:    clinical.FlagRed,
			Reasons:       reasons,
			SuggestedBias: clinical.BiasLowerDose,
		}
	}

	if s.Fatigue >= amberFatigueMin || s.Pain >= amberPainMin || s.Anxiety >= amberAnxietyMin {
		var reasons []string
		if s.Fatigue >= amberFatigueMin {
			reasons = append(reasons, "Elevated fatigue (6+) - reducing intensity")
		}
		if s.Pain >= amberPainMin {
			reasons = append(reasons, "Elevated pain (6+) - reducing load")
		}
		if s.Anxiety >= amberAnxietyMin {
			reasons = append(reasons, "Elevated anxiety (7+) - focusing on calming movements")
		}
		return GateResult{
			SafetyFlag:    clinical.FlagAmber,
			Reasons:       reasons,
			SuggestedBias: clinical.BiasLowerDose,
		}
	}

	return GateResult{
		SafetyFlag:    clinical.FlagGreen,
		Reasons:       []string{"Symptoms within normal range - full session recommended"},
		SuggestedBias: clinical.BiasNormal,
	}
}
