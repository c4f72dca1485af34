// Package recommend scores catalog exercises and programs against a
// patient's profile and latest assessment. Scoring is additive over a
// neutral base of 50 with named reason codes, so a clinician can always see
// why an exercise ranked where it did.
package recommend

import "github.com/claude/oncoplan/internal/guidelines"

// PatientProfile is the slow-changing clinical context for scoring.
type PatientProfile struct {
	CancerType     guidelines.CancerType     `json:"cancerType"`
	TreatmentPhase guidelines.TreatmentPhase `json:"treatmentPhase"`
	Comorbidities  []guidelines.Comorbidity  `json:"comorbidities,omitempty"`
}

// Assessment is the patient's latest self-reported state. Energy is on the
// catalog's 1-5 scale; pain and confidence are 0-10 self-reports.
type Assessment struct {
	EnergyLevel         int      `json:"energyLevel"`
	PainLevel           int      `json:"painLevel"`
	ConfidenceScore     int      `json:"confidenceScore"`
	MobilityStatus      string   `json:"mobilityStatus,omitempty"`
	PriorInjuries       []string `json:"priorInjuries,omitempty"`
	ExercisePreferences []string `json:"exercisePreferences,omitempty"`
	ExerciseDislikes    []string `json:"exerciseDislikes,omitempty"`
	EquipmentAvailable  []string `json:"equipmentAvailable,omitempty"`
}

// EnergyOrDefault returns the assessed energy level, defaulting to the
// middle of the scale when unreported.
func (a Assessment) EnergyOrDefault() int {
	if a.EnergyLevel <= 0 {
		return 3
	}
	return a.EnergyLevel
}
