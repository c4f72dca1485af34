package guidelines

import "strings"

// Comorbidity is the closed set of co-existing conditions with known
// exercise implications. Unrecognized conditions fold to ComorbidityOther,
// which carries no adjustment and no flags.
type Comorbidity string

const (
	Diabetes             Comorbidity = "diabetes"
	HeartDisease         Comorbidity = "heart_disease"
	Osteoarthritis       Comorbidity = "osteoarthritis"
	Anxiety              Comorbidity = "anxiety"
	Depression           Comorbidity = "depression"
	Osteoporosis         Comorbidity = "osteoporosis"
	LungDisease          Comorbidity = "lung_disease"
	Hypertension         Comorbidity = "hypertension"
	PeripheralNeuropathy Comorbidity = "peripheral_neuropathy"
	Lymphedema           Comorbidity = "lymphedema"
	ComorbidityOther     Comorbidity = "other"
)

// RiskCategory groups comorbidities by the dominant exercise risk they
// carry. The recommendation engine weights cardiac, bone, and balance risk
// more heavily than the rest.
type RiskCategory string

const (
	RiskCardiac     RiskCategory = "cardiac"
	RiskBone        RiskCategory = "bone"
	RiskBalance     RiskCategory = "balance"
	RiskMetabolic   RiskCategory = "metabolic"
	RiskRespiratory RiskCategory = "respiratory"
	RiskNone        RiskCategory = "none"
)

// ComorbidityEffect describes how a condition shifts the patient's exercise
// tier and which safety flags it raises.
type ComorbidityEffect struct {
	TierAdjust int
	Risk       RiskCategory
	Flags      []string
}

var comorbidityEffects = map[Comorbidity]ComorbidityEffect{
	Diabetes: {
		TierAdjust: -1,
		Risk:       RiskMetabolic,
		Flags:      []string{"monitor blood sugar", "include foot care"},
	},
	HeartDisease: {
		TierAdjust: -1,
		Risk:       RiskCardiac,
		Flags:      []string{"avoid HIIT", "limit isometric holds"},
	},
	Osteoarthritis: {
		TierAdjust: 0,
		Risk:       RiskNone,
		Flags:      []string{"avoid deep squats", "include joint-friendly modes"},
	},
	Anxiety: {
		TierAdjust: 0,
		Risk:       RiskNone,
		Flags:      []string{"build confidence gradually"},
	},
	Depression: {
		TierAdjust: 0,
		Risk:       RiskNone,
		Flags:      []string{"include social components when possible", "focus on enjoyable activities"},
	},
	Osteoporosis: {
		TierAdjust: -1,
		Risk:       RiskBone,
		Flags:      []string{"no twisting under load", "no jumping"},
	},
	LungDisease: {
		TierAdjust: -1,
		Risk:       RiskRespiratory,
		Flags:      []string{"monitor breathing", "use RPE scale", "include rest intervals"},
	},
	Hypertension: {
		TierAdjust: -1,
		Risk:       RiskCardiac,
		Flags:      []string{"monitor blood pressure", "avoid Valsalva maneuver"},
	},
	PeripheralNeuropathy: {
		TierAdjust: -1,
		Risk:       RiskBalance,
		Flags:      []string{"ensure proper footwear", "emphasize balance exercises", "avoid uneven surfaces"},
	},
	Lymphedema: {
		TierAdjust: -1,
		Risk:       RiskNone,
		Flags:      []string{"wear compression garment during exercise", "start resistance very low", "monitor affected limb"},
	},
}

// ParseComorbidity folds a free-text condition into the closed enum.
func ParseComorbidity(s string) Comorbidity {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if _, ok := comorbidityEffects[Comorbidity(key)]; ok {
		return Comorbidity(key)
	}
	// Common clinical synonyms.
	switch key {
	case "cardiac_disease", "coronary_artery_disease", "chf", "heart_failure":
		return HeartDisease
	case "copd", "asthma", "emphysema":
		return LungDisease
	case "high_blood_pressure":
		return Hypertension
	case "neuropathy":
		return PeripheralNeuropathy
	case "arthritis":
		return Osteoarthritis
	default:
		return ComorbidityOther
	}
}

// EffectFor returns the effect table entry for a condition. ComorbidityOther
// yields a neutral effect.
func EffectFor(c Comorbidity) ComorbidityEffect {
	if e, ok := comorbidityEffects[c]; ok {
		return e
	}
	return ComorbidityEffect{Risk: RiskNone}
}
