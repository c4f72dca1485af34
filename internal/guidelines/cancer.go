package guidelines

import "strings"

// CancerType is the closed set of cancer types the guideline tables know
// about. Free-text diagnoses fold into one of these via ParseCancerType;
// anything unrecognized lands on CancerGeneral rather than failing.
type CancerType string

const (
	CancerBreast      CancerType = "breast"
	CancerProstate    CancerType = "prostate"
	CancerHematologic CancerType = "hematologic"
	CancerColorectal  CancerType = "colorectal"
	CancerLung        CancerType = "lung"
	CancerHeadNeck    CancerType = "head_neck"
	CancerBoneMets    CancerType = "bone_mets"
	CancerGeneral     CancerType = "general"
)

// ParseCancerType folds a free-text diagnosis into the closed enum. The
// substring rules mirror the clinical intake forms this data arrives from.
func ParseCancerType(s string) CancerType {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(t, "breast"):
		return CancerBreast
	case strings.Contains(t, "prostate"):
		return CancerProstate
	case strings.Contains(t, "blood"), strings.Contains(t, "leukemia"),
		strings.Contains(t, "lymphoma"), strings.Contains(t, "hematologic"):
		return CancerHematologic
	case strings.Contains(t, "colon"), strings.Contains(t, "colorectal"),
		strings.Contains(t, "rectal"):
		return CancerColorectal
	case strings.Contains(t, "lung"):
		return CancerLung
	case strings.Contains(t, "head"), strings.Contains(t, "neck"):
		return CancerHeadNeck
	case strings.Contains(t, "bone met"), strings.Contains(t, "metastatic bone"):
		return CancerBoneMets
	default:
		return CancerGeneral
	}
}

// CancerGuidance is the authored per-type guidance block.
type CancerGuidance struct {
	BaseTier       int
	Considerations []string
	Restrictions   []string
	PreferredModes []string
	Source         string
}

// SafetyRules classifies exercise traits as avoid/caution/preferred for a
// cancer type and bounds session intensity and duration.
type SafetyRules struct {
	Avoid        []string
	Caution      []string
	Preferred    []string
	IntensityMax int
	DurationMax  int
}

var cancerGuidance = map[CancerType]CancerGuidance{
	CancerBreast: {
		BaseTier: 2,
		Considerations: []string{
			"Lymphedema risk in upper limbs",
			"Post-surgical shoulder mobility limits",
			"Fatigue from hormone therapy",
		},
		Restrictions: []string{
			"Avoid heavy resistance on affected side initially",
			"Avoid overhead movements if range of motion is limited",
		},
		PreferredModes: []string{
			"Seated resistance band work",
			"Gentle walking",
			"Breath-led mobility",
			"Postural strengthening",
		},
		Source: "ACSM Roundtable 2019 – Breast Cancer Guidelines",
	},
	CancerProstate: {
		BaseTier: 2,
		Considerations: []string{
			"Bone density monitoring if on hormone therapy",
			"Pelvic floor considerations post-surgery",
			"Fatigue due to ongoing treatment",
		},
		Restrictions: []string{
			"Avoid high-impact exercise initially",
			"Limit long periods of standing early on",
		},
		PreferredModes: []string{
			"Light resistance training",
			"Balance drills",
			"Seated aerobic movements",
		},
		Source: "ACSM Roundtable 2019 – Prostate Cancer Guidelines",
	},
	CancerHematologic: {
		BaseTier: 1,
		Considerations: []string{
			"Immune suppression (infection risk)",
			"Anemia-related fatigue",
			"Platelet count monitoring",
		},
		Restrictions: []string{
			"Avoid high-traffic spaces",
			"Avoid overexertion",
			"No group training if neutropenic",
		},
		PreferredModes: []string{
			"Seated yoga",
			"Breathing and mobility",
			"Walking at home or outdoors",
		},
		Source: "ACSM Roundtable 2019 – Hematologic Cancer Guidelines",
	},
	CancerColorectal: {
		BaseTier: 2,
		Considerations: []string{
			"Core strength after abdominal surgery",
			"Ostomy site protection if applicable",
			"Peripheral neuropathy from chemotherapy",
		},
		Restrictions: []string{
			"Avoid heavy lifting (>10 lbs) for 8-12 weeks after surgery",
			"Prevent excessive intra-abdominal pressure",
		},
		PreferredModes: []string{
			"Gentle core strengthening",
			"Progressive walking program",
			"Non-impact balance exercises",
		},
		Source: "ACSM Roundtable 2019 – Colorectal Cancer Guidelines",
	},
	CancerLung: {
		BaseTier: 1,
		Considerations: []string{
			"Respiratory capacity limitations",
			"Poor oxygenation",
			"Fatigue and low exercise tolerance",
		},
		Restrictions: []string{
			"Monitor oxygen saturation during exercise",
			"Avoid exercise in extreme temperatures",
		},
		PreferredModes: []string{
			"Breathing exercises and respiratory muscle training",
			"Interval aerobic training",
			"Posture and thoracic mobility",
		},
		Source: "ACSM Roundtable 2019 – Lung Cancer Guidelines",
	},
	CancerHeadNeck: {
		BaseTier: 2,
		Considerations: []string{
			"Swallowing difficulties",
			"Neck and shoulder mobility",
			"Vestibular effects from treatment",
		},
		Restrictions: []string{
			"Avoid excessive neck strain",
			"Monitor hydration during exercise",
		},
		PreferredModes: []string{
			"Neck and shoulder mobility exercises",
			"Balance exercises",
			"Low-intensity progressive resistance",
		},
		Source: "ACSM Roundtable 2019 – Head & Neck Cancer Guidelines",
	},
	CancerBoneMets: {
		BaseTier: 1,
		Considerations: []string{
			"Fracture risk at metastatic sites",
			"Pain-guided loading only",
		},
		Restrictions: []string{
			"No high-impact or twisting under load",
			"No unsupported balance challenges",
		},
		PreferredModes: []string{
			"Seated and supported movement",
			"Aquatic exercise",
			"Gentle stretching and breathing",
		},
		Source: "ACSM Roundtable 2019 – Bone Metastases Guidance",
	},
	CancerGeneral: {
		BaseTier: 2,
		Considerations: []string{
			"Fatigue",
			"Deconditioning",
			"Confidence in movement",
		},
		Restrictions: []string{},
		PreferredModes: []string{
			"Walking",
			"Resistance bands",
			"Balance and coordination drills",
		},
		Source: "ACSM/ACS Guidelines – General Post-Treatment Recommendations",
	},
}

var cancerSafetyRules = map[CancerType]SafetyRules{
	CancerBreast: {
		Avoid:        []string{"heavy-overhead", "heavy-pushing", "high-impact-upper", "extreme-arm-extension"},
		Caution:      []string{"resistance-upper", "overhead-movements", "pushing-movements", "pulling-heavy"},
		Preferred:    []string{"seated", "breathing", "walking", "lower-body", "postural", "gentle-mobility", "resistance-bands"},
		IntensityMax: 6,
		DurationMax:  30,
	},
	CancerProstate: {
		Avoid:        []string{"high-impact", "jumping", "heavy-squats"},
		Caution:      []string{"prolonged-standing", "heavy-resistance", "high-intensity"},
		Preferred:    []string{"seated", "balance", "pelvic-floor", "walking", "light-resistance", "cycling"},
		IntensityMax: 7,
		DurationMax:  40,
	},
	CancerHematologic: {
		Avoid:        []string{"high-intensity", "contact", "group-class", "crowded-gym"},
		Caution:      []string{"resistance-heavy", "prolonged-cardio", "balance-standing"},
		Preferred:    []string{"home-based", "seated", "breathing", "gentle-yoga", "walking-outdoors", "light-mobility"},
		IntensityMax: 5,
		DurationMax:  20,
	},
	CancerColorectal: {
		Avoid:        []string{"heavy-core", "crunches", "sit-ups", "heavy-lifting", "valsalva"},
		Caution:      []string{"twisting", "bending", "abdominal-pressure"},
		Preferred:    []string{"walking", "gentle-core", "upper-body", "balance", "breathing", "pelvic-tilts"},
		IntensityMax: 6,
		DurationMax:  30,
	},
	CancerLung: {
		Avoid:        []string{"high-intensity", "breath-holding", "extreme-temperatures"},
		Caution:      []string{"prolonged-cardio", "high-elevation", "dusty-environments"},
		Preferred:    []string{"breathing-exercises", "interval-training", "walking", "posture", "thoracic-mobility", "seated-cardio"},
		IntensityMax: 5,
		DurationMax:  20,
	},
	CancerHeadNeck: {
		Avoid:        []string{"heavy-overhead", "neck-loading", "rapid-position-changes"},
		Caution:      []string{"overhead-movements", "balance-unsupported", "prolonged-cardio"},
		Preferred:    []string{"neck-mobility", "shoulder-mobility", "balance", "light-resistance", "walking"},
		IntensityMax: 6,
		DurationMax:  30,
	},
	CancerBoneMets: {
		Avoid:        []string{"high-impact", "jumping", "twisting", "heavy-resistance", "contact-sports"},
		Caution:      []string{"any-resistance", "balance-unsupported"},
		Preferred:    []string{"seated", "supported-standing", "aquatic", "gentle-stretching", "breathing"},
		IntensityMax: 4,
		DurationMax:  15,
	},
	CancerGeneral: {
		Avoid:        []string{},
		Caution:      []string{"high-intensity"},
		Preferred:    []string{"walking", "resistance-bands", "balance", "stretching", "breathing"},
		IntensityMax: 7,
		DurationMax:  45,
	},
}

// GuidanceFor returns the authored guidance block for a cancer type.
func GuidanceFor(t CancerType) CancerGuidance {
	if g, ok := cancerGuidance[t]; ok {
		return g
	}
	return cancerGuidance[CancerGeneral]
}

// SafetyRulesFor returns the exercise-trait safety rules for a cancer type.
func SafetyRulesFor(t CancerType) SafetyRules {
	if r, ok := cancerSafetyRules[t]; ok {
		return r
	}
	return cancerSafetyRules[CancerGeneral]
}
