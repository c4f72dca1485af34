package recommend

import "github.com/claude/oncoplan/internal/guidelines"

// Base FITT prescriptions for post-treatment survivors. The branches in
// FITTRecommendations swap individual lines when the assessment calls for a
// gentler start.
var (
	aerobicFITT = struct {
		Frequency, Intensity, Type, Time string
	}{
		Frequency: "3-5 times per week",
		Intensity: "40-60% HR reserve, 50-70% HR max, RPE 11-14/20",
		Type:      "Large muscle group activities (walking, cycling, swimming)",
		Time:      "20-30 minutes continuous; deconditioned patients may need shorter bouts with rest intervals",
	}

	resistanceFITT = struct {
		Frequency, Intensity, Type, Time string
	}{
		Frequency: "2-3 days per week with minimum 48 hours between sessions",
		Intensity: "60-80% 1RM or allow for 6-15 reps",
		Type:      "8-10 exercises of major muscle groups; machines or free weights",
		Time:      "1-3 sets of 8-12 reps, at least 60s rest between sets",
	}

	flexibilityFITT = struct {
		Frequency, Intensity, Type, Time string
	}{
		Frequency: "2-3 days per week, up to daily",
		Intensity: "Stretch to point of tightness or slight discomfort (not pain)",
		Type:      "Static stretches (passive/active) for all major muscle groups; tai chi and yoga",
		Time:      "Hold each stretch for 10-30 seconds",
	}
)

// FITTPlan is the frequency/intensity/type/time prescription per modality,
// rendered as display lines.
type FITTPlan struct {
	Aerobic     []string `json:"aerobic"`
	Resistance  []string `json:"resistance"`
	Flexibility []string `json:"flexibility"`
}

// FITTRecommendations builds the modality prescriptions for a patient.
// Very low energy rewrites the aerobic block around short frequent bouts;
// meaningful pain rewrites resistance around pain-free movement; a
// post-surgery phase appends a range-of-motion caution to flexibility.
func FITTRecommendations(profile PatientProfile, assessment Assessment) FITTPlan {
	var plan FITTPlan

	plan.Aerobic = append(plan.Aerobic, "Frequency: "+aerobicFITT.Frequency)
	if assessment.EnergyOrDefault() <= 2 {
		plan.Aerobic = append(plan.Aerobic,
			"Intensity: Lower end of moderate range (RPE 11-12)",
			"Type: Walking or stationary cycling",
			"Time: Start with 5-10 minute sessions, multiple times per day",
			"Note: Prioritize consistency over intensity or duration")
	} else {
		plan.Aerobic = append(plan.Aerobic,
			"Intensity: "+aerobicFITT.Intensity,
			"Type: "+aerobicFITT.Type,
			"Time: "+aerobicFITT.Time)
	}

	plan.Resistance = append(plan.Resistance, "Frequency: "+resistanceFITT.Frequency)
	if assessment.PainLevel >= 4 {
		plan.Resistance = append(plan.Resistance,
			"Intensity: Start with very light weights or body weight",
			"Type: Focus on pain-free movements, avoiding painful areas",
			"Time: 1 set of 8-10 reps, increase sets before increasing weight")
	} else {
		plan.Resistance = append(plan.Resistance,
			"Intensity: "+resistanceFITT.Intensity,
			"Type: "+resistanceFITT.Type,
			"Time: "+resistanceFITT.Time)
	}

	plan.Flexibility = append(plan.Flexibility,
		"Frequency: "+flexibilityFITT.Frequency,
		"Intensity: "+flexibilityFITT.Intensity,
		"Type: "+flexibilityFITT.Type,
		"Time: "+flexibilityFITT.Time)
	if profile.TreatmentPhase == guidelines.PhasePostSurgery {
		plan.Flexibility = append(plan.Flexibility,
			"Note: Consult with healthcare provider about specific ROM restrictions")
	}

	return plan
}
