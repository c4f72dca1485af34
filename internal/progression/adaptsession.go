package progression

import "github.com/claude/oncoplan/internal/clinical"

// SymptomSeverity buckets a snapshot for the planned-session adaptation.
// The thresholds are deliberately broader than the safety gate's: at the
// weekly-template level a 5 already warrants a gentler session, and the
// wellbeing booleans count even without a numeric score.
func SymptomSeverity(s clinical.SymptomSnapshot) clinical.SafetyFlag {
	s = s.Clamped()
	if s.Fatigue >= 8 || s.Pain >= 8 || s.Anxiety >= 8 {
		return clinical.FlagRed
	}
	if s.Fatigue >= 5 || s.Pain >= 5 || s.Anxiety >= 5 || s.LowMood || s.QOLLimits {
		return clinical.FlagAmber
	}
	return clinical.FlagGreen
}

// AdaptedSession is a planned template slot after symptom adjustment. The
// multipliers scale the stage's base duration and intensity; the type may
// change when a different modality serves today's symptoms better.
type AdaptedSession struct {
	OriginalType        clinical.SessionType `json:"originalType"`
	AdaptedType         clinical.SessionType `json:"adaptedType"`
	WasAdapted          bool                 `json:"wasAdapted"`
	AdaptationReason    string               `json:"adaptationReason,omitempty"`
	DurationMultiplier  float64              `json:"durationMultiplier"`
	IntensityMultiplier float64              `json:"intensityMultiplier"`
	Suggestions         []string             `json:"suggestions"`
}

// AdaptPlannedSession adjusts today's template slot for current symptoms.
// GREEN keeps the plan, AMBER scales to 75% with modality-specific cues,
// RED halves everything and may convert to rest or mind-body outright.
func AdaptPlannedSession(planned clinical.SessionType, symptoms clinical.SymptomSnapshot) AdaptedSession {
	severity := SymptomSeverity(symptoms)
	s := symptoms.Clamped()

	result := AdaptedSession{
		OriginalType:        planned,
		AdaptedType:         planned,
		DurationMultiplier:  1.0,
		IntensityMultiplier: 1.0,
	}

	if planned == clinical.SessionRest {
		return result
	}

	switch severity {
	case clinical.FlagGreen:
		result.Suggestions = append(result.Suggestions, "Today's "+string(planned)+" session as planned")
		return result

	case clinical.FlagAmber:
		result.WasAdapted = true
		result.DurationMultiplier = 0.75
		result.IntensityMultiplier = 0.75

		switch planned {
		case clinical.SessionStrength:
			result.Suggestions = append(result.Suggestions, "Gentler strength focus with seated options")
			result.AdaptationReason = "Modified for how you're feeling today"
			if s.Anxiety >= 5 {
				result.Suggestions = append(result.Suggestions, "Adding calm breathing at the end")
			}
		case clinical.SessionAerobic:
			result.Suggestions = append(result.Suggestions, "Light walking or gentle movement")
			result.AdaptationReason = "Scaled down for comfort"
			if s.Fatigue >= 5 {
				result.Suggestions = append(result.Suggestions, "Shorter bursts with more rest")
			}
		case clinical.SessionMixed:
			// Steer the mixed slot toward whichever modality today's
			// dominant symptom calls for.
			switch {
			case s.Anxiety >= 5:
				result.AdaptedType = clinical.SessionMindBody
				result.Suggestions = append(result.Suggestions, "Focusing on calming movement today")
				result.AdaptationReason = "Prioritizing what your body needs"
			case s.Fatigue >= 5:
				result.AdaptedType = clinical.SessionAerobic
				result.DurationMultiplier = 0.5
				result.Suggestions = append(result.Suggestions, "Short, gentle movement to help with energy")
				result.AdaptationReason = "Adapted for fatigue"
			default:
				result.Suggestions = append(result.Suggestions, "Lighter mixed session")
				result.AdaptationReason = "Gentler approach today"
			}
		}
		return result

	default: // RED
		result.WasAdapted = true
		result.DurationMultiplier = 0.5
		result.IntensityMultiplier = 0.5

		switch {
		case s.Fatigue >= 8 || s.Pain >= 8:
			result.AdaptedType = clinical.SessionRest
			result.Suggestions = append(result.Suggestions,
				"Rest is movement medicine too",
				"A 3-minute breathing exercise if you feel like it")
			result.AdaptationReason = "Your body is asking for rest today - that's okay"
		case s.Anxiety >= 8:
			result.AdaptedType = clinical.SessionMindBody
			result.DurationMultiplier = 0.3
			result.Suggestions = append(result.Suggestions,
				"Just 5 minutes of calm breathing",
				"Gentle stretches if it feels right")
			result.AdaptationReason = "Focusing on calming your nervous system"
		default:
			result.Suggestions = append(result.Suggestions,
				"Very gentle, very short - only if you want to",
				"It's completely okay to skip today")
			result.AdaptationReason = "Significantly scaled down for how you feel"
		}
		return result
	}
}
