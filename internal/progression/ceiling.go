package progression

import (
	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
)

// restHeadroomMinutes is the weekly aerobic headroom below which a session
// is not worth starting.
const restHeadroomMinutes = 5

// CeilingResult is an adapted session after guideline ceilings. The
// ceilings only ever reduce: symptom modifiers can never push a session
// above what the stage's weekly guideline window allows.
type CeilingResult struct {
	AdaptedSession
	CeilingApplied bool   `json:"ceilingApplied"`
	CeilingMessage string `json:"ceilingMessage,omitempty"`
}

// ApplyGuidelineCeilings bounds an adapted session by the stage's weekly
// aerobic-minute and strength-session ceilings, given what the week has
// already accumulated. A week at its aerobic ceiling converts today to rest;
// a strength ceiling converts strength or mixed work to aerobic.
func ApplyGuidelineCeilings(adapted AdaptedSession, backbone *Backbone, weeklyMinutes, weeklyStrengthSessions float64) CeilingResult {
	stage := clinical.StageFoundations
	if backbone != nil {
		stage = backbone.TrainingStage.Clamped()
	}
	cfg := ConfigFor(stage)
	aerobicCeiling := guidelines.StageAerobicRange(stage)
	strengthCeiling := guidelines.StageStrengthRange(stage)

	result := CeilingResult{AdaptedSession: adapted}

	baseMinutes := float64(cfg.MinutesPerSession)
	proposed := baseMinutes * adapted.DurationMultiplier
	if weeklyMinutes+proposed > float64(aerobicCeiling.Max) {
		remaining := float64(aerobicCeiling.Max) - weeklyMinutes
		if remaining < 0 {
			remaining = 0
		}
		if remaining <= restHeadroomMinutes {
			result.AdaptedType = clinical.SessionRest
			result.WasAdapted = true
			result.AdaptationReason = "Weekly ceiling reached - time to rest"
			result.DurationMultiplier = 0
			result.Suggestions = append(result.Suggestions, "Consider a gentle stretch or breathing exercise if you want to move")
			result.CeilingApplied = true
			result.CeilingMessage = "You've reached a healthy amount of movement for your current stage this week. Rest is valuable too."
			return result
		}
		result.DurationMultiplier = remaining / baseMinutes
		result.CeilingApplied = true
		result.CeilingMessage = "Session adjusted to stay within your weekly target range."
	}

	isStrength := result.AdaptedType == clinical.SessionStrength || result.AdaptedType == clinical.SessionMixed
	if isStrength && weeklyStrengthSessions >= float64(strengthCeiling.Max) {
		result.AdaptedType = clinical.SessionAerobic
		result.WasAdapted = true
		result.AdaptationReason = "Switching from strength (weekly ceiling reached)"
		result.Suggestions = append(result.Suggestions, "Light movement instead of strength today")
		result.CeilingApplied = true
		result.CeilingMessage = "You've done your strength sessions for the week. Let's focus on something different."
	}

	return result
}
