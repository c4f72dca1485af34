// Package adapt applies the fine-grained symptom pass to an already dosed
// session. Unlike the safety gate's three buckets, it works from the raw
// 0-10 scores so within-bucket severity still matters. Reductions only:
// no exercise ever leaves this pass with more sets or reps than it entered
// with, and reps never fall below the authored range minimum.
package adapt

import (
	"math"
	"strings"

	"github.com/claude/oncoplan/internal/clinical"
)

// Per-axis thresholds for the fine pass. Fatigue and pain compose; anxiety
// only annotates.
const (
	severeMin   = 8
	moderateMin = 6
	anxietyHigh = 7
	anxietyMild = 5
)

// Result carries the adapted session plus the pass's own safety view.
// SafetyOverride is empty when symptoms stay in the green range; callers
// reconcile a non-empty override with the gate flag via clinical.WorstFlag.
type Result struct {
	Session        clinical.SessionOutput `json:"session"`
	Reasons        []string               `json:"reasons"`
	SafetyOverride clinical.SafetyFlag    `json:"safetyOverride,omitempty"`
}

// Session scales a dosed session against the raw symptom scores. The input
// session is never mutated.
func Session(session clinical.SessionOutput, symptoms clinical.SymptomSnapshot) Result {
	s := symptoms.Clamped()
	out := session.Clone()

	var override clinical.SafetyFlag
	switch {
	case s.Fatigue >= severeMin || s.Pain >= severeMin:
		override = clinical.FlagRed
	case s.Fatigue >= moderateMin || s.Pain >= moderateMin || s.Anxiety >= anxietyHigh:
		override = clinical.FlagAmber
	}

	for i := range out.Exercises {
		ex := &out.Exercises[i]

		switch {
		case s.Fatigue >= severeMin:
			ex.SetsSuggested = 1
			ex.RepsSuggested = reduceReps(ex.RepsSuggested, 0.5, ex.RepRange)
			ex.Notes = appendNote(ex.Notes, "Keep it very light and stop early if needed.")
		case s.Fatigue >= moderateMin:
			if ex.SetsSuggested > 1 {
				ex.SetsSuggested--
			}
			ex.RepsSuggested = reduceReps(ex.RepsSuggested, 0.7, ex.RepRange)
			ex.Notes = appendNote(ex.Notes, "Ease back on effort today.")
		}

		// Pain modifies range of motion, not volume: reps only, sets untouched.
		switch {
		case s.Pain >= severeMin:
			ex.RepsSuggested = reduceReps(ex.RepsSuggested, 0.5, ex.RepRange)
			ex.Notes = appendNote(ex.Notes, "Stay in a pain-free range and move slowly.")
		case s.Pain >= moderateMin:
			ex.RepsSuggested = reduceReps(ex.RepsSuggested, 0.7, ex.RepRange)
			ex.Notes = appendNote(ex.Notes, "Prioritize comfort and range of motion.")
		}

		switch {
		case s.Anxiety >= anxietyHigh:
			ex.Notes = appendNote(ex.Notes, "Slow the tempo and add extra rest between sets.")
		case s.Anxiety >= anxietyMild:
			ex.Notes = appendNote(ex.Notes, "Steady breathing and smooth tempo.")
		}
	}

	return Result{
		Session:        out,
		Reasons:        buildReasons(s),
		SafetyOverride: override,
	}
}

// reduceReps scales reps down by factor and reclamps into the authored
// range. Because the input already sits within the range, the clamp can only
// hold the value at the range minimum, never push it above the input.
func reduceReps(reps int, factor float64, r clinical.RepRange) int {
	target := int(math.Floor(float64(reps) * factor))
	if target < 1 {
		target = 1
	}
	if r.Valid() {
		target = r.ClampInto(target)
	}
	if target > reps {
		return reps
	}
	return target
}

func appendNote(existing, addition string) string {
	if existing == "" {
		return addition
	}
	if strings.Contains(existing, addition) {
		return existing
	}
	return existing + " " + addition
}

func buildReasons(s clinical.SymptomSnapshot) []string {
	var reasons []string
	switch {
	case s.Fatigue >= severeMin:
		reasons = append(reasons, "High fatigue - reduced sets and reps to keep effort gentle.")
	case s.Fatigue >= moderateMin:
		reasons = append(reasons, "Moderate fatigue - trimmed sets and reps slightly.")
	}
	switch {
	case s.Pain >= severeMin:
		reasons = append(reasons, "High pain - staying in a pain-free range with low volume.")
	case s.Pain >= moderateMin:
		reasons = append(reasons, "Moderate pain - lowering volume and emphasizing range of motion.")
	}
	switch {
	case s.Anxiety >= anxietyHigh:
		reasons = append(reasons, "Elevated anxiety - added slower pacing and longer rests.")
	case s.Anxiety >= anxietyMild:
		reasons = append(reasons, "Mild anxiety - reinforced steady breathing and tempo.")
	}
	if len(reasons) == 0 && (s.Fatigue >= 4 || s.Pain >= 4 || s.Anxiety >= anxietyMild) {
		reasons = append(reasons, "Symptoms noted - keep a steady, comfortable pace.")
	}
	return reasons
}
