package planner

import (
	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
)

// Dose is a block rendered into concrete per-exercise numbers plus the
// session caps for the current phase and flag.
type Dose struct {
	Session     clinical.SessionOutput
	Caps        clinical.Caps
	Adaptations []string
}

// BuildSession doses every exercise of the block for the given safety flag.
// Dosing is coarse by design: GREEN lands mid-range sets at top-of-range
// reps, AMBER drops both to the range minimum, RED prescribes a single
// minimal set. The fine 0-10 symptom pass refines from here.
func BuildSession(block clinical.Block, flag clinical.SafetyFlag, phase clinical.Phase) Dose {
	exercises := make([]clinical.ExerciseOutput, 0, len(block.Exercises))
	for _, ex := range block.Exercises {
		out := clinical.ExerciseOutput{
			ID:       ex.ID,
			Name:     ex.Name,
			RepRange: ex.RepRange,
			Notes:    ex.Notes,
		}
		// Dosing notes take priority over the authored exercise note.
		switch flag {
		case clinical.FlagRed:
			out.SetsSuggested = 1
			out.RepsSuggested = ex.RepRange.Min
			out.Notes = "Recovery focus - minimal effort"
		case clinical.FlagAmber:
			out.SetsSuggested = ex.SetRange.Min
			out.RepsSuggested = ex.RepRange.Min
			out.Notes = "Stay toward the lower end today"
		default:
			out.SetsSuggested = ex.SetRange.Midpoint()
			out.RepsSuggested = ex.RepRange.Max
		}
		exercises = append(exercises, out)
	}

	return Dose{
		Session: clinical.SessionOutput{
			Title:       block.Title,
			SessionType: block.SessionType,
			Exercises:   exercises,
		},
		Caps:        capsFor(phase, flag),
		Adaptations: adaptationsFor(flag),
	}
}

// capsFor applies the flag's tightening on top of the phase base caps.
// AMBER never loosens a cap that is already below its adjustment.
func capsFor(phase clinical.Phase, flag clinical.SafetyFlag) clinical.Caps {
	caps := guidelines.BaseSessionCaps(phase)
	switch flag {
	case clinical.FlagRed:
		caps.IntensityRPEMax = min(caps.IntensityRPEMax, 4)
		caps.DurationMinutesMax = min(caps.DurationMinutesMax, 15)
	case clinical.FlagAmber:
		caps.IntensityRPEMax = min(caps.IntensityRPEMax-1, 5)
		caps.DurationMinutesMax -= 10
	}
	return caps
}

func adaptationsFor(flag clinical.SafetyFlag) []string {
	switch flag {
	case clinical.FlagRed:
		return []string{
			"Switched to recovery-focused session",
			"Minimal sets and reps for gentle movement only",
		}
	case clinical.FlagAmber:
		return []string{
			"Reduced sets due to elevated symptoms",
			"Kept reps at lower end of range",
		}
	default:
		return []string{"Full session with standard dose"}
	}
}
