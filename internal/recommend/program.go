package recommend

import (
	"sort"

	"github.com/claude/oncoplan/internal/catalog"
	"github.com/claude/oncoplan/internal/guidelines"
)

// Program scoring bonuses layered on top of the member-exercise average.
const (
	programPhaseBonus    = 10
	programEnergyBonus   = 5
	programEnergyPenalty = 5
	programDurationBonus = 5

	// Weekly commitment a patient can comfortably absorb per energy point,
	// in minutes. Energy 1 tolerates ~30 min/week, energy 5 ~150.
	commitmentMinutesPerEnergy = 30

	// Program lengths bounding the phase-fit check. Reduced-intensity phases
	// favor programs of at most shortProgramWeeks; programs of
	// longProgramWeeks or more are penalized there. Full-intensity phases
	// favor longer habit-building programs.
	shortProgramWeeks = 4
	longProgramWeeks  = 8
	habitProgramWeeks = 6

	// Phases whose intensity modifier falls below this are treated as
	// reduced-intensity for program length fit.
	reducedIntensityBelow = 0.8
)

// ScoredProgram pairs an authored program with its match score, the reason
// codes, and the member exercises that drove the score.
type ScoredProgram struct {
	Program           catalog.Program  `json:"program"`
	Score             int              `json:"score"`
	ReasonCodes       []string         `json:"reasonCodes"`
	MatchingExercises []ScoredExercise `json:"matchingExercises,omitempty"`
}

// ScoreProgram rates a whole program as the average of its member-exercise
// scores, with bonuses for matching the patient's treatment phase and the
// program's own energy pitch, for a weekly time commitment the patient's
// energy can absorb, and for a program length suited to the phase of care.
// Programs referencing no known exercises score zero.
func ScoreProgram(cat *catalog.Catalog, program catalog.Program, profile PatientProfile, assessment Assessment) ScoredProgram {
	result := ScoredProgram{Program: program}

	var total int
	for _, id := range program.ExerciseIDs {
		ex, ok := cat.ExerciseByID(id)
		if !ok {
			continue
		}
		score, codes := ScoreExercise(ex, profile, assessment)
		total += score
		result.MatchingExercises = append(result.MatchingExercises, ScoredExercise{Exercise: ex, Score: score, ReasonCodes: codes})
	}
	if len(result.MatchingExercises) == 0 {
		result.ReasonCodes = append(result.ReasonCodes, "no_member_exercises")
		return result
	}

	score := total / len(result.MatchingExercises)
	result.ReasonCodes = append(result.ReasonCodes, "member_exercise_average")

	if profile.TreatmentPhase != "" {
		for _, ph := range program.TreatmentPhases {
			if ph == profile.TreatmentPhase {
				score += programPhaseBonus
				result.ReasonCodes = append(result.ReasonCodes, "program_phase_match")
				break
			}
		}
	}

	if program.EnergyLevel > 0 {
		switch diff := abs(program.EnergyLevel - assessment.EnergyOrDefault()); {
		case diff == 0:
			score += programEnergyBonus
			result.ReasonCodes = append(result.ReasonCodes, "program_energy_match")
		case diff >= 2:
			score -= programEnergyPenalty
			result.ReasonCodes = append(result.ReasonCodes, "program_energy_mismatch")
		}
	}

	if commitment := weeklyCommitmentMinutes(program, result.MatchingExercises); commitment > 0 {
		budget := assessment.EnergyOrDefault() * commitmentMinutesPerEnergy
		switch {
		case commitment <= budget:
			score += programDurationBonus
			result.ReasonCodes = append(result.ReasonCodes, "program_commitment_fits_energy")
		case commitment*2 > budget*3:
			score -= programDurationBonus
			result.ReasonCodes = append(result.ReasonCodes, "program_commitment_high_for_energy")
		}
	}

	if profile.TreatmentPhase != "" && program.DurationWeeks > 0 {
		if guidelines.IntensityModifierFor(profile.TreatmentPhase) < reducedIntensityBelow {
			switch {
			case program.DurationWeeks <= shortProgramWeeks:
				score += programDurationBonus
				result.ReasonCodes = append(result.ReasonCodes, "program_length_fits_phase")
			case program.DurationWeeks >= longProgramWeeks:
				score -= programDurationBonus
				result.ReasonCodes = append(result.ReasonCodes, "program_length_long_for_phase")
			}
		} else if program.DurationWeeks >= habitProgramWeeks {
			score += programDurationBonus
			result.ReasonCodes = append(result.ReasonCodes, "program_length_fits_phase")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.Score = score
	return result
}

// weeklyCommitmentMinutes estimates the program's weekly time ask from its
// session frequency and the mean authored duration of its member exercises.
// Zero when no member carries a duration.
func weeklyCommitmentMinutes(program catalog.Program, members []ScoredExercise) int {
	if program.SessionsPerWeek <= 0 {
		return 0
	}
	total, counted := 0, 0
	for _, m := range members {
		if m.Exercise.DurationMinutes > 0 {
			total += m.Exercise.DurationMinutes
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return program.SessionsPerWeek * (total / counted)
}

// RankPrograms scores every catalog program, highest first with id
// tiebreak.
func RankPrograms(cat *catalog.Catalog, profile PatientProfile, assessment Assessment, limit int) []ScoredProgram {
	scored := make([]ScoredProgram, 0, len(cat.Programs))
	for _, p := range cat.Programs {
		scored = append(scored, ScoreProgram(cat, p, profile, assessment))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Program.ID < scored[j].Program.ID
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
