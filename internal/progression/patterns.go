package progression

// Pattern analysis thresholds: a deviation signal needs at least four
// completed sessions and a majority of them off-template.
const (
	patternMinSessions   = 4
	patternDeviationRate = 0.5
)

// PatternAnalysis reports whether a patient consistently swaps the planned
// session type for something else, which suggests the template should bend
// toward what they actually do.
type PatternAnalysis struct {
	IsDeviatingFromPlan bool   `json:"isDeviatingFromPlan"`
	DeviationCount      int    `json:"deviationCount"`
	TotalSessions       int    `json:"totalSessions"`
	Suggestion          string `json:"suggestion,omitempty"`
}

// AnalyzeSessionPatterns compares planned versus actual session types over
// the log history.
func AnalyzeSessionPatterns(logs []SessionLog) PatternAnalysis {
	if len(logs) < patternMinSessions {
		return PatternAnalysis{TotalSessions: len(logs)}
	}

	var completed, deviations int
	for _, log := range logs {
		if !log.Completed {
			continue
		}
		completed++
		if log.PlannedType != "" && log.ActualType != "" && log.PlannedType != log.ActualType {
			deviations++
		}
	}

	result := PatternAnalysis{
		DeviationCount: deviations,
		TotalSessions:  completed,
	}
	if completed >= patternMinSessions && float64(deviations)/float64(completed) > patternDeviationRate {
		result.IsDeviatingFromPlan = true
		result.Suggestion = "We've noticed you often choose different exercises than planned. That's completely okay! We'll adjust your weekly template to better match what works for you."
	}
	return result
}
