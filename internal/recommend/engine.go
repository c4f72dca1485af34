package recommend

import "github.com/claude/oncoplan/internal/catalog"

// Engine wires the scorers to a catalog and an optional cache.
type Engine struct {
	Catalog *catalog.Catalog
	Cache   Cache
}

// Exercises returns the top-ranked exercises for a patient, serving from
// the cache when a key is supplied. Pass an empty key to bypass caching,
// e.g. for one-off what-if queries.
func (e *Engine) Exercises(key string, profile PatientProfile, assessment Assessment, limit int) []ScoredExercise {
	if key != "" && e.Cache != nil {
		if recs, ok := e.Cache.Get(key); ok {
			return recs
		}
	}
	recs := RankExercises(e.Catalog, profile, assessment, limit)
	if key != "" && e.Cache != nil {
		e.Cache.Set(key, recs)
	}
	return recs
}

// Programs returns the top-ranked programs. Program rankings are not
// cached: the catalog holds an order of magnitude fewer programs than
// exercises and scoring them re-uses the exercise scorer directly.
func (e *Engine) Programs(profile PatientProfile, assessment Assessment, limit int) []ScoredProgram {
	return RankPrograms(e.Catalog, profile, assessment, limit)
}

// InvalidateFor drops a patient's cached rankings, called after a new
// assessment is recorded.
func (e *Engine) InvalidateFor(key string) {
	if e.Cache != nil {
		e.Cache.Invalidate(key)
	}
}
