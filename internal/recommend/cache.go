package recommend

import "sync"

// Cache stores ranked exercise lists keyed by patient. Recommendations are
// recomputed after every new assessment, so callers invalidate on
// assessment writes and the engine reads through otherwise.
type Cache interface {
	Get(key string) ([]ScoredExercise, bool)
	Set(key string, recs []ScoredExercise)
	Invalidate(key string)
}

// MemoryCache is a process-local Cache, safe for concurrent use.
type MemoryCache struct {
	mu   sync.RWMutex
	recs map[string][]ScoredExercise
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{recs: make(map[string][]ScoredExercise)}
}

func (c *MemoryCache) Get(key string) ([]ScoredExercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	recs, ok := c.recs[key]
	return recs, ok
}

func (c *MemoryCache) Set(key string, recs []ScoredExercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs[key] = recs
}

func (c *MemoryCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.recs, key)
}
