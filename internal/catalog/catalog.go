// Package catalog holds the authored exercise library: session block
// templates for the planner plus the exercise/program entries the
// recommendation engine scores. Catalog data is versioned, read-only input;
// the core never writes back to it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/claude/oncoplan/internal/clinical"
	"github.com/claude/oncoplan/internal/guidelines"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Exercise is a recommendable catalog entry, tagged with the traits the
// scorer matches against a patient profile.
type Exercise struct {
	ID              string                      `json:"id" yaml:"id"`
	Name            string                      `json:"name" yaml:"name"`
	MovementType    string                      `json:"movementType" yaml:"movement_type"`
	EnergyLevel     int                         `json:"energyLevel" yaml:"energy_level"`
	BodyFocus       []string                    `json:"bodyFocus,omitempty" yaml:"body_focus,omitempty"`
	Equipment       []string                    `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	Traits          []string                    `json:"traits,omitempty" yaml:"traits,omitempty"`
	CancerTypes     []guidelines.CancerType     `json:"cancerTypes,omitempty" yaml:"cancer_types,omitempty"`
	TreatmentPhases []guidelines.TreatmentPhase `json:"treatmentPhases,omitempty" yaml:"treatment_phases,omitempty"`
	DurationMinutes int                         `json:"durationMinutes" yaml:"duration_minutes"`
}

// Program is an authored multi-week bundle of exercises.
type Program struct {
	ID              string                      `json:"id" yaml:"id"`
	Name            string                      `json:"name" yaml:"name"`
	ExerciseIDs     []string                    `json:"exerciseIds" yaml:"exercise_ids"`
	DurationWeeks   int                         `json:"durationWeeks" yaml:"duration_weeks"`
	SessionsPerWeek int                         `json:"sessionsPerWeek" yaml:"sessions_per_week"`
	EnergyLevel     int                         `json:"energyLevel" yaml:"energy_level"`
	TreatmentPhases []guidelines.TreatmentPhase `json:"treatmentPhases,omitempty" yaml:"treatment_phases,omitempty"`
}

// Catalog is the full authored library.
type Catalog struct {
	Blocks    []clinical.Block `yaml:"blocks"`
	Exercises []Exercise       `yaml:"exercises"`
	Programs  []Program        `yaml:"programs"`
}

// ConfigurationError reports that the catalog cannot satisfy a request.
// This is a fatal authoring-data gap, never a patient-facing condition:
// callers should treat it as deploy-blocking, not retryable.
type ConfigurationError struct {
	Phase clinical.Phase
	Stage clinical.Stage
}

func (e *ConfigurationError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("catalog: no block for phase %s stage %s", e.Phase, e.Stage)
	}
	return fmt.Sprintf("catalog: no block for phase %s", e.Phase)
}

// Default returns the embedded catalog. The embedded data is validated by
// tests, so a parse failure here is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

// Load reads and validates an operator-authored catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return c, nil
}

// Validate checks the authoring invariants downstream code assumes:
// unique ids, valid phases, and ordered set/rep ranges.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, b := range c.Blocks {
		if b.ID == "" {
			return fmt.Errorf("block with empty id (title %q)", b.Title)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate block id %q", b.ID)
		}
		seen[b.ID] = true
		if _, ok := clinical.ParsePhase(string(b.Phase)); !ok {
			return fmt.Errorf("block %q: unknown phase %q", b.ID, b.Phase)
		}
		if len(b.Exercises) == 0 {
			return fmt.Errorf("block %q: no exercises", b.ID)
		}
		for _, ex := range b.Exercises {
			if !ex.SetRange.Valid() {
				return fmt.Errorf("block %q exercise %q: invalid set range %d-%d",
					b.ID, ex.ID, ex.SetRange.Min, ex.SetRange.Max)
			}
			if !ex.RepRange.Valid() {
				return fmt.Errorf("block %q exercise %q: invalid rep range %d-%d",
					b.ID, ex.ID, ex.RepRange.Min, ex.RepRange.Max)
			}
		}
	}

	exIDs := make(map[string]bool)
	for _, ex := range c.Exercises {
		if ex.ID == "" {
			return fmt.Errorf("exercise with empty id (name %q)", ex.Name)
		}
		if exIDs[ex.ID] {
			return fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		exIDs[ex.ID] = true
		if ex.EnergyLevel < 1 || ex.EnergyLevel > 5 {
			return fmt.Errorf("exercise %q: energy level %d outside 1-5", ex.ID, ex.EnergyLevel)
		}
	}

	for _, p := range c.Programs {
		for _, id := range p.ExerciseIDs {
			if !exIDs[id] {
				return fmt.Errorf("program %q references unknown exercise %q", p.ID, id)
			}
		}
	}
	return nil
}

// BlockByID looks up a block. Missing ids report ok=false; the selector uses
// this to fall back when persisted continuity state has gone stale.
func (c *Catalog) BlockByID(id string) (clinical.Block, bool) {
	for _, b := range c.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return clinical.Block{}, false
}

// BlocksForPhaseAndStage returns the non-recovery blocks eligible for the
// phase whose stage window covers the given stage, in catalog order.
func (c *Catalog) BlocksForPhaseAndStage(phase clinical.Phase, stage clinical.Stage) []clinical.Block {
	var out []clinical.Block
	for _, b := range c.Blocks {
		if b.Phase == phase && !b.IsRecoveryBlock && b.MatchesStage(stage) {
			out = append(out, b)
		}
	}
	return out
}

// RecoveryBlockForPhase returns the phase's recovery block, if authored.
func (c *Catalog) RecoveryBlockForPhase(phase clinical.Phase) (clinical.Block, bool) {
	for _, b := range c.Blocks {
		if b.Phase == phase && b.IsRecoveryBlock {
			return b, true
		}
	}
	return clinical.Block{}, false
}

// DefaultBlockForPhase returns the first non-recovery block authored for the
// phase, ignoring stage windows.
func (c *Catalog) DefaultBlockForPhase(phase clinical.Phase) (clinical.Block, bool) {
	for _, b := range c.Blocks {
		if b.Phase == phase && !b.IsRecoveryBlock {
			return b, true
		}
	}
	return clinical.Block{}, false
}

// ExerciseByID looks up a recommendable exercise.
func (c *Catalog) ExerciseByID(id string) (Exercise, bool) {
	for _, ex := range c.Exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}
