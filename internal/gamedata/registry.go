package gamedata

import (
	"errors"
	"fmt"
)

// ErrUnknownRunner is returned for a runner ID missing from the registry.
var ErrUnknownRunner = errors.New("unknown runner kind")

// Strategy names understood by RunnerDef.
const (
	StrategyRandom    = "random"
	StrategyRightHand = "right-hand"
)

// RunnerDef defines a runner kind loaded from YAML.
type RunnerDef struct {
	ID       string `yaml:"id"`       // Unique identifier, also used as paint
	Name     string `yaml:"name"`     // Display name
	Strategy string `yaml:"strategy"` // Turn selection strategy
	Modifier bool   `yaml:"modifier"` // Spawned by a modifier (shift) click
}

// RunnersFile represents the structure of runners.yaml.
type RunnersFile struct {
	Runners []RunnerDef `yaml:"runners"`
}

// LoadRunners loads runner definitions from the embedded runners.yaml file.
func LoadRunners() ([]RunnerDef, error) {
	file, err := Load[RunnersFile]("runners.yaml")
	if err != nil {
		return nil, err
	}
	return file.Runners, nil
}

// RunnerRegistry holds loaded runner definitions.
type RunnerRegistry struct {
	runners []RunnerDef
}

// NewRunnerRegistry creates a registry from loaded runner definitions.
func NewRunnerRegistry(runners []RunnerDef) *RunnerRegistry {
	return &RunnerRegistry{runners: runners}
}

// LoadRunnerRegistry loads and creates a registry from the embedded runners.yaml.
func LoadRunnerRegistry() (*RunnerRegistry, error) {
	runners, err := LoadRunners()
	if err != nil {
		return nil, err
	}
	if len(runners) == 0 {
		return nil, errors.New("no runners loaded from runners.yaml")
	}
	return NewRunnerRegistry(runners), nil
}

// GetByID returns the runner definition with the given ID, or nil if not found.
func (r *RunnerRegistry) GetByID(id string) *RunnerDef {
	for i := range r.runners {
		if r.runners[i].ID == id {
			return &r.runners[i]
		}
	}
	return nil
}

// Resolve returns the definitions for ids, failing on the first unknown one.
func (r *RunnerRegistry) Resolve(ids []string) ([]*RunnerDef, error) {
	defs := make([]*RunnerDef, 0, len(ids))
	for _, id := range ids {
		def := r.GetByID(id)
		if def == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRunner, id)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// ForModifier returns the first runner spawned by a click with or without
// the modifier held, or nil.
func (r *RunnerRegistry) ForModifier(modifier bool) *RunnerDef {
	for i := range r.runners {
		if r.runners[i].Modifier == modifier {
			return &r.runners[i]
		}
	}
	return nil
}

// All returns all runner definitions.
func (r *RunnerRegistry) All() []RunnerDef {
	return r.runners
}

// Count returns the number of runner kinds in the registry.
func (r *RunnerRegistry) Count() int {
	return len(r.runners)
}
