// Package scenario holds the ordered, read-only scenario catalog the
// diagnosis game walks through.
package scenario

import (
	"github.com/abhisek/imodel/internal/modes"
)

// Scenario is one vignette the learner diagnoses.
type Scenario struct {
	ID          string
	Title       string
	Vignette    string
	Explanation string

	// CorrectModes are the modes missing from the vignette. May be empty.
	CorrectModes modes.Set

	// PresentModes are the modes the vignette does show. Informational only.
	PresentModes modes.Set
}

// Catalog is an immutable, ordered sequence of scenarios over a mode universe.
type Catalog struct {
	universe  modes.Universe
	scenarios []Scenario
}

// NewCatalog validates and wraps scenarios. The slice is copied.
func NewCatalog(universe modes.Universe, scenarios []Scenario) (*Catalog, error) {
	if err := validate(universe, scenarios); err != nil {
		return nil, err
	}
	u := make(modes.Universe, len(universe))
	copy(u, universe)
	out := make([]Scenario, len(scenarios))
	for i, s := range scenarios {
		out[i] = s.clone()
	}
	return &Catalog{universe: u, scenarios: out}, nil
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// At returns the scenario at index i. It panics if i is out of range, like
// a slice index.
func (c *Catalog) At(i int) Scenario {
	return c.scenarios[i].clone()
}

// All returns a copy of every scenario in order.
func (c *Catalog) All() []Scenario {
	out := make([]Scenario, len(c.scenarios))
	for i, s := range c.scenarios {
		out[i] = s.clone()
	}
	return out
}

// Universe returns the modes the catalog is written against.
func (c *Catalog) Universe() modes.Universe {
	u := make(modes.Universe, len(c.universe))
	copy(u, c.universe)
	return u
}

func (s Scenario) clone() Scenario {
	s.CorrectModes = s.CorrectModes.Clone()
	s.PresentModes = s.PresentModes.Clone()
	return s
}
