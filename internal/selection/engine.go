// Package selection turns raw pointer and drag input into a committed set of
// selected modes. Two strategies share the Engine contract: Discrete moves
// tokens between a palette and one diagnosis container; Continuous drags
// tokens through a 2D field and locks them near a target zone.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/imodel/internal/modes"
)

var (
	// ErrConcurrentDrag is returned when a drag begins while another is active.
	ErrConcurrentDrag = errors.New("concurrent drag rejected")

	// ErrNoActiveDrag is returned when a drag update or release arrives with
	// no drag in progress.
	ErrNoActiveDrag = errors.New("no active drag")

	// ErrUnsupportedEvent is returned when an input event does not apply to
	// the engine's strategy.
	ErrUnsupportedEvent = errors.New("event not supported by strategy")
)

// Kind names a selection strategy.
type Kind string

const (
	KindDiscrete   Kind = "discrete"
	KindContinuous Kind = "continuous"
)

// ParseKind parses a strategy name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindDiscrete:
		return KindDiscrete, nil
	case KindContinuous:
		return KindContinuous, nil
	}
	return "", fmt.Errorf("invalid strategy %q: must be discrete or continuous", s)
}

// CommitFunc receives every selection an engine wants to commit. A non-nil
// error vetoes the commit and the engine keeps its previous selection.
type CommitFunc func(modes.Set) error

// Engine is the capability shared by both strategies: produce a committed
// mode set from input events.
type Engine interface {
	// Kind reports the strategy.
	Kind() Kind

	// Selection returns the currently committed modes.
	Selection() modes.Set

	// Reset clears the selection and any in-flight input without committing.
	Reset()

	// Close releases resources such as a running animation ticker.
	Close()
}

// Factory builds an engine bound to a universe and a commit callback. A
// session picks its factory at construction time.
type Factory func(universe modes.Universe, commit CommitFunc) (Engine, error)

// DiscreteFactory builds Discrete engines.
func DiscreteFactory() Factory {
	return func(universe modes.Universe, commit CommitFunc) (Engine, error) {
		return NewDiscrete(universe, commit), nil
	}
}

// ContinuousFactory builds Continuous engines over geo. A nil policy selects
// the default SpreadPolicy.
func ContinuousFactory(geo Geometry, policy ReactionPolicy) Factory {
	return func(universe modes.Universe, commit CommitFunc) (Engine, error) {
		return NewContinuous(universe, geo, policy, commit)
	}
}

// FactoryFor returns the factory for kind using the default geometry.
func FactoryFor(kind Kind) (Factory, error) {
	switch kind {
	case KindDiscrete:
		return DiscreteFactory(), nil
	case KindContinuous:
		return ContinuousFactory(DefaultGeometry(), nil), nil
	}
	return nil, fmt.Errorf("invalid strategy %q", kind)
}

func commitOrKeep(commit CommitFunc, next modes.Set) error {
	if commit == nil {
		return nil
	}
	return commit(next.Clone())
}
