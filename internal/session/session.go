// Package session drives the learner through the scenario catalog: it owns
// the active index, the committed selection, the check flag and the
// accumulated results.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/scenario"
	"github.com/abhisek/imodel/internal/selection"
)

// ErrInvalidOperation is returned when an operation is not allowed in the
// current state.
var ErrInvalidOperation = errors.New("invalid operation")

// Phase is the coarse state of a session.
type Phase int

const (
	PhaseActive   Phase = iota // A scenario is on screen
	PhaseComplete              // Every scenario has been checked
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Option configures a Session.
type Option func(*Session)

// WithOnComplete registers fn to receive the frozen results when the last
// scenario is advanced past.
func WithOnComplete(fn func([]Result)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is the scenario progression state machine. It is not safe for
// concurrent use; the host applies events one at a time.
type Session struct {
	id       string
	catalog  *scenario.Catalog
	universe modes.Universe
	engine   selection.Engine

	index     int
	checked   bool
	selection modes.Set
	results   []Result
	phase     Phase

	onComplete func([]Result)
	log        *slog.Logger
}

// New creates a session over catalog using an engine built by factory. The
// engine's commits flow into MutateSelection.
func New(catalog *scenario.Catalog, universe modes.Universe, factory selection.Factory, opts ...Option) (*Session, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("session needs a non-empty catalog")
	}
	if len(universe) == 0 {
		return nil, fmt.Errorf("session needs at least one mode")
	}
	for _, sc := range catalog.All() {
		if err := universe.ValidateSet(sc.CorrectModes); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.ID, err)
		}
	}

	s := &Session{
		catalog:  catalog,
		universe: universe,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	eng, err := factory(universe, s.MutateSelection)
	if err != nil {
		return nil, fmt.Errorf("create selection engine: %w", err)
	}
	s.engine = eng
	s.Start()
	return s, nil
}

// Start enters the initial state: first scenario, empty selection, nothing
// checked, no results. A new session ID is assigned.
func (s *Session) Start() {
	s.id = uuid.New().String()
	s.index = 0
	s.checked = false
	s.selection = modes.Set{}
	s.results = nil
	s.phase = PhaseActive
	s.engine.Reset()
	s.log.Info("session started", "session", s.id, "scenarios", s.catalog.Len(), "strategy", s.engine.Kind())
}

// Reset tears down all progress and starts over.
func (s *Session) Reset() {
	s.log.Info("session reset", "session", s.id, "index", s.index, "results", len(s.results))
	s.Start()
}

// Close releases the engine's resources.
func (s *Session) Close() {
	s.engine.Close()
}

// MutateSelection replaces the selection. Allowed only while the current
// scenario has not been checked.
func (s *Session) MutateSelection(next modes.Set) error {
	if s.phase != PhaseActive {
		return fmt.Errorf("%w: session is complete", ErrInvalidOperation)
	}
	if s.checked {
		return fmt.Errorf("%w: scenario %d already checked", ErrInvalidOperation, s.index)
	}
	if err := s.universe.ValidateSet(next); err != nil {
		return err
	}
	s.selection = next.Clone()
	s.log.Debug("selection changed", "session", s.id, "index", s.index, "selection", s.selection.Strings(s.universe))
	return nil
}

// Check scores the current selection and records the result.
func (s *Session) Check() (Result, error) {
	if s.phase != PhaseActive {
		return Result{}, fmt.Errorf("%w: session is complete", ErrInvalidOperation)
	}
	if s.checked {
		return Result{}, fmt.Errorf("%w: scenario %d already checked", ErrInvalidOperation, s.index)
	}
	if s.selection.Empty() {
		return Result{}, fmt.Errorf("%w: nothing selected", ErrInvalidOperation)
	}

	sc := s.catalog.At(s.index)
	r := newResult(sc.ID, s.selection, sc.CorrectModes)
	s.results = append(s.results, r)
	s.checked = true
	s.log.Info("scenario checked", "session", s.id, "scenario", sc.ID, "verdict", r.Verdict)
	return r.clone(), nil
}

// Advance moves to the next scenario, or completes the session after the
// last one.
func (s *Session) Advance() error {
	if s.phase != PhaseActive {
		return fmt.Errorf("%w: session is complete", ErrInvalidOperation)
	}
	if !s.checked {
		return fmt.Errorf("%w: scenario %d not checked yet", ErrInvalidOperation, s.index)
	}

	if s.index+1 < s.catalog.Len() {
		s.index++
		s.checked = false
		s.selection = modes.Set{}
		s.engine.Reset()
		s.log.Debug("advanced", "session", s.id, "index", s.index)
		return nil
	}

	s.phase = PhaseComplete
	s.log.Info("session complete", "session", s.id, "results", len(s.results))
	if s.onComplete != nil {
		s.onComplete(s.Results())
	}
	return nil
}

// ID returns the session identifier used in logs and exports.
func (s *Session) ID() string { return s.id }

// Current returns the active scenario. After completion it returns the last
// scenario.
func (s *Session) Current() scenario.Scenario { return s.catalog.At(s.index) }

// Index returns the 0-based index of the active scenario.
func (s *Session) Index() int { return s.index }

// Len returns the number of scenarios.
func (s *Session) Len() int { return s.catalog.Len() }

// HasChecked reports whether the active scenario has been scored.
func (s *Session) HasChecked() bool { return s.checked }

// Selection returns the committed selection.
func (s *Session) Selection() modes.Set { return s.selection.Clone() }

// Universe returns the modes in play.
func (s *Session) Universe() modes.Universe { return append(modes.Universe(nil), s.universe...) }

// LastResult returns the result for the active scenario once it is checked.
func (s *Session) LastResult() (Result, bool) {
	if !s.checked || len(s.results) == 0 {
		return Result{}, false
	}
	return s.results[len(s.results)-1].clone(), true
}

// Results returns a copy of all recorded results.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	for i, r := range s.results {
		out[i] = r.clone()
	}
	return out
}

// Phase returns the coarse state.
func (s *Session) Phase() Phase { return s.phase }

// Complete reports whether every scenario has been checked and advanced past.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }

// Engine returns the selection engine bound to this session.
func (s *Session) Engine() selection.Engine { return s.engine }
