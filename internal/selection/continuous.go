package selection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/imodel/internal/modes"
)

// Token is the presentation state of one mode in the continuous field.
type Token struct {
	Mode     modes.Name
	Position Point
	Rest     Point
	Locked   bool
	Dragging bool
}

// Frame is one consistent snapshot of the field.
type Frame struct {
	Tokens   []Token
	Factor   float64
	Dragging modes.Name
	Pointer  Point
}

// Active reports whether a drag was in progress when the frame was taken.
func (f Frame) Active() bool {
	return f.Dragging != ""
}

// AnyLocked reports whether at least one token sits in the lock zone.
func (f Frame) AnyLocked() bool {
	for _, t := range f.Tokens {
		if t.Locked {
			return true
		}
	}
	return false
}

// Continuous is the spatial lock engine. Every method is safe to call while
// an animation ticker reads snapshots from another goroutine.
type Continuous struct {
	mu        sync.Mutex
	universe  modes.Universe
	geo       Geometry
	policy    ReactionPolicy
	commit    CommitFunc
	rest      []Point
	locked    []bool
	selection modes.Set
	dragging  int // index into universe, -1 when idle
	pointer   Point
	ticker    *Ticker
}

var _ Engine = (*Continuous)(nil)

// NewContinuous creates an engine with every token at rest and unlocked.
func NewContinuous(universe modes.Universe, geo Geometry, policy ReactionPolicy, commit CommitFunc) (*Continuous, error) {
	if len(universe) == 0 {
		return nil, fmt.Errorf("continuous engine needs at least one mode")
	}
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		policy = DefaultSpreadPolicy()
	}
	return &Continuous{
		universe: universe,
		geo:      geo,
		policy:   policy,
		commit:   commit,
		rest:     geo.RestPositions(len(universe)),
		locked:   make([]bool, len(universe)),
		dragging: -1,
	}, nil
}

func (c *Continuous) Kind() Kind { return KindContinuous }

// Geometry returns the field constants.
func (c *Continuous) Geometry() Geometry { return c.geo }

func (c *Continuous) Selection() modes.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Clone()
}

// Dragging returns the token being dragged, if any.
func (c *Continuous) Dragging() (modes.Name, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging < 0 {
		return "", false
	}
	return c.universe[c.dragging], true
}

// Locked reports whether mode sits in the lock zone.
func (c *Continuous) Locked(mode modes.Name) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.universe.Index(mode)
	return i >= 0 && c.locked[i]
}

// BeginDrag starts dragging mode with the pointer at p. Only one drag may
// be active at a time.
func (c *Continuous) BeginDrag(mode modes.Name, p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.universe.Index(mode)
	if i < 0 {
		return c.universe.Validate(mode)
	}
	if c.dragging >= 0 {
		return fmt.Errorf("%w: %q is already being dragged", ErrConcurrentDrag, c.universe[c.dragging])
	}
	c.dragging = i
	c.pointer = p
	return nil
}

// UpdateDrag moves the dragged token to p.
func (c *Continuous) UpdateDrag(p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging < 0 {
		return ErrNoActiveDrag
	}
	c.pointer = p
	return nil
}

// EndDrag releases the dragged token at p. Strictly inside the lock radius
// the token locks and joins the selection; otherwise it unlocks and leaves
// it. This is the only point where the selection changes.
func (c *Continuous) EndDrag(p Point) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging < 0 {
		return ErrNoActiveDrag
	}
	return c.release(p)
}

// CancelDrag ends an active drag at the last known pointer position, as when
// the pointer leaves the surface or focus is lost. No-op when idle.
func (c *Continuous) CancelDrag() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging < 0 {
		return nil
	}
	return c.release(c.pointer)
}

// release must be called with mu held and a drag active. The drag is
// cleared even when the commit is vetoed.
func (c *Continuous) release(p Point) error {
	i := c.dragging
	mode := c.universe[i]
	c.dragging = -1
	c.pointer = p

	lock := c.geo.InLockZone(p)
	next := c.selection.Remove(mode)
	if lock {
		next = c.selection.Add(mode)
	}
	if err := commitOrKeep(c.commit, next); err != nil {
		return err
	}
	c.locked[i] = lock
	c.selection = next
	return nil
}

// Snapshot computes every token position from the current drag state.
func (c *Continuous) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame()
}

// frame must be called with mu held.
func (c *Continuous) frame() Frame {
	n := len(c.universe)
	f := Frame{Tokens: make([]Token, n), Pointer: c.pointer}

	var targets []Point
	if c.dragging >= 0 {
		f.Dragging = c.universe[c.dragging]
		f.Factor = c.geo.Factor(c.pointer)
		targets = c.policy.Targets(c.geo, n, c.dragging)
	}

	for i, mode := range c.universe {
		tok := Token{Mode: mode, Rest: c.rest[i], Locked: c.locked[i]}
		switch {
		case i == c.dragging:
			tok.Dragging = true
			tok.Position = c.pointer
		case c.locked[i]:
			tok.Position = c.geo.Center
		case c.dragging >= 0:
			tok.Position = Lerp(c.rest[i], targets[i], f.Factor)
		default:
			tok.Position = c.rest[i]
		}
		f.Tokens[i] = tok
	}
	return f
}

// Animate starts a ticker that recomputes the field every interval and
// publishes frames while a drag is active, plus one settling frame after
// it ends. Any ticker started earlier is stopped first. The ticker stops
// when ctx is done, on Stop or on Close. A non-positive interval runs at
// DefaultFrameInterval.
func (c *Continuous) Animate(ctx context.Context, interval time.Duration) *Ticker {
	c.mu.Lock()
	prev := c.ticker
	c.ticker = nil
	c.mu.Unlock()
	if prev != nil {
		prev.Stop()
	}

	t := startTicker(ctx, interval, c.Snapshot)

	c.mu.Lock()
	c.ticker = t
	c.mu.Unlock()
	return t
}

// Reset unlocks every token, drops any drag and clears the selection
// without committing. A running ticker keeps running.
func (c *Continuous) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = -1
	c.pointer = Point{}
	c.selection = modes.Set{}
	for i := range c.locked {
		c.locked[i] = false
	}
}

// Close stops the ticker, if any.
func (c *Continuous) Close() {
	c.mu.Lock()
	t := c.ticker
	c.ticker = nil
	c.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}
