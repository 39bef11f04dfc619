package selection

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/imodel/internal/modes"
)

type commitRecorder struct {
	commits []modes.Set
	veto    error
}

func (r *commitRecorder) commit(s modes.Set) error {
	if r.veto != nil {
		return r.veto
	}
	r.commits = append(r.commits, s)
	return nil
}

func newTestContinuous(t *testing.T) (*Continuous, *commitRecorder) {
	t.Helper()
	rec := &commitRecorder{}
	c, err := NewContinuous(modes.Default(), DefaultGeometry(), nil, rec.commit)
	require.NoError(t, err)
	return c, rec
}

func far(g Geometry) Point {
	return Point{X: g.Center.X + g.InfluenceRadius + 50, Y: g.Center.Y}
}

func tokenFor(f Frame, m modes.Name) Token {
	for _, tok := range f.Tokens {
		if tok.Mode == m {
			return tok
		}
	}
	return Token{}
}

func TestContinuous_InitialState(t *testing.T) {
	c, _ := newTestContinuous(t)
	f := c.Snapshot()

	require.Len(t, f.Tokens, 4)
	assert.False(t, f.Active())
	assert.False(t, f.AnyLocked())
	for _, tok := range f.Tokens {
		assert.Equal(t, tok.Rest, tok.Position)
	}
	assert.True(t, c.Selection().Empty())
}

func TestContinuous_LockInsideRadius(t *testing.T) {
	c, rec := newTestContinuous(t)
	g := c.Geometry()

	require.NoError(t, c.BeginDrag(modes.Integrity, Point{840, 350}))
	require.NoError(t, c.UpdateDrag(Point{700, 350}))
	require.NoError(t, c.EndDrag(Point{g.Center.X + 30, g.Center.Y - 20}))

	assert.True(t, c.Locked(modes.Integrity))
	assert.True(t, c.Selection().Equal(modes.NewSet(modes.Integrity)))
	require.Len(t, rec.commits, 1)

	f := c.Snapshot()
	assert.Equal(t, g.Center, tokenFor(f, modes.Integrity).Position, "locked tokens are pinned at the zone center")
	_, dragging := c.Dragging()
	assert.False(t, dragging)
}

func TestContinuous_LockBoundary(t *testing.T) {
	tests := []struct {
		name       string
		dx         float64
		wantLocked bool
	}{
		{"exactly r_lock does not lock", 100, false},
		{"just inside locks", 99.999, true},
		{"outside does not lock", 150, false},
		{"center locks", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContinuous(t)
			z := c.Geometry().Center
			require.NoError(t, c.BeginDrag(modes.Inquiry, z))
			require.NoError(t, c.EndDrag(Point{X: z.X + tt.dx, Y: z.Y}))
			assert.Equal(t, tt.wantLocked, c.Locked(modes.Inquiry))
			assert.Equal(t, tt.wantLocked, c.Selection().Has(modes.Inquiry))
		})
	}
}

func TestContinuous_ConcurrentDragRejected(t *testing.T) {
	c, _ := newTestContinuous(t)
	require.NoError(t, c.BeginDrag(modes.Integrity, Point{1, 1}))

	err := c.BeginDrag(modes.Inquiry, Point{2, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConcurrentDrag))

	mode, ok := c.Dragging()
	assert.True(t, ok)
	assert.Equal(t, modes.Integrity, mode)
	assert.Equal(t, Point{1, 1}, c.Snapshot().Pointer)
}

func TestContinuous_UnknownMode(t *testing.T) {
	c, _ := newTestContinuous(t)
	err := c.BeginDrag("Imagination", Point{})
	assert.ErrorIs(t, err, modes.ErrUnknownMode)
	_, ok := c.Dragging()
	assert.False(t, ok)
}

func TestContinuous_UpdateAndEndWithoutDrag(t *testing.T) {
	c, rec := newTestContinuous(t)
	assert.ErrorIs(t, c.UpdateDrag(Point{}), ErrNoActiveDrag)
	assert.ErrorIs(t, c.EndDrag(Point{}), ErrNoActiveDrag)
	assert.Empty(t, rec.commits)
}

func TestContinuous_PartialDragDoesNotCommit(t *testing.T) {
	c, rec := newTestContinuous(t)
	z := c.Geometry().Center
	require.NoError(t, c.BeginDrag(modes.Intuition, far(c.Geometry())))
	require.NoError(t, c.UpdateDrag(z))

	assert.Empty(t, rec.commits)
	assert.True(t, c.Selection().Empty())
	assert.False(t, c.Locked(modes.Intuition))
}

func TestContinuous_InterpolationDuringDrag(t *testing.T) {
	c, _ := newTestContinuous(t)
	g := c.Geometry()
	z := g.Center
	targets := DefaultSpreadPolicy().Targets(g, 4, 0)

	require.NoError(t, c.BeginDrag(modes.Intentionality, far(g)))
	f := c.Snapshot()
	assert.Equal(t, 0.0, f.Factor)
	for _, tok := range f.Tokens[1:] {
		assert.Equal(t, tok.Rest, tok.Position, "no reaction beyond the influence radius")
	}

	half := Point{X: z.X, Y: z.Y - g.InfluenceRadius/2}
	require.NoError(t, c.UpdateDrag(half))
	f = c.Snapshot()
	assert.InDelta(t, 0.5, f.Factor, eps)
	assert.Equal(t, half, f.Tokens[0].Position)
	assert.True(t, f.Tokens[0].Dragging)
	for i := 1; i < 4; i++ {
		want := Lerp(f.Tokens[i].Rest, targets[i], 0.5)
		assert.InDelta(t, want.X, f.Tokens[i].Position.X, eps)
		assert.InDelta(t, want.Y, f.Tokens[i].Position.Y, eps)
	}

	require.NoError(t, c.UpdateDrag(z))
	f = c.Snapshot()
	assert.Equal(t, 1.0, f.Factor)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, targets[i].X, f.Tokens[i].Position.X, eps)
		assert.InDelta(t, targets[i].Y, f.Tokens[i].Position.Y, eps)
	}
}

func TestContinuous_LockedTokensIgnoreOtherDrags(t *testing.T) {
	c, _ := newTestContinuous(t)
	z := c.Geometry().Center

	require.NoError(t, c.BeginDrag(modes.Inquiry, z))
	require.NoError(t, c.EndDrag(z))

	require.NoError(t, c.BeginDrag(modes.Intentionality, Point{z.X + 10, z.Y}))
	f := c.Snapshot()
	assert.Equal(t, z, tokenFor(f, modes.Inquiry).Position)
	assert.True(t, tokenFor(f, modes.Inquiry).Locked)
}

func TestContinuous_DraggingLockedTokenFollowsPointer(t *testing.T) {
	c, _ := newTestContinuous(t)
	z := c.Geometry().Center
	require.NoError(t, c.BeginDrag(modes.Inquiry, z))
	require.NoError(t, c.EndDrag(z))

	out := Point{z.X + 180, z.Y}
	require.NoError(t, c.BeginDrag(modes.Inquiry, z))
	require.NoError(t, c.UpdateDrag(out))
	assert.Equal(t, out, tokenFor(c.Snapshot(), modes.Inquiry).Position)

	require.NoError(t, c.EndDrag(out))
	assert.False(t, c.Locked(modes.Inquiry))
	assert.True(t, c.Selection().Empty())
}

func TestContinuous_LockUnlockToggleTwice(t *testing.T) {
	c, rec := newTestContinuous(t)
	g := c.Geometry()

	steps := []struct {
		pos  Point
		want bool
	}{
		{g.Center, true},
		{far(g), false},
		{g.Center, true},
		{far(g), false},
		{far(g), false},
		{g.Center, true},
	}
	for i, st := range steps {
		require.NoError(t, c.BeginDrag(modes.Integrity, st.pos))
		require.NoError(t, c.EndDrag(st.pos))
		assert.Equal(t, st.want, c.Locked(modes.Integrity), "step %d", i)
		assert.Equal(t, st.want, c.Selection().Has(modes.Integrity), "step %d", i)
	}
	assert.Len(t, rec.commits, len(steps))
}

func TestContinuous_CancelDragUsesLastPointer(t *testing.T) {
	c, _ := newTestContinuous(t)
	z := c.Geometry().Center

	require.NoError(t, c.BeginDrag(modes.Intuition, far(c.Geometry())))
	require.NoError(t, c.UpdateDrag(Point{z.X + 5, z.Y + 5}))
	require.NoError(t, c.CancelDrag())

	assert.True(t, c.Locked(modes.Intuition))
	_, ok := c.Dragging()
	assert.False(t, ok)

	require.NoError(t, c.CancelDrag(), "cancel without a drag is a no-op")
}

func TestContinuous_VetoedCommitKeepsSelection(t *testing.T) {
	c, rec := newTestContinuous(t)
	z := c.Geometry().Center
	require.NoError(t, c.BeginDrag(modes.Inquiry, z))
	require.NoError(t, c.EndDrag(z))

	rec.veto = errors.New("frozen")
	require.NoError(t, c.BeginDrag(modes.Integrity, z))
	err := c.EndDrag(z)
	require.Error(t, err)

	assert.False(t, c.Locked(modes.Integrity))
	assert.True(t, c.Selection().Equal(modes.NewSet(modes.Inquiry)))
	_, ok := c.Dragging()
	assert.False(t, ok, "drag never dangles")
}

func TestContinuous_Reset(t *testing.T) {
	c, rec := newTestContinuous(t)
	z := c.Geometry().Center
	require.NoError(t, c.BeginDrag(modes.Inquiry, z))
	require.NoError(t, c.EndDrag(z))
	require.NoError(t, c.BeginDrag(modes.Integrity, z))

	c.Reset()

	assert.True(t, c.Selection().Empty())
	assert.False(t, c.Locked(modes.Inquiry))
	_, ok := c.Dragging()
	assert.False(t, ok)
	assert.Len(t, rec.commits, 1, "reset does not commit")
}

func TestContinuous_ArbitraryModeCount(t *testing.T) {
	u, err := modes.NewUniverse("A", "B", "C", "D", "E", "F")
	require.NoError(t, err)
	c, err := NewContinuous(u, DefaultGeometry(), nil, nil)
	require.NoError(t, err)

	f := c.Snapshot()
	require.Len(t, f.Tokens, 6)

	z := c.Geometry().Center
	for _, m := range u {
		require.NoError(t, c.BeginDrag(m, z))
		require.NoError(t, c.EndDrag(z))
	}
	assert.Equal(t, 6, c.Selection().Len())
}

func TestNewContinuous_Invalid(t *testing.T) {
	_, err := NewContinuous(nil, DefaultGeometry(), nil, nil)
	assert.Error(t, err)

	g := DefaultGeometry()
	g.LockRadius = 0
	_, err = NewContinuous(modes.Default(), g, nil, nil)
	assert.Error(t, err)
}
