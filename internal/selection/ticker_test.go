package selection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/imodel/internal/modes"
)

const tick = time.Millisecond

func waitClosed(t *testing.T, tk *Ticker) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-tk.C:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("ticker channel not closed")
		}
	}
}

func TestTicker_IdleEmitsNothing(t *testing.T) {
	c, _ := newTestContinuous(t)
	tk := c.Animate(context.Background(), tick)
	defer c.Close()

	select {
	case f := <-tk.C:
		t.Fatalf("unexpected frame while idle: %+v", f)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestTicker_FramesWhileDraggingThenOneSettlingFrame(t *testing.T) {
	c, _ := newTestContinuous(t)
	z := c.Geometry().Center
	tk := c.Animate(context.Background(), tick)
	defer c.Close()

	require.NoError(t, c.BeginDrag(modes.Intuition, z))

	select {
	case f := <-tk.C:
		assert.True(t, f.Active())
		assert.Equal(t, modes.Intuition, f.Dragging)
	case <-time.After(2 * time.Second):
		t.Fatal("no frame while dragging")
	}

	require.NoError(t, c.EndDrag(z))

	// Drain until the settling frame shows the released state.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-tk.C:
			if f.Active() {
				continue
			}
			assert.True(t, tokenFor(f, modes.Intuition).Locked)
			select {
			case extra := <-tk.C:
				t.Fatalf("frame after settling: %+v", extra)
			case <-time.After(30 * time.Millisecond):
			}
			return
		case <-deadline:
			t.Fatal("no settling frame")
		}
	}
}

func TestTicker_FramesAreConsistent(t *testing.T) {
	c, _ := newTestContinuous(t)
	g := c.Geometry()
	tk := c.Animate(context.Background(), tick)
	defer c.Close()

	require.NoError(t, c.BeginDrag(modes.Intentionality, far(g)))
	stop := make(chan struct{})
	go func() {
		defer close(stop)
		for i := 0; i <= 100; i++ {
			x := far(g).X - float64(i)*4
			_ = c.UpdateDrag(Point{X: x, Y: g.Center.Y})
			time.Sleep(100 * time.Microsecond)
		}
	}()

	for {
		select {
		case f := <-tk.C:
			if !f.Active() {
				continue
			}
			assert.Equal(t, f.Pointer, f.Tokens[0].Position, "dragged token follows the frame pointer")
			assert.InDelta(t, g.Factor(f.Pointer), f.Factor, eps)
		case <-stop:
			return
		}
	}
}

func TestTicker_StopClosesChannel(t *testing.T) {
	c, _ := newTestContinuous(t)
	tk := c.Animate(context.Background(), tick)
	tk.Stop()
	tk.Stop()
	waitClosed(t, tk)
}

func TestTicker_ContextCancelClosesChannel(t *testing.T) {
	c, _ := newTestContinuous(t)
	ctx, cancel := context.WithCancel(context.Background())
	tk := c.Animate(ctx, tick)
	cancel()
	waitClosed(t, tk)

	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not exit")
	}
}

func TestTicker_CloseStopsTicker(t *testing.T) {
	c, _ := newTestContinuous(t)
	tk := c.Animate(context.Background(), tick)
	c.Close()
	waitClosed(t, tk)
	c.Close()
}

func TestTicker_AnimateReplacesPrevious(t *testing.T) {
	c, _ := newTestContinuous(t)
	first := c.Animate(context.Background(), tick)
	second := c.Animate(context.Background(), tick)
	defer c.Close()

	waitClosed(t, first)

	select {
	case <-second.Done():
		t.Fatal("second ticker stopped")
	default:
	}
}

func TestTicker_ResetKeepsTickerRunning(t *testing.T) {
	c, _ := newTestContinuous(t)
	tk := c.Animate(context.Background(), tick)
	defer c.Close()

	c.Reset()
	require.NoError(t, c.BeginDrag(modes.Inquiry, Point{}))

	select {
	case f, ok := <-tk.C:
		require.True(t, ok)
		assert.True(t, f.Active())
	case <-time.After(2 * time.Second):
		t.Fatal("no frame after reset")
	}
}

func TestTicker_NonPositiveIntervalUsesDefault(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		c, _ := newTestContinuous(t)
		var tk *Ticker
		require.NotPanics(t, func() { tk = c.Animate(context.Background(), interval) })

		require.NoError(t, c.BeginDrag(modes.Intuition, c.Geometry().Center))
		select {
		case f := <-tk.C:
			assert.True(t, f.Active())
		case <-time.After(2 * time.Second):
			t.Fatalf("interval %v: no frame while dragging", interval)
		}

		tk.Stop()
		waitClosed(t, tk)
		c.Close()
	}
}
