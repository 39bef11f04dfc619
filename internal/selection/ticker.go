package selection

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval replaces a non-positive animation interval.
const DefaultFrameInterval = time.Second / 30

// Ticker is the handle of a running animation loop. Frames arrive on C;
// C is closed once the loop has exited.
type Ticker struct {
	C <-chan Frame

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func startTicker(ctx context.Context, interval time.Duration, snapshot func() Frame) *Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan Frame, 1)
	t := &Ticker{C: ch, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer close(ch)

		tk := time.NewTicker(interval)
		defer tk.Stop()

		wasActive := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
			}

			f := snapshot()
			if !f.Active() && !wasActive {
				continue
			}
			wasActive = f.Active()
			publish(ch, f)
		}
	}()
	return t
}

// publish replaces any frame the consumer has not read yet.
func publish(ch chan Frame, f Frame) {
	select {
	case ch <- f:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- f
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly.
func (t *Ticker) Stop() {
	t.once.Do(t.cancel)
	<-t.done
}

// Done is closed once the loop has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
