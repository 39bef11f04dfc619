package selection

import (
	"fmt"

	"github.com/abhisek/imodel/internal/modes"
)

// Container identifies a drop target for the discrete strategy.
type Container string

const (
	Palette   Container = "palette"
	Diagnosis Container = "diagnosis"
)

// Event is an input event from the host.
type Event interface {
	isEvent()
}

// Continuous strategy events.
type (
	PointerDown struct {
		Mode modes.Name
		Pos  Point
	}
	PointerMove  struct{ Pos Point }
	PointerUp    struct{ Pos Point }
	PointerLeave struct{}
	FocusLost    struct{}
)

// Discrete strategy events.
type (
	DragStart struct{ Mode modes.Name }
	DragOver  struct{ Container Container }
	DragLeave struct{ Container Container }
	Drop      struct{ Container Container }
	DragEnd   struct{}
)

func (PointerDown) isEvent()  {}
func (PointerMove) isEvent()  {}
func (PointerUp) isEvent()    {}
func (PointerLeave) isEvent() {}
func (FocusLost) isEvent()    {}
func (DragStart) isEvent()    {}
func (DragOver) isEvent()     {}
func (DragLeave) isEvent()    {}
func (Drop) isEvent()         {}
func (DragEnd) isEvent()      {}

// Dispatch applies ev to e. Each event is applied fully before Dispatch
// returns.
func Dispatch(e Engine, ev Event) error {
	switch eng := e.(type) {
	case *Continuous:
		return dispatchContinuous(eng, ev)
	case *Discrete:
		return dispatchDiscrete(eng, ev)
	}
	return fmt.Errorf("%w: engine %T", ErrUnsupportedEvent, e)
}

func dispatchContinuous(c *Continuous, ev Event) error {
	switch ev := ev.(type) {
	case PointerDown:
		return c.BeginDrag(ev.Mode, ev.Pos)
	case PointerMove:
		if _, ok := c.Dragging(); !ok {
			return nil
		}
		return c.UpdateDrag(ev.Pos)
	case PointerUp:
		if _, ok := c.Dragging(); !ok {
			return nil
		}
		return c.EndDrag(ev.Pos)
	case PointerLeave, FocusLost:
		return c.CancelDrag()
	}
	return fmt.Errorf("%w: %T on %s", ErrUnsupportedEvent, ev, c.Kind())
}

func dispatchDiscrete(d *Discrete, ev Event) error {
	switch ev := ev.(type) {
	case DragStart:
		return d.PickUp(ev.Mode)
	case DragOver:
		if ev.Container == Diagnosis {
			d.HoverEnter()
		}
		return nil
	case DragLeave:
		if ev.Container == Diagnosis {
			d.HoverLeave()
		}
		return nil
	case Drop:
		return d.Release(ev.Container == Diagnosis)
	case DragEnd:
		if _, ok := d.Holding(); ok {
			return d.Release(false)
		}
		return nil
	case FocusLost, PointerLeave:
		d.Cancel()
		return nil
	}
	return fmt.Errorf("%w: %T on %s", ErrUnsupportedEvent, ev, d.Kind())
}
