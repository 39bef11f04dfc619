package selection

import (
	"github.com/abhisek/imodel/internal/modes"
)

// Discrete moves tokens between the palette and the diagnosis container.
// Releasing a held token over the container toggles its membership.
type Discrete struct {
	universe  modes.Universe
	commit    CommitFunc
	selection modes.Set
	holding   modes.Name
	hovering  bool
}

var _ Engine = (*Discrete)(nil)

// NewDiscrete creates a discrete engine with an empty selection.
func NewDiscrete(universe modes.Universe, commit CommitFunc) *Discrete {
	return &Discrete{universe: universe, commit: commit}
}

func (d *Discrete) Kind() Kind { return KindDiscrete }

func (d *Discrete) Selection() modes.Set { return d.selection.Clone() }

// Holding returns the token currently picked up, if any.
func (d *Discrete) Holding() (modes.Name, bool) {
	return d.holding, d.holding != ""
}

// Hovering reports whether the held token is over the container.
func (d *Discrete) Hovering() bool {
	return d.hovering
}

// PickUp starts moving mode. A pending pick is replaced without being
// committed.
func (d *Discrete) PickUp(mode modes.Name) error {
	if err := d.universe.Validate(mode); err != nil {
		return err
	}
	d.holding = mode
	d.hovering = false
	return nil
}

// HoverEnter marks the held token as over the container. Presentation only.
func (d *Discrete) HoverEnter() {
	if d.holding != "" {
		d.hovering = true
	}
}

// HoverLeave clears the hover mark. Presentation only.
func (d *Discrete) HoverLeave() {
	d.hovering = false
}

// Release drops the held token. Over the container it is added, or removed
// if it was already selected; anywhere else nothing changes.
func (d *Discrete) Release(overContainer bool) error {
	mode := d.holding
	d.holding = ""
	d.hovering = false
	if mode == "" {
		return ErrNoActiveDrag
	}
	if !overContainer {
		return nil
	}

	next := d.selection.Add(mode)
	if d.selection.Has(mode) {
		next = d.selection.Remove(mode)
	}
	if err := commitOrKeep(d.commit, next); err != nil {
		return err
	}
	d.selection = next
	return nil
}

// Cancel drops a pending pick without committing.
func (d *Discrete) Cancel() {
	d.holding = ""
	d.hovering = false
}

func (d *Discrete) Reset() {
	d.Cancel()
	d.selection = modes.Set{}
}

func (d *Discrete) Close() {}
