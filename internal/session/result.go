package session

import (
	"github.com/abhisek/imodel/internal/modes"
	"github.com/abhisek/imodel/internal/scoring"
)

// Result records one checked scenario. It is created once on Check and never
// mutated afterwards.
type Result struct {
	ScenarioID string
	Selected   modes.Set
	Correct    modes.Set
	Verdict    scoring.Verdict
}

func newResult(id string, selected, correct modes.Set) Result {
	return Result{
		ScenarioID: id,
		Selected:   selected.Clone(),
		Correct:    correct.Clone(),
		Verdict:    scoring.Evaluate(selected, correct),
	}
}

// IsCorrect reports whether the selection matched the missing modes exactly.
func (r Result) IsCorrect() bool {
	return r.Verdict == scoring.Exact
}

// IsPartiallyCorrect reports whether the selection overlapped the missing
// modes without matching them.
func (r Result) IsPartiallyCorrect() bool {
	return r.Verdict == scoring.Partial
}

// Found returns how many of the missing modes were selected.
func (r Result) Found() int {
	return scoring.Overlap(r.Selected, r.Correct)
}

// Missed returns the missing modes the learner did not select.
func (r Result) Missed() modes.Set {
	missed := modes.Set{}
	for _, m := range r.Correct.Names() {
		if !r.Selected.Has(m) {
			missed = missed.Add(m)
		}
	}
	return missed
}

func (r Result) clone() Result {
	r.Selected = r.Selected.Clone()
	r.Correct = r.Correct.Clone()
	return r
}
