// Package scoring compares a learner's diagnosis against a scenario's
// missing modes.
package scoring

import "github.com/abhisek/imodel/internal/modes"

// Verdict classifies one attempt.
type Verdict int

const (
	None    Verdict = iota // no overlap, or a false positive on a fully-present scenario
	Partial                // some overlap but not set-equal
	Exact                  // set-equal
)

func (v Verdict) String() string {
	switch v {
	case Exact:
		return "correct"
	case Partial:
		return "partial"
	default:
		return "incorrect"
	}
}

// Evaluate scores selected against correct.
//
// An empty correct set means every mode was present: only an empty
// selection is Exact, anything else is None.
func Evaluate(selected, correct modes.Set) Verdict {
	if selected.Equal(correct) {
		return Exact
	}
	if !selected.Intersect(correct).Empty() {
		return Partial
	}
	return None
}

// Overlap returns how many of the correct modes were selected.
func Overlap(selected, correct modes.Set) int {
	return selected.Intersect(correct).Len()
}
