package session

import (
	"sort"

	"github.com/abhisek/imodel/internal/modes"
)

// topMissingCount is how many modes the completion screen lists as most
// frequently missing.
const topMissingCount = 3

// ModeCount pairs a mode with a count.
type ModeCount struct {
	Mode  modes.Name
	Count int
}

// Summary holds the data displayed on the completion screen.
type Summary struct {
	Total        int
	CorrectCount int
	PartialCount int

	// ModeFrequency counts, per mode, the scenarios in which it was missing.
	ModeFrequency map[modes.Name]int

	// TopMissing lists the most frequently missing modes, highest first.
	TopMissing []ModeCount

	// MostMissed is the missing mode the learner failed to select most
	// often, or nil when nothing was overlooked.
	MostMissed *ModeCount
}

// Accuracy returns the share of exactly correct scenarios in [0, 1].
func (s *Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.Total)
}

// BuildSummary aggregates results. Ties are broken by universe order.
func BuildSummary(universe modes.Universe, results []Result) *Summary {
	sum := &Summary{
		Total:         len(results),
		ModeFrequency: make(map[modes.Name]int),
	}
	missed := make(map[modes.Name]int)

	for _, r := range results {
		switch {
		case r.IsCorrect():
			sum.CorrectCount++
		case r.IsPartiallyCorrect():
			sum.PartialCount++
		}
		for _, m := range r.Correct.Names() {
			sum.ModeFrequency[m]++
			if !r.Selected.Has(m) {
				missed[m]++
			}
		}
	}

	sum.TopMissing = rank(universe, sum.ModeFrequency)
	if len(sum.TopMissing) > topMissingCount {
		sum.TopMissing = sum.TopMissing[:topMissingCount]
	}
	if ranked := rank(universe, missed); len(ranked) > 0 {
		top := ranked[0]
		sum.MostMissed = &top
	}
	return sum
}

// rank orders the non-zero counts by count descending, then universe order.
// Modes outside the universe sort after it by name.
func rank(universe modes.Universe, counts map[modes.Name]int) []ModeCount {
	out := make([]ModeCount, 0, len(counts))
	for m, c := range counts {
		if c > 0 {
			out = append(out, ModeCount{Mode: m, Count: c})
		}
	}
	order := func(m modes.Name) int {
		if i := universe.Index(m); i >= 0 {
			return i
		}
		return len(universe)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		oi, oj := order(out[i].Mode), order(out[j].Mode)
		if oi != oj {
			return oi < oj
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}
