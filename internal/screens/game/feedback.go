package game

import (
	"fmt"

	"github.com/abhisek/imodel/internal/session"
)

// FeedbackMessage is the headline shown after a scenario is checked.
func FeedbackMessage(r session.Result) string {
	n := r.Correct.Len()
	switch {
	case n == 0 && r.IsCorrect():
		return "Perfect! All I-Modes were present."
	case n == 0:
		return "Not quite. All I-Modes were present in this one."
	case r.IsCorrect():
		return fmt.Sprintf("Correct! %d missing I-Mode%s identified.", n, plural(n))
	case r.IsPartiallyCorrect():
		return fmt.Sprintf("Partially correct. You found %d of %d missing I-Modes.", r.Found(), n)
	}
	return "Not quite. Let's look at what was missing."
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
