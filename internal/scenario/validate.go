package scenario

import (
	"fmt"
	"strings"

	"github.com/abhisek/imodel/internal/modes"
)

// ValidationError lists every structural problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid scenario catalog:\n  %s", strings.Join(e.Problems, "\n  "))
}

// validate performs all structural checks on the given scenarios.
// Returns a combined error describing all problems found, or nil if valid.
func validate(universe modes.Universe, scenarios []Scenario) error {
	var errs []string

	if len(universe) == 0 {
		errs = append(errs, "catalog declares no modes")
	}
	if _, err := modes.NewUniverse(universe...); err != nil && len(universe) > 0 {
		errs = append(errs, err.Error())
	}
	if len(scenarios) == 0 {
		errs = append(errs, "catalog has no scenarios")
	}

	ids := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		label := s.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Sprintf("scenario %s has no id", label))
		} else if ids[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate scenario id: %q", s.ID))
		}
		ids[s.ID] = true

		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, fmt.Sprintf("scenario %s has no title", label))
		}
		if strings.TrimSpace(s.Vignette) == "" {
			errs = append(errs, fmt.Sprintf("scenario %s has no vignette", label))
		}

		for _, n := range s.CorrectModes.Names() {
			if !universe.Contains(n) {
				errs = append(errs, fmt.Sprintf("scenario %s lists unknown missing mode %q", label, n))
			}
			if s.PresentModes.Has(n) {
				errs = append(errs, fmt.Sprintf("scenario %s lists %q as both missing and present", label, n))
			}
		}
		for _, n := range s.PresentModes.Names() {
			if !universe.Contains(n) {
				errs = append(errs, fmt.Sprintf("scenario %s lists unknown present mode %q", label, n))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
