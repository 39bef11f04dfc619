package scenario

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// LintResult is the outcome of validating one catalog file.
type LintResult struct {
	Path      string
	Scenarios int
	Err       error
}

// OK reports whether the file loaded and validated cleanly.
func (r LintResult) OK() bool {
	return r.Err == nil
}

// LintFiles validates every path concurrently. Results keep the input order.
// The returned error is non-nil only if ctx was cancelled; per-file problems
// are reported in the results.
func LintFiles(ctx context.Context, paths []string) ([]LintResult, error) {
	results := make([]LintResult, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			c, err := LoadFile(p)
			results[i] = LintResult{Path: p, Err: err}
			if err == nil {
				results[i].Scenarios = c.Len()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
