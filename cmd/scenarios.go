package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/imodel/internal/logging"
	"github.com/abhisek/imodel/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Inspect and validate scenario catalogs",
}

var scenariosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scenarios in the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := resolveCatalog(cmd)
		if err != nil {
			return err
		}
		writeScenarioList(cmd.OutOrStdout(), cat)
		return nil
	},
}

var scenariosLintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Validate scenario catalog files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		out := cmd.OutOrStdout()

		results, err := scenario.LintFiles(cmd.Context(), args)
		if err != nil {
			return err
		}
		failed := writeLintResults(out, results)

		if watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			fmt.Fprintln(out, "Watching for changes. Press Ctrl+C to stop.")
			return watchLint(ctx, out, args, logging.New("lint"))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d catalog(s) invalid", failed, len(results))
		}
		return nil
	},
}

func init() {
	scenariosLintCmd.Flags().Bool("watch", false, "Re-validate files whenever they change")

	scenariosCmd.AddCommand(scenariosListCmd)
	scenariosCmd.AddCommand(scenariosLintCmd)
}

func writeScenarioList(w io.Writer, cat *scenario.Catalog) {
	u := cat.Universe()
	fmt.Fprintf(w, "%-3s  %-14s  %-40s  %s\n", "#", "ID", "Title", "Missing")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for i, s := range cat.All() {
		title := s.Title
		if len(title) > 40 {
			title = title[:39] + "…"
		}
		missing := "none"
		if !s.CorrectModes.Empty() {
			missing = strings.Join(s.CorrectModes.Strings(u), ", ")
		}
		fmt.Fprintf(w, "%-3d  %-14s  %-40s  %s\n", i+1, s.ID, title, missing)
	}
}

// writeLintResults prints one line per file and returns the failure count.
func writeLintResults(w io.Writer, results []scenario.LintResult) int {
	failed := 0
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(w, "ok    %s (%d scenarios)\n", r.Path, r.Scenarios)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  %s\n      %s\n", r.Path, strings.ReplaceAll(r.Err.Error(), "\n", "\n      "))
	}
	return failed
}

// watchLint re-validates each file as it changes until ctx is cancelled.
func watchLint(ctx context.Context, out io.Writer, paths []string, log *slog.Logger) error {
	w, err := scenario.NewWatcher(paths...)
	if err != nil {
		return fmt.Errorf("watch catalogs: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gCtx.Done()
		return w.Close()
	})
	g.Go(func() error {
		for path := range w.Events {
			results, err := scenario.LintFiles(gCtx, []string{path})
			if err != nil {
				return nil
			}
			log.Debug("catalog changed", "path", path)
			writeLintResults(out, results)
		}
		return nil
	})
	g.Go(func() error {
		for err := range w.Errors {
			log.Warn("watch error", "err", err)
		}
		return nil
	})
	return g.Wait()
}
