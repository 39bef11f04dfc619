package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/imodel/internal/app"
	"github.com/abhisek/imodel/internal/logging"
	"github.com/abhisek/imodel/internal/selection"
)

// runApp loads the catalog and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, err := resolveCatalog(cmd)
	if err != nil {
		return err
	}

	strategyFlag, _ := cmd.Flags().GetString("strategy")
	strategy, err := selection.ParseKind(strategyFlag)
	if err != nil {
		return err
	}
	fps, _ := cmd.Flags().GetInt("fps")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	log := logging.New("tui")
	log.Info("starting", "strategy", strategy, "scenarios", cat.Len(), "version", version)

	return app.Run(app.Options{
		Catalog:  cat,
		Strategy: strategy,
		FPS:      fps,
		Context:  ctx,
		Logger:   log,
	})
}
