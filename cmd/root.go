package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/imodel/internal/logging"
	"github.com/abhisek/imodel/internal/scenario"
)

// logFile is the --log-file handle for the running command, if any.
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "imodel",
	Short: "Practice diagnosing missing I-Modes",
	Long: "imodel is a terminal trainer for the I-Model. Each scenario describes an AI " +
		"interaction; pick the I-Modes it was missing and check your diagnosis.",
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogFile()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	// Assigned here rather than in the literal to break the rootCmd <-> setupLogging initialization cycle.
	rootCmd.PersistentPreRunE = setupLogging

	pf := rootCmd.PersistentFlags()
	pf.String("scenarios", "", "Path to a scenario catalog YAML file (overrides "+scenario.EnvPath+" env var)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("log-file", "", "Write logs to this file (the TUI logs nowhere without it)")

	rootCmd.Flags().String("strategy", "discrete", "Selection strategy: discrete or continuous")
	rootCmd.Flags().Int("fps", 30, "Animation rate of the continuous field")

	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging configures the global logger from the persistent flags.
// The interactive root command owns the terminal, so without --log-file its
// logs are discarded; subcommands log to stderr.
func setupLogging(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	path, _ := cmd.Flags().GetString("log-file")

	level, err := logging.ParseLevel(levelFlag)
	if err != nil {
		return err
	}
	if err := logging.ValidateFormat(format); err != nil {
		return err
	}

	if path != "" {
		f, err := logging.OpenFile(path)
		if err != nil {
			return err
		}
		logFile = f
		logging.Init(level, format, f)
		return nil
	}
	if cmd == rootCmd {
		logging.Discard()
		return nil
	}
	logging.Init(level, format, cmd.ErrOrStderr())
	return nil
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// resolveCatalog loads the catalog from --scenarios (highest priority), then
// the IMODEL_SCENARIOS env var, then the embedded default.
func resolveCatalog(cmd *cobra.Command) (*scenario.Catalog, error) {
	p, _ := cmd.Flags().GetString("scenarios")
	cat, err := scenario.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	return cat, nil
}
