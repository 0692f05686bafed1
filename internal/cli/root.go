// Package cli wires the gridscope commands: configuration loading, logger
// setup, and the view/version subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gridscope/gridscope/internal/config"
	"github.com/gridscope/gridscope/internal/logging"
)

// configKey carries the loaded config through the command context.
type configKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the config stored by the root command, or the
// defaults when the command runs without the root wiring (tests).
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command. It loads the config file,
// builds the logger, and stores both in the command context for the
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		cfgPath   string
		debug     bool
		logCloser io.Closer
	)

	cmd := &cobra.Command{
		Use:           "gridscope",
		Short:         "Browse tabular data with a virtual-scrolling table",
		Long:          "Gridscope loads CSV, TSV, and JSON files into an interactive table with search, filtering, sorting, and row selection. Only the visible rows are rendered, so large datasets stay responsive.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			logCfg := cfg.Logging
			if debug {
				logCfg.Level = "debug"
			}
			logger, closer, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("configuring logging: %w", err)
			}
			logCloser = closer

			ctx := logging.WithContext(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)

			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		fmt.Sprintf("config file path (default %q)", config.DefaultPath))
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newViewCmd(), newVersionCmd(ver))
	return cmd
}

const rootCmdExample = `  # Browse a CSV file interactively
  gridscope view costs.csv

  # Merge several exports into one table
  gridscope view jan.csv feb.csv mar.json

  # Print the table to stdout instead of running the TUI
  gridscope view costs.csv --no-interactive`
