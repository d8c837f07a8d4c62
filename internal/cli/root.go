// Package cli implements the profgrid command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/profgrid/internal/config"
	"github.com/rshade/profgrid/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Set once per invocation in setupLogging.

type configKey struct{}

// ErrNoInput is returned when a command that needs data files gets none.
var ErrNoInput = errors.New("no input files given")

// NewRootCmd creates the root command for the profgrid CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit environment
// lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "profgrid",
		Short:         "Browse large profile datasets in a virtualized terminal grid",
		Long:          "profgrid renders profile search results as a scrollable, selectable grid that draws only the visible cells.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, lookupEnv)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $PROFGRID_CONFIG or ~/.profgrid/config.yaml)")
	cmd.AddCommand(NewViewCmd(), NewExportCmd(), NewColumnsCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a dataset interactively
  profgrid view results.json

  # Merge several files and reload when they change
  profgrid view part-*.ndjson --watch

  # Print the first 20 rows without the interactive grid
  profgrid view results.parquet --plain --rows 20

  # Export rows 1-10 as CSV
  profgrid export results.json --rows 1-10 -o top10.csv

  # Show the resolved column layout
  profgrid columns`

// requireFiles rejects invocations without at least one data file.
func requireFiles(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrNoInput
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// loadConfig reads the config named by --config, or the default path.
func loadConfig(cmd *cobra.Command, lookupEnv func(string) (string, bool)) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = configPath(lookupEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func configPath(lookupEnv func(string) (string, bool)) string {
	if p, ok := lookupEnv(config.EnvConfig); ok && p != "" {
		return p
	}
	return config.DefaultPath()
}

func contextWithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the config loaded by the root command, or the defaults
// when a subcommand runs on its own.
func configFrom(cmd *cobra.Command) *config.Config {
	if cmd.Context() != nil {
		if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.New()
}
