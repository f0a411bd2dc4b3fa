// Package cli implements the pathwise command line interface: scenario
// management against the local store, validation, optimization and
// calculation runs, and the API server.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pathwise/pathwise/internal/config"
	"github.com/pathwise/pathwise/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // set once in PersistentPreRunE

// NewRootCmd creates the root Cobra command for the pathwise CLI.
// Configuration loads once per run in PersistentPreRunE; subcommands
// resolve it again through loadConfig when they need more than logging.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pathwise",
		Short:   "Transport fleet decarbonization pathway planner",
		Long:    "Pathwise: model, optimize, and analyze fleet decarbonization pathways",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger = logging.ComponentLogger(logging.New(cfg.Logging), "cli")
			logger.Debug().Str("command", cmd.Name()).Msg("command started")
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "path to the configuration file")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(
		newScenarioCmd(),
		NewValidateCmd(),
		NewOptimizeCmd(),
		NewCalculateCmd(),
		NewServeCmd(),
	)

	return cmd
}

// loadConfig resolves the effective configuration for a command run.
// The --debug flag overrides the configured log level and format.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
	}
	return cfg, nil
}

const rootCmdExample = `  # Validate scenario parameters from a file
  pathwise validate --file scenario.yaml

  # Store a scenario and optimize its pathway
  pathwise scenario create --file scenario.yaml
  pathwise optimize <scenario-id>

  # Run the full per-vehicle calculation
  pathwise calculate <scenario-id>

  # List stored scenarios
  pathwise scenario list

  # Start the HTTP API server
  pathwise serve --config config.yaml`
