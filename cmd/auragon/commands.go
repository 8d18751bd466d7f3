package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terraincognita07/auragon/internal/cli"
	"github.com/terraincognita07/auragon/internal/config"
	"github.com/terraincognita07/auragon/internal/logger"
)

// commandState is the configuration and logger shared by every subcommand.
type commandState struct {
	config config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	state := &commandState{}
	var dbPath string

	root := &cobra.Command{
		Use:           "auragon",
		Short:         "Migraine diary with a pressure forecast",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			if cfg.LocationWarning != "" {
				log.Warn(cfg.LocationWarning)
			}
			state.config = cfg
			state.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.logger != nil {
				_ = state.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), state.config, state.logger)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")

	root.AddCommand(
		newServeCommand(state),
		newResetOnboardingCommand(state),
		newExportCommand(state),
	)
	return root
}

func newServeCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), state.config, state.logger)
		},
	}
}

func newResetOnboardingCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-onboarding",
		Short: "Show the onboarding wizard again on next launch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunResetOnboardingCommand(state.config.DBPath, state.logger, cmd.OutOrStdout())
		},
	}
}

func newExportCommand(state *commandState) *cobra.Command {
	var format string
	command := &cobra.Command{
		Use:   "export",
		Short: "Write the migraine history to stdout",
		Long: `Write the migraine history to stdout, newest first.

Examples:
  auragon export --format csv > history.csv
  auragon export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunExportCommand(state.config.DBPath, format, state.config.Location, state.logger, cmd.OutOrStdout())
		},
	}
	command.Flags().StringVar(&format, "format", cli.ExportFormatCSV, "output format: csv or json")
	return command
}
