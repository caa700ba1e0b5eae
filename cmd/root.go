// Package cmd defines and implements the CLI commands for the harvester executable.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emilroby/nsefi-harvester/internal/logging"
	"github.com/emilroby/nsefi-harvester/pkg/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvester",
		Short: "Harvests regulatory update feeds into month snapshots.",
		Long: `harvester collects dated announcements from configured regulatory and
industry websites (CTUIL, CERC), normalizes them into structured records and
publishes them as month-keyed JSON snapshots. The dashboard reads those
snapshots; an OS-level timer triggers the publish command every few hours.`,

		// Config is loaded by cobra.OnInitialize before RunE fires, so the
		// logger can be rebuilt here with the configured verbosity.
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if viper.GetBool("log.development") {
				logging.InitLogger(true)
			}
		},
	}

	// Initialize Viper configuration.
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	// Define persistent flags.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.harvester/config.yaml)")

	// Add subcommands.
	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	// Initialize the logger once at the very start.
	logging.InitLogger(false)

	// Create and execute the root command.
	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
