package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"github.com/systmms/credvault/cmd/credvault/commands"
	"github.com/systmms/credvault/internal/config"
	"github.com/systmms/credvault/internal/logging"
	"github.com/systmms/credvault/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Wipe all protected secret material on exit.
	defer memguard.Purge()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "credvault",
		Short: "Unified credential vault over the native and legacy stores",
		Long: `credvault stores credentials keyed by (resource, username) in the
platform credential store, hiding the legacy store's per-entry size limit
behind transparent chunking.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			cfg.Path = configFile
			cfg.Logger = logger

			metrics.Init()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "credvault.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewAddCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewRemoveCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
