package commands

import (
	"fmt"
	"os"
	"os/exec"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/credvault/internal/chunk"
	"github.com/systmms/credvault/internal/config"
)

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check backend configuration and availability",
		Long: `Verify that the configured backend is usable.

This command checks:
- Configuration file validity
- Which backend the capability resolution selected
- For the legacy backend, that its command-line tool is on PATH`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking credvault configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return err
			}
			cfg.Logger.Info("Configuration loaded")

			capability := config.ResolveCapability(cfg.Definition)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "backend\t%s\n", capability.Backend)

			if capability.Backend == config.BackendLegacy {
				tool := capability.CmdkeyPath
				if tool == "" {
					tool = "cmdkey"
				}
				fmt.Fprintf(w, "legacy tool\t%s\n", tool)
				fmt.Fprintf(w, "chunk size\t%d\n", chunk.MaxChunkSize)
				if _, err := exec.LookPath(tool); err != nil {
					_ = w.Flush()
					cfg.Logger.Error("Legacy tool '%s' not found on PATH", tool)
					return fmt.Errorf("legacy tool not available: %w", err)
				}
				fmt.Fprintf(w, "tool status\tavailable\n")
			} else if capability.Service != "" {
				fmt.Fprintf(w, "keyring service\t%s\n", capability.Service)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			cfg.Logger.Info("Backend is ready")
			return nil
		},
	}

	return cmd
}
