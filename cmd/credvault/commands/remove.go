package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/systmms/credvault/internal/config"
	"github.com/systmms/credvault/internal/vault"
)

func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	var (
		resource string
		username string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Delete a credential",
		Long: `Delete the credential stored for a (resource, username) pair.

On the legacy backend every chunk entry of the credential is deleted.
Removing a credential that does not exist is not an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(cfg)
			if err != nil {
				return err
			}

			id := vault.Identity{Resource: resource, Username: username}
			if err := v.Remove(context.Background(), id); err != nil {
				return err
			}
			cfg.Logger.Info("Removed credential for %s/%s", resource, username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "Resource the credential is for (required)")
	cmd.Flags().StringVarP(&username, "user", "u", "", "Username the credential belongs to (required)")

	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
