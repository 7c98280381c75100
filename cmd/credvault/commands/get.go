package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/systmms/credvault/internal/config"
	cverrors "github.com/systmms/credvault/internal/errors"
	"github.com/systmms/credvault/internal/secure"
	"github.com/systmms/credvault/internal/vault"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		resource   string
		username   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieve a credential's secret",
		Long: `Retrieve and print the secret stored for a (resource, username) pair.

By default only the raw secret is printed, making the command suitable for
scripting. With --json, identity metadata is printed instead of the secret.
Without --resource and --user the full enumeration is printed, which never
includes secrets.

Examples:
  credvault get --resource site.example.com --user alice

  # Use in scripts
  export API_TOKEN=$(credvault get --resource api.example.com --user ci)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(cfg)
			if err != nil {
				return err
			}
			ctx := context.Background()

			// No identity: full enumeration, secrets withheld.
			if resource == "" && username == "" {
				creds, err := v.List(ctx)
				if err != nil {
					return err
				}
				return printCredentials(creds, v.Backend(), jsonOutput)
			}

			id := vault.Identity{Resource: resource, Username: username}
			cred, err := v.Get(ctx, id)
			if err != nil {
				if vault.IsNotFound(err) {
					return cverrors.UserError{
						Message:    fmt.Sprintf("No credential stored for %s/%s", resource, username),
						Suggestion: "Use 'credvault list' to see stored credentials",
						Err:        err,
					}
				}
				return err
			}

			if jsonOutput {
				output := map[string]interface{}{
					"resource": cred.Resource,
					"username": cred.Username,
					"backend":  v.Backend(),
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			}

			plaintext, err := secure.Reveal(cred.Secret)
			if err != nil {
				return err
			}
			fmt.Print(plaintext)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "Resource the credential is for")
	cmd.Flags().StringVarP(&username, "user", "u", "", "Username the credential belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output identity metadata as JSON instead of the secret")

	return cmd
}
