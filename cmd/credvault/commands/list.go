package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/systmms/credvault/internal/backend"
	"github.com/systmms/credvault/internal/config"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	var (
		resource   string
		username   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored credentials",
		Long: `List stored credentials as (resource, username) pairs.

The listing never includes secret values; use 'credvault get' to retrieve
one. A multi-chunk secret on the legacy backend is reported as one entry.

--resource and --user narrow the listing. On the legacy backend a filter
must name both, because that store only supports exact lookup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(cfg)
			if err != nil {
				return err
			}

			var creds []backend.Credential
			ctx := context.Background()
			if resource == "" && username == "" {
				creds, err = v.List(ctx)
			} else {
				creds, err = v.Find(ctx, backend.Filter{Resource: resource, Username: username})
			}
			if err != nil {
				return err
			}

			return printCredentials(creds, v.Backend(), jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&resource, "resource", "r", "", "Only list credentials for this resource")
	cmd.Flags().StringVarP(&username, "user", "u", "", "Only list credentials for this username")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// printCredentials renders an enumeration. Secrets are never part of it.
func printCredentials(creds []backend.Credential, backendName string, jsonOutput bool) error {
	if jsonOutput {
		type item struct {
			Resource string `json:"resource"`
			Username string `json:"username"`
		}
		items := make([]item, 0, len(creds))
		for _, c := range creds {
			items = append(items, item{Resource: c.Resource, Username: c.Username})
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"backend":     backendName,
			"credentials": items,
		})
	}

	if len(creds) == 0 {
		fmt.Println("No credentials stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RESOURCE\tUSERNAME")
	for _, c := range creds {
		fmt.Fprintf(w, "%s\t%s\n", c.Resource, c.Username)
	}
	return w.Flush()
}
