package main

import (
	"github.com/spf13/cobra"

	"keypub/internal/api"
	"keypub/internal/config"
)

func newInfoCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and database info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if ok, err := writeStructured(resp); ok {
					return err
				}

				_ = writePlain("site_host: %s\n", resp.SiteHost)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("total_keys: %d\n", resp.TotalKeys)
				return nil
			})
		},
	}
}
