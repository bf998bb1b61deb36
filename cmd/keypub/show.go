package main

import (
	"github.com/spf13/cobra"

	"keypub/internal/api"
	"keypub/internal/config"
)

func newShowCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a published key",
		Args:  requireExactlyArgs(1, "id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetKey(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeKeyDetail(resp)
			})
		},
	}
}
