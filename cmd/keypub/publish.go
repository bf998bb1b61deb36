package main

import (
	"github.com/spf13/cobra"

	"keypub/internal/api"
	"keypub/internal/config"
)

func newPublishCmd(cfg *config.Config) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "publish <public-key>",
		Short: "Publish a Base64 ED25519 public key and print its share link",
		Args:  requireExactlyArgs(1, "public key is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.KeyPublishRequest{PublicKey: args[0]}
			if cmd.Flags().Changed("note") {
				req.Note = &note
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.PublishKey(cmd.Context(), req)
				if err != nil {
					return err
				}
				return writeKeyDetail(resp)
			})
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "optional note shown with the key (up to 100 bytes)")
	return cmd
}
