package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"keypub/internal/config"
	"keypub/internal/format"
)

type rootOptions struct {
	output   string
	logLevel string
	apiURL   string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "keypub",
		Short:         "Keypub publishes signing public keys behind permanent share links",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.apply(cfg)
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "base URL of the keypub server")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newPublishCmd(cfg),
		newShowCmd(cfg),
		newInfoCmd(cfg),
		newMigrateCmd(cfg),
		newConfigCmd(cfg),
	)

	return cmd
}

// apply resolves persistent flags against the loaded config before any
// subcommand runs.
func (o *rootOptions) apply(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config not initialized")
	}

	warning, err := setupLogging(o.logLevel, cfg.LogLevel)
	if err != nil {
		return err
	}
	if warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}

	formatter, err := format.ForName(o.output)
	if err != nil {
		return err
	}
	outputFormatter = formatter

	if apiURL := strings.TrimSpace(o.apiURL); apiURL != "" {
		cfg.APIURL = apiURL
	}
	return nil
}
