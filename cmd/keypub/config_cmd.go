package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keypub/internal/config"
)

func newConfigCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or write keypub settings",
	}
	cmd.AddCommand(newConfigGetCmd(cfg), newConfigSetCmd(), newConfigListCmd(cfg))
	return cmd
}

func newConfigGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one effective setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := cfg.Get(args[0])
			if err != nil {
				return fmt.Errorf("%w (known keys: %s)", err, strings.Join(config.AllowedKeys(), ", "))
			}
			return writePlain("%s\n", value)
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a setting to the project or global config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.ProjectPath
			if global {
				target = config.GlobalPath
			}
			path, err := target()
			if err != nil {
				return err
			}
			return config.SetKey(path, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "write to the global config file instead of ./.keypub.toml")
	return cmd
}

func newConfigListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every effective setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := config.AllowedKeys()
			values := make(map[string]string, len(keys))
			for _, key := range keys {
				values[key], _ = cfg.Get(key)
			}
			if ok, err := writeStructured(values); ok {
				return err
			}
			for _, key := range keys {
				if err := writePlain("%s = %s\n", key, values[key]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
