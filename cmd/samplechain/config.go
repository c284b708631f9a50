// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ik5/samplechain/config"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View the effective samplechain configuration.`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Print the configuration after merging defaults, the config file,
SAMPLECHAIN_* environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(c.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				slog.Warn("configuration is not usable as is", slog.Any("error", err))
			}

			out, err := cfg.YAML()
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	config.AddFlags(show.Flags())

	cmd.AddCommand(show)
	return cmd
}
