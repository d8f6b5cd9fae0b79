package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/todoai/internal/config"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			shown := *cfg
			if shown.APIKey != "" {
				shown.APIKey = "****"
			}
			shown.BaseURL = cfg.ResolvedBaseURL()
			if shown.DataPath, err = cfg.ResolvedDataPath(); err != nil {
				return err
			}

			data, err := yaml.Marshal(&shown)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := config.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			existing, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			if existing != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
				return nil
			}

			if err := config.DefaultConfig().SaveFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}
