package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"pdftok/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or inspect the configuration",
}

var configInitPath string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		skipConfigAnnotation: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configInitPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			path = filepath.Join(home, ".config", "pdftok", "config.yaml")
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().StringVar(&configInitPath, "path", "", "where to write the file (default ~/.config/pdftok/config.yaml)")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
