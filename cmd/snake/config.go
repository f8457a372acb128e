package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sm1k0/termsnake/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration that would be used, after searching
--config, ~/.termsnake/config.yaml, ./configs/snake.yaml and the built-in
defaults. Redirect the output to start a custom config file.

Examples:
  snake config > ~/.termsnake/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
