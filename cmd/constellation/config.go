package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/constellation/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints typer.yaml as constellation sees it: the first file found on the
search path with --difficulty applied. Redirect it to start a custom config:

  constellation config > ~/.constellation/configs/typer.yaml

Search path:
  --config / $CONSTELLATION_CONFIG
  ~/.constellation/configs/typer.yaml
  ./configs/typer.yaml
  built-in defaults`,
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
