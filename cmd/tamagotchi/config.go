package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tamagotchi/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the search order:
  --config path, ~/.tamagotchi/config.yaml, ./configs/tamagotchi.yaml,
  then the built-in defaults.

The output is valid YAML and can be saved as a starting point:
  tamagotchi config > ~/.tamagotchi/config.yaml

Examples:
  tamagotchi config
  tamagotchi config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)

	out, err := config.Marshal(cfg)
	if err != nil {
		exitf("encoding config: %v", err)
	}
	os.Stdout.Write(out)
}
