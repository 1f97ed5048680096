package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save and its journal",
	Long: `Delete the saved pet, clock, statistics and event journal.
The next 'tamagotchi play' starts from the menu with a fresh egg.

Examples:
  tamagotchi reset --yes
  tamagotchi reset --yes --user alice`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Confirm the reset")
}

func runReset(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)

	if !flagYes {
		fmt.Fprintf(os.Stderr, "This deletes the pet saved as %q.\n", saveKey(cfg))
		fmt.Fprintln(os.Stderr, "Run again with --yes to confirm.")
		os.Exit(1)
	}

	store, gateway, err := openSave(cfg, logger)
	if err != nil {
		exitf("opening save database: %v", err)
	}
	defer store.Close()

	if err := gateway.ResetToDefaults(); err != nil {
		store.Close()
		exitf("deleting save: %v", err)
	}
	if err := store.ClearJournal(gateway.Key()); err != nil {
		store.Close()
		exitf("clearing journal: %v", err)
	}

	fmt.Printf("Save %q deleted.\n", gateway.Key())
}
