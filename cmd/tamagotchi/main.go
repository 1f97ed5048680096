// tamagotchi is a virtual pet that lives in the terminal on its own game clock.
//
// Usage:
//
//	tamagotchi play            - Play with your pet (default)
//	tamagotchi status          - Print the saved pet, clock and statistics
//	tamagotchi reset --yes     - Delete the save and its journal
//	tamagotchi export          - Write the event journal as CSV
//	tamagotchi backup          - Write the save as a JSON backup
//	tamagotchi restore <file>  - Replace the save with a JSON backup
//	tamagotchi config          - Print the effective configuration
//	tamagotchi serve           - Start SSH server, one pet per user
//
// Global flags:
//
//	--config <path>  - Custom config YAML
//	--db <path>      - Save database path (default from config: ~/.tamagotchi/save.db)
//	--user <name>    - Use the save of an SSH user
//	--seed <value>   - RNG seed for the adult-type draw
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagUser    string
	flagSeed    int64
	flagLogFile string
	flagVerbose bool
	flagMono    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tamagotchi",
	Short: "Tamagotchi - a virtual pet in your terminal",
	Long: `Tamagotchi is a virtual pet that lives on a game clock you control.
Keep it fed, watch it grow from an egg into a Chicken, a Peacock or,
if you are lucky, a Phoenix.

Available commands:
  play     - Play with your pet (default)
  status   - Print the saved pet, clock and statistics
  reset    - Delete the save and its journal
  export   - Write the event journal as CSV
  backup   - Write the save as a JSON backup
  restore  - Replace the save with a JSON backup
  config   - Print the effective configuration
  serve    - Start SSH server for remote play

Examples:
  tamagotchi
  tamagotchi status
  tamagotchi export --out journal.csv
  tamagotchi serve --ssh :2222`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Use the save of this SSH user")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tamagotchi/tamagotchi.log", "Log file used while the TUI is running")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().BoolVar(&flagMono, "mono", false, "Use the grayscale theme")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}
