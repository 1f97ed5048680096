package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
)

var (
	flagOut   string
	flagLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the event journal as CSV",
	Long: `Write every recorded event of the save (hatch, feeds, evolutions,
deaths, speed changes, resets) as CSV, oldest first.

Examples:
  tamagotchi export
  tamagotchi export --out journal.csv
  tamagotchi export --limit 50 --user alice`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().IntVar(&flagLimit, "limit", 0, "Only the latest N events (0 = all)")
}

func runExport(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)

	store, _, err := openSave(cfg, logger)
	if err != nil {
		exitf("opening save database: %v", err)
	}
	defer store.Close()

	entries, err := store.Journal(saveKey(cfg), flagLimit)
	if err != nil {
		store.Close()
		exitf("reading journal: %v", err)
	}

	var out io.Writer = os.Stdout
	if flagOut != "" {
		path, pathErr := expandHome(flagOut)
		if pathErr != nil {
			store.Close()
			exitf("%v", pathErr)
		}
		f, createErr := os.Create(path)
		if createErr != nil {
			store.Close()
			exitf("creating %s: %v", path, createErr)
		}
		defer f.Close()
		out = f
	}

	if err := gocsv.Marshal(entries, out); err != nil {
		store.Close()
		exitf("writing CSV: %v", err)
	}

	if flagOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d events to %s\n", len(entries), flagOut)
	}
}
