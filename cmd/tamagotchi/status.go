package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the saved pet, clock and statistics",
	Long: `Print the saved pet without starting the game clock.

Examples:
  tamagotchi status
  tamagotchi status --user alice
  tamagotchi status --db ./test.db`,
	Args: cobra.NoArgs,
	Run:  runStatus,
}

var (
	statusHeading = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	statusLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
)

func runStatus(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)

	store, gateway, err := openSave(cfg, logger)
	if err != nil {
		exitf("opening save database: %v", err)
	}
	defer store.Close()

	exists, err := gateway.Exists()
	if err != nil {
		store.Close()
		exitf("reading save: %v", err)
	}
	if !exists {
		fmt.Printf("No save found for %q.\n", gateway.Key())
		fmt.Println()
		fmt.Println("Run 'tamagotchi play' to hatch an egg!")
		return
	}

	data, err := gateway.Load()
	if err != nil {
		logger.Warn("save is damaged, showing defaults", "error", err)
	}

	// Restoring into a clock gives the formatted game time without running it
	c := clock.New(clock.SystemSource{}, cfg.Limits(), nil)
	c.Restore(data.Time)
	info := c.Info()

	printStatus(gateway.Key(), data, info)

	saves, err := store.Saves()
	if err != nil {
		logger.Error("could not list saves", "error", err)
		return
	}
	fmt.Println()
	fmt.Println(statusHeading.Render("Saves"))
	fmt.Printf("  %-36s  %-8s  %s\n", "Key", "Size", "Updated")
	for _, s := range saves {
		fmt.Printf("  %-36s  %-8d  %s\n", s.Key, s.Size, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func printStatus(key string, data save.Data, info clock.Info) {
	r := data.Tamagotchi
	row := func(label, format string, args ...any) {
		fmt.Println(statusLabel.Render(label) + fmt.Sprintf(format, args...))
	}

	fmt.Println(statusHeading.Render("Pet - " + key))
	row("State", "%s", data.GameState.CurrentState)
	row("Stage", "%s", describeStage(r))
	row("Alive", "%t", r.IsAlive)
	row("Hunger", "%.0f", r.Hunger)
	row("Life", "%.0f", r.Life)
	row("Coins", "%d", r.Coins)
	if r.BirthWallTime > 0 {
		row("Born", "%s", clock.FromMillis(r.BirthWallTime).Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println(statusHeading.Render("Clock"))
	paused := ""
	if info.Paused {
		paused = " (paused)"
	}
	row("Game time", "%s%s", info.Formatted, paused)
	row("Speed", "%gx", info.Speed)
	row("Paused for", "%s", (time.Duration(info.PausedSeconds) * time.Second).String())

	st := data.Statistics
	fmt.Println()
	fmt.Println(statusHeading.Render("Statistics"))
	row("Play time", "%s", (time.Duration(st.TotalPlaySeconds) * time.Second).String())
	row("Games", "%d", st.GamesPlayed)
	row("Feeds", "%d", st.FeedCount)
	row("Evolutions", "%d", st.Evolutions)
	row("Deaths", "%d", st.Deaths)
	row("Coins earned", "%d", st.CoinsEarned)

	if data.Metadata.LastSavedAt > 0 {
		fmt.Println()
		fmt.Printf("Last saved %s (format %s)\n",
			clock.FromMillis(data.Metadata.LastSavedAt).Local().Format("2006-01-02 15:04:05"),
			data.Metadata.Version)
	}
}

func describeStage(r pet.Record) string {
	if r.AdultType != pet.AdultNone {
		return fmt.Sprintf("%s (%s)", r.EvolutionStage, r.AdultType.Title())
	}
	return string(r.EvolutionStage)
}
