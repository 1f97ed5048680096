package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/platform/tui"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with your pet",
	Long: `Open the pet screen. Your last session is restored: a pet you left
playing keeps playing, a paused pet stays paused. Time away does not count.

Controls:
  Enter      - Hatch or continue from the menu
  F/Space    - Feed (costs coins)
  P          - Pause/resume
  +/-        - Change game speed
  R          - Start over (asks first)
  J          - Journal
  M/Esc      - Back to menu
  Q/Ctrl+C   - Quit

Examples:
  tamagotchi play
  tamagotchi play --config ./fast-pet.yaml
  tamagotchi play --db ./test.db --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		exitf("opening log file: %v", err)
	}
	defer logFile.Close()

	logger := newLogger(logFile)
	cfg := loadConfig(logger)

	// Get terminal size before the program takes over
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagMono {
		tui.SetTheme(tui.MonochromeTheme())
	}

	opts := tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
			User:    flagUser,
		},
		Logger: logger,
		Source: clock.SystemSource{},
	}

	store, gateway, err := openSave(cfg, logger)
	if err != nil {
		// Continue without storage
		logger.Error("could not open save database", "path", cfg.Storage.DBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\nYour pet will not be saved.\n", err)
		opts.Gateway = save.NewGateway(save.NewMemoryBackend(), saveKey(cfg), cfg.Rates(), opts.Source, logger)
	} else {
		defer store.Close()
		opts.Gateway = gateway
		opts.Journal = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, opts); err != nil {
		logger.Error("session ended with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
