package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
	"github.com/vovakirdan/tui-tamagotchi/internal/storage"
)

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tamagotchi",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// loadConfig loads the config and applies command line overrides.
func loadConfig(logger *log.Logger) config.Config {
	cfg, source, notes, err := config.Load(flagConfig)
	if err != nil {
		exitf("loading config: %v", err)
	}
	for _, note := range notes {
		logger.Warn("config adjusted", "note", note)
	}
	logger.Debug("config loaded", "source", source)

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg
}

// saveKey is the save selected by --user.
func saveKey(cfg config.Config) string {
	return save.KeyFor(cfg.Storage.SaveKey, flagUser)
}

// openSave opens the database and a gateway for the selected save.
func openSave(cfg config.Config, logger *log.Logger) (*storage.Store, *save.Gateway, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	gateway := save.NewGateway(store, saveKey(cfg), cfg.Rates(), clock.SystemSource{}, logger)
	return store, gateway, nil
}
