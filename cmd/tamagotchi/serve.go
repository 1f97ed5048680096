package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tamagotchi/internal/platform/tui"
	"github.com/vovakirdan/tui-tamagotchi/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tamagotchi SSH server",
	Long: `Start an SSH server where every user raises their own pet.

Each SSH user name gets a separate save and journal in the database.
A user can only have one session open at a time.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tamagotchi/host_key

Examples:
  tamagotchi serve                           # Listen on :23235 with auto-generated key
  tamagotchi serve --ssh :2222               # Listen on port 2222
  tamagotchi serve --host-key ./my_host_key  # Use specific host key
  tamagotchi serve --db ./pets.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config, :23235)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting (default from config, 30m)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	logger.SetPrefix("tamagotchi-ssh")
	cfg := loadConfig(logger)

	srvCfg := tui.NewSSHServerConfig(cfg)
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = flagIdleTimeout
	}
	srvCfg.Logger = logger

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		// Continue without storage
		logger.Warn("could not open save database", "path", cfg.Storage.DBPath, "error", err)
	} else {
		srvCfg.Store = store
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting tamagotchi SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.ListenAndServe(ctx)
	stop()
	if store != nil {
		store.Close()
	}
	if err != nil {
		exitf("server: %v", err)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
