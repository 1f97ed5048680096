package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
	"github.com/vovakirdan/tui-tamagotchi/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tamagotchi/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the simulation config shared by every session.
	Game config.Config

	// Store holds the per-user saves and journals. Nil keeps saves in memory.
	Store *storage.Store

	Logger *log.Logger
}

// NewSSHServerConfig derives the server settings from cfg.
func NewSSHServerConfig(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		IdleTimeout: cfg.Server.IdleTimeout,
		Game:        cfg,
	}
}

// SSHServer serves one pet per SSH user through Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger

	mu     sync.Mutex
	active map[string]io.Closer // user -> open session, nil while it starts
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tamagotchi-ssh",
		})
	}
	if cfg.Store == nil {
		logger.Warn("no save database, pets will not survive a restart")
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
		active: make(map[string]io.Closer),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tamagotchi", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middleware runs last to first: logging, then the per-user lock, then the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.lockMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionOptions builds the pet session for user.
func (s *SSHServer) sessionOptions(user string, width, height int) Options {
	cfg := s.config.Game
	key := save.KeyFor(cfg.Storage.SaveKey, user)
	logger := s.logger.With("user", user)

	opts := Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    time.Now().UnixNano(),
			User:    user,
		},
		Logger: logger,
		Source: clock.SystemSource{},
	}
	if s.config.Store != nil {
		opts.Gateway = save.NewGateway(s.config.Store, key, cfg.Rates(), opts.Source, logger)
		opts.Journal = s.config.Store
	} else {
		opts.Gateway = save.NewGateway(save.NewMemoryBackend(), key, cfg.Rates(), opts.Source, logger)
	}
	return opts
}

// teaHandler creates the pet session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "A terminal is required. Connect with ssh -t.")
		return nil, nil
	}

	user := sshSession.User()
	model, err := NewModel(s.sessionOptions(user, pty.Window.Width, pty.Window.Height))
	if err != nil {
		s.logger.Error("could not start session", "user", user, "error", err)
		wish.Fatalln(sshSession, "Could not load your pet.")
		return nil, nil
	}
	s.attach(user, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// lockMiddleware allows one live session per user so two programs never
// write the same save.
func (s *SSHServer) lockMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		if !s.claim(user) {
			s.logger.Warn("duplicate session refused", "user", user)
			wish.Fatalln(sshSession, "Your pet is already open in another session.")
			return
		}
		defer s.release(user)
		next(sshSession)
	}
}

// claim reserves user. It fails if the user already has a session.
func (s *SSHServer) claim(user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.active[user]; busy {
		return false
	}
	s.active[user] = nil
	return true
}

// attach records the running session for user.
func (s *SSHServer) attach(user string, c io.Closer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[user]; ok {
		s.active[user] = c
	}
}

// release closes the user's session and frees the slot.
func (s *SSHServer) release(user string) {
	s.mu.Lock()
	c := s.active[user]
	delete(s.active, user)
	s.mu.Unlock()

	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		s.logger.Error("final save failed", "user", user, "error", err)
	}
}

// ActiveSessions returns the number of connected users.
func (s *SSHServer) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
