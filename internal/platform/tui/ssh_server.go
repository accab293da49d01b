package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/boarding-gate/internal/config"
	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/scene"
	"github.com/vovakirdan/boarding-gate/internal/settings"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gate/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Round drives every session's rounds.
	Round config.RoundConfig

	// TickRate is how often each session advances its clock.
	TickRate int

	// Namespace prefixes every user's settings keys.
	Namespace string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Round:       config.DefaultRound(),
		TickRate:    core.DefaultConfig().TickRate,
		Namespace:   settings.DefaultNamespace,
	}
}

// SSHDeps are the collaborators shared by every SSH session.
type SSHDeps struct {
	KV     storage.KV
	Remote scene.Remote
	Scores HighScores
	Logger *log.Logger
}

// SSHServer wraps a Wish SSH server for the gate.
type SSHServer struct {
	config SSHServerConfig
	deps   SSHDeps
	server *ssh.Server
	logger *log.Logger

	mu   sync.Mutex
	apps map[ssh.Session]*App
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, deps SSHDeps) (*SSHServer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "gate-ssh",
		})
	}
	if cfg.Namespace == "" {
		cfg.Namespace = settings.DefaultNamespace
	}

	srv := &SSHServer{
		config: cfg,
		deps:   deps,
		logger: logger,
		apps:   make(map[ssh.Session]*App),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".gate", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// newSessionApp builds the model of one SSH session: its own clock, settings
// namespace and session context, sharing the server's storage and remote.
func (s *SSHServer) newSessionApp(user string, width, height int) *App {
	logger := s.logger.With("user", user)
	return NewApp(Options{
		Round: s.config.Round,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		},
		Store:   settings.NewStore(s.deps.KV, settings.UserNamespace(s.config.Namespace, user), logger),
		Session: settings.NewSession(),
		Remote:  s.deps.Remote,
		Scores:  s.deps.Scores,
		Logger:  logger,
	})
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	app := s.newSessionApp(sshSession.User(), pty.Window.Width, pty.Window.Height)
	s.mu.Lock()
	s.apps[sshSession] = app
	s.mu.Unlock()

	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// release shuts down the flow of a finished session so its remote session
// is closed even when the client disconnected mid-round.
func (s *SSHServer) release(sshSession ssh.Session) {
	s.mu.Lock()
	app, ok := s.apps[sshSession]
	delete(s.apps, sshSession)
	s.mu.Unlock()

	if ok {
		app.Flow().Shutdown()
	}
}

// Sessions returns the number of connected sessions.
func (s *SSHServer) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.apps)
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.release(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
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
