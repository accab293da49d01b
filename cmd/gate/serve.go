package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boarding-gate/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gate SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own clock, session and menu settings; the
settings are stored per SSH user name. Rounds go to the shared database,
so all users share the same high scores.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gate/host_key

Examples:
  gate serve                           # Listen on :23235 with auto-generated key
  gate serve --ssh :2222               # Listen on port 2222
  gate serve --host-key ./my_host_key  # Use specific host key
  gate serve --db ./gate.db            # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	logger, err := newLogger(os.Stderr, "gate-ssh")
	if err != nil {
		return err
	}

	be, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer be.close()

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = cfg.Server.Address
	srvCfg.HostKeyPath = cfg.Server.HostKeyPath
	srvCfg.IdleTimeout = cfg.Server.IdleTimeout
	srvCfg.Round = cfg.Round
	srvCfg.TickRate = flagFPS
	srvCfg.Namespace = cfg.Storage.Namespace

	server, err := tui.NewSSHServer(srvCfg, tui.SSHDeps{
		KV:     be.kv,
		Remote: be.notifier,
		Scores: be.service,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting gate SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
