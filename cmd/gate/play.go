package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/platform/tui"
	"github.com/vovakirdan/boarding-gate/internal/settings"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the menu and play",
	Long: `Open the gate menu: enter your name, pick a mode and UI size, then
start a 20 second shift. Your choices are saved as you make them and
prefill the menu next time.

Controls:
  Tab/Up/Down  - Move between menu fields
  Left/Right   - Change mode or UI size
  Enter        - Start / confirm
  T / C        - Press the Tickets / Coins button
  R            - Play again (results)
  Esc/M        - Back to menu (results)
  Q/Ctrl+C     - Quit

Logs are written to ~/.gate/gate.log.

Examples:
  gate play
  gate play --fps 60
  gate play --storage gdata
  gate play --db ./gate.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "gate")
	if err != nil {
		return err
	}

	be, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	// Closing flushes queued rounds to the database
	defer be.close()

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err = tui.Run(tui.Options{
		Round: cfg.Round,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:   settings.NewStore(be.kv, cfg.Storage.Namespace, logger),
		Session: settings.NewSession(),
		Remote:  be.notifier,
		Scores:  be.service,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("running gate: %w", err)
	}
	return nil
}
