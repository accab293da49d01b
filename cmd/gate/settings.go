package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/settings"
)

var flagUser string

var settingsCmd = &cobra.Command{
	Use:   "settings [reset]",
	Short: "Show or reset the stored menu settings",
	Long: `Print the name, mode and UI size the menu will be prefilled with, or
reset them to the defaults. With --user, acts on the settings an SSH user
saved through 'gate serve'.

Examples:
  gate settings
  gate settings reset
  gate settings --user ada
  gate settings --storage gdata`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"reset"},
	RunE:      runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&flagUser, "user", "", "SSH user whose settings to show")
}

func runSettings(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "gate")
	if err != nil {
		return err
	}

	be, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer be.close()

	namespace := cfg.Storage.Namespace
	if flagUser != "" {
		namespace = settings.UserNamespace(namespace, flagUser)
	}
	store := settings.NewStore(be.kv, namespace, logger)

	if len(args) == 1 {
		store.Save(core.DefaultSettings())
		log.Info("settings reset", "namespace", namespace)
	}
	printSettings(os.Stdout, store)
	return nil
}

func printSettings(w io.Writer, store *settings.Store) {
	s := store.Load()
	name := s.Name
	if name == "" {
		name = "(not set)"
	}

	fmt.Fprintf(w, "Namespace: %s\n", store.Namespace())
	fmt.Fprintf(w, "  Name:    %s\n", name)
	fmt.Fprintf(w, "  Mode:    %s\n", s.Mode)
	fmt.Fprintf(w, "  UI size: %s\n", s.UISize)
}
