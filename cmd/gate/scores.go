package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boarding-gate/internal/core"
	"github.com/vovakirdan/boarding-gate/internal/platform/tui"
	"github.com/vovakirdan/boarding-gate/internal/registry"
	"github.com/vovakirdan/boarding-gate/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear bool
	flagForce bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores per mode",
	Long: `Browse the best rounds of every mode in an interactive table, or print
the top rounds of one mode with --plain.

Examples:
  gate scores             # interactive, opens TB1
  gate scores HR2         # interactive, opens HR2
  gate scores TB2 --plain
  gate scores TB2 --clear --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores instead of opening the table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to print with --plain")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all rounds of the mode")
	scoresCmd.Flags().BoolVar(&flagForce, "yes", false, "Confirm --clear")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := core.DefaultMode
	if len(args) == 1 {
		m, err := core.ParseMode(args[0])
		if err != nil {
			return fmt.Errorf("unknown mode %q (run 'gate modes' to see available modes)", args[0])
		}
		mode = m
	}
	if flagClear && (len(args) == 0 || !flagForce) {
		return errors.New("--clear needs a mode and --yes")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(string(mode)); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s rounds.\n", mode)
		return nil

	case flagPlain:
		if err := printScores(os.Stdout, store, mode, flagLimit); err != nil {
			return fmt.Errorf("retrieving scores: %w", err)
		}
		return nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunScoreboard(store, mode, width, height)
}

// printScores writes the top rounds of mode as a plain table.
func printScores(w io.Writer, store *storage.Store, mode core.GameMode, limit int) error {
	scores, err := store.TopScores(string(mode), limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", mode)
	fmt.Fprintln(w, registry.Describe(mode))
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No rounds recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'gate play' and pick this mode to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %s\n", i+1, entry.Player, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	best, err := store.HighScore(string(mode))
	if err == nil {
		fmt.Fprintf(w, "Best: %d\n", best)
	}
	return nil
}
