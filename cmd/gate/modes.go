package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boarding-gate/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the desk layouts",
	Long:  `Shows every game mode with its layout title and description.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printModes(os.Stdout)
	},
}

func printModes(w io.Writer) {
	layouts := registry.List()

	if len(layouts) == 0 {
		fmt.Fprintln(w, "No modes available.")
		return
	}

	fmt.Fprintln(w, "Available modes:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxTitleLen := len("Title")
	for _, l := range layouts {
		if len(l.Title) > maxTitleLen {
			maxTitleLen = len(l.Title)
		}
	}

	fmt.Fprintf(w, "  %-4s  %-*s  %s\n", "Mode", maxTitleLen, "Title", "Description")
	fmt.Fprintf(w, "  %-4s  %-*s  %s\n", "----", maxTitleLen, "-----", "-----------")
	for _, l := range layouts {
		fmt.Fprintf(w, "  %-4s  %-*s  %s\n", l.Mode, maxTitleLen, l.Title, l.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'gate play' and pick a mode in the menu.")
}
