// gate is a terminal boarding-gate mockup: enter a name, pick a layout and
// work a 20 second shift of tickets and coins.
//
// Usage:
//
//	gate play               - Open the menu and play locally
//	gate serve              - Start SSH server for remote play
//	gate scores [mode]      - Show high scores per mode
//	gate modes              - List the gate layouts
//	gate settings [reset]   - Show or reset the stored menu settings
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.gate/config.yaml)
//	--db <path>         - SQLite database path
//	--storage <name>    - Settings backend: sqlite, gdata, memory
//	--fps <rate>        - Clock ticks per second (default: 30)
//	--seed <value>      - RNG seed for score increments
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import layouts to register them
	_ "github.com/vovakirdan/boarding-gate/internal/layouts"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagStorage  string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gate",
	Short: "Boarding Gate - a ticket desk shift in your terminal",
	Long: `Boarding Gate is a terminal mockup of an airport boarding gate.
Enter your name, pick one of four desk layouts and work a timed shift
while passengers arrive.

Available commands:
  play      - Open the menu and play
  serve     - Start SSH server for remote play
  scores    - View high scores per mode
  modes     - List the desk layouts
  settings  - Show or reset stored menu settings

Examples:
  gate play
  gate play --storage memory
  gate serve --ssh :2222
  gate scores TB2 --plain`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Settings backend: sqlite, gdata, memory (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Clock ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(settingsCmd)
}
