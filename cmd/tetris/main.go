// tetris is a terminal falling-block game with a local TUI, an SSH host
// and a headless runner driven from stdin.
//
// Usage:
//
//	tetris list              - List available variants
//	tetris play [variant]    - Play a variant
//	tetris menu              - Start menu to pick a variant interactively
//	tetris run               - Play headlessly, one command per stdin line
//	tetris serve             - Start SSH server for remote play
//	tetris replays           - Browse recorded rounds
//	tetris replay <id>       - Re-simulate a recorded round and verify it
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.tetris/replays.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import variants to register them
	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - stack falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block game.

Available commands:
  list     - Show all available variants
  play     - Play a variant directly
  menu     - Interactive variant picker menu
  run      - Headless game fed from stdin
  serve    - Start SSH server for remote play
  replays  - Browse recorded rounds
  replay   - Verify a recorded round

Examples:
  tetris list
  tetris play
  tetris play tetris_classic --difficulty hard
  tetris menu
  tetris serve --ssh :2222
  tetris replay 12`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every transition")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds a stderr logger for the given component.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
