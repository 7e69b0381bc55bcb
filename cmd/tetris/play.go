package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
	flagInterval   int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: tetris).

Controls:
  Left/Right, A/D - Move piece
  Down/S          - Soft drop one row
  Up/W/X          - Rotate clockwise
  Enter/Space     - Start
  P               - Pause
  R               - Restart
  B/Esc           - Back (paused or after game over)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - 1000ms gravity, speeds up with score
  normal - 500ms gravity, speeds up with score
  hard   - 300ms gravity, speeds up with score
  fixed  - No speed-up, stays at the config's cadence

Examples:
  tetris play
  tetris play tetris_classic
  tetris play --difficulty hard
  tetris play --interval 250 --record=false
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagRecord, "record", true, "Store the round in the replay database")
	playCmd.Flags().IntVar(&flagInterval, "interval", 0, "Gravity cadence in milliseconds (0 = config default)")
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:        width,
		ScreenH:        height,
		TickRate:       flagFPS,
		Seed:           flagSeed,
		FallIntervalMS: flagInterval,
	}
}

// openStore opens the replay database. A failure only disables recording.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}

// applyGameFlags hands --config and --difficulty to the tetris package.
func applyGameFlags() {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fail("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(preset)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := tetris.IDShadow
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	var store *storage.Store
	if flagRecord {
		store = openStore()
	}

	outcome, runErr := tui.Run(game, store, terminalConfig(), newLogger("tetris"))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
	if outcome.ReplayID > 0 {
		fmt.Printf("Replay saved as #%d (tetris replay %d)\n", outcome.ReplayID, outcome.ReplayID)
	}
}
