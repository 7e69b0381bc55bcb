package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant, then pick a
difficulty. After a game ends, you return to the menu to play again.
Selecting a round in the replay browser verifies it and exits.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Browse replays
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./replays.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	menuCmd.Flags().BoolVar(&flagRecord, "record", true, "Store rounds in the replay database")
}

func runMenu(_ *cobra.Command, _ []string) {
	var store *storage.Store
	if flagRecord {
		store = openStore()
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	logger := newLogger("tetris")
	cfg := terminalConfig()
	tetris.SetConfigPath(flagConfig)

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsReplays {
			if store == nil {
				continue
			}
			res, brErr := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
			if brErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", brErr)
				return
			}
			if res.ReplayID > 0 {
				if err := verifyReplay(store, res.ReplayID); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			}
			if res.Back {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		preset, err := tui.RunDifficultySelector(game.Title(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if preset == nil {
			continue
		}
		tetris.SetDifficultyPreset(*preset)

		// Fresh seed for each game unless pinned with --seed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		outcome, err := tui.Run(game, store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if !outcome.BackToMenu {
			return
		}
	}
}
