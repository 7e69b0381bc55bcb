package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded round and verify its score",
	Long: `Replays the stored command journal of a round from its seed, prints
the final board and checks that score and lines match what was recorded.

Examples:
  tetris replay 12
  tetris replay 12 --db ./replays.db`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fail("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if err := verifyReplay(store, id); err != nil {
		store.Close()
		fail("%v", err)
	}
}

// verifyReplay loads a stored round, re-simulates it and prints the result.
func verifyReplay(store *storage.Store, id int64) error {
	entry, err := store.Replay(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("replay %d not found", id)
	}

	mode, ok := tetris.ModeForID(entry.GameID)
	if !ok {
		return fmt.Errorf("replay %d: unknown variant %q", id, entry.GameID)
	}

	s, verr := tetris.Verify(mode, entry.Recording())
	fmt.Println(s.Board.String())
	fmt.Println()
	fmt.Printf("Replay #%d  %s  seed %d  %d commands  %s\n",
		entry.ID, entry.GameID, entry.Seed, len(entry.Commands),
		entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("Recorded: score %d, lines %d\n", entry.Score, entry.Lines)
	fmt.Printf("Replayed: score %d, lines %d (%s)\n", tetris.ReportedScore(s), s.Lines, s.Status)
	if verr != nil {
		return verr
	}
	fmt.Println("OK")
	return nil
}
