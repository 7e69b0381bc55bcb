package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays [variant]",
	Short: "Browse recorded rounds",
	Long: `Opens the replay browser. Enter verifies the selected round, X deletes
it, Left/Right switch the variant filter.

With --plain, prints the most recent rounds as text instead.

Examples:
  tetris replays
  tetris replays --plain
  tetris replays tetris_classic --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of rounds to list with --plain")
}

func runReplays(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("%v", err)
	}
	defer store.Close()

	if flagPlain {
		if err := printReplays(store, args); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	cfg := terminalConfig()
	res, err := tui.RunReplayBrowser(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	if res.ReplayID > 0 {
		if err := verifyReplay(store, res.ReplayID); err != nil {
			store.Close()
			fail("%v", err)
		}
	}
}

func printReplays(store *storage.Store, args []string) error {
	var (
		entries []storage.ReplayEntry
		err     error
	)
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown variant %q", args[0])
		}
		entries, err = store.ReplaysForGame(args[0], flagLimit)
	} else {
		entries, err = store.RecentReplays(flagLimit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVariant\tScore\tLines\tCommands\tPlayed")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n",
			e.ID, e.GameID, e.Score, e.Lines, len(e.Commands),
			e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	fmt.Println()
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("%s: %d rounds, %d lines total\n", g.Title, st.Rounds, st.TotalLines)
	}
	return nil
}
