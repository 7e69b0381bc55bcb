package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagVariant   string
	flagWait      bool
	flagRunRecord bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play headlessly, reading one command per stdin line",
	Long: `Runs a game without a TUI. Each stdin line is one command:

  start, moveLeft (left), moveRight (right), moveDown (down), rotate (up), tick

Blank lines and lines starting with # are ignored, "quit" ends input.
Gravity ticks on its own timer while the game is playing. The board is
printed after every transition.

Examples:
  printf 'start\nleft\nleft\nrotate\n' | tetris run --seed 7
  tetris run --variant tetris_classic --interval 200 --wait
  tetris run --record < moves.txt`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagVariant, "variant", tetris.IDShadow, "Variant to play")
	runCmd.Flags().IntVar(&flagInterval, "interval", 0, "Gravity cadence in milliseconds (0 = config default)")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	runCmd.Flags().BoolVar(&flagWait, "wait", false, "After input ends, keep playing until game over")
	runCmd.Flags().BoolVar(&flagRunRecord, "record", false, "Store the round in the replay database")
}

// printer renders states as ASCII boards.
type printer struct {
	w io.Writer
}

func (p printer) print(s tetris.State) {
	piece := "-"
	if s.Piece != nil {
		piece = fmt.Sprintf("%s@%d,%d", s.Piece.Kind, s.Piece.X, s.Piece.Y)
	}
	fmt.Fprintf(p.w, "status %s  score %d  lines %d  piece %s\n%s\n\n",
		s.Status, tetris.ReportedScore(s), s.Lines, piece, s.Board.String())
}

// fallInterval resolves the gravity cadence from flags and config.
func fallInterval() time.Duration {
	if flagInterval > 0 {
		return time.Duration(flagInterval) * time.Millisecond
	}
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultTetrisConfig()
	}
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fail("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	config.ApplyTetrisPreset(&cfg, preset)
	return time.Duration(cfg.Gameplay.FallIntervalMS) * time.Millisecond
}

func runRun(_ *cobra.Command, _ []string) {
	mode, ok := tetris.ModeForID(flagVariant)
	if !ok {
		fail("unknown variant %q", flagVariant)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger("tetris-run")
	out := printer{w: os.Stdout}
	over := make(chan struct{}, 1)

	driver := session.NewDriver(tetris.RulesFor(mode), seed, session.DriverConfig{
		Interval: fallInterval(),
		Logger:   logger,
		Observer: func(s tetris.State) {
			out.print(s)
			if s.Status == tetris.StatusGameOver {
				select {
				case over <- struct{}{}:
				default:
				}
			}
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := make(chan error, 1)
	go func() { runErr <- driver.Run(ctx) }()

	logger.Debug("headless game ready", "variant", flagVariant, "seed", seed)
	readCommands(ctx, driver, os.Stdin, logger)

	if flagWait && driver.State().Status == tetris.StatusPlaying {
		select {
		case <-over:
		case <-ctx.Done():
		}
	}

	driver.Stop()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
	}

	if flagRunRecord {
		saveRun(driver)
	}
}

// readCommands feeds stdin lines to the driver until EOF, "quit" or ctx
// cancellation.
func readCommands(ctx context.Context, d *session.Driver, r io.Reader, logger *log.Logger) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("reading input", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" || strings.HasPrefix(text, "#") {
				continue
			}
			if strings.EqualFold(text, "quit") {
				return
			}
			cmd, err := tetris.ParseCommand(text)
			if err != nil {
				logger.Warn("ignoring input", "line", text, "error", err)
				continue
			}
			if _, err := d.Do(ctx, cmd); err != nil {
				return
			}
		}
	}
}

func saveRun(d *session.Driver) {
	rec := d.Recording()
	if len(rec.Commands) == 0 {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReplay(flagVariant, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Printf("Replay saved as #%d (tetris replay %d)\n", id, id)
}
