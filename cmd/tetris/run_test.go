package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

func TestReadCommandsAppliesInOrder(t *testing.T) {
	d := session.NewDriver(tetris.Rules{Shadow: true}, 7, session.DriverConfig{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	input := strings.Join([]string{
		"# comment",
		"start",
		"",
		"tick",
		"LEFT",
		"bogus",
		"down",
		"quit",
		"right",
	}, "\n")
	readCommands(ctx, d, strings.NewReader(input), log.New(io.Discard))

	rec := d.Recording()
	assert.Equal(t, []string{"start", "tick", "moveLeft", "moveDown"}, rec.Commands)

	s := d.State()
	require.NotNil(t, s.Piece)
	assert.Equal(t, tetris.SpawnX-1, s.Piece.X)
	assert.Equal(t, tetris.SpawnY+1, s.Piece.Y)

	d.Stop()
	require.NoError(t, <-errc)
}

func TestPrinterShowsStatusAndBoard(t *testing.T) {
	var sb strings.Builder
	printer{w: &sb}.print(tetris.NewState())

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "status stopped  score 0  lines 0  piece -\n"))
	assert.Contains(t, out, strings.Repeat(".", tetris.BoardWidth))
}
