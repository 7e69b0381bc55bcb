package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       60,
		Seed:           12345,
		FallIntervalMS: 500,
	}
}

func confirm() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	return in
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDShadow, IDClassic} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestGameStartsStopped(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	if g.EngineState().Status != StatusStopped {
		t.Fatalf("status = %s, want stopped", g.EngineState().Status)
	}
	// Movement before start does nothing.
	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	if g.EngineState().Status != StatusStopped {
		t.Error("movement should not start the game")
	}

	g.Step(confirm())
	st := g.EngineState()
	if st.Status != StatusPlaying {
		t.Fatalf("status = %s, want playing", st.Status)
	}
	if st.Piece == nil {
		t.Error("first piece should spawn immediately")
	}
}

func TestGravityFollowsFallInterval(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	g.Step(confirm())

	empty := core.NewInputFrame()
	// 500ms at 60 ticks per second.
	for range 29 {
		g.Step(empty)
	}
	if y := g.EngineState().Piece.Y; y != 0 {
		t.Fatalf("piece moved early to y=%d", y)
	}
	g.Step(empty)
	if y := g.EngineState().Piece.Y; y != 1 {
		t.Errorf("piece y = %d after one interval, want 1", y)
	}
}

func TestPauseFreezesGame(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	g.Step(confirm())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.Snapshot()
	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	for range 100 {
		g.Step(down)
	}
	after := g.Snapshot()
	if before.Board != after.Board || before.PieceY != after.PieceY {
		t.Error("game advanced while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("expected resume")
	}
}

func TestPauseIgnoredWhenStopped(t *testing.T) {
	g := New()
	g.Reset(testConfig())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if g.State().Paused {
		t.Error("pause should only apply while playing")
	}
}

// dropUntilOver presses down every tick until the stack reaches the top.
func dropUntilOver(t *testing.T, g *Game) {
	t.Helper()
	down := core.NewInputFrame()
	down.Set(core.ActionDown)
	for range 10000 {
		if g.State().GameOver {
			return
		}
		g.Step(down)
	}
	t.Fatal("game never ended")
}

func TestGameOverReportsFinalScore(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	g.Step(confirm())
	dropUntilOver(t, g)

	st := g.EngineState()
	if st.Status != StatusGameOver {
		t.Fatalf("status = %s", st.Status)
	}
	if st.Score != 0 || !st.Board.IsEmpty() || st.Piece != nil {
		t.Error("game over should clear score, board and piece")
	}
	if g.State().Score != st.FinalScore {
		t.Errorf("reported score = %d, want %d", g.State().Score, st.FinalScore)
	}

	// Enter begins a new round.
	g.Step(confirm())
	if g.EngineState().Status != StatusPlaying {
		t.Error("confirm after game over should start a new round")
	}
	if g.Recording().Seed != testConfig().Seed+1 {
		t.Error("new round should use a new seed")
	}
}

func TestRecordingReplays(t *testing.T) {
	for _, mode := range []Mode{ModeShadow, ModeClassic} {
		t.Run(string(mode), func(t *testing.T) {
			g := &Game{mode: mode}
			g.Reset(testConfig())
			g.Step(confirm())

			in := core.NewInputFrame()
			for i := range 3000 {
				in.Clear()
				switch i % 11 {
				case 2:
					in.Set(core.ActionLeft)
				case 5:
					in.Set(core.ActionRotate)
				case 8:
					in.Set(core.ActionRight)
				}
				g.Step(in)
				if g.State().GameOver {
					break
				}
			}

			rec := g.Recording()
			if len(rec.Commands) == 0 || rec.Commands[0] != string(CmdStart) {
				t.Fatalf("recording should begin with start: %v", rec.Commands[:min(3, len(rec.Commands))])
			}
			got, err := Verify(mode, rec)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if got.Status != g.EngineState().Status {
				t.Errorf("replayed status = %s, want %s", got.Status, g.EngineState().Status)
			}
			if got.Board != g.EngineState().Board {
				t.Error("replayed board differs")
			}
		})
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	rec := core.Recording{Seed: 1, Commands: []string{"start", "tick"}, Score: 99}
	if _, err := Verify(ModeShadow, rec); err == nil {
		t.Error("expected score mismatch")
	}

	rec = core.Recording{Seed: 1, Commands: []string{"start", "jump"}}
	if _, err := Replay(ModeShadow, rec); err == nil {
		t.Error("expected unknown command error")
	}
}

func TestClassicHasNoShadow(t *testing.T) {
	g := NewClassic()
	g.Reset(testConfig())
	g.Step(confirm())
	if n := g.EngineState().Board.Count(CellShadow); n != 0 {
		t.Errorf("classic board has %d shadow cells", n)
	}

	s := New()
	s.Reset(testConfig())
	s.Step(confirm())
	if n := s.EngineState().Board.Count(CellShadow); n == 0 {
		t.Error("shadow variant should preview landing")
	}
}

func TestTooSmallScreenBlocksPlay(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenW = 20
	cfg.ScreenH = 10

	g := New()
	g.Reset(cfg)
	g.Step(confirm())
	if g.EngineState().Status != StatusStopped {
		t.Error("game should not start on a tiny screen")
	}

	scr := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("expected too small message")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig())
	g2 := New()
	g2.Reset(testConfig())

	input := core.NewInputFrame()
	for i := range 600 {
		input.Clear()
		switch {
		case i == 0:
			input.Set(core.ActionConfirm)
		case i%17 == 0:
			input.Set(core.ActionRotate)
		case i%13 == 0:
			input.Set(core.ActionLeft)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%s\nvs\n%s", g1.Snapshot().Board, g2.Snapshot().Board)
	}
}

func TestRenderStates(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	scr := core.NewScreen(80, 24)

	g.Render(scr)
	if !strings.Contains(scr.String(), "Enter to start") {
		t.Error("stopped screen should prompt to start")
	}

	g.Step(confirm())
	g.Render(scr)
	out := scr.String()
	if !strings.Contains(out, "Score: 0") {
		t.Error("expected score in panel")
	}
	if !strings.Contains(out, "██") {
		t.Error("expected piece blocks")
	}

	dropUntilOver(t, g)
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestResizeKeepsRound(t *testing.T) {
	g := New()
	g.Reset(testConfig())
	g.Step(confirm())
	before := g.EngineState()

	g.Resize(30, 10)
	if !g.State().Paused {
		t.Error("tiny screen should pause the game")
	}
	g.Resize(100, 40)
	if g.State().Paused {
		t.Error("large screen should resume")
	}
	if g.EngineState().Board != before.Board {
		t.Error("resize changed the board")
	}
}
