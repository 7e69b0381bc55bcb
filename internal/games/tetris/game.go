package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects a rule variant.
type Mode string

const (
	ModeShadow  Mode = "shadow"  // landing preview enabled
	ModeClassic Mode = "classic" // no landing preview
)

// Registry IDs.
const (
	IDShadow  = "tetris"
	IDClassic = "tetris_classic"
)

// Minimum terminal size for the board plus side panel.
const (
	minScreenW = 40
	minScreenH = 24
)

// RulesFor returns the rules of a mode.
func RulesFor(mode Mode) Rules {
	return Rules{Shadow: mode != ModeClassic}
}

// ModeForID maps a registry ID to its mode.
func ModeForID(id string) (Mode, bool) {
	switch id {
	case IDShadow:
		return ModeShadow, true
	case IDClassic:
		return ModeClassic, true
	}
	return "", false
}

// Game adapts the engine to the platform's tick loop. Gravity is applied
// every fallTicks simulation ticks while playing.
type Game struct {
	mode   Mode
	engine *Engine
	state  State
	seed   int64
	tick   uint64

	cfg        core.RuntimeConfig
	tetrisCfg  config.TetrisConfig
	difficulty *config.DifficultyManager
	fallTicks  int
	fallCount  int

	// Commands applied since the engine was seeded, in order.
	journal []Command

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path used by the next Reset.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by the next Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// New creates a game with the landing shadow enabled.
func New() *Game {
	return &Game{mode: ModeShadow}
}

// NewClassic creates a game without the landing shadow.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register(IDShadow, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return IDClassic
	}
	return IDShadow
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Tetris (Classic)"
	}
	return "Tetris (Shadow)"
}

// Reset loads configuration and returns the game to the stopped state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tcfg, err := config.LoadTetris(configPath)
	if err != nil {
		tcfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&tcfg, difficultyPreset)

	if cfg.FallIntervalMS > 0 && difficultyPreset == "" {
		tcfg.Gameplay.FallIntervalMS = cfg.FallIntervalMS
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = tcfg.Gameplay.TickRate
	}

	g.cfg = cfg
	g.tetrisCfg = tcfg
	g.difficulty = config.NewDifficultyManager(tcfg.Difficulty)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.seedEngine(cfg.Seed)
	g.state = NewState()
	g.fallTicks = g.cfg.TicksPer(tcfg.Gameplay.FallIntervalMS)
	g.fallCount = 0
	g.checkScreenSize()
}

func (g *Game) seedEngine(seed int64) {
	g.seed = seed
	g.engine = NewEngine(RulesFor(g.mode), seed)
	g.journal = g.journal[:0]
}

// Resize updates the screen dimensions without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// apply runs cmd through the engine and journals it.
func (g *Game) apply(cmd Command) {
	g.state = g.engine.Apply(g.state, cmd)
	g.journal = append(g.journal, cmd)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.state.Status == StatusPlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.state.Status {
	case StatusStopped:
		if in.Has(core.ActionConfirm) {
			g.begin()
		}
	case StatusGameOver:
		if in.Has(core.ActionConfirm) {
			// A new round gets a fresh piece sequence and journal.
			g.seedEngine(g.seed + 1)
			g.begin()
		}
	case StatusPlaying:
		g.stepPlaying(in)
	}

	return core.StepResult{State: g.State()}
}

// begin starts a round and spawns the first piece right away.
func (g *Game) begin() {
	g.apply(CmdStart)
	g.apply(CmdTick)
	g.fallCount = 0
}

func (g *Game) stepPlaying(in core.InputFrame) {
	if !in.Empty() {
		g.handleMoves(in)
	}
	if g.state.Status != StatusPlaying {
		return
	}

	g.fallCount++
	if g.fallCount < g.fallTicks {
		return
	}
	g.fallCount = 0
	g.apply(CmdTick)

	base := time.Duration(g.tetrisCfg.Gameplay.FallIntervalMS) * time.Millisecond
	interval := g.difficulty.FallInterval(base, g.state.Score)
	g.fallTicks = g.cfg.TicksPer(int(interval / time.Millisecond))
}

// handleMoves applies the player's moves in a fixed order.
func (g *Game) handleMoves(in core.InputFrame) {
	if in.Has(core.ActionRotate) {
		g.apply(CmdRotate)
	}
	if in.Has(core.ActionLeft) {
		g.apply(CmdMoveLeft)
	}
	if in.Has(core.ActionRight) {
		g.apply(CmdMoveRight)
	}
	if in.Has(core.ActionDown) {
		g.apply(CmdMoveDown)
	}
}

// State returns the current game state. After a game over the score
// reported is the one reached before the board was cleared.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    ReportedScore(g.state),
		GameOver: g.state.Status == StatusGameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// EngineState returns the engine state.
func (g *Game) EngineState() State {
	return g.state
}

// Recording returns the seed and command journal of the current round.
func (g *Game) Recording() core.Recording {
	cmds := make([]string, len(g.journal))
	for i, c := range g.journal {
		cmds[i] = string(c)
	}
	return core.Recording{
		Seed:     g.seed,
		Commands: cmds,
		Score:    ReportedScore(g.state),
		Lines:    g.state.Lines,
	}
}
