package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Status is the lifecycle phase of a game.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusPlaying  Status = "playing"
	StatusGameOver Status = "game_over"
)

// Spawn position of every new piece.
const (
	SpawnX = 4
	SpawnY = 0
)

// Piece is the falling piece. X and Y locate the top-left corner of Shape.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
	Color core.Color
}

// State is a complete snapshot of a game. Transitions never modify the
// State they receive; they return a new one.
type State struct {
	Status Status
	Score  int
	Lines  int
	// FinalScore keeps the score reached before the last game over,
	// since Score itself is reset.
	FinalScore int
	Board      Board
	Piece      *Piece
}

// NewState returns the initial stopped state.
func NewState() State {
	return State{Status: StatusStopped}
}

// Rules toggles optional behavior.
type Rules struct {
	// Shadow paints the landing preview of the active piece.
	Shadow bool
}

// Engine holds the rules and random source shared by all transitions.
// It is not safe for concurrent use; callers serialize transitions.
type Engine struct {
	rules Rules
	rng   *rand.Rand
}

// NewEngine creates an engine whose piece sequence is determined by seed.
func NewEngine(rules Rules, seed int64) *Engine {
	return &Engine{rules: rules, rng: rand.New(rand.NewSource(seed))}
}

// Rules returns the engine rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Start begins a new game from stopped or game_over. While playing it is
// a no-op. The new game has an empty board and no piece; the next tick
// spawns one.
func (e *Engine) Start(s State) State {
	if s.Status == StatusPlaying {
		return s
	}
	return State{Status: StatusPlaying}
}

// Tick advances the game by one gravity step: it spawns a piece when there
// is none, otherwise it moves the piece down.
func (e *Engine) Tick(s State) State {
	if s.Status != StatusPlaying {
		return s
	}
	if s.Piece == nil {
		return e.Spawn(s)
	}
	return e.MoveDown(s)
}

// Spawn places a random piece at the spawn position.
func (e *Engine) Spawn(s State) State {
	return e.SpawnKind(s, Kind(e.rng.Intn(KindCount)))
}

// SpawnKind places a piece of kind k at the spawn position. If it collides
// with locked cells the game is over: the board is cleared, the score is
// reset and FinalScore records the score that was reached. Lines keeps the
// count of the finished round until the next start.
func (e *Engine) SpawnKind(s State, k Kind) State {
	if s.Status != StatusPlaying {
		return s
	}
	shape := ShapeOf(k)
	if Collides(s.Board, shape, SpawnX, SpawnY) {
		return State{Status: StatusGameOver, FinalScore: s.Score, Lines: s.Lines}
	}
	next := s
	next.Piece = &Piece{Kind: k, Shape: shape, X: SpawnX, Y: SpawnY, Color: ColorOf(k)}
	next.Board.paint(shape, SpawnX, SpawnY, CellActive)
	return e.finish(next)
}

// MoveLeft shifts the piece one column left if nothing blocks it.
func (e *Engine) MoveLeft(s State) State {
	return e.shift(s, -1)
}

// MoveRight shifts the piece one column right if nothing blocks it.
func (e *Engine) MoveRight(s State) State {
	return e.shift(s, 1)
}

func (e *Engine) shift(s State, dx int) State {
	if s.Status != StatusPlaying || s.Piece == nil {
		return s
	}
	p := s.Piece
	if Collides(s.Board, p.Shape, p.X+dx, p.Y) {
		return s
	}
	return e.relocate(s, p.Shape, p.X+dx, p.Y)
}

// MoveDown drops the piece one row. When the row below is blocked the
// piece locks in place, complete lines are cleared and scored, and the
// game waits for the next tick to spawn.
func (e *Engine) MoveDown(s State) State {
	if s.Status != StatusPlaying || s.Piece == nil {
		return s
	}
	p := s.Piece
	if !Collides(s.Board, p.Shape, p.X, p.Y+1) {
		return e.relocate(s, p.Shape, p.X, p.Y+1)
	}

	next := s
	next.Board = clearShadow(next.Board)
	next.Board.lock(p.Shape, p.X, p.Y)
	next.Piece = nil
	board, points, cleared := clearLines(next.Board)
	next.Board = board
	next.Score += points
	next.Lines += cleared
	return next
}

// Rotate turns the piece clockwise in place. If the rotated footprint
// collides the rotation is rejected; there are no wall kicks.
func (e *Engine) Rotate(s State) State {
	if s.Status != StatusPlaying || s.Piece == nil {
		return s
	}
	p := s.Piece
	rotated := RotateClockwise(p.Shape)
	if Collides(s.Board, rotated, p.X, p.Y) {
		return s
	}
	return e.relocate(s, rotated, p.X, p.Y)
}

// relocate erases the piece footprint and paints shape at (x, y).
func (e *Engine) relocate(s State, shape Shape, x, y int) State {
	next := s
	p := *s.Piece
	next.Board.paint(p.Shape, p.X, p.Y, CellEmpty)
	p.Shape, p.X, p.Y = shape, x, y
	next.Board.paint(shape, x, y, CellActive)
	next.Piece = &p
	return e.finish(next)
}

func (e *Engine) finish(s State) State {
	if e.rules.Shadow {
		s.Board = ComputeShadow(s.Board, s.Piece)
	}
	return s
}
