package tetris

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick       uint64
	Mode       string // "shadow" or "classic"
	Status     Status
	Paused     bool
	Score      int
	Lines      int
	FinalScore int
	Board      Board
	HasPiece   bool
	PieceKind  Kind
	PieceX     int
	PieceY     int
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Status:     g.state.Status,
		Paused:     g.paused,
		Score:      g.state.Score,
		Lines:      g.state.Lines,
		FinalScore: g.state.FinalScore,
		Board:      g.state.Board,
	}
	if p := g.state.Piece; p != nil {
		snap.HasPiece = true
		snap.PieceKind = p.Kind
		snap.PieceX = p.X
		snap.PieceY = p.Y
	}
	return snap
}
