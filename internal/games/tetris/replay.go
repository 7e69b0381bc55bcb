package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Replay re-simulates a recorded round from its seed and returns the
// final engine state.
func Replay(mode Mode, rec core.Recording) (State, error) {
	engine := NewEngine(RulesFor(mode), rec.Seed)
	s := NewState()
	for i, text := range rec.Commands {
		cmd, err := ParseCommand(text)
		if err != nil {
			return s, fmt.Errorf("replay: command %d: %w", i, err)
		}
		s = engine.Apply(s, cmd)
	}
	return s, nil
}

// ReportedScore is the score a state reports to the player: the final
// score after a game over, the running score otherwise.
func ReportedScore(s State) int {
	if s.Status == StatusGameOver {
		return s.FinalScore
	}
	return s.Score
}

// Verify replays rec and checks that it reproduces the recorded score
// and line count.
func Verify(mode Mode, rec core.Recording) (State, error) {
	s, err := Replay(mode, rec)
	if err != nil {
		return s, err
	}
	if got := ReportedScore(s); got != rec.Score {
		return s, fmt.Errorf("replay: score mismatch: recorded %d, replayed %d", rec.Score, got)
	}
	if s.Lines != rec.Lines {
		return s, fmt.Errorf("replay: lines mismatch: recorded %d, replayed %d", rec.Lines, s.Lines)
	}
	return s, nil
}
