package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Gameplay: TetrisGameplay{
			FallIntervalMS: 500,
			TickRate:       60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
				MinIntervalMS:   100,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris", "tetris_classic":
		return defaultTetrisYAML
	default:
		return nil
	}
}
