// Package config provides YAML-based game configuration loading and
// difficulty management for the tetris engine.
package config

// TetrisConfig contains all configuration for the tetris game.
type TetrisConfig struct {
	Gameplay   TetrisGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisGameplay defines timing parameters.
type TetrisGameplay struct {
	FallIntervalMS int `yaml:"fall_interval_ms"` // Gravity cadence at level 0
	TickRate       int `yaml:"tick_rate"`        // Simulation ticks per second
}

// DifficultyConfig defines difficulty progression settings.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	MinIntervalMS   int     `yaml:"min_interval_ms"`  // Fastest allowed gravity cadence
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty input means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// FallIntervalForPreset returns the base gravity cadence of a preset in
// milliseconds, or 0 when the preset does not change it.
func FallIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1000
	case DifficultyNormal:
		return 500
	case DifficultyHard:
		return 300
	default:
		return 0
	}
}
