package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTetris loads tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg.normalized(), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg.normalized(), nil
			}
			cfg = DefaultTetrisConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tetris.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg.normalized(), nil
		}
		cfg = DefaultTetrisConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrisYAML, &cfg); err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg.normalized(), nil
}

// normalized replaces unusable values with defaults.
func (c TetrisConfig) normalized() TetrisConfig {
	def := DefaultTetrisConfig()
	if c.Gameplay.FallIntervalMS <= 0 {
		c.Gameplay.FallIntervalMS = def.Gameplay.FallIntervalMS
	}
	if c.Gameplay.TickRate <= 0 {
		c.Gameplay.TickRate = def.Gameplay.TickRate
	}
	if c.Difficulty.Scaling.MinIntervalMS <= 0 {
		c.Difficulty.Scaling.MinIntervalMS = def.Difficulty.Scaling.MinIntervalMS
	}
	return c
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if ms := FallIntervalForPreset(preset); ms > 0 {
		cfg.Gameplay.FallIntervalMS = ms
	}
}
