package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(defaultTetrisYAML, &cfg))
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("gameplay:\n  fall_interval_ms: 250\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Gameplay.FallIntervalMS)
	// Unset keys keep their defaults.
	assert.Equal(t, 60, cfg.Gameplay.TickRate)
	assert.False(t, cfg.Difficulty.Enabled)
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTetrisInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gameplay: [1, 2"), 0o644))

	_, err := LoadTetris(path)
	assert.Error(t, err)
}

func TestLoadTetrisNormalizesNonPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.yaml")
	data := []byte("gameplay:\n  fall_interval_ms: 0\n  tick_rate: -5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Gameplay.FallIntervalMS)
	assert.Equal(t, 60, cfg.Gameplay.TickRate)
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		enabled    bool
		intervalMS int
	}{
		{"", false, 500},
		{DifficultyEasy, true, 1000},
		{DifficultyNormal, true, 500},
		{DifficultyHard, true, 300},
		{DifficultyFixed, false, 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, tt.preset)
			assert.Equal(t, tt.enabled, cfg.Difficulty.Enabled)
			assert.Equal(t, tt.intervalMS, cfg.Gameplay.FallIntervalMS)
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		_, ok := ParsePreset(name)
		assert.True(t, ok, name)
	}
	_, ok := ParsePreset("nightmare")
	assert.False(t, ok)
}

func TestGetDefaultYAML(t *testing.T) {
	assert.NotEmpty(t, GetDefaultYAML("tetris"))
	assert.NotEmpty(t, GetDefaultYAML("tetris_classic"))
	assert.Nil(t, GetDefaultYAML("snake"))
}

func TestFallIntervalFixedWhenDisabled(t *testing.T) {
	dm := NewDifficultyManager(DefaultTetrisConfig().Difficulty)
	base := 500 * time.Millisecond
	assert.Equal(t, base, dm.FallInterval(base, 0))
	assert.Equal(t, base, dm.FallInterval(base, 100000))
}

func TestFallIntervalShrinksWithScore(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	cfg.Enabled = true
	dm := NewDifficultyManager(cfg)
	base := 500 * time.Millisecond

	start := dm.FallInterval(base, 0)
	mid := dm.FallInterval(base, 500)
	end := dm.FallInterval(base, 1000)

	assert.Equal(t, base, start)
	assert.Less(t, mid, start)
	assert.Less(t, end, mid)
	// speed 3x at max difficulty
	assert.InDelta(t, float64(base)/3, float64(end), float64(time.Millisecond))
}

func TestFallIntervalFloor(t *testing.T) {
	cfg := DefaultTetrisConfig().Difficulty
	cfg.Enabled = true
	cfg.Scaling.SpeedMultiplier = 100
	dm := NewDifficultyManager(cfg)

	assert.Equal(t, 100*time.Millisecond, dm.FallInterval(500*time.Millisecond, 1000))
}

func TestLevelInterpolation(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	}
	dm := NewDifficultyManager(cfg)
	assert.InDelta(t, 0.5, dm.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.75, dm.Level(0, 50), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(0, 500), 1e-9)

	dm.SetEnabled(false)
	assert.InDelta(t, 0.5, dm.Level(0, 50), 1e-9)
}
