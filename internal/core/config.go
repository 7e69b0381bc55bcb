package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// FallIntervalMS is the gravity cadence in milliseconds.
	// Zero lets the game pick its default.
	FallIntervalMS int
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       60,
		Seed:           0, // 0 means use current time in platform layer
		FallIntervalMS: 500,
	}
}

// TicksPer converts a duration in milliseconds into a whole number of
// simulation ticks at the configured tick rate. Never returns less than 1.
func (c RuntimeConfig) TicksPer(ms int) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticks := ms * rate / 1000
	if ticks < 1 {
		return 1
	}
	return ticks
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// Recording captures enough of a finished session to replay it exactly:
// the RNG seed and the ordered commands that were applied.
type Recording struct {
	Seed     int64
	Commands []string
	Score    int
	Lines    int
}
