package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	TickRate   int   // Animation ticks per second (default 60)
	Seed       int64 // RNG seed, 0 means use current time in platform layer
	Animations bool  // Slide/pop animations between snapshots
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0,
		Animations: true,
	}
}

// GameState is the status the platform reads after each step.
type GameState struct {
	Score    int  // Current score
	MaxTile  int  // Highest tile on the board
	GameOver bool // Session reached a terminal state (stalled or won)
	Won      bool // Terminal state was reached by hitting the target tile
	Paused   bool // Paused or window too small
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
	Moved bool // A move changed the board during this step
}
