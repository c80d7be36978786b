package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Profile holds the player's settings and career totals. The zero value
	// means "use DefaultProfile".
	Profile Profile
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  32,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Profile:  DefaultProfile(""),
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current game score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Won      bool // Set with GameOver when the round counted as a win
	Lines    int  // Lines cleared this game
	Level    int  // Current fall rate
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Locked is true when the active piece merged into the board this tick.
	Locked bool
	// Cleared is the number of lines cleared this tick.
	Cleared int
}
