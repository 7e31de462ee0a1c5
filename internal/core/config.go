package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed; 0 means time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary the game reports to the platform after a step.
type GameState struct {
	Balance int  // Coins available
	InGame  bool // A bet is in play
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}
