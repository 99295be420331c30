package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use it to lay out the screen and to seed their random source.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: 30,
		Seed:     0,
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score    int  // Current (or final, once GameOver) score
	GameOver bool // Whether the session has ended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
