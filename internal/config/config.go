// Package config provides YAML-based game configuration loading, difficulty
// presets and environment overrides for the guesser.
package config

import (
	"errors"
	"fmt"
)

// CampusConfig contains all configuration for the campus guessing game.
type CampusConfig struct {
	Session SessionConfig `yaml:"session"`
	Timer   TimerConfig   `yaml:"timer"`
}

// SessionConfig controls how a session is drawn from the catalog.
type SessionConfig struct {
	Rounds    int    `yaml:"rounds"`
	Mandatory string `yaml:"mandatory"` // empty means the catalog's own choice
}

// TimerConfig controls the session countdown.
type TimerConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
	FinalFeedbackMs int `yaml:"final_feedback_ms"` // pause before a finished session closes
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks the values a session cannot run without.
func (c CampusConfig) Validate() error {
	if c.Session.Rounds < 1 {
		return fmt.Errorf("%w: session.rounds must be at least 1, got %d", ErrInvalidConfig, c.Session.Rounds)
	}
	if c.Timer.DurationSeconds < 1 {
		return fmt.Errorf("%w: timer.duration_seconds must be at least 1, got %d", ErrInvalidConfig, c.Timer.DurationSeconds)
	}
	if c.Timer.FinalFeedbackMs < 0 {
		return fmt.Errorf("%w: timer.final_feedback_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}
