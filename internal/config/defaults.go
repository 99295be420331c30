package config

import (
	_ "embed"
)

//go:embed defaults/campus.yaml
var defaultCampusYAML []byte

// DefaultCampusConfig returns the hardcoded campus configuration.
func DefaultCampusConfig() CampusConfig {
	return CampusConfig{
		Session: SessionConfig{
			Rounds: 5,
		},
		Timer: TimerConfig{
			DurationSeconds: 60,
			FinalFeedbackMs: 1000,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "campus":
		return defaultCampusYAML
	default:
		return nil
	}
}
