package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level. Difficulty only
// changes how much time a session gets.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted presets, easiest first.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// DurationForPreset returns the countdown length in seconds for a preset.
func DurationForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 90
	case DifficultyHard:
		return 30
	default:
		return 60
	}
}

// ApplyPreset overrides the timer of cfg with the preset's duration.
func ApplyPreset(cfg *CampusConfig, preset DifficultyPreset) {
	cfg.Timer.DurationSeconds = DurationForPreset(preset)
}
