package campus

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-guesser/internal/config"
)

// configPath stores the custom config path set via CLI
var configPath string

// catalogPath stores the custom catalog path set via CLI
var catalogPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger is shared by every game instance created by the registry.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetCatalogPath sets the custom catalog path for loading.
func SetCatalogPath(path string) {
	catalogPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown or empty values
// leave the configured timer alone.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by new sessions.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}
