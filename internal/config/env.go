package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. They act as defaults for
// the matching command-line flags.
type Env struct {
	DB       string `env:"GUESSER_DB"`
	FPS      int    `env:"GUESSER_FPS" envDefault:"30"`
	Seed     int64  `env:"GUESSER_SEED" envDefault:"0"`
	LogFile  string `env:"GUESSER_LOG_FILE"`
	LogLevel string `env:"GUESSER_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the GUESSER_* variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
