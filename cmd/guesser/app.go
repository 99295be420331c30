package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/storage"
)

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without it, so a
// failure only warns and returns nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		warn("could not open scores database", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("close scores database", "err", err)
	}
}
