package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-guesser/internal/games/campus"
	"github.com/vovakirdan/campus-guesser/internal/platform/tui"
	"github.com/vovakirdan/campus-guesser/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select game
  Tab             - Scoreboard
  Q               - Quit

Examples:
  guesser menu
  guesser menu --difficulty easy
  guesser menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to custom location catalog YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset: easy, normal, hard")
	menuCmd.Flags().StringVar(&flagGeoJSON, "geojson", "", "Write the answer overlays of each finished session to this GeoJSON file")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(flagDifficulty); err != nil {
		return err
	}

	store := openStore()
	defer closeStore(store)

	recorder := tui.NewRecorder(store, logger)
	recorder.SetExportPath(flagGeoJSON)

	cfg := runtimeConfig()
	difficulty := flagDifficulty

	for {
		menuResult, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}

		// Keep size changes and the chosen difficulty across rounds
		cfg = menuResult.Config
		difficulty = string(menuResult.Difficulty)

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, campus.GameID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}
		if err := applyGameFlags(difficulty); err != nil {
			return err
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh seed for each game unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		outcome, err := tui.Run(game, recorder, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			continue
		}
		if outcome.Quit {
			return nil
		}
	}
}
