package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-guesser/internal/config"
	"github.com/vovakirdan/campus-guesser/internal/games/campus"
	"github.com/vovakirdan/campus-guesser/internal/platform/tui"
	"github.com/vovakirdan/campus-guesser/internal/registry"
)

var (
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
	flagGeoJSON    string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: campus).

Controls:
  Arrows/WASD/HJKL  - Move the crosshair (Shift for bigger steps)
  Space             - Guess the building under the crosshair
  Enter             - Start / next question / play again
  X                 - Quit the session early (no time bonus)
  R                 - Restart after game over
  B/Esc             - Back to the menu
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - 90 seconds
  normal  - 60 seconds
  hard    - 30 seconds

Examples:
  guesser play
  guesser play campus --difficulty hard
  guesser play campus --config ./campus.yaml --catalog ./my-campus.yaml
  guesser play campus --geojson ./last-session.geojson`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to custom location catalog YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagGeoJSON, "geojson", "", "Write the answer overlays of each finished session to this GeoJSON file")
}

// applyGameFlags hands the per-game flags to the campus package before a
// game instance is created.
func applyGameFlags(difficulty string) error {
	if _, err := config.ParsePreset(difficulty); err != nil {
		return err
	}
	campus.SetConfigPath(flagConfig)
	campus.SetCatalogPath(flagCatalog)
	campus.SetDifficultyPreset(difficulty)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := campus.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'guesser list' to see available games", gameID)
	}
	if err := applyGameFlags(flagDifficulty); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	defer closeStore(store)

	recorder := tui.NewRecorder(store, logger)
	recorder.SetExportPath(flagGeoJSON)

	if _, err := tui.Run(game, recorder, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
