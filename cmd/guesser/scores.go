package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-guesser/internal/games/campus"
	"github.com/vovakirdan/campus-guesser/internal/registry"
	"github.com/vovakirdan/campus-guesser/internal/storage"
)

var (
	flagClear    bool
	flagSessions int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game (default: campus)
and the most recent sessions with their round log.

Examples:
  guesser scores
  guesser scores campus --sessions 3
  guesser scores campus --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores and sessions for the game")
	scoresCmd.Flags().IntVar(&flagSessions, "sessions", 5, "Number of recent sessions to show (0 to hide)")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := campus.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'guesser list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer closeStore(store)

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "game", gameID)
		fmt.Printf("Scores for %s cleared.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'guesser play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	if flagSessions > 0 {
		if err := printSessions(store, gameID, flagSessions); err != nil {
			return err
		}
	}
	return nil
}

func printSessions(store *storage.Store, gameID string, limit int) error {
	sessions, err := store.RecentSessions(gameID, limit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, s := range sessions {
		fmt.Println()
		fmt.Printf("  %s  %s  %d/%d correct  %d points  %ds left  final %d\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Reason, s.Correct, s.Rounds,
			s.Points, s.Remaining, s.FinalScore)

		rounds, err := store.SessionRounds(s.ID)
		if err != nil {
			return fmt.Errorf("retrieving rounds: %w", err)
		}
		for _, r := range rounds {
			switch {
			case r.Correct:
				fmt.Printf("    %d. %-40s correct\n", r.Round, r.Target)
			case r.Hit != "":
				fmt.Printf("    %d. %-40s picked %s, %.0f m off\n", r.Round, r.Target, r.Hit, r.MissMeters)
			default:
				fmt.Printf("    %d. %-40s missed by %.0f m\n", r.Round, r.Target, r.MissMeters)
			}
		}
	}
	return nil
}
