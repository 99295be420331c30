// guesser is a terminal campus map game: find the named building on a
// blind map before the clock runs out.
//
// Usage:
//
//	guesser list              - List available games
//	guesser play <game>       - Play a game
//	guesser menu              - Start menu to pick games interactively
//	guesser scores <game>     - Show high scores and recent sessions
//	guesser catalog           - Show the buildings of a catalog
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30, env GUESSER_FPS)
//	--seed <value>        - Set RNG seed for reproducible sessions (env GUESSER_SEED)
//	--db <path>           - Set database path (default: ~/.guesser/scores.db, env GUESSER_DB)
//	--log-file <path>     - Set log file, "-" for stderr (default: ~/.guesser/guesser.log)
//	--log-level <level>   - debug, info, warn or error (env GUESSER_LOG_LEVEL)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/campus-guesser/internal/config"
	"github.com/vovakirdan/campus-guesser/internal/games/campus"
	"github.com/vovakirdan/campus-guesser/internal/logging"
)

const (
	defaultDBPath  = "~/.guesser/scores.db"
	defaultLogPath = "~/.guesser/guesser.log"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string

	// envErr is reported once the command runs, so --help still works
	envErr error

	logger   = logging.Discard()
	closeLog = func() error { return nil }
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "guesser",
	Short: "Campus Guesser - find campus buildings on a blind map",
	Long: `Campus Guesser asks for one campus building per round. Move the
crosshair over the blind map and press Space where you think it is.
Every correct answer is worth 100 points and unused seconds are added
as a bonus, unless you quit early.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  scores   - View high scores and recent sessions
  catalog  - Show or export the buildings of a catalog

Examples:
  guesser play campus
  guesser play campus --difficulty hard
  guesser menu
  guesser scores campus --sessions
  guesser catalog --geojson > csun.geojson`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	env, err := config.LoadEnv()
	if err != nil {
		envErr = err
		env = config.Env{FPS: 30, LogLevel: "info"}
	}
	if env.DB == "" {
		env.DB = defaultDBPath
	}
	if env.LogFile == "" {
		env.LogFile = defaultLogPath
	}

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DB, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", env.LogFile, `Log file ("-" for stderr, "" to disable)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(catalogCmd)
}

// setup validates the global flags and opens the log.
func setup(cmd *cobra.Command, _ []string) error {
	if envErr != nil {
		return envErr
	}
	if flagFPS < 1 || flagFPS > 240 {
		return fmt.Errorf("--fps must be between 1 and 240, got %d", flagFPS)
	}

	l, closer, err := logging.New(logging.Options{
		Path:   flagLogFile,
		Level:  flagLogLevel,
		Prefix: "guesser",
	})
	if err != nil {
		return err
	}
	logger, closeLog = l, closer
	campus.SetLogger(logger.WithPrefix("campus"))

	logger.Debug("command started", "cmd", cmd.Name(), "fps", flagFPS, "seed", flagSeed, "db", flagDBPath)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return closeLog()
}

// warn prints a non-fatal problem to stderr and the log.
func warn(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", msg, err)
	logger.Warn(msg, "err", err)
}
