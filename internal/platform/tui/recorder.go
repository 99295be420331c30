package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/registry"
	"github.com/vovakirdan/campus-guesser/internal/round"
	"github.com/vovakirdan/campus-guesser/internal/scoring"
	"github.com/vovakirdan/campus-guesser/internal/storage"
)

// HighScorer is implemented by games that show the stored best score.
type HighScorer interface {
	SetHighScore(score int)
}

// SessionReporter is implemented by games that expose their finished
// session for the history log.
type SessionReporter interface {
	Summary() (round.Summary, bool)
	CatalogName() string
}

// TrailExporter is implemented by games that can export their answer
// overlays as GeoJSON.
type TrailExporter interface {
	Trail() *geo.FeatureLayer
}

// Recorder persists finished games: the high score, the score history and
// the session log. Without a store the high score lives in memory only.
type Recorder struct {
	store      *storage.Store
	kv         scoring.KV
	logger     *log.Logger
	exportPath string
}

// NewRecorder creates a recorder. store may be nil.
func NewRecorder(store *storage.Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Recorder{store: store, logger: logger}
	if store != nil {
		r.kv = store
	} else {
		r.kv = scoring.NewMemoryKV()
	}
	return r
}

// SetExportPath makes Record write the answer overlays of every finished
// session to path as a GeoJSON FeatureCollection.
func (r *Recorder) SetExportPath(path string) {
	r.exportPath = path
}

// Store returns the backing store, which may be nil.
func (r *Recorder) Store() *storage.Store {
	return r.store
}

// LoadHighScore hands the stored best score to the game.
func (r *Recorder) LoadHighScore(game registry.Game) {
	hs, ok := game.(HighScorer)
	if !ok {
		return
	}
	best, err := scoring.LoadHighScore(r.kv)
	if err != nil {
		r.logger.Warn("cannot read high score", "err", err)
		return
	}
	hs.SetHighScore(best)
}

// Record stores the outcome of a finished game. Every step is attempted;
// the failures are joined.
func (r *Recorder) Record(game registry.Game, state core.GameState) error {
	var errs []error

	best, updated, err := scoring.RecordHighScore(r.kv, state.Score)
	if err != nil {
		errs = append(errs, err)
	} else if updated {
		r.logger.Info("new high score", "game", game.ID(), "score", best)
	}

	if r.store != nil && state.Score > 0 {
		if _, err := r.store.SaveScore(game.ID(), state.Score); err != nil {
			errs = append(errs, err)
		}
	}

	if rep, ok := game.(SessionReporter); ok && r.store != nil {
		if sum, ok := rep.Summary(); ok {
			id, err := r.store.SaveSession(sessionRecord(game.ID(), rep.CatalogName(), sum))
			if err != nil {
				errs = append(errs, err)
			} else {
				r.logger.Debug("session saved", "id", id, "reason", sum.Reason, "final", sum.FinalScore)
			}
		}
	}

	if exp, ok := game.(TrailExporter); ok && r.exportPath != "" {
		if err := writeTrail(r.exportPath, exp.Trail()); err != nil {
			errs = append(errs, err)
		}
	}

	err = errors.Join(errs...)
	if err != nil {
		r.logger.Warn("game not fully recorded", "game", game.ID(), "err", err)
	}
	return err
}

// sessionRecord converts a summary to its storage row.
func sessionRecord(gameID, catalogName string, sum round.Summary) storage.SessionRecord {
	rec := storage.SessionRecord{
		GameID:     gameID,
		Catalog:    catalogName,
		Reason:     sum.Reason.String(),
		Rounds:     sum.SessionLength,
		Correct:    sum.Score.CorrectCount,
		Points:     sum.Score.Points,
		Remaining:  sum.Score.RemainingSeconds,
		FinalScore: sum.FinalScore,
	}
	for _, res := range sum.Results {
		rec.Log = append(rec.Log, storage.RoundRecord{
			Round:      res.Round,
			Target:     res.Target.Name,
			Correct:    res.Correct,
			Hit:        res.Hit,
			MissMeters: res.MissMeters,
		})
	}
	return rec
}

func writeTrail(path string, layer *geo.FeatureLayer) error {
	if layer == nil {
		return nil
	}
	data, err := layer.MarshalJSON()
	if err != nil {
		return fmt.Errorf("tui: encode trail: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("tui: create trail directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("tui: write trail: %w", err)
	}
	return nil
}
