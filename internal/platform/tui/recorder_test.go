package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/round"
	"github.com/vovakirdan/campus-guesser/internal/scoring"
	"github.com/vovakirdan/campus-guesser/internal/storage"
)

// fakeGame ends after a fixed number of steps with a canned summary.
type fakeGame struct {
	steps     int
	endAfter  int
	best      int
	resets    int
	resized   [2]int
	summary   round.Summary
	trail     *geo.FeatureLayer
	lastInput core.InputFrame
}

func newFakeGame(endAfter int) *fakeGame {
	citrus := geo.NewRect("Citrus Hall",
		geo.LatLng{Lat: 34.239166, Lng: -118.528667},
		geo.LatLng{Lat: 34.238891, Lng: -118.527498})
	trail := geo.NewFeatureLayer()
	trail.DrawRegion(geo.PolygonOf(citrus), geo.CorrectStyle)

	return &fakeGame{
		endAfter: endAfter,
		trail:    trail,
		summary: round.Summary{
			Reason:        round.ReasonCompleted,
			Score:         scoring.State{CorrectCount: 1, Points: 100, RemainingSeconds: 42},
			SessionLength: 1,
			FinalScore:    142,
			Results: []round.Result{
				{Round: 1, Target: citrus, Correct: true, Hit: "Citrus Hall"},
			},
		},
	}
}

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *fakeGame) ID() string                     { return "fake" }
func (g *fakeGame) Title() string                  { return "Fake" }
func (g *fakeGame) Render(dst *core.Screen)        { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) SetHighScore(score int)         { g.best = score }
func (g *fakeGame) Summary() (round.Summary, bool) { return g.summary, g.over() }
func (g *fakeGame) CatalogName() string            { return "CSUN" }
func (g *fakeGame) Trail() *geo.FeatureLayer       { return g.trail }
func (g *fakeGame) Resize(w, h int)                { g.resized = [2]int{w, h} }
func (g *fakeGame) over() bool                     { return g.steps >= g.endAfter }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastInput = core.NewInputFrame()
	for a := range in.Actions {
		g.lastInput.Set(a)
	}
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) State() core.GameState {
	if g.over() {
		return core.GameState{Score: g.summary.FinalScore, GameOver: true}
	}
	return core.GameState{}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecorderRecord(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder(store, nil)
	exportPath := filepath.Join(t.TempDir(), "out", "trail.geojson")
	rec.SetExportPath(exportPath)

	g := newFakeGame(0)
	if err := rec.Record(g, g.State()); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	best, err := scoring.LoadHighScore(store)
	if err != nil || best != 142 {
		t.Errorf("high score = %d, %v; want 142", best, err)
	}
	if hs, _ := store.HighScore("fake"); hs != 142 {
		t.Errorf("score history best = %d, want 142", hs)
	}

	sessions, err := store.RecentSessions("fake", 5)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("sessions = %+v, %v", sessions, err)
	}
	s := sessions[0]
	if s.Reason != "completed" || s.Catalog != "CSUN" || s.FinalScore != 142 || s.Remaining != 42 {
		t.Errorf("session = %+v", s)
	}
	rounds, _ := store.SessionRounds(s.ID)
	if len(rounds) != 1 || rounds[0].Target != "Citrus Hall" || !rounds[0].Correct {
		t.Errorf("rounds = %+v", rounds)
	}

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("trail not written: %v", err)
	}
	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("trail is not JSON: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Errorf("trail = %s", data)
	}
}

func TestRecorderKeepsHigherScore(t *testing.T) {
	store := openStore(t)
	if err := store.Set(scoring.HighScoreKey, "500"); err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(store, nil)

	g := newFakeGame(0)
	if err := rec.Record(g, g.State()); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if best, _ := scoring.LoadHighScore(store); best != 500 {
		t.Errorf("high score = %d, want 500 kept", best)
	}

	rec.LoadHighScore(g)
	if g.best != 500 {
		t.Errorf("game high score = %d, want 500", g.best)
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, nil)
	g := newFakeGame(0)

	if err := rec.Record(g, g.State()); err != nil {
		t.Fatalf("Record() without store failed: %v", err)
	}
	rec.LoadHighScore(g)
	if g.best != 142 {
		t.Errorf("in-memory high score = %d, want 142", g.best)
	}
	if rec.Store() != nil {
		t.Error("Store() should be nil")
	}
}
