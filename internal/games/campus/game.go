// Package campus is the playable map game: it shows a blind map of the
// campus, asks for one building per round and judges where the crosshair
// lands.
package campus

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-guesser/internal/catalog"
	"github.com/vovakirdan/campus-guesser/internal/config"
	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/registry"
	"github.com/vovakirdan/campus-guesser/internal/round"
	"github.com/vovakirdan/campus-guesser/internal/selector"
	"github.com/vovakirdan/campus-guesser/internal/timer"
)

// GameID is the registry and storage identifier.
const GameID = "campus"

// Game states
const (
	StateReady   = "ready"    // Map shown, waiting for Enter
	StatePlaying = "playing"  // Session running
	StateClosing = "closing"  // Last answer shown, session about to close
	StateOver    = "gameover" // Summary shown
	StateError   = "error"    // Session could not be built
)

// Minimum screen size
const (
	MinScreenW = 60
	MinScreenH = 16
)

// Cursor steps per key press
const (
	cursorStep      = 1
	cursorFastStepX = 4
	cursorFastStepY = 2
)

// Settings pins the game to a config and catalog instead of loading them.
type Settings struct {
	Config  *config.CampusConfig
	Catalog *catalog.Catalog
}

// feedLine is one entry of the game log sidebar.
type feedLine struct {
	text  string
	color core.Color
}

// Game implements the campus guessing game.
type Game struct {
	fixed  Settings
	logger *log.Logger

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.CampusConfig
	catalog *catalog.Catalog

	// Session machinery, rebuilt for every session
	rng        *rand.Rand
	index      *geo.Index
	sched      *timer.LoopScheduler
	countdown  *timer.Countdown
	engine     *round.Engine
	stopClose  func()
	sessions   int
	summary    round.Summary
	hasSummary bool
	err        error

	// Map
	proj      Projection
	grid      buildingGrid
	surface   *MapSurface
	trail     *geo.FeatureLayer
	overlay   geo.Handle
	cursor    core.Point
	mapFrame  core.Rect
	sideFrame core.Rect

	state          string
	feed           []feedLine
	highScore      int
	newBest        bool
	screenTooSmall bool
}

// New creates a game that loads its config and catalog on Reset.
func New() *Game {
	return &Game{}
}

// NewWithSettings creates a game bound to the given config and catalog.
// Nil fields are loaded as usual.
func NewWithSettings(s Settings) *Game {
	return &Game{fixed: s}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Campus Guesser"
}

// Description is shown in the menu.
func (g *Game) Description() string {
	return "Find campus buildings on a blind map before time runs out"
}

// Reset loads settings, lays out the map and waits for the first session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = logger
	g.cfg = g.loadConfig()
	g.catalog = g.loadCatalog()

	g.rng = rand.New(rand.NewSource(runtime.Seed)) //nolint:gosec // game randomness, seeded for replay
	g.index = geo.NewIndex(g.catalog.Regions)
	g.layout()

	g.sched = timer.NewLoopScheduler()
	g.countdown = timer.New(g.sched, timer.WithLogger(g.logger))
	g.engine = round.New()
	g.stopClose = nil
	g.sessions = 0
	g.summary = round.Summary{}
	g.hasSummary = false
	g.err = nil
	g.newBest = false

	g.surface = NewMapSurface(g.proj)
	g.trail = geo.NewFeatureLayer()
	g.overlay = 0
	g.cursor = g.proj.Cell(g.catalog.Center)

	g.feed = g.feed[:0]
	g.addLine("Press Enter to start.", core.ColorGray)
	g.state = StateReady
}

func (g *Game) loadConfig() config.CampusConfig {
	if g.fixed.Config != nil {
		cfg := *g.fixed.Config
		if err := cfg.Validate(); err == nil {
			return cfg
		}
		g.logger.Warn("invalid campus config, using defaults")
		return config.DefaultCampusConfig()
	}

	// Load game config
	cfg, src, err := config.LoadCampus(configPath)
	if err != nil {
		g.logger.Warn("campus config not loaded, using defaults", "err", err)
		cfg = config.DefaultCampusConfig()
	} else {
		g.logger.Debug("campus config loaded", "source", src)
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) loadCatalog() *catalog.Catalog {
	if g.fixed.Catalog != nil {
		return g.fixed.Catalog
	}
	cat, src, err := catalog.Load(catalogPath)
	if err != nil {
		g.logger.Warn("catalog not loaded, using built-in campus", "err", err)
		return catalog.Default()
	}
	g.logger.Debug("catalog loaded", "name", cat.Name, "source", src, "regions", cat.Len())
	return cat
}

// layout splits the screen into the map and the game log.
func (g *Game) layout() {
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	g.screenTooSmall = w < MinScreenW || h < MinScreenH

	side := core.Clamp(w/3, 24, 36)
	g.mapFrame = core.NewRect(0, 2, w-side, h-3)
	g.sideFrame = core.NewRect(w-side, 2, side, h-3)
	g.proj = NewProjection(g.mapFrame.Inset(1), geo.BoundOf(g.catalog.Regions))
	g.grid = newBuildingGrid(g.catalog.Regions, g.proj)
}

// Resize lays the map out for a new screen size without ending the
// session. The crosshair keeps its coordinate.
func (g *Game) Resize(w, h int) {
	if w == g.runtime.ScreenW && h == g.runtime.ScreenH {
		return
	}
	at := g.proj.LatLng(g.cursor)
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.layout()
	g.cursor = g.proj.Cell(at)

	g.surface = NewMapSurface(g.proj)
	g.overlay = 0
	if g.state == StateReady || g.state == StateError || !g.engine.Locked() {
		return
	}
	if res, ok := g.engine.LastResult(); ok {
		g.overlay = g.surface.DrawRegion(geo.PolygonOf(res.Target), geo.StyleFor(res.Correct))
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.state {
	case StateReady:
		g.moveCursor(in)
		if in.Has(core.ActionConfirm) {
			g.startSession()
		}

	case StateOver, StateError:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.startSession()
		}

	case StatePlaying:
		g.moveCursor(in)
		switch {
		case in.Has(core.ActionAbandon):
			_ = g.engine.Abandon()
		case in.Has(core.ActionGuess):
			g.guess()
		case in.Has(core.ActionConfirm):
			g.advance()
		}
	}

	g.sched.Advance(g.runtime.TickDuration())
	return core.StepResult{State: g.State()}
}

// moveCursor moves the crosshair inside the map.
func (g *Game) moveCursor(in core.InputFrame) {
	stepX, stepY := cursorStep, cursorStep
	if in.Has(core.ActionFast) {
		stepX, stepY = cursorFastStepX, cursorFastStepY
	}

	var dx, dy int
	if in.Has(core.ActionLeft) {
		dx -= stepX
	}
	if in.Has(core.ActionRight) {
		dx += stepX
	}
	if in.Has(core.ActionUp) {
		dy -= stepY
	}
	if in.Has(core.ActionDown) {
		dy += stepY
	}
	if dx != 0 || dy != 0 {
		g.cursor = g.proj.Area().ClampPoint(g.cursor.Add(dx, dy))
	}
}

// startSession draws a new session and starts its countdown.
func (g *Game) startSession() {
	g.clearOverlay()
	g.feed = g.feed[:0]
	g.summary = round.Summary{}
	g.hasSummary = false
	g.newBest = false
	g.err = nil

	mandatory := g.cfg.Session.Mandatory
	if mandatory == "" {
		mandatory = g.catalog.Mandatory
	}
	session, err := selector.Build(g.catalog.Regions, mandatory, g.cfg.Session.Rounds, g.rng)
	if err != nil {
		g.fail(err)
		return
	}

	g.sched = timer.NewLoopScheduler()
	g.countdown = timer.New(g.sched, timer.WithLogger(g.logger))
	g.stopClose = nil
	g.engine = round.New(
		round.WithLogger(g.logger),
		round.WithIndex(g.index),
		round.OnResult(g.onResult),
		round.OnFinish(g.onFinish),
	)
	if err := g.engine.Start(session); err != nil {
		g.fail(err)
		return
	}

	g.sessions++
	g.trail = geo.NewFeatureLayer()
	g.cursor = g.proj.Cell(g.catalog.Center)
	g.state = StatePlaying

	_ = g.engine.SetRemaining(g.cfg.Timer.DurationSeconds)
	g.countdown.Start(g.cfg.Timer.DurationSeconds, g.onTick, g.onExpire)

	g.logger.Info("session started",
		"session", g.sessions,
		"catalog", g.catalog.Name,
		"rounds", g.engine.SessionLength(),
		"seconds", g.cfg.Timer.DurationSeconds)
	g.ask()
}

func (g *Game) fail(err error) {
	g.err = err
	g.state = StateError
	g.logger.Error("cannot start session", "err", err)
	g.addLine("Cannot start a session.", core.ColorBrightRed)
}

// ask logs the question for the current round.
func (g *Game) ask() {
	g.addLine(round.Prompt(g.engine.TargetName()), core.ColorBrightWhite)
}

// guess submits the point under the crosshair.
func (g *Game) guess() {
	_, _ = g.engine.SubmitGuess(g.guessPoint())
}

// guessPoint is the coordinate under the crosshair. A building too small
// to cover any cell center is drawn on its centroid's cell, so that cell
// answers with the centroid.
func (g *Game) guessPoint() geo.LatLng {
	point := g.proj.LatLng(g.cursor)
	if i := g.grid.At(g.cursor); i >= 0 {
		r := g.catalog.Regions[i]
		if !geo.Contains(r, point) {
			return geo.Centroid(r)
		}
	}
	return point
}

// advance moves to the next round once feedback is showing.
func (g *Game) advance() {
	if !g.engine.Locked() {
		return
	}
	if err := g.engine.Advance(); err != nil {
		return
	}
	if g.engine.State() == round.InProgress {
		g.clearOverlay()
		g.ask()
	}
}

func (g *Game) onResult(res round.Result) {
	polygon := geo.PolygonOf(res.Target)
	style := geo.StyleFor(res.Correct)
	g.overlay = g.surface.DrawRegion(polygon, style)
	g.trail.DrawRegion(polygon, style)

	if res.Correct {
		g.addLine(res.Verdict(), core.ColorBrightGreen)
	} else {
		g.addLine(res.Verdict(), core.ColorBrightRed)
		g.addLine(res.Detail(), core.ColorGray)
	}

	if res.Round < g.engine.SessionLength() {
		g.addLine("Press Enter for the next one.", core.ColorDarkGray)
		return
	}

	// Last answer: freeze the clock and close after a short pause
	g.countdown.Stop()
	g.state = StateClosing
	delay := time.Duration(g.cfg.Timer.FinalFeedbackMs) * time.Millisecond
	g.stopClose = g.sched.AfterFunc(delay, func() {
		g.stopClose = nil
		_ = g.engine.Advance()
	})
}

func (g *Game) onTick(remaining int) {
	_ = g.engine.SetRemaining(remaining)
}

func (g *Game) onExpire() {
	_ = g.engine.Expire()
}

func (g *Game) onFinish(sum round.Summary) {
	g.countdown.Stop()
	if g.stopClose != nil {
		g.stopClose()
		g.stopClose = nil
	}

	g.summary = sum
	g.hasSummary = true
	g.state = StateOver
	if sum.FinalScore > g.highScore {
		g.highScore = sum.FinalScore
		g.newBest = true
	}

	color := core.ColorBrightYellow
	if sum.Reason != round.ReasonCompleted {
		color = core.ColorBrightRed
	}
	g.addLine(sum.Reason.Headline(), color)
	g.addLine(sum.Line(), core.ColorBrightWhite)
}

// clearOverlay removes the feedback polygon from the map.
func (g *Game) clearOverlay() {
	if g.overlay != 0 {
		g.surface.RemoveRegion(g.overlay)
		g.overlay = 0
	}
}

func (g *Game) addLine(text string, color core.Color) {
	g.feed = append(g.feed, feedLine{text: text, color: color})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.engine.Points()
	if g.hasSummary {
		score = g.summary.FinalScore
	}
	return core.GameState{
		Score:    score,
		GameOver: g.state == StateOver,
	}
}

// SetHighScore seeds the best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = max(score, 0)
}

// HighScore returns the best score seen by this game.
func (g *Game) HighScore() int {
	return g.highScore
}

// Summary returns the summary of the last finished session.
func (g *Game) Summary() (round.Summary, bool) {
	return g.summary, g.hasSummary
}

// CatalogName names the catalog being played.
func (g *Game) CatalogName() string {
	if g.catalog == nil {
		return ""
	}
	return g.catalog.Name
}

// Trail returns every answer overlay of the current session as GeoJSON
// features.
func (g *Game) Trail() *geo.FeatureLayer {
	return g.trail
}

// Err returns why the last session could not start.
func (g *Game) Err() error {
	return g.err
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
