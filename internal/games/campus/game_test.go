package campus

import (
	"strings"
	"testing"

	"github.com/vovakirdan/campus-guesser/internal/catalog"
	"github.com/vovakirdan/campus-guesser/internal/config"
	"github.com/vovakirdan/campus-guesser/internal/core"
	"github.com/vovakirdan/campus-guesser/internal/round"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: 10,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg := config.DefaultCampusConfig()
	g := NewWithSettings(Settings{Config: &cfg, Catalog: catalog.Default()})
	g.Reset(testRuntime(seed))
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.FrameOf(actions...))
}

// cellOf finds a map cell drawn for the named building.
func cellOf(t *testing.T, g *Game, name string) core.Point {
	t.Helper()
	area := g.proj.Area()
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			c := core.Point{X: x, Y: y}
			if i := g.grid.At(c); i >= 0 && g.catalog.Regions[i].Name == name {
				return c
			}
		}
	}
	t.Fatalf("no map cell for %q", name)
	return core.Point{}
}

// otherThan returns a catalog building that is not name.
func otherThan(g *Game, name string) string {
	for _, r := range g.catalog.Regions {
		if r.Name != name {
			return r.Name
		}
	}
	return ""
}

func TestGameDeterminism(t *testing.T) {
	inputs := []core.InputFrame{core.FrameOf(core.ActionConfirm)}
	for i := range 120 {
		switch {
		case i%10 == 3:
			inputs = append(inputs, core.FrameOf(core.ActionGuess))
		case i%10 == 6:
			inputs = append(inputs, core.FrameOf(core.ActionConfirm))
		case i%3 == 0:
			inputs = append(inputs, core.FrameOf(core.ActionRight, core.ActionFast))
		case i%3 == 1:
			inputs = append(inputs, core.FrameOf(core.ActionUp))
		default:
			inputs = append(inputs, core.NewInputFrame())
		}
	}

	g1 := newTestGame(t, 7)
	g2 := newTestGame(t, 7)
	for i, in := range inputs {
		g1.Step(in)
		g2.Step(in)
		if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
			t.Fatalf("step %d: snapshots differ\n%+v\n%+v", i, s1, s2)
		}
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 1)

	snap := g.Snapshot()
	if snap.State != StateReady {
		t.Errorf("state = %q, want %q", snap.State, StateReady)
	}
	if snap.Round != 0 || snap.Rounds != 0 {
		t.Errorf("round %d/%d before start, want 0/0", snap.Round, snap.Rounds)
	}
	if g.State().GameOver {
		t.Error("game over right after reset")
	}
	if !g.proj.Area().Contains(g.cursor.X, g.cursor.Y) {
		t.Errorf("cursor %+v outside map %+v", g.cursor, g.proj.Area())
	}
}

func TestGameStartsOnEnter(t *testing.T) {
	g := newTestGame(t, 1)

	step(g, core.ActionGuess)
	if g.state != StateReady {
		t.Fatalf("guess started the game: state %q", g.state)
	}

	step(g, core.ActionConfirm)
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %q, want %q", snap.State, StatePlaying)
	}
	if snap.Round != 1 || snap.Rounds != 5 {
		t.Errorf("round %d/%d, want 1/5", snap.Round, snap.Rounds)
	}
	if snap.Remaining != 60 {
		t.Errorf("remaining = %d, want 60", snap.Remaining)
	}
	if last := g.feed[len(g.feed)-1].text; last != round.Prompt(snap.Target) {
		t.Errorf("last log line = %q, want the question", last)
	}
}

func TestGameFullSession(t *testing.T) {
	g := newTestGame(t, 3)
	step(g, core.ActionConfirm)

	for i := 1; i <= 5; i++ {
		g.cursor = cellOf(t, g, g.engine.TargetName())
		step(g, core.ActionGuess)

		snap := g.Snapshot()
		if snap.Correct != i {
			t.Fatalf("round %d: correct = %d", i, snap.Correct)
		}
		if snap.Overlays != 1 {
			t.Fatalf("round %d: overlays = %d, want 1", i, snap.Overlays)
		}
		if i < 5 {
			step(g, core.ActionConfirm)
			if got := g.Snapshot(); got.Round != i+1 || got.Overlays != 0 || got.Locked {
				t.Fatalf("after advance: %+v", got)
			}
		}
	}

	if g.state != StateClosing {
		t.Fatalf("state after last answer = %q, want %q", g.state, StateClosing)
	}
	for range 8 {
		step(g)
	}
	if g.state != StateClosing {
		t.Fatalf("session closed before the feedback pause ended")
	}
	res := step(g)
	if !res.State.GameOver {
		t.Fatalf("session not closed after the feedback pause: %q", g.state)
	}

	sum, ok := g.Summary()
	if !ok {
		t.Fatal("no summary")
	}
	if sum.Reason != round.ReasonCompleted {
		t.Errorf("reason = %v, want completed", sum.Reason)
	}
	if sum.Score.RemainingSeconds != 60 {
		t.Errorf("remaining = %d, want the clock frozen at 60", sum.Score.RemainingSeconds)
	}
	if sum.FinalScore != 560 || res.State.Score != 560 {
		t.Errorf("final = %d (state %d), want 560", sum.FinalScore, res.State.Score)
	}
	if g.Trail().Len() != 5 {
		t.Errorf("trail has %d features, want 5", g.Trail().Len())
	}
}

func TestGameWrongGuess(t *testing.T) {
	g := newTestGame(t, 4)
	step(g, core.ActionConfirm)

	target := g.engine.TargetName()
	clicked := otherThan(g, target)
	g.cursor = cellOf(t, g, clicked)
	step(g, core.ActionGuess)

	res, ok := g.engine.LastResult()
	if !ok {
		t.Fatal("no result")
	}
	if res.Correct {
		t.Fatal("guess on another building judged correct")
	}
	if res.Hit != clicked {
		t.Errorf("hit = %q, want %q", res.Hit, clicked)
	}
	if g.Snapshot().Points != 0 {
		t.Errorf("points = %d, want 0", g.Snapshot().Points)
	}

	var sawVerdict bool
	for _, l := range g.feed {
		if l.text == "Sorry wrong location." {
			sawVerdict = true
			if l.color != core.ColorBrightRed {
				t.Errorf("verdict color = %v, want bright red", l.color)
			}
		}
	}
	if !sawVerdict {
		t.Error("log has no wrong-answer line")
	}

	scr := core.NewScreen(100, 30)
	g.Render(scr)
	var red int
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if c := scr.GetCell(x, y); c.Rune == OverlayChar && c.Color == core.ColorBrightRed {
				red++
			}
		}
	}
	if red == 0 {
		t.Error("no red overlay drawn for a wrong answer")
	}
}

func TestGameOpenGroundGuess(t *testing.T) {
	g := newTestGame(t, 5)
	step(g, core.ActionConfirm)

	area := g.proj.Area()
	g.cursor = core.Point{X: area.X, Y: area.Y}
	if g.grid.At(g.cursor) >= 0 {
		t.Skip("map corner is covered by a building")
	}
	step(g, core.ActionGuess)

	res, _ := g.engine.LastResult()
	if res.Correct || res.Hit != "" {
		t.Errorf("open ground result = %+v", res)
	}
	if res.MissMeters <= 0 {
		t.Errorf("miss = %f, want > 0", res.MissMeters)
	}
	if !strings.HasPrefix(res.Detail(), "Missed by") {
		t.Errorf("detail = %q", res.Detail())
	}
}

func TestGameSecondGuessIgnored(t *testing.T) {
	g := newTestGame(t, 6)
	step(g, core.ActionConfirm)

	g.cursor = cellOf(t, g, g.engine.TargetName())
	step(g, core.ActionGuess)
	step(g, core.ActionGuess)

	if n := len(g.engine.Results()); n != 1 {
		t.Errorf("results = %d, want 1", n)
	}
	if c := g.Snapshot().Correct; c != 1 {
		t.Errorf("correct = %d, want 1", c)
	}
}

func TestGameAbandon(t *testing.T) {
	g := newTestGame(t, 8)
	step(g, core.ActionConfirm)

	g.cursor = cellOf(t, g, g.engine.TargetName())
	step(g, core.ActionGuess)
	step(g, core.ActionConfirm)
	res := step(g, core.ActionAbandon)

	if !res.State.GameOver {
		t.Fatal("abandon did not end the game")
	}
	snap := g.Snapshot()
	if snap.Reason != "abandoned" {
		t.Errorf("reason = %q, want abandoned", snap.Reason)
	}
	if snap.FinalScore != 100 {
		t.Errorf("final = %d, want 100 with no bonus", snap.FinalScore)
	}
	if g.sched.Pending() != 0 {
		t.Errorf("%d callbacks still scheduled", g.sched.Pending())
	}

	scr := core.NewScreen(100, 30)
	g.Render(scr)
	if !strings.Contains(scr.String(), "No Bonus (Quit Early)") {
		t.Error("summary box missing the quit-early line")
	}
}

func TestGameTimeUp(t *testing.T) {
	g := newTestGame(t, 9)
	step(g, core.ActionConfirm)

	var res core.StepResult
	ticks := 1
	for ; ticks < 1000 && !res.State.GameOver; ticks++ {
		res = step(g)
	}
	if !res.State.GameOver {
		t.Fatal("countdown never ended the game")
	}
	if ticks != 600 {
		t.Errorf("game ended after %d ticks, want 600", ticks)
	}

	sum, _ := g.Summary()
	if sum.Reason != round.ReasonTimeUp {
		t.Errorf("reason = %v, want time up", sum.Reason)
	}
	if sum.FinalScore != 0 {
		t.Errorf("final = %d, want 0", sum.FinalScore)
	}
	if g.feed[len(g.feed)-2].text != "Time's Up!" {
		t.Errorf("log = %+v", g.feed)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, 10)
	step(g, core.ActionConfirm)
	step(g, core.ActionAbandon)

	step(g, core.ActionRestart)
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state = %q, want %q", snap.State, StatePlaying)
	}
	if snap.Session != 2 {
		t.Errorf("session = %d, want 2", snap.Session)
	}
	if snap.LogLines != 1 || snap.FinalScore != 0 || snap.Overlays != 0 {
		t.Errorf("restart kept old session state: %+v", snap)
	}
	if g.State().GameOver {
		t.Error("restarted game still over")
	}
}

func TestGameHighScore(t *testing.T) {
	tests := []struct {
		name    string
		best    int
		want    int
		newBest bool
	}{
		{"beats stored", 50, 100, true},
		{"below stored", 1000, 1000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, 11)
			g.SetHighScore(tt.best)
			step(g, core.ActionConfirm)
			g.cursor = cellOf(t, g, g.engine.TargetName())
			step(g, core.ActionGuess)
			step(g, core.ActionAbandon)

			if g.HighScore() != tt.want {
				t.Errorf("high score = %d, want %d", g.HighScore(), tt.want)
			}
			if g.newBest != tt.newBest {
				t.Errorf("newBest = %v, want %v", g.newBest, tt.newBest)
			}
		})
	}
}

func TestGameConfigurationError(t *testing.T) {
	cfg := config.DefaultCampusConfig()
	cfg.Session.Rounds = 20
	g := NewWithSettings(Settings{Config: &cfg, Catalog: catalog.Default()})
	g.Reset(testRuntime(1))

	step(g, core.ActionConfirm)
	if g.state != StateError {
		t.Fatalf("state = %q, want %q", g.state, StateError)
	}
	if g.Err() == nil {
		t.Fatal("no error recorded")
	}
	if g.State().GameOver {
		t.Error("configuration error reported as a finished game")
	}

	scr := core.NewScreen(100, 30)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Cannot start") {
		t.Error("no cannot-start box")
	}
}

func TestGameUnknownMandatory(t *testing.T) {
	cfg := config.DefaultCampusConfig()
	cfg.Session.Mandatory = "Nowhere Hall"
	g := NewWithSettings(Settings{Config: &cfg, Catalog: catalog.Default()})
	g.Reset(testRuntime(1))

	step(g, core.ActionConfirm)
	if g.state != StateError {
		t.Errorf("state = %q, want %q", g.state, StateError)
	}
}

func TestCursorMovement(t *testing.T) {
	g := newTestGame(t, 12)
	start := g.cursor

	step(g, core.ActionRight)
	if g.cursor.X != start.X+1 {
		t.Errorf("right: x = %d, want %d", g.cursor.X, start.X+1)
	}
	step(g, core.ActionDown, core.ActionFast)
	if g.cursor.Y != start.Y+cursorFastStepY {
		t.Errorf("fast down: y = %d, want %d", g.cursor.Y, start.Y+cursorFastStepY)
	}

	for range 200 {
		step(g, core.ActionLeft, core.ActionUp, core.ActionFast)
	}
	area := g.proj.Area()
	if g.cursor.X != area.X || g.cursor.Y != area.Y {
		t.Errorf("cursor %+v not clamped to map corner (%d,%d)", g.cursor, area.X, area.Y)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 13)
	step(g, core.ActionConfirm)

	scr := core.NewScreen(100, 30)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"CAMPUS GUESSER", "Game Log", "Where is " + g.engine.TargetName() + "?", "Round 1/5", "Time 1:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.ContainsRune(out, BuildingChar) {
		t.Error("no buildings drawn")
	}
	if scr.Get(g.cursor.X, g.cursor.Y) != CrosshairChar {
		t.Error("no crosshair under the cursor")
	}
}

func TestGameResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, 14)
	step(g, core.ActionConfirm)
	g.cursor = cellOf(t, g, g.engine.TargetName())
	step(g, core.ActionGuess)
	before := g.Snapshot()

	g.Resize(120, 40)
	after := g.Snapshot()
	if after.Round != before.Round || after.Correct != before.Correct || after.Remaining != before.Remaining {
		t.Errorf("resize changed the session: %+v -> %+v", before, after)
	}
	if after.Overlays != 1 {
		t.Errorf("overlays after resize = %d, want the answer redrawn", after.Overlays)
	}
	if !g.proj.Area().Contains(g.cursor.X, g.cursor.Y) {
		t.Errorf("cursor %+v outside the new map %+v", g.cursor, g.proj.Area())
	}

	scr := core.NewScreen(120, 40)
	g.Render(scr)
	if scr.Get(118, 0) == ' ' {
		t.Error("HUD not laid out for the new width")
	}
}

func TestScreenTooSmall(t *testing.T) {
	cfg := config.DefaultCampusConfig()
	g := NewWithSettings(Settings{Config: &cfg, Catalog: catalog.Default()})
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 10, Seed: 1})

	step(g, core.ActionConfirm)
	if g.state != StateReady {
		t.Errorf("state = %q, want the game to wait", g.state)
	}

	scr := core.NewScreen(40, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("no size warning")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"Where is Citrus Hall?", 30, []string{"Where is Citrus Hall?"}},
		{"Where is Citrus Hall?", 10, []string{"Where is", "Citrus", "Hall?"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"", 10, []string{""}},
	}
	for _, tt := range tests {
		got := wrap(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
