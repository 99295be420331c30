package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/campus-guesser/internal/core"
)

func testModel(g *fakeGame, rec *Recorder) Model {
	m := NewModel(g, rec, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}, nil)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	store := openStore(t)
	g := newFakeGame(3)
	m := testModel(g, NewRecorder(store, nil))

	for range 6 {
		m = update(t, m, TickMsg{})
	}
	sessions, err := store.RecentSessions("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("recorded %d sessions, want 1", len(sessions))
	}

	// A new game that ends again is recorded again
	g.endAfter = 100
	m = update(t, m, TickMsg{})
	g.endAfter = 0
	m = update(t, m, TickMsg{})
	update(t, m, TickMsg{})

	sessions, _ = store.RecentSessions("fake", 10)
	if len(sessions) != 2 {
		t.Errorf("recorded %d sessions, want 2", len(sessions))
	}
}

func TestModelLoadsHighScore(t *testing.T) {
	rec := NewRecorder(nil, nil)
	if err := rec.kv.Set("csunMapHighScore", "321"); err != nil {
		t.Fatal(err)
	}
	g := newFakeGame(10)
	testModel(g, rec)

	if g.best != 321 {
		t.Errorf("game high score = %d, want 321", g.best)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelKeysReachGame(t *testing.T) {
	g := newFakeGame(100)
	m := testModel(g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	if !g.lastInput.Has(core.ActionGuess) {
		t.Error("space did not reach the game as a guess")
	}

	update(t, m, TickMsg{})
	if !g.lastInput.Empty() {
		t.Error("input not cleared after the tick")
	}
}

func TestModelQuitAndBack(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		quitting bool
		back     bool
	}{
		{"q quits", runeKey('q'), true, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, false, true},
		{"b goes back", runeKey('b'), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(newFakeGame(100), nil)
			next, cmd := m.Update(tt.msg)
			got := next.(Model)
			if cmd == nil {
				t.Error("expected a quit command")
			}
			if got.quitting != tt.quitting || got.back != tt.back {
				t.Errorf("quitting=%v back=%v", got.quitting, got.back)
			}
			if got.View() != "" {
				t.Error("view should be empty once leaving")
			}
		})
	}
}

func TestModelResize(t *testing.T) {
	g := newFakeGame(100)
	m := testModel(g, nil)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resized != [2]int{120, 40} {
		t.Errorf("game resized to %v, want [120 40]", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "fake") {
		t.Error("view does not show the game")
	}
}

func TestRenderScreen(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawTextColor(0, 0, "map", core.ColorGray)
	scr.DrawTextColor(4, 0, "ok", core.ColorBrightGreen)
	scr.DrawText(0, 1, "log")

	out := RenderScreen(scr)
	for _, want := range []string{"map", "ok", "log"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("rendered %d lines, want 2", strings.Count(out, "\n")+1)
	}
}

func TestMenuDifficulty(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "hard")
	if m.Difficulty() != "hard" {
		t.Fatalf("difficulty = %q, want hard", m.Difficulty())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(MenuModel)
	if m.Difficulty() != "normal" {
		t.Errorf("after left = %q, want normal", m.Difficulty())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(MenuModel)
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}
