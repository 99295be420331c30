package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/campus-guesser/internal/storage"
)

func seedSessions(t *testing.T, store *storage.Store) (first, second string) {
	t.Helper()
	var err error
	first, err = store.SaveSession(storage.SessionRecord{
		GameID: "fake", Catalog: "CSUN", Reason: "completed",
		Rounds: 2, Correct: 1, Points: 100, Remaining: 20, FinalScore: 120,
		Log: []storage.RoundRecord{
			{Round: 1, Target: "Citrus Hall", Correct: true, Hit: "Citrus Hall"},
			{Round: 2, Target: "Oviatt Library", Hit: "Jacaranda Hall", MissMeters: 120},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err = store.SaveSession(storage.SessionRecord{
		GameID: "fake", Catalog: "CSUN", Reason: "abandoned",
		Rounds: 2, FinalScore: 0,
		Log: []storage.RoundRecord{
			{Round: 1, Target: "Bayramian Hall", MissMeters: 45},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("fake", 120); err != nil {
		t.Fatal(err)
	}
	return first, second
}

func TestScoreboardSessionsWithRoundLog(t *testing.T) {
	store := openStore(t)
	first, second := seedSessions(t, store)

	m := NewScoreboardModel(store, "fake", 120, 30)
	if m.view != ViewSessions {
		t.Fatalf("initial view = %v, want sessions", m.view)
	}
	// Newest first: the abandoned session is highlighted
	if m.detailID != second {
		t.Fatalf("detail = %q, want newest session %q", m.detailID, second)
	}
	view := m.View()
	for _, want := range []string{"RECENT SESSIONS - fake", "Game Log", "Bayramian Hall", "missed by 45 m", "abandoned"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(ScoreboardModel)
	if m.detailID != first {
		t.Fatalf("after down, detail = %q, want %q", m.detailID, first)
	}
	view = m.View()
	for _, want := range []string{"Citrus Hall", "correct", "Jacaranda Hall, 120 m off"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardToggleView(t *testing.T) {
	store := openStore(t)
	seedSessions(t, store)

	m := NewScoreboardModel(store, "fake", 120, 30)
	next, _ := m.Update(runeKey('v'))
	m = next.(ScoreboardModel)

	if m.view != ViewTopScores {
		t.Fatalf("view = %v, want top scores", m.view)
	}
	if m.detailID != "" {
		t.Errorf("top scores view should not load a round log")
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES - fake", "#1", "120", "Games: 1", "Best: 120"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Game Log") {
		t.Error("round log pane shown in top scores view")
	}
}

func TestScoreboardNarrowHidesRoundLog(t *testing.T) {
	store := openStore(t)
	seedSessions(t, store)

	m := NewScoreboardModel(store, "fake", 70, 24)
	if strings.Contains(m.View(), "Game Log") {
		t.Error("round log pane shown on a narrow terminal")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "fake", 100, 30)
	if !strings.Contains(m.View(), "No score database.") {
		t.Errorf("view = %q", m.View())
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "fake", 100, 30)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	back := next.(ScoreboardModel)
	if !back.IsGoingBack() || back.IsQuitting() || cmd == nil {
		t.Errorf("esc: back=%v quit=%v cmd=%v", back.IsGoingBack(), back.IsQuitting(), cmd)
	}

	next, _ = m.Update(runeKey('q'))
	quit := next.(ScoreboardModel)
	if !quit.IsQuitting() || quit.IsGoingBack() {
		t.Errorf("q: back=%v quit=%v", quit.IsGoingBack(), quit.IsQuitting())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Oviatt Library", 20, "Oviatt Library"},
		{"Oviatt Library", 7, "Oviatt."},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
