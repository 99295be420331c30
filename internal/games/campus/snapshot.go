package campus

// Snapshot is a comparable view of the game, used to check that the same
// seed and inputs replay identically.
type Snapshot struct {
	State      string
	Session    int
	Round      int
	Rounds     int
	Target     string
	Locked     bool
	Correct    int
	Points     int
	Remaining  int
	CursorX    int
	CursorY    int
	Overlays   int
	LogLines   int
	FinalScore int
	Reason     string
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:     g.state,
		Session:   g.sessions,
		Round:     g.engine.RoundNumber(),
		Rounds:    g.engine.SessionLength(),
		Target:    g.engine.TargetName(),
		Locked:    g.engine.Locked(),
		Correct:   g.engine.CorrectCount(),
		Points:    g.engine.Points(),
		Remaining: g.engine.Remaining(),
		CursorX:   g.cursor.X,
		CursorY:   g.cursor.Y,
		Overlays:  g.surface.Len(),
		LogLines:  len(g.feed),
	}
	if g.hasSummary {
		snap.FinalScore = g.summary.FinalScore
		snap.Reason = g.summary.Reason.String()
	}
	return snap
}
