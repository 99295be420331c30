package round

import (
	"fmt"

	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/scoring"
)

// Result is the outcome of one guess.
type Result struct {
	Round      int // 1-indexed
	Target     geo.Region
	Guess      geo.LatLng
	Correct    bool
	Hit        string  // region actually under the guess, empty if none
	MissMeters float64 // 0 when correct
}

// Prompt is the question asked for this round.
func (r Result) Prompt() string {
	return Prompt(r.Target.Name)
}

// Verdict is the one-line feedback for the guess.
func (r Result) Verdict() string {
	if r.Correct {
		return "Your answer is correct!"
	}
	return "Sorry wrong location."
}

// Detail explains a wrong guess, naming the building clicked and the miss
// distance. It is empty for correct guesses.
func (r Result) Detail() string {
	if r.Correct {
		return ""
	}
	if r.Hit != "" {
		return fmt.Sprintf("That was %s, %.0f m off.", r.Hit, r.MissMeters)
	}
	return fmt.Sprintf("Missed by %.0f m.", r.MissMeters)
}

// Prompt formats the question for a target name.
func Prompt(name string) string {
	return fmt.Sprintf("Where is %s?", name)
}

// Summary describes a finished session.
type Summary struct {
	Reason        Reason
	Score         scoring.State
	SessionLength int
	FinalScore    int
	Results       []Result
}

// Abandoned reports whether the player quit early.
func (s Summary) Abandoned() bool {
	return s.Reason == ReasonAbandoned
}

// TimeBonus is the part of FinalScore earned from unused time.
func (s Summary) TimeBonus() int {
	return scoring.TimeBonus(s.Score.RemainingSeconds, s.Abandoned())
}

// Line renders the final score line, e.g.
// "Score: 542 (5 Correct + 42s Bonus)".
func (s Summary) Line() string {
	bonus := fmt.Sprintf("%ds Bonus", s.TimeBonus())
	if s.Abandoned() {
		bonus = "No Bonus (Quit Early)"
	}
	return fmt.Sprintf("Score: %d (%d Correct + %s)", s.FinalScore, s.Score.CorrectCount, bonus)
}
