// Package scoring holds the score arithmetic of a session and the persisted
// high score.
package scoring

// PointsPerCorrect is awarded for every region found.
const PointsPerCorrect = 100

// State is the running score of a session.
type State struct {
	CorrectCount     int
	Points           int
	RemainingSeconds int
}

// Award records one correct guess.
func (s State) Award() State {
	s.CorrectCount++
	s.Points = s.CorrectCount * PointsPerCorrect
	return s
}

// TimeBonus is the part of the final score paid for unused time.
// Abandoned sessions earn none.
func TimeBonus(remainingSeconds int, abandoned bool) int {
	if abandoned {
		return 0
	}
	return max(0, remainingSeconds)
}

// Finalize returns the final score: accrued points plus the time bonus.
func Finalize(state State, remainingSeconds int, abandoned bool) int {
	return state.Points + TimeBonus(remainingSeconds, abandoned)
}

// UpdateHighScore returns the larger of current and final and whether
// final replaced current.
func UpdateHighScore(current, final int) (int, bool) {
	if final > current {
		return final, true
	}
	return current, false
}
