package round

import (
	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/scoring"
)

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Index returns the 0-based index of the current round.
func (e *Engine) Index() int { return e.current }

// RoundNumber returns the 1-based number of the current round, or 0 before
// the session starts.
func (e *Engine) RoundNumber() int {
	if e.state == Idle {
		return 0
	}
	return e.current + 1
}

// SessionLength returns the number of rounds in the session.
func (e *Engine) SessionLength() int { return len(e.session) }

// Target returns the region of the current round.
func (e *Engine) Target() (geo.Region, bool) {
	if e.state == Idle || len(e.session) == 0 {
		return geo.Region{}, false
	}
	return e.session[e.current], true
}

// TargetName returns the name of the current target, or "".
func (e *Engine) TargetName() string {
	r, _ := e.Target()
	return r.Name
}

// Locked reports whether guesses are currently refused.
func (e *Engine) Locked() bool { return e.locked }

// Score returns the running score.
func (e *Engine) Score() scoring.State { return e.score }

// CorrectCount returns the number of regions found so far.
func (e *Engine) CorrectCount() int { return e.score.CorrectCount }

// Points returns the points accrued so far.
func (e *Engine) Points() int { return e.score.Points }

// Remaining returns the last mirrored countdown value.
func (e *Engine) Remaining() int { return e.score.RemainingSeconds }

// Results returns a copy of every judged guess, in order.
func (e *Engine) Results() []Result {
	return append([]Result(nil), e.results...)
}

// LastResult returns the most recent guess outcome.
func (e *Engine) LastResult() (Result, bool) {
	if len(e.results) == 0 {
		return Result{}, false
	}
	return e.results[len(e.results)-1], true
}

// Reason returns why the session finished, or ReasonNone.
func (e *Engine) Reason() Reason { return e.reason }

// Summary returns the final summary once the session has finished.
func (e *Engine) Summary() (Summary, bool) {
	if e.state != Finished {
		return Summary{}, false
	}
	return e.summary, true
}
