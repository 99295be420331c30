// Package round runs one guessing session: it steps through the selected
// regions, judges each guess and keeps the score until the session ends by
// completion, timeout or abandonment.
package round

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-guesser/internal/geo"
	"github.com/vovakirdan/campus-guesser/internal/scoring"
)

// Engine is the session state machine:
//
//	Idle -> InProgress(i) -> AwaitingAdvance(i) -> InProgress(i+1) ... -> Finished
//
// Abandon and Expire jump to Finished from any other state. An Engine
// serves a single session and is not safe for concurrent use.
type Engine struct {
	logger   *log.Logger
	index    *geo.Index
	onResult func(Result)
	onFinish func(Summary)

	state   State
	session []geo.Region
	current int
	locked  bool
	score   scoring.State
	results []Result
	reason  Reason
	summary Summary
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIndex lets the engine name the region actually clicked on a miss.
func WithIndex(idx *geo.Index) Option {
	return func(e *Engine) {
		e.index = idx
	}
}

// OnResult registers a hook called after every accepted guess.
func OnResult(f func(Result)) Option {
	return func(e *Engine) {
		e.onResult = f
	}
}

// OnFinish registers a hook called once when the session ends.
func OnFinish(f func(Summary)) Option {
	return func(e *Engine) {
		e.onFinish = f
	}
}

// New creates an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: log.New(io.Discard),
		state:  Idle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a session over the given regions, in order.
func (e *Engine) Start(session []geo.Region) error {
	if e.state != Idle {
		return e.invalid("start")
	}
	if len(session) == 0 {
		return ErrEmptySession
	}

	e.session = append([]geo.Region(nil), session...)
	e.current = 0
	e.locked = false
	e.score = scoring.State{}
	e.results = e.results[:0]
	e.state = InProgress

	e.logger.Debug("session started", "rounds", len(e.session), "target", e.session[0].Name)
	return nil
}

// SubmitGuess judges point against the current target. It is accepted once
// per round; the round then waits for Advance.
func (e *Engine) SubmitGuess(point geo.LatLng) (Result, error) {
	if e.state != InProgress || e.locked {
		return Result{}, e.invalid("submit guess")
	}

	e.locked = true
	e.state = AwaitingAdvance

	target := e.session[e.current]
	res := Result{
		Round:   e.current + 1,
		Target:  target,
		Guess:   point,
		Correct: geo.Contains(target, point),
	}
	if res.Correct {
		e.score = e.score.Award()
		res.Hit = target.Name
	} else {
		res.MissMeters = geo.MissMeters(target, point)
		if e.index != nil {
			if hit, ok := e.index.Hit(point); ok {
				res.Hit = hit.Name
			}
		}
	}
	e.results = append(e.results, res)

	e.logger.Debug("guess judged",
		"round", res.Round,
		"target", target.Name,
		"correct", res.Correct,
		"hit", res.Hit,
		"miss_m", int(res.MissMeters))

	if e.onResult != nil {
		e.onResult(res)
	}
	return res, nil
}

// Advance moves past the feedback of the current round. After the last
// round the session finishes as completed.
func (e *Engine) Advance() error {
	if e.state != AwaitingAdvance {
		return e.invalid("advance")
	}

	if e.current == len(e.session)-1 {
		e.finish(ReasonCompleted)
		return nil
	}

	e.current++
	e.locked = false
	e.state = InProgress
	e.logger.Debug("round advanced", "round", e.current+1, "target", e.session[e.current].Name)
	return nil
}

// Abandon ends the session early. No time bonus is paid.
func (e *Engine) Abandon() error {
	if e.state == Finished {
		return e.invalid("abandon")
	}
	e.finish(ReasonAbandoned)
	return nil
}

// Expire ends the session because the countdown ran out.
func (e *Engine) Expire() error {
	if e.state == Finished {
		return e.invalid("expire")
	}
	e.score.RemainingSeconds = 0
	e.finish(ReasonTimeUp)
	return nil
}

// SetRemaining mirrors the countdown into the score.
func (e *Engine) SetRemaining(seconds int) error {
	if e.state == Finished {
		return e.invalid("set remaining")
	}
	e.score.RemainingSeconds = seconds
	return nil
}

func (e *Engine) finish(reason Reason) {
	e.state = Finished
	e.locked = true
	e.reason = reason
	e.summary = Summary{
		Reason:        reason,
		Score:         e.score,
		SessionLength: len(e.session),
		FinalScore:    scoring.Finalize(e.score, e.score.RemainingSeconds, reason == ReasonAbandoned),
		Results:       append([]Result(nil), e.results...),
	}

	e.logger.Info("session finished",
		"reason", reason,
		"correct", e.score.CorrectCount,
		"rounds", len(e.session),
		"final", e.summary.FinalScore)

	if e.onFinish != nil {
		e.onFinish(e.summary)
	}
}

func (e *Engine) invalid(op string) error {
	err := &InvalidStateError{Op: op, State: e.state}
	e.logger.Debug("rejected", "op", op, "state", e.state)
	return err
}
