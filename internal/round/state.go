package round

import (
	"errors"
	"fmt"
)

// ErrEmptySession is returned by Start when the session has no regions.
var ErrEmptySession = errors.New("round: empty session")

// State is the engine's position in the session lifecycle.
type State int

const (
	Idle            State = iota // no session started
	InProgress                   // waiting for a guess on the current round
	AwaitingAdvance              // guess taken, feedback showing
	Finished                     // terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in_progress"
	case AwaitingAdvance:
		return "awaiting_advance"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Reason tells how a session finished.
type Reason int

const (
	ReasonNone      Reason = iota
	ReasonCompleted        // every round played
	ReasonTimeUp           // countdown reached zero
	ReasonAbandoned        // player quit early
)

func (r Reason) String() string {
	switch r {
	case ReasonCompleted:
		return "completed"
	case ReasonTimeUp:
		return "time_up"
	case ReasonAbandoned:
		return "abandoned"
	default:
		return "none"
	}
}

// Headline is the message shown when the session ends for this reason.
func (r Reason) Headline() string {
	switch r {
	case ReasonCompleted:
		return "Game Over!"
	case ReasonTimeUp:
		return "Time's Up!"
	case ReasonAbandoned:
		return "Game Abandoned"
	default:
		return ""
	}
}

// InvalidStateError is returned when an operation is not allowed in the
// engine's current state. The engine is left unchanged.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("round: %s not allowed in state %s", e.Op, e.State)
}

// IsInvalidState reports whether err is an *InvalidStateError.
func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}
