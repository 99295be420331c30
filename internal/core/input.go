package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games react to intents such as "move the crosshair" or "submit the guess"
// rather than raw keys.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow - move crosshair up
	ActionDown            // S, J, Down arrow - move crosshair down
	ActionLeft            // A, H, Left arrow - move crosshair left
	ActionRight           // D, L, Right arrow - move crosshair right
	ActionFast            // Shift+arrow - modifier: move several cells at once
	ActionGuess           // Space - submit the crosshair position as the guess
	ActionConfirm         // Enter - next round / start a game
	ActionAbandon         // X - give up the running session
	ActionRestart         // R - new session after game over
	ActionBack            // B, Escape - go back to menu
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFast:
		return "Fast"
	case ActionGuess:
		return "Guess"
	case ActionConfirm:
		return "Confirm"
	case ActionAbandon:
		return "Abandon"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds every action triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
