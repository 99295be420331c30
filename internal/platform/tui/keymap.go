package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/campus-guesser/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to its actions. A shifted direction
// yields the direction plus ActionFast. isQuit is set for quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	// Crosshair movement
	switch key {
	case "up", "w", "k":
		return []core.Action{core.ActionUp}, false
	case "down", "s", "j":
		return []core.Action{core.ActionDown}, false
	case "left", "a", "h":
		return []core.Action{core.ActionLeft}, false
	case "right", "d", "l":
		return []core.Action{core.ActionRight}, false
	case "shift+up", "W", "K":
		return []core.Action{core.ActionUp, core.ActionFast}, false
	case "shift+down", "S", "J":
		return []core.Action{core.ActionDown, core.ActionFast}, false
	case "shift+left", "A", "H":
		return []core.Action{core.ActionLeft, core.ActionFast}, false
	case "shift+right", "D", "L":
		return []core.Action{core.ActionRight, core.ActionFast}, false
	}

	// Game actions
	switch key {
	case " ":
		return []core.Action{core.ActionGuess}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "x":
		return []core.Action{core.ActionAbandon}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	}

	return nil, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
