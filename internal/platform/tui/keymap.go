package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/metro-minigames/internal/core"
)

// KeyMapper translates Bubble Tea key messages to player inputs.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game input.
// Digits 1-9 pick the prize box with that ID.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.Press(core.ActionQuit)
	case "w", "up", "k":
		return core.Press(core.ActionUp)
	case "s", "down", "j":
		return core.Press(core.ActionDown)
	case "a", "left", "h":
		return core.Press(core.ActionLeft)
	case "d", "right", "l":
		return core.Press(core.ActionRight)
	case " ":
		return core.Press(core.ActionJump)
	case "enter":
		return core.Press(core.ActionConfirm)
	case "b", "esc":
		return core.Press(core.ActionBack)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.SelectBox(int(key[0] - '0'))
	}
	return core.Press(core.ActionNone)
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
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
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
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
