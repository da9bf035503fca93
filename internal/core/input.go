package core

import "fmt"

// Action is a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up (rush), cursor up (trainline)
	ActionDown           // S, Down arrow - move down (rush), cursor down (trainline)
	ActionLeft           // A, Left arrow - previous box (prize)
	ActionRight          // D, Right arrow - next box (prize)
	ActionJump           // Space - jump (catchtrain)
	ActionMove           // Reorder: carries From/To
	ActionSelect         // Prize pick: carries ID
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionJump:
		return "Jump"
	case ActionMove:
		return "Move"
	case ActionSelect:
		return "Select"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is one discrete player event delivered to a running mini-game.
// From and To are used by ActionMove, ID by ActionSelect.
type Input struct {
	Action Action
	From   int
	To     int
	ID     int
}

// Press builds an input for a plain action.
func Press(a Action) Input {
	return Input{Action: a}
}

// MoveStation builds a reorder input that moves the station at index from to index to.
func MoveStation(from, to int) Input {
	return Input{Action: ActionMove, From: from, To: to}
}

// SelectBox builds a prize-pick input for the box with the given id.
func SelectBox(id int) Input {
	return Input{Action: ActionSelect, ID: id}
}

func (in Input) String() string {
	switch in.Action {
	case ActionMove:
		return fmt.Sprintf("Move(%d->%d)", in.From, in.To)
	case ActionSelect:
		return fmt.Sprintf("Select(%d)", in.ID)
	default:
		return in.Action.String()
	}
}
