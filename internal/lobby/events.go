package lobby

import "github.com/vovakirdan/metro-minigames/internal/core"

// Event is a lobby notification delivered to connected players.
type Event interface {
	lobbyEvent()
}

// PlayerJoinedEvent is sent to everyone else when a player connects.
type PlayerJoinedEvent struct {
	Player string
	Online int
}

func (PlayerJoinedEvent) lobbyEvent() {}

// PlayerLeftEvent is sent to everyone else when a player disconnects.
type PlayerLeftEvent struct {
	Player string
	Online int
}

func (PlayerLeftEvent) lobbyEvent() {}

// SessionFinishedEvent is sent to everyone else when a player completes
// a mini-game.
type SessionFinishedEvent struct {
	Player  string
	Variant core.Variant
	Bonus   int
}

func (SessionFinishedEvent) lobbyEvent() {}
