package core

import "fmt"

// Variant selects which mini-game a session plays.
type Variant string

const (
	ReorderPuzzle Variant = "trainline"  // drag stations into line order
	PrizePick     Variant = "prize"      // pick one of three mystery boxes
	ScrollAvoid   Variant = "rush"       // dodge the crowd on a scrolling platform
	PlatformJump  Variant = "catchtrain" // run and jump to the train door
)

// Variants lists every variant in menu order.
func Variants() []Variant {
	return []Variant{ReorderPuzzle, PrizePick, ScrollAvoid, PlatformJump}
}

// ParseVariant maps a wire ID to a Variant.
func ParseVariant(id string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == id {
			return v, nil
		}
	}
	return "", fmt.Errorf("core: unknown variant %q", id)
}

// Status is the lifecycle state of a level or a sim.
type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
	StatusTimedOut
)

// Terminal reports whether no further mutation is accepted.
func (s Status) Terminal() bool {
	return s != StatusPlaying
}

// String returns the lowercase status name used in logs and storage.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}
