package lobby

import "sync"

// MemberID uniquely identifies a connection in the lobby.
type MemberID string

// Member is one connected player. Events are buffered; a slow reader
// loses the oldest events rather than blocking the sender.
type Member struct {
	id       MemberID
	name     string
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

func newMember(id MemberID, name string, buffer int) *Member {
	if buffer < 1 {
		buffer = 16
	}
	return &Member{
		id:     id,
		name:   name,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// ID returns the member's connection ID.
func (m *Member) ID() MemberID {
	return m.id
}

// Name returns the player name.
func (m *Member) Name() string {
	return m.name
}

// Events returns the channel the front-end reads notifications from.
func (m *Member) Events() <-chan Event {
	return m.events
}

// Done returns a channel closed when the member leaves.
func (m *Member) Done() <-chan struct{} {
	return m.done
}

// send delivers evt without blocking.
func (m *Member) send(evt Event) {
	select {
	case <-m.done:
		return
	default:
	}

	select {
	case m.events <- evt:
	default:
		// Full: drop the oldest and retry once
		select {
		case <-m.events:
		default:
		}
		select {
		case m.events <- evt:
		default:
		}
	}
}

func (m *Member) close() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
