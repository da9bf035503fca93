// Package lobby tracks the players connected to the SSH server and
// relays who joined, who left and who just finished a mini-game.
package lobby

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vovakirdan/metro-minigames/internal/core"
)

// DefaultRecent is how many finished sessions the lobby remembers.
const DefaultRecent = 10

// Lobby is a thread-safe registry of connected players.
type Lobby struct {
	mu      sync.RWMutex
	members map[MemberID]*Member
	recent  []SessionFinishedEvent // Newest last
	keep    int
}

// New creates an empty lobby.
func New() *Lobby {
	return &Lobby{
		members: make(map[MemberID]*Member),
		keep:    DefaultRecent,
	}
}

// Join registers a player and tells everyone else.
func (l *Lobby) Join(name string, buffer int) *Member {
	m := newMember(MemberID(uuid.NewString()), name, buffer)

	l.mu.Lock()
	l.members[m.id] = m
	online := len(l.members)
	l.mu.Unlock()

	l.broadcast(m.id, PlayerJoinedEvent{Player: name, Online: online})
	return m
}

// Leave removes a member and closes its event stream. Unknown IDs are
// ignored so callers may defer it unconditionally.
func (l *Lobby) Leave(id MemberID) {
	l.mu.Lock()
	m, ok := l.members[id]
	if ok {
		delete(l.members, id)
	}
	online := len(l.members)
	l.mu.Unlock()

	if !ok {
		return
	}
	m.close()
	l.broadcast(id, PlayerLeftEvent{Player: m.name, Online: online})
}

// Finished records a completed session and tells everyone else.
func (l *Lobby) Finished(id MemberID, variant core.Variant, bonus int) {
	l.mu.Lock()
	m, ok := l.members[id]
	if !ok {
		l.mu.Unlock()
		return
	}
	evt := SessionFinishedEvent{Player: m.name, Variant: variant, Bonus: bonus}
	l.recent = append(l.recent, evt)
	if len(l.recent) > l.keep {
		l.recent = l.recent[len(l.recent)-l.keep:]
	}
	l.mu.Unlock()

	l.broadcast(id, evt)
}

// Get looks up a member.
func (l *Lobby) Get(id MemberID) (*Member, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.members[id]
	return m, ok
}

// Count returns the number of connected players.
func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.members)
}

// Players returns the connected player names, sorted.
func (l *Lobby) Players() []string {
	l.mu.RLock()
	names := make([]string, 0, len(l.members))
	for _, m := range l.members {
		names = append(names, m.name)
	}
	l.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Recent returns the latest finished sessions, newest first.
func (l *Lobby) Recent() []SessionFinishedEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]SessionFinishedEvent, len(l.recent))
	for i, evt := range l.recent {
		out[len(l.recent)-1-i] = evt
	}
	return out
}

func (l *Lobby) broadcast(from MemberID, evt Event) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, m := range l.members {
		if id != from {
			m.send(evt)
		}
	}
}
