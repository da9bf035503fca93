package lobby

import (
	"reflect"
	"sync"
	"testing"

	"github.com/vovakirdan/metro-minigames/internal/core"
)

func TestJoinNotifiesOthers(t *testing.T) {
	l := New()
	alice := l.Join("alice", 4)
	bob := l.Join("bob", 4)

	select {
	case evt := <-alice.Events():
		joined, ok := evt.(PlayerJoinedEvent)
		if !ok || joined.Player != "bob" || joined.Online != 2 {
			t.Errorf("alice got %#v, expected bob joined with 2 online", evt)
		}
	default:
		t.Fatal("alice should have been told about bob")
	}

	select {
	case evt := <-bob.Events():
		t.Errorf("bob should not hear about himself, got %#v", evt)
	default:
	}
}

func TestLeaveClosesAndNotifies(t *testing.T) {
	l := New()
	alice := l.Join("alice", 4)
	bob := l.Join("bob", 4)
	<-alice.Events() // bob joined

	l.Leave(bob.ID())
	l.Leave(bob.ID())

	select {
	case <-bob.Done():
	default:
		t.Error("bob's done channel should be closed")
	}
	if l.Count() != 1 {
		t.Errorf("Count = %d, expected 1", l.Count())
	}
	evt := <-alice.Events()
	if left, ok := evt.(PlayerLeftEvent); !ok || left.Player != "bob" || left.Online != 1 {
		t.Errorf("alice got %#v, expected bob left", evt)
	}
}

func TestFinishedKeepsRecent(t *testing.T) {
	l := New()
	l.keep = 2
	alice := l.Join("alice", 8)

	l.Finished(alice.ID(), core.PrizePick, 100)
	l.Finished(alice.ID(), core.ScrollAvoid, 1000)
	l.Finished(alice.ID(), core.PlatformJump, 500)
	l.Finished("nobody", core.PrizePick, 400)

	got := l.Recent()
	want := []SessionFinishedEvent{
		{Player: "alice", Variant: core.PlatformJump, Bonus: 500},
		{Player: "alice", Variant: core.ScrollAvoid, Bonus: 1000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Recent = %+v, expected %+v", got, want)
	}
}

func TestSendDropsOldestWhenFull(t *testing.T) {
	m := newMember("m", "alice", 2)
	m.send(PlayerJoinedEvent{Player: "a"})
	m.send(PlayerJoinedEvent{Player: "b"})
	m.send(PlayerJoinedEvent{Player: "c"})

	first := (<-m.Events()).(PlayerJoinedEvent)
	second := (<-m.Events()).(PlayerJoinedEvent)
	if first.Player != "b" || second.Player != "c" {
		t.Errorf("got %s, %s; expected b, c", first.Player, second.Player)
	}
}

func TestPlayersSorted(t *testing.T) {
	l := New()
	l.Join("carol", 1)
	l.Join("alice", 1)
	l.Join("bob", 1)

	if got := l.Players(); !reflect.DeepEqual(got, []string{"alice", "bob", "carol"}) {
		t.Errorf("Players = %v", got)
	}
}

func TestConcurrentJoinLeave(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := l.Join("p", 4)
			l.Finished(m.ID(), core.PrizePick, 100)
			l.Leave(m.ID())
		}()
	}
	wg.Wait()

	if l.Count() != 0 {
		t.Errorf("Count = %d, expected 0", l.Count())
	}
}
