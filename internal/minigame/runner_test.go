package minigame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/games/prize"
)

func TestRunDrivesSessionToCompletion(t *testing.T) {
	clock := clockwork.NewFakeClock()
	bonus := make(chan int, 1)

	s, err := Start(core.PrizePick, config.Default(), func(b int) { bonus <- b }, WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	want := s.Game().(*prize.Game).Boxes()[0].Points

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	inputs := make(chan core.Input)
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, s, clock, 100*time.Millisecond, inputs) }()

	// Unbuffered: returns once the runner has taken the input
	inputs <- core.SelectBox(1)

	for {
		select {
		case err := <-errc:
			if err != nil {
				t.Fatalf("Run returned %v", err)
			}
			if got := <-bonus; got != want {
				t.Errorf("bonus = %d, expected %d", got, want)
			}
			if el := s.Elapsed(); el < time.Second {
				t.Errorf("finished after %v, before the reveal delay", el)
			}
			return
		default:
		}
		clock.Advance(100 * time.Millisecond)
		time.Sleep(time.Millisecond)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := Start(core.ReorderPuzzle, config.Default(), nil, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, s, clock, 0, nil) }()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("runner never started its ticker: %v", err)
	}
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if s.Done() {
		t.Error("cancelled session should not be complete")
	}
}

func TestRunClosedInputs(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s, err := Start(core.ScrollAvoid, quietRush(), nil, WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	inputs := make(chan core.Input)
	close(inputs)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, s, clock, 50*time.Millisecond, inputs) }()

	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatal(err)
	}
	for {
		select {
		case err := <-errc:
			if err != nil {
				t.Fatalf("Run returned %v", err)
			}
			if s.Bonus() != 1000 {
				t.Errorf("bonus = %d, expected 1000", s.Bonus())
			}
			return
		default:
		}
		clock.Advance(time.Second)
		time.Sleep(time.Millisecond)
	}
}
