package storage

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	_ "github.com/vovakirdan/metro-minigames/internal/games/prize"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
)

func TestFromSession(t *testing.T) {
	res := minigame.Result{
		SessionID: "s-1",
		Variant:   core.ReorderPuzzle,
		Bonus:     200,
		Outcome:   core.StatusTimedOut,
		Levels: []minigame.LevelResult{
			{Level: 1, Status: core.StatusWon, Score: 100, TimeLeft: 12},
			{Level: 2, Status: core.StatusWon, Score: 100, TimeLeft: 3},
			{Level: 3, Status: core.StatusTimedOut},
		},
		Duration: 40 * time.Second,
	}

	got := FromSession("alice", res)
	if got.Variant != "trainline" || got.Outcome != "timed_out" || got.Player != "alice" {
		t.Errorf("unexpected result %+v", got)
	}
	if len(got.Levels) != 3 || got.Levels[0].Outcome != "won" || got.Levels[0].TimeLeft != 12 {
		t.Errorf("unexpected levels %+v", got.Levels)
	}
}

func TestRecorderSavesFinishedSession(t *testing.T) {
	store := openStore(t)
	rec := NewRecorder(store, "alice", log.New(io.Discard))

	s, err := minigame.Start(core.PrizePick, config.Default(), nil,
		minigame.WithSeed(3), minigame.WithObserver(rec))
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Input(core.SelectBox(2))
	s.Advance(time.Second)

	saved, err := store.ResultBySession(s.ID())
	if err != nil {
		t.Fatalf("ResultBySession failed: %v", err)
	}
	if saved == nil {
		t.Fatal("session was not saved")
	}
	if saved.Bonus != s.Bonus() || saved.Player != "alice" || saved.Outcome != "won" {
		t.Errorf("saved %+v, expected bonus %d for alice", saved, s.Bonus())
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, "alice", log.New(io.Discard))
	rec.SessionEnded(minigame.Result{SessionID: "x"})
}
