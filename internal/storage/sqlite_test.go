package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, r Result) {
	t.Helper()
	if _, err := store.SaveResult(r); err != nil {
		t.Fatalf("SaveResult(%s) failed: %v", r.SessionID, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, Result{SessionID: "a", Variant: "rush", Bonus: 1000, Outcome: "won"})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestBonus("rush")
	if err != nil || best != 1000 {
		t.Errorf("BestBonus() = %d, %v; expected 1000", best, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	save(t, store, Result{SessionID: "s1", Variant: "prize", Player: "ana", Bonus: 150, Outcome: "won"})
	save(t, store, Result{SessionID: "s2", Variant: "prize", Player: "ben", Bonus: 300, Outcome: "won"})
	save(t, store, Result{SessionID: "s3", Variant: "prize", Player: "ana", Bonus: 0, Outcome: "timed_out"})
	save(t, store, Result{SessionID: "s4", Variant: "rush", Player: "ana", Bonus: 1000, Outcome: "won", Duration: 5 * time.Second})

	top, err := store.TopResults("prize", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 prize results, got %d", len(top))
	}
	if top[0].Bonus != 300 || top[1].Bonus != 150 || top[2].Bonus != 0 {
		t.Errorf("Results not in expected order: %+v", top)
	}
	if top[0].Player != "ben" || top[0].SessionID != "s2" {
		t.Errorf("Unexpected top result %+v", top[0])
	}

	rush, err := store.TopResults("rush", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(rush) != 1 || rush[0].Duration != 5*time.Second {
		t.Errorf("Unexpected rush results %+v", rush)
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, Result{SessionID: string(rune('a' + i)), Variant: "prize", Bonus: (i + 1) * 100, Outcome: "won"})
	}

	top, err := store.TopResults("prize", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(top))
	}
	if top[0].Bonus != 500 || top[1].Bonus != 400 || top[2].Bonus != 300 {
		t.Errorf("Results not in expected order: %+v", top)
	}
}

func TestStoreDuplicateSession(t *testing.T) {
	store := openStore(t)
	save(t, store, Result{SessionID: "dup", Variant: "rush", Bonus: 0, Outcome: "lost"})

	if _, err := store.SaveResult(Result{SessionID: "dup", Variant: "rush", Bonus: 1000, Outcome: "won"}); err == nil {
		t.Error("saving the same session twice should fail")
	}
	if best, _ := store.BestBonus("rush"); best != 0 {
		t.Errorf("failed save leaked a bonus of %d", best)
	}
}

func TestStoreLevels(t *testing.T) {
	store := openStore(t)

	levels := []LevelResult{
		{Level: 1, Outcome: "won", Score: 100, TimeLeft: 17},
		{Level: 2, Outcome: "timed_out", Score: 0},
		{Level: 3, Outcome: "won", Score: 100, TimeLeft: 4},
	}
	save(t, store, Result{SessionID: "tl", Variant: "trainline", Bonus: 200, Outcome: "won", Levels: levels})

	r, err := store.ResultBySession("tl")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if r == nil {
		t.Fatal("session not found")
	}
	if r.Bonus != 200 || len(r.Levels) != 3 {
		t.Fatalf("Unexpected result %+v", r)
	}
	for i, l := range r.Levels {
		if l != levels[i] {
			t.Errorf("level %d = %+v, expected %+v", i+1, l, levels[i])
		}
	}

	missing, err := store.ResultBySession("nope")
	if err != nil || missing != nil {
		t.Errorf("ResultBySession(unknown) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestStoreBestBonus(t *testing.T) {
	store := openStore(t)

	best, err := store.BestBonus("catchtrain")
	if err != nil {
		t.Fatalf("BestBonus() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty variant, got %d", best)
	}

	save(t, store, Result{SessionID: "a", Variant: "catchtrain", Bonus: 0, Outcome: "lost"})
	save(t, store, Result{SessionID: "b", Variant: "catchtrain", Bonus: 500, Outcome: "won"})

	best, err = store.BestBonus("catchtrain")
	if err != nil || best != 500 {
		t.Errorf("BestBonus() = %d, %v; expected 500", best, err)
	}
}

func TestStorePlayerResults(t *testing.T) {
	store := openStore(t)

	save(t, store, Result{SessionID: "1", Variant: "prize", Player: "ana", Bonus: 120, Outcome: "won"})
	save(t, store, Result{SessionID: "2", Variant: "rush", Player: "ana", Bonus: 1000, Outcome: "won"})
	save(t, store, Result{SessionID: "3", Variant: "rush", Player: "ben", Bonus: 1000, Outcome: "won"})

	results, err := store.PlayerResults("ana", 10)
	if err != nil {
		t.Fatalf("PlayerResults() failed: %v", err)
	}
	if len(results) != 2 || results[0].SessionID != "2" {
		t.Errorf("Expected ana's two sessions, newest first; got %+v", results)
	}

	total, err := store.PlayerTotal("ana")
	if err != nil || total != 1120 {
		t.Errorf("PlayerTotal() = %d, %v; expected 1120", total, err)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openStore(t)

	save(t, store, Result{SessionID: "t1", Variant: "trainline", Bonus: 100, Outcome: "won",
		Levels: []LevelResult{{Level: 1, Outcome: "won", Score: 100}}})
	save(t, store, Result{SessionID: "p1", Variant: "prize", Bonus: 100, Outcome: "won"})

	if err := store.ClearResults("trainline"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	top, _ := store.TopResults("trainline", 10)
	if len(top) != 0 {
		t.Errorf("Expected no trainline results after clear, got %d", len(top))
	}
	levels, _ := store.LevelResults("t1")
	if len(levels) != 0 {
		t.Errorf("Expected level rows to be cleared, got %d", len(levels))
	}

	// Other variants are untouched
	prize, _ := store.TopResults("prize", 10)
	if len(prize) != 1 {
		t.Errorf("Expected 1 prize result, got %d", len(prize))
	}

	// The session ID is free again
	save(t, store, Result{SessionID: "t1", Variant: "trainline", Bonus: 0, Outcome: "timed_out"})
}

func TestStoreVariantStats(t *testing.T) {
	store := openStore(t)

	empty, err := store.GetVariantStats("rush")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if empty.Sessions != 0 || empty.WinRate() != 0 {
		t.Errorf("Unexpected empty stats %+v", empty)
	}

	save(t, store, Result{SessionID: "1", Variant: "rush", Bonus: 1000, Outcome: "won"})
	save(t, store, Result{SessionID: "2", Variant: "rush", Bonus: 0, Outcome: "lost"})
	save(t, store, Result{SessionID: "3", Variant: "rush", Bonus: 1000, Outcome: "won"})
	save(t, store, Result{SessionID: "4", Variant: "rush", Bonus: 0, Outcome: "lost"})
	save(t, store, Result{SessionID: "5", Variant: "prize", Bonus: 250, Outcome: "won"})

	stats, err := store.GetVariantStats("rush")
	if err != nil {
		t.Fatalf("GetVariantStats() failed: %v", err)
	}
	if stats.Sessions != 4 || stats.Wins != 2 || stats.BestBonus != 1000 || stats.TotalBonus != 2000 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AvgBonus != 500 || stats.WinRate() != 0.5 {
		t.Errorf("AvgBonus = %v, WinRate = %v", stats.AvgBonus, stats.WinRate())
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllVariantStats()
	if err != nil {
		t.Fatalf("GetAllVariantStats() failed: %v", err)
	}
	if len(all) != 2 || all["prize"].BestBonus != 250 || all["rush"].Sessions != 4 {
		t.Errorf("Unexpected all-variant stats %+v", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openStore(t)

	const writers = 32
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.SaveResult(Result{
				SessionID: fmt.Sprintf("s-%d", i),
				Variant:   "trainline",
				Player:    "rider",
				Bonus:     100,
				Outcome:   "won",
				Levels:    []LevelResult{{Level: 1, Outcome: "won", Score: 100}},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("SaveResult() failed under concurrency: %v", err)
		}
	}

	total, err := store.PlayerTotal("rider")
	if err != nil {
		t.Fatalf("PlayerTotal() failed: %v", err)
	}
	if total != writers*100 {
		t.Errorf("PlayerTotal() = %d, want %d", total, writers*100)
	}
}
