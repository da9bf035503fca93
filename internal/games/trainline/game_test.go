package trainline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
)

func newLevel1(t *testing.T) *Game {
	t.Helper()
	g := New(config.Default().Trainline)
	g.Reset(1, nil)
	return g
}

func TestWoodlawnScenario(t *testing.T) {
	g := newLevel1(t)

	want := []string{"Bedford Park Blvd", "Woodlawn", "Mosholu Parkway"}
	if !reflect.DeepEqual(g.Current(), want) {
		t.Fatalf("start order = %v, expected %v", g.Current(), want)
	}
	if g.Resolved() {
		t.Fatal("level should not start resolved")
	}

	if !g.MoveStation(1, 0) {
		t.Fatal("MoveStation(1, 0) reported no change")
	}

	want = []string{"Woodlawn", "Bedford Park Blvd", "Mosholu Parkway"}
	if !reflect.DeepEqual(g.Current(), want) {
		t.Errorf("order = %v, expected %v", g.Current(), want)
	}
	if !g.Resolved() {
		t.Error("puzzle should be resolved")
	}
	if g.Status() != core.StatusWon {
		t.Errorf("status = %s, expected won", g.Status())
	}
	if g.Score() != 100 {
		t.Errorf("score = %d, expected the flat award 100", g.Score())
	}
}

func TestMoveStationSplice(t *testing.T) {
	cfg := config.TrainlineConfig{
		LevelAward: 10,
		Levels: []config.TrainlineLine{{
			Stops:      []string{"a", "b", "c", "d", "e"},
			StartOrder: []string{"e", "d", "c", "b", "a"},
			TimeLimit:  10,
		}},
	}

	tests := []struct {
		name     string
		from, to int
		expected []string
		moved    bool
	}{
		{"forward", 0, 3, []string{"d", "c", "b", "e", "a"}, true},
		{"backward", 4, 1, []string{"e", "a", "d", "c", "b"}, true},
		{"to end", 1, 4, []string{"e", "c", "b", "a", "d"}, true},
		{"same index", 2, 2, []string{"e", "d", "c", "b", "a"}, false},
		{"from out of range", 5, 0, []string{"e", "d", "c", "b", "a"}, false},
		{"to out of range", 0, -1, []string{"e", "d", "c", "b", "a"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(cfg)
			g.Reset(1, nil)

			if moved := g.MoveStation(tc.from, tc.to); moved != tc.moved {
				t.Errorf("MoveStation() = %v, expected %v", moved, tc.moved)
			}
			if !reflect.DeepEqual(g.Current(), tc.expected) {
				t.Errorf("order = %v, expected %v", g.Current(), tc.expected)
			}
			if !tc.moved && g.Moves() != 0 {
				t.Errorf("no-op move counted: %d", g.Moves())
			}
		})
	}
}

// permutations returns every ordering of items.
func permutations(items []string) [][]string {
	if len(items) <= 1 {
		return [][]string{append([]string(nil), items...)}
	}
	var out [][]string
	for i := range items {
		rest := make([]string, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{items[i]}, p...))
		}
	}
	return out
}

func TestEveryPermutationConvergesWithinNMinusOneMoves(t *testing.T) {
	target := config.Default().Trainline.Levels[5].Stops // six stations
	n := len(target)

	for _, start := range permutations(target) {
		g := New(config.TrainlineConfig{
			LevelAward: 100,
			Levels:     []config.TrainlineLine{{Stops: target, StartOrder: start, TimeLimit: 10}},
		})
		g.Reset(1, nil)

		// Place the correct station at each index in turn
		for i := 0; i < n && !g.Resolved(); i++ {
			cur := g.Current()
			if reflect.DeepEqual(cur, target) != g.Resolved() {
				t.Fatalf("resolved flag disagrees with order %v", cur)
			}
			if cur[i] == target[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if cur[j] == target[i] {
					g.MoveStation(j, i)
					break
				}
			}
		}

		if !g.Resolved() {
			t.Fatalf("start %v did not converge, ended at %v", start, g.Current())
		}
		if g.Moves() > n-1 {
			t.Fatalf("start %v took %d moves, expected at most %d", start, g.Moves(), n-1)
		}
	}
}

func TestCurrentStaysPermutation(t *testing.T) {
	g := New(config.Default().Trainline)
	g.Reset(6, nil)

	moves := [][2]int{{0, 5}, {3, 1}, {5, 0}, {2, 4}, {1, 1}, {4, 2}}
	for _, m := range moves {
		g.MoveStation(m[0], m[1])

		got := g.Current()
		want := g.Target()
		if len(got) != len(want) {
			t.Fatalf("length changed to %d", len(got))
		}
		seen := make(map[string]bool)
		for _, s := range got {
			seen[s] = true
		}
		for _, s := range want {
			if !seen[s] {
				t.Fatalf("station %q lost after move %v: %v", s, m, got)
			}
		}
	}
}

func TestNoMovesAfterResolve(t *testing.T) {
	g := newLevel1(t)
	g.MoveStation(1, 0)

	if g.MoveStation(0, 2) {
		t.Error("MoveStation after resolve should be a no-op")
	}
	g.Handle(core.MoveStation(0, 1))
	if !g.Resolved() || g.Score() != 100 {
		t.Error("resolved level changed after a late input")
	}
}

func TestKeyboardGrabAndDrop(t *testing.T) {
	g := newLevel1(t)

	// Cursor to Woodlawn (row 1), grab it, carry it up one row
	g.Handle(core.Press(core.ActionDown))
	g.Handle(core.Press(core.ActionConfirm))
	g.Handle(core.Press(core.ActionUp))

	if !g.Resolved() {
		t.Errorf("expected resolved after carrying Woodlawn up, got %v", g.Current())
	}
}

func TestResetPerLevel(t *testing.T) {
	g := New(config.Default().Trainline)

	for level := 1; level <= g.Levels(); level++ {
		g.Reset(level, nil)
		if g.Status() != core.StatusPlaying {
			t.Errorf("level %d should start playing", level)
		}
		if g.Score() != 0 {
			t.Errorf("level %d should start with score 0", level)
		}
	}
	if g.Line() != "1" {
		t.Errorf("level 6 line = %q, expected 1", g.Line())
	}
	if g.TimeLimit(1) != 20 || g.TimeLimit(2) != 15 || g.TimeLimit(6) != 10 {
		t.Error("unexpected time limits")
	}
	if g.TimeLimit(7) != 0 {
		t.Error("out of range level should have no time limit")
	}
}

func TestRender(t *testing.T) {
	g := newLevel1(t)
	screen := core.NewScreen(60, 20)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"(4)", "Level 1/6", "Woodlawn", "Mosholu Parkway"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
