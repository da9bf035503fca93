package minigame

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// stubGame is a scriptable sub-state for controller tests.
type stubGame struct {
	levels int
	limit  int
	status core.Status
	score  int
	resets []int
}

func (g *stubGame) Variant() core.Variant      { return core.ReorderPuzzle }
func (g *stubGame) Title() string              { return "stub" }
func (g *stubGame) Levels() int                { return g.levels }
func (g *stubGame) TimeLimit(int) int          { return g.limit }
func (g *stubGame) Drivers() []registry.Driver { return nil }
func (g *stubGame) Handle(core.Input)          {}
func (g *stubGame) Status() core.Status        { return g.status }
func (g *stubGame) Score() int                 { return g.score }
func (g *stubGame) SettleDelay() time.Duration { return 0 }
func (g *stubGame) Render(*core.Screen)        {}
func (g *stubGame) Reset(level int, _ *rand.Rand) {
	g.resets = append(g.resets, level)
	g.status = core.StatusPlaying
	g.score = 0
}

func (g *stubGame) win(points int) {
	g.status = core.StatusWon
	g.score = points
}

func TestControllerStart(t *testing.T) {
	g := &stubGame{levels: 3, limit: 5}
	c := NewController(g, nil)
	c.Start()

	s := c.State()
	if s.Level != 1 || s.TimeLeft != 5 || s.Status != core.StatusPlaying || s.Done {
		t.Errorf("unexpected start state %+v", s)
	}
	if len(g.resets) != 1 || g.resets[0] != 1 {
		t.Errorf("expected one reset for level 1, got %v", g.resets)
	}
}

func TestControllerCompleteRequiresOutcome(t *testing.T) {
	g := &stubGame{levels: 2, limit: 5}
	c := NewController(g, nil)
	c.Start()

	if _, ok := c.CompleteLevel(); ok {
		t.Fatal("a level still in play must not complete")
	}
	if c.State().Level != 1 {
		t.Error("refused completion changed the level")
	}
}

func TestControllerAdvancesLevels(t *testing.T) {
	g := &stubGame{levels: 3, limit: 5}
	c := NewController(g, nil)
	c.Start()

	g.win(100)
	res, ok := c.CompleteLevel()
	if !ok || res.Level != 1 || res.Score != 100 || res.Status != core.StatusWon {
		t.Fatalf("unexpected level result %+v (ok=%v)", res, ok)
	}

	s := c.State()
	if s.Level != 2 || s.TotalScore != 100 || s.Score != 0 || s.TimeLeft != 5 {
		t.Errorf("unexpected state after level 1: %+v", s)
	}

	// The new level is in play, so a repeated completion is refused
	if _, ok := c.CompleteLevel(); ok {
		t.Error("second completion should be a no-op")
	}

	g.win(50)
	c.CompleteLevel()
	g.win(25)
	res, ok = c.CompleteLevel()
	if !ok || res.Level != 3 {
		t.Fatalf("unexpected last level result %+v", res)
	}

	s = c.State()
	if !s.Done || s.Bonus() != 175 || s.Status != core.StatusWon {
		t.Errorf("unexpected final state %+v", s)
	}
	if _, ok := c.CompleteLevel(); ok {
		t.Error("completion after done should be a no-op")
	}
}

func TestControllerTimeout(t *testing.T) {
	g := &stubGame{levels: 1, limit: 3}
	c := NewController(g, nil)
	c.Start()

	for i := 0; i < 2; i++ {
		if c.Tick() {
			t.Fatalf("tick %d timed out early", i+1)
		}
	}
	if c.State().TimeLeft != 1 {
		t.Errorf("TimeLeft = %d, expected 1", c.State().TimeLeft)
	}
	if !c.Tick() {
		t.Fatal("third tick should time out")
	}
	if c.State().Status != core.StatusTimedOut {
		t.Errorf("status = %s, expected timed_out", c.State().Status)
	}

	res, ok := c.CompleteLevel()
	if !ok || res.Status != core.StatusTimedOut || res.Score != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if c.Tick() {
		t.Error("tick after done should do nothing")
	}
}

func TestControllerWinBeatsTimeout(t *testing.T) {
	g := &stubGame{levels: 1, limit: 1}
	c := NewController(g, nil)
	c.Start()

	g.win(10)
	if c.Tick() {
		t.Error("a decided level must not time out")
	}
	res, _ := c.CompleteLevel()
	if res.Status != core.StatusWon {
		t.Errorf("status = %s, expected won", res.Status)
	}
}
