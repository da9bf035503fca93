package minigame

import (
	"math/rand"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// RoundState is the controller's view of a running session.
type RoundState struct {
	Variant    core.Variant
	Level      int // 1-based
	Levels     int
	TimeLeft   int // Seconds left on the current level
	Score      int // Points on the current level
	TotalScore int // Points from completed levels
	Status     core.Status
	Done       bool
}

// Bonus returns the points the session reports when it ends.
func (r RoundState) Bonus() int {
	return r.TotalScore + r.Score
}

// LevelResult describes one finished level.
type LevelResult struct {
	Level    int
	Status   core.Status
	Score    int
	TimeLeft int
}

// Controller advances levels, runs the per-level countdown and keeps the
// score. It owns the variant's sub-state and resets it between levels.
type Controller struct {
	game     registry.Game
	rng      *rand.Rand
	state    RoundState
	timedOut bool
}

// NewController wraps a game. Call Start before anything else.
func NewController(game registry.Game, rng *rand.Rand) *Controller {
	return &Controller{game: game, rng: rng}
}

// Start puts the round on level 1 with a fresh sub-state.
func (c *Controller) Start() {
	c.state = RoundState{
		Variant: c.game.Variant(),
		Levels:  c.game.Levels(),
	}
	c.enterLevel(1)
}

func (c *Controller) enterLevel(level int) {
	c.state.Level = level
	c.state.TimeLeft = c.game.TimeLimit(level)
	c.state.Score = 0
	c.state.Status = core.StatusPlaying
	c.timedOut = false
	c.game.Reset(level, c.rng)
}

// Tick counts down one second. It reports true when the level has just
// run out of time. A level that already won or lost never times out.
func (c *Controller) Tick() bool {
	if c.state.Done || c.LevelOver() {
		return false
	}
	if c.state.TimeLeft > 0 {
		c.state.TimeLeft--
	}
	if c.state.TimeLeft == 0 {
		c.timedOut = true
		return true
	}
	return false
}

// LevelOver reports whether the current level has an outcome.
func (c *Controller) LevelOver() bool {
	return c.timedOut || c.game.Status().Terminal()
}

// CompleteLevel closes the current level. When more levels remain it banks
// the score and starts the next one; otherwise the round is done.
// Returns false, changing nothing, if the level has no outcome yet or the
// round already ended, so a level completes at most once.
func (c *Controller) CompleteLevel() (LevelResult, bool) {
	if c.state.Done || !c.LevelOver() {
		return LevelResult{}, false
	}

	status := c.game.Status()
	if !status.Terminal() {
		status = core.StatusTimedOut
	}
	res := LevelResult{
		Level:    c.state.Level,
		Status:   status,
		Score:    c.game.Score(),
		TimeLeft: c.state.TimeLeft,
	}

	if c.state.Level < c.state.Levels {
		c.state.TotalScore += res.Score
		c.enterLevel(c.state.Level + 1)
		return res, true
	}

	c.state.Score = res.Score
	c.state.Status = res.Status
	c.state.Done = true
	return res, true
}

// State returns a snapshot of the round.
func (c *Controller) State() RoundState {
	s := c.state
	if !s.Done {
		s.Score = c.game.Score()
		s.Status = c.game.Status()
		if c.timedOut && !s.Status.Terminal() {
			s.Status = core.StatusTimedOut
		}
	}
	return s
}
