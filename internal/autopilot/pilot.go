// Package autopilot plays mini-games without a human. The metro simulate
// command uses it to exercise whole sessions headless, and tests use it
// to check that default tuning is winnable.
package autopilot

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/games/catchtrain"
	"github.com/vovakirdan/metro-minigames/internal/games/prize"
	"github.com/vovakirdan/metro-minigames/internal/games/rush"
	"github.com/vovakirdan/metro-minigames/internal/games/trainline"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
)

// DefaultThink is the pause between discrete decisions.
const DefaultThink = 400 * time.Millisecond

// Pilot chooses the next input for a session. Discrete games get one
// decision per think interval; the sims react every frame.
type Pilot struct {
	cfg   config.Config
	rng   *rand.Rand
	think time.Duration
	last  time.Duration
	level int
}

// New creates a pilot for sessions built from cfg.
func New(cfg config.Config, seed int64, think time.Duration) *Pilot {
	if think < 0 {
		think = 0
	}
	return &Pilot{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		think: think,
	}
}

// Next returns the input to send now, if any.
func (p *Pilot) Next(s *minigame.Session) (core.Input, bool) {
	if s.Done() {
		return core.Input{}, false
	}

	switch g := s.Game().(type) {
	case *trainline.Game:
		if !p.ready(s) {
			return core.Input{}, false
		}
		return p.reorder(g)
	case *prize.Game:
		if !p.ready(s) {
			return core.Input{}, false
		}
		return p.pick(g)
	case *rush.Game:
		return p.dodge(g)
	case *catchtrain.Game:
		return p.jump(g)
	}
	return core.Input{}, false
}

// Step feeds the pilot's input to the session. It has the FrameFunc shape
// so it can be handed to minigame.Run.
func (p *Pilot) Step(s *minigame.Session) {
	if in, ok := p.Next(s); ok {
		s.Input(in)
	}
}

// ready reports whether the think interval has passed since the last
// decision. A new level restarts the wait.
func (p *Pilot) ready(s *minigame.Session) bool {
	now := s.Elapsed()
	if lvl := s.Round().Level; lvl != p.level {
		p.level = lvl
		p.last = now
	}
	if now-p.last < p.think {
		return false
	}
	p.last = now
	return true
}

// reorder moves the station that belongs at the first wrong index.
func (p *Pilot) reorder(g *trainline.Game) (core.Input, bool) {
	cur, target := g.Current(), g.Target()
	for i := range target {
		if cur[i] == target[i] {
			continue
		}
		for j := i + 1; j < len(cur); j++ {
			if cur[j] == target[i] {
				return core.MoveStation(j, i), true
			}
		}
	}
	return core.Input{}, false
}

// pick opens a random box.
func (p *Pilot) pick(g *prize.Game) (core.Input, bool) {
	boxes := g.Boxes()
	if len(boxes) == 0 || g.Selected() != 0 {
		return core.Input{}, false
	}
	return core.SelectBox(boxes[p.rng.Intn(len(boxes))].ID), true
}

// dodge keeps the player clear of commuters in or entering the hit box.
// It scores lanes up to three steps away by how deep they sit inside any
// threat's box and heads for the shallowest, nearest one.
func (p *Pilot) dodge(g *rush.Game) (core.Input, bool) {
	cfg := p.cfg.Rush
	y := g.PlayerY()
	reach := cfg.PlayerX + cfg.HitBoxX
	margin := cfg.HitBoxY + 1

	depth := func(py float64) float64 {
		d := 0.0
		for _, o := range g.Obstacles() {
			if o.X < reach {
				d += math.Max(0, margin-math.Abs(o.Y-py))
			}
		}
		return d
	}

	bestK, bestDepth := 0, depth(y)
	if bestDepth == 0 {
		return core.Input{}, false
	}
	for _, k := range []int{-1, 1, -2, 2, -3, 3} {
		ny := core.ClampF(y+float64(k)*cfg.MoveStep, 0, 100)
		if d := depth(ny); d < bestDepth {
			bestK, bestDepth = k, d
		}
	}

	switch {
	case bestK < 0:
		return core.Press(core.ActionUp), true
	case bestK > 0:
		return core.Press(core.ActionDown), true
	}
	return core.Input{}, false
}

// jump leaps when the next obstacle is at the ideal take-off distance.
func (p *Pilot) jump(g *catchtrain.Game) (core.Input, bool) {
	if !g.Player().OnGround {
		return core.Input{}, false
	}
	o, ok := g.NextObstacle()
	if !ok {
		return core.Input{}, false
	}
	if gap := o.X - g.PlayerRect().Right(); gap <= TakeoffGap(p.cfg.Catchtrain) {
		return core.Press(core.ActionJump), true
	}
	return core.Input{}, false
}

// TakeoffGap returns the distance from the player's front edge to an
// obstacle at which a jump clears it with the most margin on both sides.
// It is zero when the jump can never clear an obstacle.
func TakeoffGap(cfg config.CatchtrainConfig) float64 {
	v, grav, h := cfg.Physics.JumpVelocity, cfg.Physics.Gravity, cfg.Obstacles.Height
	disc := v*v - 2*grav*h
	if disc < 0 || grav <= 0 {
		return 0
	}
	// Airborne above the obstacle between t1 and t2
	t1 := (v - math.Sqrt(disc)) / grav
	t2 := (v + math.Sqrt(disc)) / grav

	lo := cfg.Physics.Speed * t1
	hi := cfg.Physics.Speed*t2 - cfg.Player.Width - cfg.Obstacles.Width
	if hi < lo {
		return 0
	}
	return (lo + hi) / 2
}

// Play runs a session to completion on virtual time, stepping one frame
// at a time and letting the pilot act between frames. It gives up after
// limit of virtual time and reports whether the session finished.
func Play(s *minigame.Session, p *Pilot, frame, limit time.Duration) bool {
	if frame <= 0 {
		frame = time.Second / 30
	}
	for !s.Done() && s.Elapsed() < limit {
		p.Step(s)
		s.Advance(frame)
	}
	return s.Done()
}
