// Package catchtrain implements the side-scrolling dash to the train door.
// The player runs right automatically and jumps over luggage left on the
// platform. Reaching the open door wins; touching luggage loses.
package catchtrain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	DoorChar     = '▒'
	GroundChar   = '═'
)

// Player is the runner. Y is the top edge; it grows downward.
type Player struct {
	X, Y     float64
	VY       float64
	OnGround bool
}

// Game implements the PlatformJump variant.
type Game struct {
	cfg       config.CatchtrainConfig
	player    Player
	obstacles []core.RectF // Sorted by X
	door      core.RectF
	elapsed   time.Duration
	status    core.Status
	score     int
}

// New creates a platform jumper from its tuning.
func New(cfg config.CatchtrainConfig) *Game {
	return &Game{cfg: cfg}
}

// Variant returns core.PlatformJump.
func (g *Game) Variant() core.Variant {
	return core.PlatformJump
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Catch the Train"
}

// Levels returns 1.
func (g *Game) Levels() int {
	return 1
}

// TimeLimit returns the countdown in seconds.
func (g *Game) TimeLimit(int) int {
	return g.cfg.TimeLimit
}

// Reset places the player at the start and draws the luggage.
func (g *Game) Reset(_ int, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.player = Player{
		X:        g.cfg.Player.X,
		Y:        g.groundTop(),
		OnGround: true,
	}
	g.obstacles = placeObstacles(g.cfg, rng)
	g.door = core.NewRectF(
		g.cfg.World.Width-g.cfg.Door.Width,
		g.cfg.World.GroundY-g.cfg.Door.Height,
		g.cfg.Door.Width,
		g.cfg.Door.Height,
	)
	g.elapsed = 0
	g.status = core.StatusPlaying
	g.score = 0
}

// groundTop is the player's Y when standing.
func (g *Game) groundTop() float64 {
	return g.cfg.World.GroundY - g.cfg.Player.Height
}

// Drivers returns the frame driver.
func (g *Game) Drivers() []registry.Driver {
	return []registry.Driver{
		{Name: "catchtrain.frame", Period: g.cfg.Frame, Step: g.Step},
	}
}

// Handle applies a jump. Other actions are ignored.
func (g *Game) Handle(in core.Input) {
	if in.Action == core.ActionJump || in.Action == core.ActionUp {
		g.Jump()
	}
}

// Jump launches the player if standing on the ground.
// Reports whether the jump happened.
func (g *Game) Jump() bool {
	if g.status.Terminal() || !g.player.OnGround {
		return false
	}
	g.player.VY = -g.cfg.Physics.JumpVelocity
	g.player.OnGround = false
	return true
}

// Step integrates one frame of dt and resolves collisions.
func (g *Game) Step(dt time.Duration) {
	if g.status.Terminal() || dt <= 0 {
		return
	}
	sec := dt.Seconds()
	g.elapsed += dt

	p := &g.player
	p.X = min(p.X+g.cfg.Physics.Speed*sec, g.cfg.World.Width)
	p.VY += g.cfg.Physics.Gravity * sec
	p.Y += p.VY * sec

	if ground := g.groundTop(); p.Y >= ground {
		p.Y = ground
		p.VY = 0
		p.OnGround = true
	} else {
		p.OnGround = false
	}

	box := g.PlayerRect()
	for _, o := range g.obstacles {
		if box.Intersects(o) {
			g.status = core.StatusLost
			return
		}
	}
	if box.Intersects(g.door) {
		g.status = core.StatusWon
		g.score = g.cfg.WinBonus
	}
}

// PlayerRect returns the player's collision box.
func (g *Game) PlayerRect() core.RectF {
	return core.NewRectF(g.player.X, g.player.Y, g.cfg.Player.Width, g.cfg.Player.Height)
}

// Status reports the outcome so far.
func (g *Game) Status() core.Status {
	return g.status
}

// Score is the flat win bonus, or zero.
func (g *Game) Score() int {
	return g.score
}

// SettleDelay is zero.
func (g *Game) SettleDelay() time.Duration {
	return 0
}

// Player returns the runner state.
func (g *Game) Player() Player {
	return g.player
}

// Obstacles returns a copy of the luggage boxes, sorted by X.
func (g *Game) Obstacles() []core.RectF {
	return append([]core.RectF(nil), g.obstacles...)
}

// SetObstacles replaces the luggage boxes.
func (g *Game) SetObstacles(obstacles []core.RectF) {
	g.obstacles = append([]core.RectF(nil), obstacles...)
	sortByX(g.obstacles)
}

// Door returns the goal region.
func (g *Game) Door() core.RectF {
	return g.door
}

// Elapsed returns the simulated run time.
func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

// Render draws the platform scaled to the screen.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	sx := float64(w) / g.cfg.World.Width
	sy := float64(h-2) / g.cfg.World.Height
	top := 1

	dst.DrawText(2, 0, fmt.Sprintf("%.1fs  space jump", g.elapsed.Seconds()))

	groundY := top + int(g.cfg.World.GroundY*sy)
	dst.DrawHLine(0, groundY, w, GroundChar)

	draw := func(r core.RectF, ch rune, c core.Color) {
		cell := r.Scale(sx, sy)
		cell.Y += top
		// Keep boxes resting on the drawn ground
		if cell.Bottom() > groundY {
			cell.Y = groundY - cell.H
		}
		dst.DrawRect(cell, ch, c)
	}

	draw(g.door, DoorChar, core.ColorGreen)
	for _, o := range g.obstacles {
		draw(o, ObstacleChar, core.ColorBrown)
	}
	draw(g.PlayerRect(), PlayerChar, core.ColorYellow)

	switch g.status {
	case core.StatusWon:
		dst.DrawMessage("YOU CAUGHT THE TRAIN", fmt.Sprintf("+%d points", g.score))
	case core.StatusLost:
		dst.DrawMessage("TRIPPED!", "The doors closed without you")
	}
}

func init() {
	registry.Register(core.PlatformJump, func(cfg config.Config) registry.Game {
		return New(cfg.Catchtrain)
	})
}
