// Package rush implements the rush-hour platform dodge: commuters pour
// onto the platform past the player, who slides up and down to avoid them
// until the train arrives.
package rush

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// Visual characters for rendering
const (
	PlayerChar   = '☺'
	ObstacleChar = '♟'
	EdgeChar     = '═'
)

// Game implements the ScrollAvoid variant. Coordinates are percentages of
// the playfield: commuters enter at x=0 next to the player and drift right,
// y runs from top to bottom.
type Game struct {
	cfg       config.RushConfig
	rng       *rand.Rand
	playerY   float64
	progress  float64
	stage     int
	obstacles []Obstacle
	nextID    int
	ticks     int
	status    core.Status
	score     int
}

// New creates a rush game from its tuning.
func New(cfg config.RushConfig) *Game {
	return &Game{cfg: cfg}
}

// Variant returns core.ScrollAvoid.
func (g *Game) Variant() core.Variant {
	return core.ScrollAvoid
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rush Hour"
}

// Levels returns 1.
func (g *Game) Levels() int {
	return 1
}

// TimeLimit returns the countdown in seconds.
func (g *Game) TimeLimit(int) int {
	return g.cfg.TimeLimit
}

// Reset puts the player mid-platform with an empty field.
func (g *Game) Reset(_ int, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.rng = rng
	g.playerY = g.cfg.PlayerStartY
	g.progress = 0
	g.stage = 1
	g.obstacles = g.obstacles[:0]
	g.nextID = 0
	g.ticks = 0
	g.status = core.StatusPlaying
	g.score = 0
}

// Drivers returns the sim tick and the spawn timer.
func (g *Game) Drivers() []registry.Driver {
	return []registry.Driver{
		{Name: "rush.tick", Period: g.cfg.Tick, Step: func(time.Duration) { g.Tick() }},
		{Name: "rush.spawn", Period: g.cfg.SpawnInterval, Step: func(time.Duration) { g.Spawn() }},
	}
}

// Handle moves the player. Other actions are ignored.
func (g *Game) Handle(in core.Input) {
	if g.status.Terminal() {
		return
	}

	switch in.Action {
	case core.ActionUp:
		g.playerY = core.ClampF(g.playerY-g.cfg.MoveStep, 0, 100)
	case core.ActionDown:
		g.playerY = core.ClampF(g.playerY+g.cfg.MoveStep, 0, 100)
	}
}

// Speed returns the per-tick obstacle movement for a difficulty stage.
func Speed(cfg config.RushConfig, stage int) float64 {
	return cfg.BaseSpeed + float64(stage-1)*cfg.SpeedIncrement
}

// Tick advances the sim by one step: progress, stage, movement, then the
// collision test and finally the arrival check. A collision on the tick
// that reaches full progress is still a loss.
func (g *Game) Tick() {
	if g.status.Terminal() {
		return
	}
	g.ticks++

	g.progress = math.Min(g.progress+g.cfg.ProgressIncrement, 100)
	g.stage = int(g.progress/g.cfg.StageSize) + 1

	g.moveObstacles(Speed(g.cfg, g.stage))

	if g.collides() {
		g.status = core.StatusLost
		return
	}

	if g.progress >= 100 {
		g.status = core.StatusWon
		g.score = g.cfg.WinBonus
	}
}

// Spawn adds a commuter at the far edge of the platform.
func (g *Game) Spawn() {
	if g.status.Terminal() {
		return
	}
	g.nextID++
	y := g.cfg.SpawnMinY + g.rng.Float64()*(g.cfg.SpawnMaxY-g.cfg.SpawnMinY)
	g.obstacles = append(g.obstacles, Obstacle{ID: g.nextID, X: 0, Y: y})
}

// Status reports the outcome so far.
func (g *Game) Status() core.Status {
	return g.status
}

// Score is the win bonus once the train arrives.
func (g *Game) Score() int {
	return g.score
}

// SettleDelay is zero.
func (g *Game) SettleDelay() time.Duration {
	return 0
}

// Progress returns how far the train has come, 0 to 100.
func (g *Game) Progress() float64 {
	return g.progress
}

// Stage returns the difficulty stage.
func (g *Game) Stage() int {
	return g.stage
}

// PlayerY returns the player position.
func (g *Game) PlayerY() float64 {
	return g.playerY
}

// Ticks returns the number of sim steps taken.
func (g *Game) Ticks() int {
	return g.ticks
}

// Render draws the platform, the commuters and the arrival bar.
func (g *Game) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	top, bottom := 2, h-3
	fieldH := bottom - top - 1

	dst.DrawText(2, 1, fmt.Sprintf("Stage %d", g.stage))
	g.drawProgress(dst, 12, 1, w-14)

	dst.DrawHLine(0, top, w, EdgeChar)
	dst.DrawHLine(0, bottom, w, EdgeChar)

	toScreen := func(x, y float64) (int, int) {
		sx := int(x / g.cfg.FieldWidth * float64(w-1))
		sy := top + 1 + int(y/100*float64(fieldH-1))
		return sx, sy
	}

	for _, o := range g.obstacles {
		x, y := toScreen(o.X, o.Y)
		dst.SetColor(x, y, ObstacleChar, core.ColorGray)
	}

	px, py := toScreen(g.cfg.PlayerX, g.playerY)
	dst.SetColor(px, py, PlayerChar, core.ColorYellow)

	dst.DrawText(2, h-2, "↑/↓ dodge the crowd")

	switch g.status {
	case core.StatusWon:
		dst.DrawMessage("TRAIN ARRIVED", fmt.Sprintf("+%d points", g.score))
	case core.StatusLost:
		dst.DrawMessage("BUMPED!", "You missed the train")
	}
}

func (g *Game) drawProgress(dst *core.Screen, x, y, width int) {
	if width <= 2 {
		return
	}
	inner := width - 2
	filled := int(g.progress / 100 * float64(inner))
	dst.Set(x, y, '[')
	for i := 0; i < inner; i++ {
		r := '·'
		if i < filled {
			r = '▶'
		}
		dst.Set(x+1+i, y, r)
	}
	dst.Set(x+width-1, y, ']')
}

func init() {
	registry.Register(core.ScrollAvoid, func(cfg config.Config) registry.Game {
		return New(cfg.Rush)
	})
}
