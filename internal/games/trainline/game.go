// Package trainline implements the station reordering puzzle: put the
// stations of a subway line back into travel order before time runs out.
// A session plays every configured line, one level each.
package trainline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// Game implements the ReorderPuzzle variant.
type Game struct {
	cfg      config.TrainlineConfig
	level    int
	line     config.TrainlineLine
	target   []string // Ground truth order
	current  []string // Player order; always a permutation of target
	resolved bool
	status   core.Status
	score    int
	moves    int
	cursor   int  // Highlighted row
	grabbed  bool // Whether the highlighted station is picked up
}

// New creates a puzzle from the trainline tuning.
func New(cfg config.TrainlineConfig) *Game {
	return &Game{cfg: cfg}
}

// Variant returns core.ReorderPuzzle.
func (g *Game) Variant() core.Variant {
	return core.ReorderPuzzle
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Train Line Challenge"
}

// Levels returns the number of configured lines.
func (g *Game) Levels() int {
	return len(g.cfg.Levels)
}

// TimeLimit returns the countdown for a level in seconds.
func (g *Game) TimeLimit(level int) int {
	if lvl, ok := g.levelConfig(level); ok {
		return lvl.TimeLimit
	}
	return 0
}

func (g *Game) levelConfig(level int) (config.TrainlineLine, bool) {
	if level < 1 || level > len(g.cfg.Levels) {
		return config.TrainlineLine{}, false
	}
	return g.cfg.Levels[level-1], true
}

// Reset loads the line for a level. The puzzle is fully scripted, so
// the RNG is unused.
func (g *Game) Reset(level int, _ *rand.Rand) {
	lvl, _ := g.levelConfig(level)

	g.level = level
	g.line = lvl
	g.target = append([]string(nil), lvl.Stops...)
	g.current = append([]string(nil), lvl.StartOrder...)
	g.status = core.StatusPlaying
	g.score = 0
	g.moves = 0
	g.cursor = 0
	g.grabbed = false
	g.resolved = false
	g.checkResolved()
}

// Drivers returns nil: the puzzle only changes on input.
func (g *Game) Drivers() []registry.Driver {
	return nil
}

// Handle applies one input.
func (g *Game) Handle(in core.Input) {
	if g.status.Terminal() {
		return
	}

	switch in.Action {
	case core.ActionMove:
		g.MoveStation(in.From, in.To)
	case core.ActionUp:
		g.nudge(-1)
	case core.ActionDown:
		g.nudge(1)
	case core.ActionConfirm, core.ActionJump:
		g.grabbed = !g.grabbed
	}
}

// nudge moves the cursor, carrying the station along when it is grabbed.
func (g *Game) nudge(delta int) {
	next := core.Clamp(g.cursor+delta, 0, len(g.current)-1)
	if g.grabbed {
		g.MoveStation(g.cursor, next)
	}
	g.cursor = next
}

// MoveStation removes the station at index from and reinserts it at index
// to, keeping every other station's relative order. Degenerate or
// out-of-range moves and moves after the level ended change nothing.
// Reports whether the order changed.
func (g *Game) MoveStation(from, to int) bool {
	if g.status.Terminal() {
		return false
	}
	n := len(g.current)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false
	}

	station := g.current[from]
	g.current = append(g.current[:from], g.current[from+1:]...)
	g.current = append(g.current[:to], append([]string{station}, g.current[to:]...)...)
	g.moves++

	g.checkResolved()
	return true
}

// checkResolved recomputes the win flag and awards the flat level score.
func (g *Game) checkResolved() {
	g.resolved = equal(g.current, g.target)
	if g.resolved {
		g.status = core.StatusWon
		g.score = g.cfg.LevelAward
		g.grabbed = false
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Status reports Won once the order matches; otherwise Playing.
func (g *Game) Status() core.Status {
	return g.status
}

// Score returns the level award once resolved, zero before.
func (g *Game) Score() int {
	return g.score
}

// SettleDelay is zero: a solved line completes at once.
func (g *Game) SettleDelay() time.Duration {
	return 0
}

// Resolved reports whether the current order equals the target.
func (g *Game) Resolved() bool {
	return g.resolved
}

// Current returns a copy of the player's order.
func (g *Game) Current() []string {
	return append([]string(nil), g.current...)
}

// Target returns a copy of the solution order.
func (g *Game) Target() []string {
	return append([]string(nil), g.target...)
}

// Moves returns how many effective moves were made this level.
func (g *Game) Moves() int {
	return g.moves
}

// Line returns the subway line of the current level.
func (g *Game) Line() string {
	return g.line.Line
}

// Render draws the line header and the station list.
func (g *Game) Render(dst *core.Screen) {
	color := core.LineColor(g.line.Line)

	dst.DrawTextColor(2, 1, fmt.Sprintf("(%s)", g.line.Line), color)
	dst.DrawText(6, 1, fmt.Sprintf("Level %d/%d  Arrange stations %s", g.level, g.Levels(), g.line.Direction))

	for i, stop := range g.current {
		y := 3 + i*2
		marker := "  "
		if i == g.cursor {
			marker = "> "
			if g.grabbed {
				marker = "» "
			}
		}
		dst.DrawText(4, y, marker)
		dst.SetColor(6, y, '●', color)
		dst.DrawText(8, y, stop)
		if i < len(g.current)-1 {
			dst.SetColor(6, y+1, '│', color)
		}
	}

	help := "↑/↓ move  enter grab/drop"
	dst.DrawText(2, dst.Height()-2, help)

	if g.resolved {
		dst.DrawMessage("LINE COMPLETE", fmt.Sprintf("+%d points", g.score))
	}
}

func init() {
	registry.Register(core.ReorderPuzzle, func(cfg config.Config) registry.Game {
		return New(cfg.Trainline)
	})
}
