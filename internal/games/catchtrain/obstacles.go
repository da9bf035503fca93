package catchtrain

import (
	"math/rand"
	"sort"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
)

// placeObstacles draws Count boxes resting on the ground between MinX and
// MaxX. Consecutive boxes are at least MinGap apart so every layout can be
// cleared with single jumps.
func placeObstacles(cfg config.CatchtrainConfig, rng *rand.Rand) []core.RectF {
	n := cfg.Obstacles.Count
	if n <= 0 {
		return nil
	}

	// Spread the slack left after the mandatory gaps as random offsets
	slack := cfg.MaxX() - cfg.Obstacles.MinX - float64(n-1)*cfg.Obstacles.MinGap
	if slack < 0 {
		slack = 0
	}
	offsets := make([]float64, n)
	for i := range offsets {
		offsets[i] = rng.Float64() * slack
	}
	sort.Float64s(offsets)

	y := cfg.World.GroundY - cfg.Obstacles.Height
	out := make([]core.RectF, n)
	for i, off := range offsets {
		x := cfg.Obstacles.MinX + off + float64(i)*cfg.Obstacles.MinGap
		out[i] = core.NewRectF(x, y, cfg.Obstacles.Width, cfg.Obstacles.Height)
	}
	return out
}

func sortByX(rects []core.RectF) {
	sort.Slice(rects, func(i, j int) bool { return rects[i].X < rects[j].X })
}

// NextObstacle returns the nearest box whose right edge is still ahead of
// the player, and whether there is one.
func (g *Game) NextObstacle() (core.RectF, bool) {
	for _, o := range g.obstacles {
		if o.Right() > g.player.X {
			return o, true
		}
	}
	return core.RectF{}, false
}
