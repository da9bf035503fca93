package rush

import "github.com/vovakirdan/metro-minigames/internal/core"

// Obstacle is one commuter on the platform.
type Obstacle struct {
	ID int
	X  float64 // Distance from the stairs
	Y  float64
}

// moveObstacles advances every obstacle and drops those past the field.
func (g *Game) moveObstacles(speed float64) {
	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.X += speed
		if o.X >= g.cfg.FieldWidth {
			continue
		}
		kept = append(kept, o)
	}
	g.obstacles = kept
}

// collides reports whether any obstacle is inside the player's hit box.
func (g *Game) collides() bool {
	for _, o := range g.obstacles {
		if core.Near(o.X, o.Y, g.cfg.PlayerX, g.playerY, g.cfg.HitBoxX, g.cfg.HitBoxY) {
			return true
		}
	}
	return false
}

// Obstacles returns a copy of the live obstacles.
func (g *Game) Obstacles() []Obstacle {
	return append([]Obstacle(nil), g.obstacles...)
}

// AddObstacle places an obstacle directly. Scripted scenarios use it to
// set up a known field.
func (g *Game) AddObstacle(x, y float64) {
	g.nextID++
	g.obstacles = append(g.obstacles, Obstacle{ID: g.nextID, X: x, Y: y})
}
