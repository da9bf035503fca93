// Package prize implements the mystery box pick: three boxes hide a
// random number of points and the player opens exactly one.
package prize

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/registry"
)

// Box is one pickable option.
type Box struct {
	ID     int
	Points int
}

// Game implements the PrizePick variant.
type Game struct {
	cfg      config.PrizeConfig
	boxes    []Box
	selected int // Box ID, 0 while nothing is picked
	cursor   int // Index of the highlighted box
	status   core.Status
	score    int
}

// New creates a prize pick from its tuning.
func New(cfg config.PrizeConfig) *Game {
	return &Game{cfg: cfg}
}

// Variant returns core.PrizePick.
func (g *Game) Variant() core.Variant {
	return core.PrizePick
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Mystery Prize"
}

// Levels returns 1.
func (g *Game) Levels() int {
	return 1
}

// TimeLimit returns the countdown in seconds.
func (g *Game) TimeLimit(int) int {
	return g.cfg.TimeLimit
}

// Reset draws the hidden points for every box. Points are uniform in
// [MinPoints, MaxPoints], both ends included.
func (g *Game) Reset(_ int, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	span := g.cfg.MaxPoints - g.cfg.MinPoints + 1
	g.boxes = make([]Box, g.cfg.Boxes)
	for i := range g.boxes {
		g.boxes[i] = Box{ID: i + 1, Points: g.cfg.MinPoints + rng.Intn(span)}
	}

	g.selected = 0
	g.cursor = 0
	g.status = core.StatusPlaying
	g.score = 0
}

// SetBoxes replaces the drawn boxes. Used by tests and scripted demos
// that need known values.
func (g *Game) SetBoxes(boxes []Box) {
	if g.selected != 0 {
		return
	}
	g.boxes = append([]Box(nil), boxes...)
}

// Drivers returns nil: the reveal wait is handled through SettleDelay.
func (g *Game) Drivers() []registry.Driver {
	return nil
}

// Handle applies one input.
func (g *Game) Handle(in core.Input) {
	if g.status.Terminal() {
		return
	}

	switch in.Action {
	case core.ActionSelect:
		g.SelectBox(in.ID)
	case core.ActionLeft, core.ActionUp:
		g.cursor = core.Clamp(g.cursor-1, 0, len(g.boxes)-1)
	case core.ActionRight, core.ActionDown:
		g.cursor = core.Clamp(g.cursor+1, 0, len(g.boxes)-1)
	case core.ActionConfirm, core.ActionJump:
		if g.cursor < len(g.boxes) {
			g.SelectBox(g.boxes[g.cursor].ID)
		}
	}
}

// SelectBox opens the box with the given id. Only the first valid pick
// counts; unknown ids and later picks are ignored. Reports whether the
// pick was accepted.
func (g *Game) SelectBox(id int) bool {
	if g.selected != 0 || g.status.Terminal() {
		return false
	}
	for i, b := range g.boxes {
		if b.ID == id {
			g.selected = id
			g.cursor = i
			g.score = b.Points
			g.status = core.StatusWon
			return true
		}
	}
	return false
}

// Status is Won once a box is opened.
func (g *Game) Status() core.Status {
	return g.status
}

// Score returns the points of the opened box.
func (g *Game) Score() int {
	return g.score
}

// SettleDelay keeps the opened box on screen before the level ends.
func (g *Game) SettleDelay() time.Duration {
	return g.cfg.RevealDelay
}

// Boxes returns a copy of the options.
func (g *Game) Boxes() []Box {
	return append([]Box(nil), g.boxes...)
}

// Selected returns the opened box id, or 0.
func (g *Game) Selected() int {
	return g.selected
}

// Render draws the boxes in a row, revealing points once a box is open.
func (g *Game) Render(dst *core.Screen) {
	dst.DrawTextCentered(1, "Pick a mystery box!")

	const boxW, boxH, gap = 12, 5, 3
	total := len(g.boxes)*boxW + (len(g.boxes)-1)*gap
	x0 := (dst.Width() - total) / 2
	y := 4

	for i, b := range g.boxes {
		r := core.NewRect(x0+i*(boxW+gap), y, boxW, boxH)
		dst.DrawBox(r)

		label := "?"
		color := core.ColorYellow
		if g.selected != 0 {
			label = fmt.Sprintf("%d", b.Points)
			color = core.ColorGray
			if b.ID == g.selected {
				color = core.ColorGreen
			}
		}
		dst.DrawTextColor(r.X+(boxW-len(label))/2, r.Y+2, label, color)
		dst.DrawText(r.X+(boxW-5)/2, r.Bottom(), fmt.Sprintf("Box %d", b.ID))

		if i == g.cursor && g.selected == 0 {
			dst.DrawText(r.X+boxW/2, r.Bottom()+1, "^")
		}
	}

	if g.selected != 0 {
		dst.DrawTextCentered(y+boxH+3, fmt.Sprintf("You won %d points!", g.score))
	} else {
		dst.DrawTextCentered(dst.Height()-2, "←/→ choose  enter open  1-3 pick")
	}
}

func init() {
	registry.Register(core.PrizePick, func(cfg config.Config) registry.Game {
		return New(cfg.Prize)
	})
}
