// Package registry provides the registry of mini-game factories.
// Variants register themselves in init() functions, so the session layer
// can build any variant without importing each game package.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/core"
)

// Game is the per-level sub-state of one mini-game variant.
// Games contain pure logic with no timers of their own; the session
// drives them through Drivers and Handle.
type Game interface {
	// Variant returns the variant this game implements.
	Variant() core.Variant

	// Title returns a human-readable name for display.
	Title() string

	// Levels returns how many levels a session plays.
	Levels() int

	// TimeLimit returns the countdown for a level (1-based), in seconds.
	TimeLimit(level int) int

	// Reset initializes the sub-state for a level (1-based).
	Reset(level int, rng *rand.Rand)

	// Drivers returns the periodic callbacks the session must schedule
	// for the current level. Discrete games return nil.
	Drivers() []Driver

	// Handle applies one player input. Inputs that do not apply to the
	// variant, are out of range, or arrive after a terminal status are ignored.
	Handle(in core.Input)

	// Status reports the level outcome so far.
	Status() core.Status

	// Score returns the points earned on the current level.
	Score() int

	// SettleDelay is how long the session waits after a terminal status
	// before completing the level. Zero means immediately.
	SettleDelay() time.Duration

	// Render draws the current level into the screen buffer.
	Render(dst *core.Screen)
}

// Driver is a periodic simulation callback.
type Driver struct {
	Name   string
	Period time.Duration
	Step   func(dt time.Duration)
}

// Factory builds a game from the loaded tuning.
type Factory func(cfg config.Config) Game

// Info contains metadata about a registered variant.
type Info struct {
	Variant core.Variant
	Title   string
	Levels  int
}

var (
	factories = make(map[core.Variant]Factory)
	infos     = make(map[core.Variant]Info)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if the variant is already registered.
func Register(v core.Variant, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[v]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v))
	}

	factories[v] = f

	// Title and level count come from a throwaway instance
	g := f(config.Default())
	infos[v] = Info{Variant: v, Title: g.Title(), Levels: g.Levels()}
}

// List returns every registered variant in menu order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	order := make(map[core.Variant]int)
	for i, v := range core.Variants() {
		order[v] = i
	}

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return order[result[i].Variant] < order[result[j].Variant]
	})
	return result
}

// Create builds a game for the variant.
// Returns an error if the variant is not registered.
func Create(v core.Variant, cfg config.Config) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[v]
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", v)
	}
	return f(cfg), nil
}

// Exists checks if a variant is registered.
func Exists(v core.Variant) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[v]
	return ok
}
