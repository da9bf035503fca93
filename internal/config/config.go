// Package config provides YAML-based tuning for the mini-games and
// environment-based process settings for the metro binary.
package config

import "time"

// Config contains the tuning of every mini-game variant.
type Config struct {
	Trainline  TrainlineConfig  `yaml:"trainline"`
	Prize      PrizeConfig      `yaml:"prize"`
	Rush       RushConfig       `yaml:"rush"`
	Catchtrain CatchtrainConfig `yaml:"catchtrain"`
}

// TrainlineConfig defines the station reordering puzzle.
type TrainlineConfig struct {
	LevelAward int             `yaml:"level_award"` // Flat points for solving a level
	Levels     []TrainlineLine `yaml:"levels"`
}

// TrainlineLine is one puzzle level: a line and its stations in travel order.
type TrainlineLine struct {
	Line       string   `yaml:"line"`
	Direction  string   `yaml:"direction"`
	Stops      []string `yaml:"stops"`       // Target order
	StartOrder []string `yaml:"start_order"` // Scrambled order shown to the player
	TimeLimit  int      `yaml:"time_limit"`  // Seconds
}

// PrizeConfig defines the mystery box pick.
type PrizeConfig struct {
	Boxes       int           `yaml:"boxes"`
	MinPoints   int           `yaml:"min_points"`
	MaxPoints   int           `yaml:"max_points"`
	RevealDelay time.Duration `yaml:"reveal_delay"`
	TimeLimit   int           `yaml:"time_limit"`
}

// RushConfig defines the scrolling avoidance game.
type RushConfig struct {
	Tick              time.Duration `yaml:"tick"`
	SpawnInterval     time.Duration `yaml:"spawn_interval"`
	ProgressIncrement float64       `yaml:"progress_increment"`
	StageSize         float64       `yaml:"stage_size"` // Progress per difficulty stage
	BaseSpeed         float64       `yaml:"base_speed"`
	SpeedIncrement    float64       `yaml:"speed_increment"`
	FieldWidth        float64       `yaml:"field_width"`
	PlayerX           float64       `yaml:"player_x"`
	PlayerStartY      float64       `yaml:"player_start_y"`
	MoveStep          float64       `yaml:"move_step"`
	HitBoxX           float64       `yaml:"hit_box_x"`
	HitBoxY           float64       `yaml:"hit_box_y"`
	SpawnMinY         float64       `yaml:"spawn_min_y"`
	SpawnMaxY         float64       `yaml:"spawn_max_y"`
	WinBonus          int           `yaml:"win_bonus"`
	TimeLimit         int           `yaml:"time_limit"`
}

// CatchtrainConfig defines the platform jumper.
type CatchtrainConfig struct {
	Frame     time.Duration     `yaml:"frame"`
	World     CatchtrainWorld   `yaml:"world"`
	Physics   CatchtrainPhysics `yaml:"physics"`
	Player    CatchtrainBox     `yaml:"player"`
	Obstacles CatchtrainHazards `yaml:"obstacles"`
	Door      CatchtrainBox     `yaml:"door"`
	WinBonus  int               `yaml:"win_bonus"`
	TimeLimit int               `yaml:"time_limit"`
}

// CatchtrainWorld is the playfield size in world units.
type CatchtrainWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"`
}

// CatchtrainPhysics holds the integration constants (units per second).
type CatchtrainPhysics struct {
	Speed        float64 `yaml:"speed"`
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"` // Magnitude; applied upward
}

// CatchtrainBox is a width/height pair, with an optional start x.
type CatchtrainBox struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CatchtrainHazards controls the static obstacle draw.
// Obstacles are placed in [MinX, MaxX()], at least MinGap apart.
type CatchtrainHazards struct {
	Count  int     `yaml:"count"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MinX   float64 `yaml:"min_x"`   // Leftmost obstacle x
	Margin float64 `yaml:"margin"`  // Clear space kept before the door
	MinGap float64 `yaml:"min_gap"` // Minimum distance between obstacle left edges
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// MaxX returns the rightmost left edge an obstacle may have.
func (c CatchtrainConfig) MaxX() float64 {
	return c.World.Width - c.Door.Width - c.Obstacles.Margin - c.Obstacles.Width
}
