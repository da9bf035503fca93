package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "minigames.yaml"

// Load reads the mini-game tuning.
// Search order: customPath -> ~/.metro/configs/minigames.yaml ->
// ./configs/minigames.yaml -> embedded default.
// Only a broken custom path is an error; other sources fall through.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", fileName)); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only
// needs the keys it changes, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".metro", "configs", filename)
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects tuning that would make a mini-game unplayable.
func (c Config) Validate() error {
	t := c.Trainline
	if len(t.Levels) == 0 {
		return invalid("trainline needs at least one level")
	}
	if t.LevelAward < 0 {
		return invalid("trainline level_award must be non-negative")
	}
	for i, lvl := range t.Levels {
		if len(lvl.Stops) < 2 {
			return invalid("trainline level %d needs at least two stops", i+1)
		}
		if !isPermutation(lvl.Stops, lvl.StartOrder) {
			return invalid("trainline level %d start_order is not a permutation of stops", i+1)
		}
		if lvl.TimeLimit <= 0 {
			return invalid("trainline level %d time_limit must be positive", i+1)
		}
	}

	p := c.Prize
	if p.Boxes < 1 {
		return invalid("prize needs at least one box")
	}
	if p.MinPoints < 0 || p.MaxPoints < p.MinPoints {
		return invalid("prize points range [%d, %d] is invalid", p.MinPoints, p.MaxPoints)
	}
	if p.RevealDelay < 0 || p.TimeLimit <= 0 {
		return invalid("prize reveal_delay and time_limit must be positive")
	}

	r := c.Rush
	if r.Tick <= 0 || r.SpawnInterval <= 0 {
		return invalid("rush tick and spawn_interval must be positive")
	}
	if r.ProgressIncrement <= 0 || r.StageSize <= 0 {
		return invalid("rush progress_increment and stage_size must be positive")
	}
	if r.FieldWidth <= 0 || r.SpawnMaxY < r.SpawnMinY {
		return invalid("rush field is invalid")
	}
	if r.WinBonus < 0 || r.TimeLimit <= 0 {
		return invalid("rush win_bonus and time_limit are invalid")
	}

	ct := c.Catchtrain
	if ct.Frame <= 0 {
		return invalid("catchtrain frame must be positive")
	}
	if ct.World.Width <= 0 || ct.World.GroundY <= 0 || ct.World.GroundY > ct.World.Height {
		return invalid("catchtrain world is invalid")
	}
	if ct.Physics.Speed <= 0 || ct.Physics.Gravity <= 0 || ct.Physics.JumpVelocity <= 0 {
		return invalid("catchtrain physics must be positive")
	}
	if ct.Player.Width <= 0 || ct.Player.Height <= 0 || ct.Door.Width <= 0 || ct.Door.Height <= 0 {
		return invalid("catchtrain player and door need a size")
	}
	if ct.Obstacles.Count < 0 {
		return invalid("catchtrain obstacle count must be non-negative")
	}
	if ct.Obstacles.Count > 0 {
		if ct.Obstacles.Width <= 0 || ct.Obstacles.Height <= 0 || ct.Obstacles.MinGap < 0 {
			return invalid("catchtrain obstacles need a size")
		}
		need := float64(ct.Obstacles.Count-1) * ct.Obstacles.MinGap
		if ct.MaxX()-ct.Obstacles.MinX < need {
			return invalid("catchtrain has no room for %d obstacles", ct.Obstacles.Count)
		}
	}
	if ct.WinBonus < 0 || ct.TimeLimit <= 0 {
		return invalid("catchtrain win_bonus and time_limit are invalid")
	}

	return nil
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}
