package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML and Default() disagree:\nyaml:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if n := len(Default().Trainline.Levels); n != 6 {
		t.Errorf("expected 6 trainline levels, got %d", n)
	}
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte("rush:\n  win_bonus: 2500\n  tick: 50ms\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Rush.WinBonus != 2500 {
		t.Errorf("WinBonus = %d, expected 2500", cfg.Rush.WinBonus)
	}
	if cfg.Rush.Tick != 50*time.Millisecond {
		t.Errorf("Tick = %v, expected 50ms", cfg.Rush.Tick)
	}
	if cfg.Rush.BaseSpeed != 1.2 {
		t.Errorf("BaseSpeed = %v, default should survive", cfg.Rush.BaseSpeed)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no trainline levels", func(c *Config) { c.Trainline.Levels = nil }},
		{"start order not a permutation", func(c *Config) {
			c.Trainline.Levels[0].StartOrder = []string{"Woodlawn", "Woodlawn", "Mosholu Parkway"}
		}},
		{"prize range inverted", func(c *Config) { c.Prize.MinPoints, c.Prize.MaxPoints = 400, 100 }},
		{"rush tick zero", func(c *Config) { c.Rush.Tick = 0 }},
		{"catchtrain ground below world", func(c *Config) { c.Catchtrain.World.GroundY = 100 }},
		{"catchtrain no room for obstacles", func(c *Config) { c.Catchtrain.Obstacles.MinX = 200 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("error %v should wrap ErrInvalid", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("prize:\n  boxes: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Prize.Boxes != 5 {
		t.Errorf("Boxes = %d, expected 5", cfg.Prize.Boxes)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail for a missing custom path")
	}
}

func TestApplyPreset(t *testing.T) {
	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Trainline.Levels[0].TimeLimit != 30 {
		t.Errorf("easy level 1 limit = %d, expected 30", easy.Trainline.Levels[0].TimeLimit)
	}
	if easy.Catchtrain.Obstacles.Count != 2 {
		t.Errorf("easy obstacle count = %d, expected 2", easy.Catchtrain.Obstacles.Count)
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Rush.TimeLimit != 15 {
		t.Errorf("hard rush limit = %d, expected 15", hard.Rush.TimeLimit)
	}
	if hard.Rush.SpawnInterval != time.Second {
		t.Errorf("hard spawn interval = %v, expected 1s", hard.Rush.SpawnInterval)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}

	// Presets must not alias the defaults' level slice
	if Default().Trainline.Levels[0].TimeLimit != 20 {
		t.Error("ApplyPreset mutated shared defaults")
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("METRO_FPS", "60")
	t.Setenv("METRO_DIFFICULTY", "hard")
	t.Setenv("METRO_DB", "/tmp/metro.db")

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.FPS != 60 || s.Difficulty != "hard" || s.DBPath != "/tmp/metro.db" {
		t.Errorf("unexpected settings: %+v", s)
	}
	if s.SSHAddr != ":23234" {
		t.Errorf("SSHAddr default = %q", s.SSHAddr)
	}
}

func TestLoadSettingsRejectsBadFPS(t *testing.T) {
	t.Setenv("METRO_FPS", "0")
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadSettings should reject fps 0")
	}
}
