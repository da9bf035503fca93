package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Settings holds process-level options for the metro binary.
// Values come from the environment (optionally a .env file) and act as
// defaults for the matching command-line flags.
type Settings struct {
	DBPath      string `env:"METRO_DB" envDefault:"~/.metro/bonuses.db"`
	ConfigPath  string `env:"METRO_CONFIG"`
	Difficulty  string `env:"METRO_DIFFICULTY" envDefault:"normal"`
	FPS         int    `env:"METRO_FPS" envDefault:"30"`
	Seed        int64  `env:"METRO_SEED" envDefault:"0"`
	SSHAddr     string `env:"METRO_SSH_ADDR" envDefault:":23234"`
	HostKeyPath string `env:"METRO_HOST_KEY"`
	MetricsAddr string `env:"METRO_METRICS_ADDR"`
	LogLevel    string `env:"METRO_LOG_LEVEL" envDefault:"info"`
}

// LoadSettings parses Settings from the environment. A missing .env file
// is not an error.
func LoadSettings(envFiles ...string) (Settings, error) {
	//nolint:errcheck // .env is optional
	godotenv.Load(envFiles...)

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("config: cannot parse environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks ranges that flags cannot express.
func (s Settings) Validate() error {
	if s.FPS < 1 || s.FPS > 240 {
		return invalid("METRO_FPS must be between 1 and 240, got %d", s.FPS)
	}
	if _, ok := ParsePreset(s.Difficulty); !ok {
		return invalid("METRO_DIFFICULTY must be easy, normal or hard, got %q", s.Difficulty)
	}
	return nil
}
