// metro runs the subway mini-games that sit between trivia rounds.
//
// Usage:
//
//	metro list                  - List available mini-games
//	metro play <variant>        - Play a mini-game
//	metro menu                  - Pick mini-games interactively
//	metro simulate <variant>    - Let the autopilot play sessions
//	metro scores [variant]      - Show the bonus board
//	metro serve                 - Start SSH server for remote play
//
// Global flags override METRO_* environment variables (also read from .env):
//
//	--fps <rate>           - Set frame rate (METRO_FPS, default 30)
//	--seed <value>         - Set RNG seed for reproducible sessions (METRO_SEED)
//	--db <path>            - Set database path (METRO_DB)
//	--config <path>        - Custom minigames.yaml (METRO_CONFIG)
//	--difficulty <preset>  - easy, normal or hard (METRO_DIFFICULTY)
//	--log-level <level>    - debug, info, warn, error (METRO_LOG_LEVEL)
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/metro-minigames/internal/games/catchtrain"
	_ "github.com/vovakirdan/metro-minigames/internal/games/prize"
	_ "github.com/vovakirdan/metro-minigames/internal/games/rush"
	_ "github.com/vovakirdan/metro-minigames/internal/games/trainline"
)

// settings holds the effective process settings after flags are applied.
var settings config.Settings

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "metro",
	Short: "Metro mini-games - bonus rounds for subway trivia",
	Long: `Metro mini-games are short timed games played between trivia rounds.
Each session reports one bonus that counts toward MetroCard prize tiers.

Available commands:
  list      - Show all mini-games
  play      - Play a specific mini-game
  menu      - Interactive mini-game picker
  simulate  - Let the autopilot play sessions headless
  scores    - View the bonus board
  serve     - Start SSH server for remote play

Examples:
  metro list
  metro play trainline
  metro play rush --difficulty hard
  metro simulate catchtrain --runs 50
  metro serve --ssh :2222 --metrics :9090`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().Int("fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().String("db", "~/.metro/bonuses.db", "Path to results database")
	rootCmd.PersistentFlags().String("config", "", "Path to custom minigames.yaml")
	rootCmd.PersistentFlags().String("difficulty", "normal", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings reads the environment, then lets explicitly set flags win.
func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.FPS, _ = flags.GetInt("fps")
	}
	if flags.Changed("seed") {
		s.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("db") {
		s.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("config") {
		s.ConfigPath, _ = flags.GetString("config")
	}
	if flags.Changed("difficulty") {
		s.Difficulty, _ = flags.GetString("difficulty")
	}
	if flags.Changed("log-level") {
		s.LogLevel, _ = flags.GetString("log-level")
	}

	if err := s.Validate(); err != nil {
		return err
	}
	settings = s
	return nil
}

// loadTuning loads minigames.yaml and applies the difficulty preset.
func loadTuning() (config.Config, config.DifficultyPreset, error) {
	cfg, err := config.Load(settings.ConfigPath)
	if err != nil {
		return config.Config{}, "", err
	}
	preset, _ := config.ParsePreset(settings.Difficulty)
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, preset, nil
}

// newLogger returns a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// player names the local player in stored results.
func player() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "rider"
}
