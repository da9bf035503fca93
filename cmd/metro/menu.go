package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/config"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
	"github.com/vovakirdan/metro-minigames/internal/platform/tui"
	"github.com/vovakirdan/metro-minigames/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick mini-games from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change difficulty and
Enter to play. After a session ends you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Difficulty
  Enter/Space  - Play
  Tab          - Bonus board
  Q            - Quit

Examples:
  metro menu
  metro menu --fps 60
  metro menu --db ./bonuses.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	base, err := config.Load(settings.ConfigPath)
	if err != nil {
		return err
	}
	preset, _ := config.ParsePreset(settings.Difficulty)
	logger := newLogger("metro")

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}
	recorder := storage.NewRecorder(store, player(), logger)

	cfg := runtimeConfig()
	for {
		menuResult, err := tui.RunMenu(cfg, preset)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		preset = menuResult.Preset

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		tuning := base
		config.ApplyPreset(&tuning, preset)

		cfg.Seed = time.Now().UnixNano()
		if _, _, err := tui.Run(menuResult.Variant, tui.GameOptions{
			Tuning:    tuning,
			Runtime:   cfg,
			Observers: []minigame.Observer{recorder},
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", menuResult.Variant, err)
		}
	}
}
