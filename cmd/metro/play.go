package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
	"github.com/vovakirdan/metro-minigames/internal/platform/tui"
	"github.com/vovakirdan/metro-minigames/internal/prizes"
	"github.com/vovakirdan/metro-minigames/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a mini-game",
	Long: `Start a session of the given mini-game. The bonus is saved to the
results database and counts toward your MetroCard prize tier.

Controls:
  Up/Down      - Move cursor or player (trainline, rush)
  Enter        - Grab/drop a station (trainline), open a box (prize)
  Left/Right   - Choose a box (prize)
  1-9          - Open that box directly (prize)
  Space        - Jump (catchtrain)
  Q/Ctrl+C     - Quit

Examples:
  metro play trainline
  metro play prize
  metro play rush --difficulty easy
  metro play catchtrain --config ./my-minigames.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant, err := core.ParseVariant(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'metro list' to see available mini-games", err)
	}

	tuning, _, err := loadTuning()
	if err != nil {
		return err
	}
	logger := newLogger("metro")

	store, err := storage.Open(settings.DBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	result, finished, err := tui.Run(variant, tui.GameOptions{
		Tuning:    tuning,
		Runtime:   runtimeConfig(),
		Observers: []minigame.Observer{storage.NewRecorder(store, player(), logger)},
	})
	if err != nil {
		return fmt.Errorf("running %s: %w", variant, err)
	}
	if !finished {
		return nil
	}

	printSummary(store, result, logger)
	return nil
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = settings.FPS
	cfg.Seed = settings.Seed
	return cfg
}

// printSummary shows the session bonus and the player's prize progress.
func printSummary(store *storage.Store, res minigame.Result, logger *log.Logger) {
	table := prizes.Default()

	fmt.Printf("%s finished: %s, bonus %d\n", res.Variant, res.Outcome, res.Bonus)
	if len(res.Levels) > 1 {
		for _, l := range res.Levels {
			fmt.Printf("  level %d  %-9s  %4d pts  %2ds left\n", l.Level, l.Status, l.Score, l.TimeLeft)
		}
	}

	if store == nil {
		return
	}
	total, err := store.PlayerTotal(player())
	if err != nil {
		logger.Warn("could not read player total", "error", err)
		return
	}

	fmt.Printf("\nTotal bonus for %s: %d\n", player(), total)
	if p, ok := table.Lookup(total); ok {
		fmt.Printf("%s - %s\n", p.Name, p.Description)
	}
	if next, ok := table.Next(total); ok {
		fmt.Printf("%d more points to the %s\n", next.MinScore-total, next.Name)
	}
	code := table.ShopCodeFor(total)
	fmt.Printf("Shop code: %s\n", code.Code)
}
