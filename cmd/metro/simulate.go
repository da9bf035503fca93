package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/autopilot"
	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/minigame"
	"github.com/vovakirdan/metro-minigames/internal/platform/tui"
	"github.com/vovakirdan/metro-minigames/internal/storage"
)

var (
	flagSimRuns  int
	flagSimThink time.Duration
	flagSimWatch bool
	flagSimSave  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <variant>",
	Short: "Let the autopilot play sessions",
	Long: `Play sessions with the built-in autopilot on virtual time and report
the bonuses. Useful for checking that a tuning file is still winnable.

With --watch a single session is played in real time in the terminal.

Examples:
  metro simulate rush --runs 100
  metro simulate catchtrain --difficulty hard --runs 50
  metro simulate trainline --watch --think 800ms
  metro simulate prize --runs 10 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of sessions to play")
	simulateCmd.Flags().DurationVar(&flagSimThink, "think", autopilot.DefaultThink, "Pause between puzzle moves")
	simulateCmd.Flags().BoolVar(&flagSimWatch, "watch", false, "Play one session in real time and draw it")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store results as player 'autopilot'")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	variant, err := core.ParseVariant(args[0])
	if err != nil {
		return err
	}
	tuning, preset, err := loadTuning()
	if err != nil {
		return err
	}
	logger := newLogger("metro-sim")

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var extra []minigame.Option
	if flagSimSave {
		store, err := storage.Open(settings.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		extra = append(extra, minigame.WithObserver(storage.NewRecorder(store, "autopilot", logger)))
	}

	if flagSimWatch {
		return watch(cmd.Context(), variant, seed, extra)
	}

	frame := time.Second / time.Duration(settings.FPS)
	var total, wins, unfinished int
	for i := 0; i < flagSimRuns; i++ {
		runSeed := seed + int64(i)
		opts := append([]minigame.Option{minigame.WithSeed(runSeed), minigame.WithLogger(logger)}, extra...)

		s, err := minigame.Start(variant, tuning, nil, opts...)
		if err != nil {
			return err
		}
		if !autopilot.Play(s, autopilot.New(tuning, runSeed, flagSimThink), frame, 10*time.Minute) {
			unfinished++
			continue
		}

		res := s.Result()
		total += res.Bonus
		if res.Outcome == core.StatusWon {
			wins++
		}
		logger.Debug("simulated", "run", i+1, "seed", runSeed, "bonus", res.Bonus, "outcome", res.Outcome.String())
	}

	finished := flagSimRuns - unfinished
	fmt.Printf("%s (%s): %d runs, %d won", variant, preset, flagSimRuns, wins)
	if finished > 0 {
		fmt.Printf(", average bonus %.1f", float64(total)/float64(finished))
	}
	fmt.Println()
	if unfinished > 0 {
		fmt.Printf("%d runs did not finish\n", unfinished)
	}
	return nil
}

// watch plays one session against the wall clock, redrawing every frame.
func watch(ctx context.Context, variant core.Variant, seed int64, opts []minigame.Option) error {
	tuning, _, err := loadTuning()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	s, err := minigame.Start(variant, tuning, nil, append(opts, minigame.WithSeed(seed))...)
	if err != nil {
		return err
	}

	rt := runtimeConfig()
	screen := core.NewScreen(rt.ScreenW, rt.ScreenH-1)
	draw := func(s *minigame.Session) {
		s.Render(screen)
		fmt.Print("\x1b[H\x1b[2J", tui.RenderScreen(screen))
	}

	pilot := autopilot.New(tuning, seed, flagSimThink)
	frame := time.Second / time.Duration(settings.FPS)
	if err := minigame.Run(ctx, s, clockwork.NewRealClock(), frame, nil, pilot.Step, draw); err != nil {
		return err
	}

	draw(s)
	res := s.Result()
	fmt.Printf("\n%s finished: %s, bonus %d\n", variant, res.Outcome, res.Bonus)
	return nil
}
