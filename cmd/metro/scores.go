package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/core"
	"github.com/vovakirdan/metro-minigames/internal/prizes"
	"github.com/vovakirdan/metro-minigames/internal/registry"
	"github.com/vovakirdan/metro-minigames/internal/storage"
)

var (
	flagScoresPlayer string
	flagScoresLimit  int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the bonus board",
	Long: `Without arguments, summarize every mini-game. With a variant, list
its best sessions. With --player, list that player's sessions and prize tier.

Examples:
  metro scores
  metro scores rush
  metro scores --player alice
  metro scores prize --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show one player's sessions")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the variant's results")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(settings.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresPlayer != "":
		return printPlayer(store, flagScoresPlayer)
	case len(args) == 0:
		return printSummaryBoard(store)
	}

	variant, err := core.ParseVariant(args[0])
	if err != nil {
		return fmt.Errorf("%w\nRun 'metro list' to see available mini-games", err)
	}

	if flagScoresClear {
		if err := store.ClearResults(string(variant)); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", variant)
		return nil
	}
	return printVariant(store, variant)
}

func printSummaryBoard(store *storage.Store) error {
	all, err := store.GetAllVariantStats()
	if err != nil {
		return err
	}

	fmt.Println("Bonus board")
	fmt.Println()
	fmt.Printf("  %-20s  %-8s  %-6s  %-5s  %s\n", "Game", "Sessions", "Won", "Best", "Avg")
	fmt.Printf("  %-20s  %-8s  %-6s  %-5s  %s\n", "----", "--------", "---", "----", "---")
	for _, info := range registry.List() {
		st, ok := all[string(info.Variant)]
		if !ok {
			fmt.Printf("  %-20s  %-8d  %-6s  %-5s  %s\n", info.Title, 0, "-", "-", "-")
			continue
		}
		fmt.Printf("  %-20s  %-8d  %-6s  %-5d  %.0f\n",
			info.Title, st.Sessions, fmt.Sprintf("%.0f%%", st.WinRate()*100), st.BestBonus, st.AvgBonus)
	}
	return nil
}

func printVariant(store *storage.Store, variant core.Variant) error {
	results, err := store.TopResults(string(variant), flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best sessions - %s\n", variant)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'metro play %s' to set the first bonus!\n", variant)
		return nil
	}

	fmt.Printf("  %-4s  %-14s  %-6s  %-9s  %s\n", "Rank", "Player", "Bonus", "Outcome", "Date")
	fmt.Printf("  %-4s  %-14s  %-6s  %-9s  %s\n", "----", "------", "-----", "-------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-14s  %-6d  %-9s  %s\n",
			i+1, r.Player, r.Bonus, r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestBonus(string(variant))
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printPlayer(store *storage.Store, name string) error {
	results, err := store.PlayerResults(name, flagScoresLimit)
	if err != nil {
		return err
	}
	total, err := store.PlayerTotal(name)
	if err != nil {
		return err
	}

	fmt.Printf("Sessions - %s\n", name)
	fmt.Println()
	for _, r := range results {
		fmt.Printf("  %-10s  %-9s  %6d  %s\n", r.Variant, r.Outcome, r.Bonus, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	table := prizes.Default()
	fmt.Println()
	fmt.Printf("Total bonus: %d\n", total)
	if p, ok := table.Lookup(total); ok {
		fmt.Printf("Prize: %s (code %s)\n", p.Name, p.Code)
	} else {
		fmt.Println("Prize: none yet")
	}
	return nil
}
