package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/metro-minigames/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available mini-games",
	Long:  `Shows every registered mini-game with its level count and time limit.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No mini-games available.")
		return nil
	}

	tuning, _, err := loadTuning()
	if err != nil {
		return err
	}

	fmt.Println("Available mini-games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		maxIDLen = max(maxIDLen, len(v.Variant))
	}

	fmt.Printf("  %-*s  %-20s  %-6s  %s\n", maxIDLen, "ID", "Title", "Levels", "Time")
	fmt.Printf("  %-*s  %-20s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "----")

	for _, v := range variants {
		game, err := registry.Create(v.Variant, tuning)
		if err != nil {
			return err
		}
		limit := fmt.Sprintf("%ds", game.TimeLimit(1))
		if v.Levels > 1 && game.TimeLimit(v.Levels) != game.TimeLimit(1) {
			limit = fmt.Sprintf("%d-%ds", game.TimeLimit(v.Levels), game.TimeLimit(1))
		}
		fmt.Printf("  %-*s  %-20s  %-6d  %s\n", maxIDLen, v.Variant, v.Title, v.Levels, limit)
	}

	fmt.Println()
	fmt.Println("Run 'metro play <id>' to play a mini-game.")
	return nil
}
