package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallingsky/internal/registry"
	"github.com/vovakirdan/fallingsky/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for a mode, or for every mode when none
is given. Rounds that were won are marked with *.

Examples:
  fallingsky scores
  fallingsky scores classic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	modes := registry.List()
	if len(args) > 0 {
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'fallingsky list' to see available modes.")
			os.Exit(1)
		}
		modes = []registry.GameInfo{{ID: args[0]}}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	for i, mode := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, mode.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}
}

func printScores(store *storage.Store, mode string) error {
	scores, err := store.TopScores(mode, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'fallingsky play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-5s  %-12s  %10s  %5s  %s\n", "Rank", "Player", "Score", "Lines", "Date")
	fmt.Printf("  %-5s  %-12s  %10s  %5s  %s\n", "----", "------", "-----", "-----", "----")

	for i, entry := range scores {
		rank := fmt.Sprintf("%d", i+1)
		if entry.Won {
			rank += "*"
		}
		fmt.Printf("  %-5s  %-12s  %10d  %5d  %s\n",
			rank, entry.Player, entry.Score, entry.Lines, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(mode)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  |  Games: %d  |  Won: %d  |  Average: %.0f\n",
		stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	return nil
}
