package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zordux/Last-Vector/internal/platform/tui"
	"github.com/Zordux/Last-Vector/internal/storage"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded episode runs",
	Long: `Open an interactive browser over the recorded episode runs.

Tab toggles between most recent and best (by kills) ordering. When
stdout is not a terminal, a plain summary is printed instead.

Examples:
  lastvector runs
  lastvector runs --db ./runs.db`,
	Run: runRuns,
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height, termErr := term.GetSize(int(os.Stdout.Fd()))
	if termErr != nil {
		// Not a terminal, print a summary and bail
		printRunsSummary(store)
		return
	}

	if err := tui.BrowseRuns(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error browsing runs: %v\n", err)
		os.Exit(1)
	}
}

func printRunsSummary(store *storage.Store) {
	stats, err := store.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stats: %v\n", err)
		os.Exit(1)
	}

	if stats.RunsCount == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lastvector play' to record the first one!")
		return
	}

	fmt.Printf("Runs:          %d\n", stats.RunsCount)
	fmt.Printf("Best kills:    %d\n", stats.BestKills)
	fmt.Printf("Avg kills:     %.1f\n", stats.AvgKills)
	fmt.Printf("Avg survived:  %.1fs\n", stats.AvgDuration)
	fmt.Printf("Total kills:   %d\n", stats.TotalKills)
	fmt.Printf("Last played:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
}
