package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hypewave/internal/platform/tui"
	"github.com/vovakirdan/hypewave/internal/storage"
	"github.com/vovakirdan/hypewave/internal/venue"
)

var (
	flagRunsLimit int
	flagRunsBoard bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [venue]",
	Short: "Show stored runs",
	Long: `Display the best runs of a venue, or the most recent runs of all venues.

Examples:
  hypewave runs
  hypewave runs club --limit 20
  hypewave runs --board
  hypewave runs arena --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to list")
	runsCmd.Flags().BoolVar(&flagRunsBoard, "board", false, "Browse runs in the interactive board")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the stored runs of the venue")
}

func runRuns(_ *cobra.Command, args []string) {
	venueID := ""
	if len(args) == 1 {
		venueID = args[0]
		if !venue.Exists(venueID) {
			fmt.Fprintf(os.Stderr, "Error: unknown venue %q\n", venueID)
			fmt.Fprintln(os.Stderr, "Run 'hypewave venues' to see available venues.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if venueID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a venue")
			os.Exit(1)
		}
		if err := store.ClearRuns(venueID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", venueID)

	case flagRunsBoard:
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if _, err := tui.RunRuns(store, venueID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case venueID == "":
		printRecent(store)

	default:
		printVenue(store, venueID)
	}
}

func printVenue(store *storage.Store, venueID string) {
	runs, err := store.TopRuns(venueID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best runs - %s\n\n", venueID)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'hypewave play %s' or 'hypewave run %s' to record one!\n", venueID, venueID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %-6s  %-5s  %s\n", "Rank", "Score", "Peak", "Pits", "Waves", "Deaths", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-5s  %-6s  %-5s  %s\n", "----", "-----", "----", "----", "-----", "------", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6.1f  %-5d  %-5d  %-6d  %-5s  %s\n",
			i+1, r.Score, r.PeakHype, r.Pits, r.Waves, r.Deaths, r.Mode, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(venueID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Pits: %d\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.TotalPits)
	}
}

func printRecent(store *storage.Store) {
	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-8s  %-6s  %-5s  %s\n", "Venue", "Score", "Ticks", "Mode", "Date")
	fmt.Printf("  %-10s  %-8s  %-6s  %-5s  %s\n", "-----", "-----", "-----", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-10s  %-8d  %-6d  %-5s  %s\n",
			r.Venue, r.Score, r.Ticks, r.Mode, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	all, err := store.AllStats()
	if err != nil || len(all) == 0 {
		return
	}
	fmt.Println()
	for _, v := range venue.List() {
		if s, ok := all[v.ID]; ok {
			fmt.Printf("  %-10s  %d runs, best %d, peak hype %.1f\n", v.ID, s.Runs, s.BestScore, s.PeakHype)
		}
	}
}
