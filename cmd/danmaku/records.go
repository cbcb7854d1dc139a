package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/danmaku/internal/games/danmaku"
	"github.com/vovakirdan/danmaku/internal/platform/tui"
	"github.com/vovakirdan/danmaku/internal/registry"
	"github.com/vovakirdan/danmaku/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [variant]",
	Short: "Show the longest runs of a variant",
	Long: `Display the longest recorded runs for a variant (default: danmaku).
Runs with debug invincibility are never recorded.

Examples:
  danmaku records
  danmaku records danmaku3d --limit 20
  danmaku records --recent
  danmaku records danmaku --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse runs interactively",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		cfg := runtimeConfig()
		_, err = tui.RunRecords(store, cfg.ScreenW, cfg.ScreenH)
		return err
	},
}

func init() {
	recordsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the longest")
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the variant")
}

func runRecords(_ *cobra.Command, args []string) error {
	id := danmaku.IDFlat
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return fmt.Errorf("unknown variant %q, run 'danmaku list' to see available variants", id)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs of %s.\n", id)
		return nil
	}

	var runs []storage.Run
	if flagRecent {
		runs, err = store.RecentRuns(id, flagLimit)
	} else {
		runs, err = store.TopRuns(id, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n\n", id)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'danmaku play %s' to set the first record!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Time", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-8.2f  %s\n",
			i+1, fmt.Sprintf("%.1fs", r.SurvivalTime), r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.VariantStats(id)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %.1fs  Runs: %d  Average: %.1fs  Total: %.0fs\n",
			stats.Best, stats.Runs, stats.Average, stats.TotalTime)
	}
	return nil
}
