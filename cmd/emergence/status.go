package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/timeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show archive and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		count, err := store.CountEvents(ctx)
		if err != nil {
			return err
		}
		earliest, latest, err := store.EventTimeSpan(ctx)
		if err != nil {
			return err
		}

		cyan := color.New(color.FgCyan, color.Bold)
		gray := color.New(color.FgHiBlack)

		fmt.Printf("\n%s\n\n", cyan.Sprint("Emergence status"))
		fmt.Printf("  Backend:        %s\n", cfg.APIBaseURL)
		fmt.Printf("  Archive:        %s\n", cfg.DBPath)
		fmt.Printf("  Events:         %d\n", count)

		if !earliest.IsZero() {
			all, err := store.GetAllEvents(ctx)
			if err != nil {
				return err
			}
			currentDay := timeline.CurrentDay(all, cfg.DayLength())
			fmt.Printf("  Span:           %s → %s\n",
				earliest.Format("Jan 2 15:04"), latest.Format("Jan 2 15:04"))
			fmt.Printf("  Current day:    %d\n", currentDay)
		}

		fmt.Printf("\n%s\n", gray.Sprintf("day length %s · replay window %s in %d buckets · feed capacity %d",
			cfg.DayLength(), cfg.ReplayWindow(), cfg.ReplayBucketCount, cfg.FeedCapacity))
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
