package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/source"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch recent events from the backend into the local archive",
	Long: `Pull recent event history from the Emergence backend and archive it
locally. The archive is what the timeline, replay, and turns views read,
so they keep working when the backend is unreachable.

Re-running sync is safe: events are archived by ID and overlapping
fetches change nothing.

Examples:
  emergence sync              # fetch the configured page size (default 500)
  emergence sync -n 2000      # fetch up to 2000 events`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = cfg.FetchLimit
		}

		ctx := context.Background()
		client := source.New(source.Config{
			BaseURL:  cfg.APIBaseURL,
			PageSize: cfg.FetchLimit,
		})

		fetched, err := client.FetchRecent(ctx, limit)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}

		if err := store.StoreEvents(ctx, fetched); err != nil {
			return fmt.Errorf("archive failed: %w", err)
		}

		total, err := store.CountEvents(ctx)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Fetched %d events; archive now holds %d\n", green("✓"), len(fetched), total)
		return nil
	},
}

func init() {
	syncCmd.Flags().IntP("limit", "n", 0, "Number of events to fetch (default: configured fetch_limit)")
	rootCmd.AddCommand(syncCmd)
}
