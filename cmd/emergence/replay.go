package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Scrub through the last 24 hours of the simulation",
	Long: `Slice the replay window (default: the last 24 hours) into equal time
buckets and render a scrubber strip - one cell per bucket, shaded by the
bucket's dominant narrative category (crisis > conflict > alliance >
governance > cooperation > notable).

Scrubbing to a bucket with --bucket shows that bucket's events plus the
"story so far": the most recent events up to the bucket's end.

Examples:
  emergence replay               # the scrubber strip with bucket counts
  emergence replay --bucket 13   # scrub to bucket 13
  emergence replay --end 2025-11-02T12:00:00Z   # replay an older window`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bucketIndex, _ := cmd.Flags().GetInt("bucket")
		endFlag, _ := cmd.Flags().GetString("end")

		windowEnd := time.Now().UTC()
		if endFlag != "" {
			parsed, err := time.Parse(time.RFC3339, endFlag)
			if err != nil {
				return fmt.Errorf("invalid --end (want RFC3339): %w", err)
			}
			windowEnd = parsed
		}
		windowStart := windowEnd.Add(-cfg.ReplayWindow())

		ctx := context.Background()
		inWindow, err := store.GetEventsInWindow(ctx, windowStart, windowEnd)
		if err != nil {
			return fmt.Errorf("failed to load archive: %w", err)
		}

		tl, err := replay.Build(inWindow, windowStart, windowEnd, cfg.ReplayBucketCount)
		if err != nil {
			return err
		}

		displayScrubber(tl, bucketIndex)

		if tl.EventCount() == 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("\n%s Nothing happened in this window.\n\n", yellow("✨"))
			return nil
		}

		if bucketIndex >= 0 {
			return displayScrubPosition(tl, bucketIndex)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().Int("bucket", -1, "Scrub to a bucket index (0-based)")
	replayCmd.Flags().String("end", "", "Window end as RFC3339 (default: now)")
	rootCmd.AddCommand(replayCmd)
}

// displayScrubber renders the bucket strip with the active bucket marked.
func displayScrubber(tl *replay.Timeline, active int) {
	buckets := tl.Buckets()

	fmt.Println()
	for _, b := range buckets {
		cell := categoryGlyph(b.DominantCategory)
		if b.EventCount == 0 {
			cell = "·"
		}
		if b.Index == active {
			fmt.Print(color.New(color.FgWhite, color.Bold).Sprint("[" + cell + "]"))
		} else {
			fmt.Print(getCategoryColor(b.DominantCategory).Sprint(cell))
		}
	}

	start, end := tl.Window()
	gray := color.New(color.FgHiBlack)
	fmt.Printf("\n%s\n", gray.Sprintf("%s → %s · %d buckets · %d events",
		start.Format("Jan 2 15:04"), end.Format("Jan 2 15:04"), len(buckets), tl.EventCount()))
}

// displayScrubPosition shows one bucket's events and the story so far.
func displayScrubPosition(tl *replay.Timeline, index int) error {
	buckets := tl.Buckets()
	if index < 0 || index >= len(buckets) {
		return fmt.Errorf("bucket index %d out of range [0,%d)", index, len(buckets))
	}
	bucket := buckets[index]

	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Printf("\n%s\n\n", cyan.Sprintf("── Bucket %d · %s · %d event(s) · %s",
		bucket.Index, bucket.Label, bucket.EventCount, bucket.DominantCategory))

	inBucket, err := tl.EventsInBucket(index)
	if err != nil {
		return err
	}
	for _, event := range inBucket {
		displayEvent(event)
	}
	if len(inBucket) == 0 {
		gray := color.New(color.FgHiBlack)
		fmt.Printf("%s\n", gray.Sprint("(quiet)"))
	}

	story, err := tl.EventsUpTo(index, replay.DefaultStoryLimit)
	if err != nil {
		return err
	}
	if len(story) > 0 {
		fmt.Printf("\n%s\n\n", cyan.Sprint("── Story so far"))
		for _, event := range story {
			displayEvent(event)
		}
	}
	fmt.Println()
	return nil
}
