package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/events"
	"github.com/emergence-sim/emergence/internal/feed"
	"github.com/emergence-sim/emergence/internal/source"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show the live event feed",
	Long: `Display the most recent simulation events, newest last, the way the
dashboard's live feed shows them.

Background activity (work, idle) and system noise (invalid actions,
processing errors) are hidden by default; reveal them with --background
and --system. A count of hidden events is shown either way. Unknown event
types are always hidden.

In follow mode the feed polls the local archive for new events, so run
'emergence feed --sse' (subscribes to the backend and archives as it
goes) or periodic 'emergence sync' alongside it.

Examples:
  emergence feed                  # recent events, salient only
  emergence feed --background     # include work/idle activity
  emergence feed -f               # follow the archive for new events
  emergence feed --sse            # subscribe to the backend's live stream`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showBackground, _ := cmd.Flags().GetBool("background")
		showSystem, _ := cmd.Flags().GetBool("system")
		follow, _ := cmd.Flags().GetBool("follow")
		useSSE, _ := cmd.Flags().GetBool("sse")

		showBackground = showBackground || cfg.ShowBackground
		showSystem = showSystem || cfg.ShowSystem

		ctx := context.Background()

		f := feed.New(cfg.FeedCapacity)
		if err := seedFeed(ctx, f); err != nil {
			return err
		}

		switch {
		case useSSE:
			return runFeedSSE(ctx, f, showBackground, showSystem)
		case follow:
			return runFeedFollow(ctx, f, showBackground, showSystem)
		default:
			runFeedOnce(f, showBackground, showSystem)
			return nil
		}
	},
}

func init() {
	feedCmd.Flags().Bool("background", false, "Show background events (work, idle)")
	feedCmd.Flags().Bool("system", false, "Show system events (invalid actions, processing errors)")
	feedCmd.Flags().BoolP("follow", "f", false, "Follow mode - watch the archive for new events (Ctrl+C to stop)")
	feedCmd.Flags().Bool("sse", false, "Subscribe to the backend's live stream and archive incoming events")
	rootCmd.AddCommand(feedCmd)
}

// seedFeed fills the accumulator from the archive, oldest first so the
// newest event ends up at the front of the window.
func seedFeed(ctx context.Context, f *feed.Feed) error {
	recent, err := store.GetRecentEvents(ctx, cfg.FeedCapacity)
	if err != nil {
		return fmt.Errorf("failed to load archive: %w", err)
	}
	for i := len(recent) - 1; i >= 0; i-- {
		f.OnEvent(recent[i])
	}
	return nil
}

// runFeedOnce prints the current window and exits.
func runFeedOnce(f *feed.Feed, showBackground, showSystem bool) {
	visible := f.Visible(showBackground, showSystem)
	if !f.Live() {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("\n%s No events yet - the simulation may not have launched. Try 'emergence sync'.\n\n", yellow("✨"))
		return
	}

	// Newest last, so the terminal reads top to bottom
	for i := len(visible) - 1; i >= 0; i-- {
		displayEvent(visible[i])
	}
	displayHiddenCounts(f.Hidden(showBackground, showSystem))
}

// runFeedFollow prints the window, then polls the archive for new events.
func runFeedFollow(ctx context.Context, f *feed.Feed, showBackground, showSystem bool) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n%s Following the event archive (Ctrl+C to stop)...\n\n", cyan("👁️"))

	runFeedOnce(f, showBackground, showSystem)

	var lastTimestamp time.Time
	for _, e := range f.Events() {
		if e.CreatedAt.After(lastTimestamp) {
			lastTimestamp = e.CreatedAt
		}
	}

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\n\nStopped following")
			return nil
		case <-ticker.C:
			newEvents, err := store.GetEvents(ctx, events.EventFilter{
				AfterTime: lastTimestamp,
				Limit:     100,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nError fetching new events: %v\n", err)
				continue
			}

			// Oldest of the new batch first, so output stays chronological
			for i := len(newEvents) - 1; i >= 0; i-- {
				e := newEvents[i]
				if f.OnEvent(e) && events.IsVisible(e.Type, showBackground, showSystem) {
					displayEvent(e)
				}
				if e.CreatedAt.After(lastTimestamp) {
					lastTimestamp = e.CreatedAt
				}
			}
		}
	}
}

// runFeedSSE subscribes to the backend's live stream, archiving and
// displaying events as they arrive. The stream is not retried here; when
// it drops we keep the last-known window and report the loss.
func runFeedSSE(ctx context.Context, f *feed.Feed, showBackground, showSystem bool) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("\n%s Subscribing to %s (Ctrl+C to stop)...\n\n", cyan("📡"), cfg.APIBaseURL)

	runFeedOnce(f, showBackground, showSystem)

	client := source.New(source.Config{BaseURL: cfg.APIBaseURL, PageSize: cfg.FetchLimit})

	err := client.Subscribe(ctx, func(e *events.Event) {
		if err := store.StoreEvent(ctx, e); err != nil {
			fmt.Fprintf(os.Stderr, "\nError archiving event: %v\n", err)
		}
		if f.OnEvent(e) && events.IsVisible(e.Type, showBackground, showSystem) {
			displayEvent(e)
		}
	}, func(connected bool) {
		f.SetConnected(connected)
		if !connected {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("\n%s Connection lost - showing last %d known events\n", red("⚠"), f.Len())
		}
	})
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}
	return nil
}
