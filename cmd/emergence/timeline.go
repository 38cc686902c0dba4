package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/timeline"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show archived events grouped into simulated days",
	Long: `Group the archived events into simulated days, most recent day first.
One simulated day is an hour of wall time by default (day_length_minutes).

Days start at the earliest archived event; the latest day is marked NOW.
Background and system events are hidden behind the same toggles as the
feed, with optional per-day reveals.

Examples:
  emergence timeline                   # all days, salient events only
  emergence timeline --background      # include work/idle everywhere
  emergence timeline --reveal-day 3    # reveal everything for day 3 only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		showBackground, _ := cmd.Flags().GetBool("background")
		showSystem, _ := cmd.Flags().GetBool("system")
		revealDay, _ := cmd.Flags().GetInt("reveal-day")

		ctx := context.Background()
		all, err := store.GetAllEvents(ctx)
		if err != nil {
			return fmt.Errorf("failed to load archive: %w", err)
		}

		if len(all) == 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("\n%s The archive is empty. Run 'emergence sync' first.\n\n", yellow("✨"))
			return nil
		}

		visibility := timeline.Visibility{
			ShowBackground: showBackground || cfg.ShowBackground,
			ShowSystem:     showSystem || cfg.ShowSystem,
		}
		if revealDay > 0 {
			visibility.SetDayOverride(revealDay, true, true)
		}

		groups := timeline.GroupByDay(all, cfg.DayLength())
		currentDay := timeline.CurrentDay(all, cfg.DayLength())
		filtered := timeline.FilterGroups(groups, visibility)

		cyan := color.New(color.FgCyan, color.Bold)
		gray := color.New(color.FgHiBlack)

		for _, group := range filtered {
			header := fmt.Sprintf("Day %d", group.Day)
			if group.Day == currentDay {
				header += " · NOW"
			}
			fmt.Printf("\n%s %s\n\n", cyan.Sprint("══"), cyan.Sprint(header))

			for _, event := range group.Events {
				displayEvent(event)
			}
		}

		hiddenDays := len(groups) - len(filtered)
		if hiddenDays > 0 {
			fmt.Printf("\n%s\n", gray.Sprintf("(%d day(s) with only hidden events not shown)", hiddenDays))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	timelineCmd.Flags().Bool("background", false, "Show background events (work, idle)")
	timelineCmd.Flags().Bool("system", false, "Show system events (invalid actions, processing errors)")
	timelineCmd.Flags().Int("reveal-day", 0, "Reveal all events for a specific day only")
	rootCmd.AddCommand(timelineCmd)
}
