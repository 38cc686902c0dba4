package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/salience"
)

var turnsCmd = &cobra.Command{
	Use:   "turns",
	Short: "Show the simulation's highest-salience plot turns",
	Long: `Rank archived events by salience and show the top of the list - the
"plot turns" panel of the dashboard. Events the backend never scored
carry salience 0 and are excluded by any positive threshold.

Examples:
  emergence turns                  # top 10 with salience >= 5
  emergence turns --min 8 -n 5     # only the big ones`,
	RunE: func(cmd *cobra.Command, args []string) error {
		minSalience, _ := cmd.Flags().GetFloat64("min")
		limit, _ := cmd.Flags().GetInt("limit")
		if minSalience < 0 {
			minSalience = cfg.MinSalience
		}
		if limit <= 0 {
			limit = cfg.PlotTurnLimit
		}

		ctx := context.Background()
		all, err := store.GetAllEvents(ctx)
		if err != nil {
			return fmt.Errorf("failed to load archive: %w", err)
		}

		turns := salience.SelectPlotTurns(all, minSalience, limit)
		if len(turns) == 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("\n%s No plot turns with salience >= %.1f yet\n\n", yellow("✨"), minSalience)
			return nil
		}

		cyan := color.New(color.FgCyan, color.Bold)
		fmt.Printf("\n%s\n\n", cyan.Sprintf("🎭 Plot turns (salience >= %.1f, top category: %s)",
			minSalience, salience.TopCategory(turns)))

		for i, event := range turns {
			fmt.Printf("%2d. ", i+1)
			displayEvent(event)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	turnsCmd.Flags().Float64("min", -1, "Minimum salience threshold (default: configured min_salience)")
	turnsCmd.Flags().IntP("limit", "n", 0, "Number of plot turns to show (default: configured plot_turn_limit)")
	rootCmd.AddCommand(turnsCmd)
}
