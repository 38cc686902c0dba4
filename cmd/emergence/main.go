// Command emergence is the terminal companion to the Emergence dashboard:
// it syncs simulation events from the backend into a local archive and
// renders the live feed, day timeline, replay scrubber, and plot-turn
// views from it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emergence-sim/emergence/internal/config"
	"github.com/emergence-sim/emergence/internal/storage"
)

// Shared across commands, initialized by rootCmd's PersistentPreRunE.
var (
	cfg   config.Config
	store storage.Storage
)

var rootCmd = &cobra.Command{
	Use:   "emergence",
	Short: "Terminal views over the Emergence simulation event stream",
	Long: `Emergence is a multi-agent LLM society simulation. This tool mirrors
the web dashboard in the terminal: it archives the backend's event stream
locally and derives the same views from it.

  emergence sync       # pull recent history from the backend
  emergence feed       # live feed with visibility toggles
  emergence timeline   # events grouped into simulated days
  emergence replay     # scrub through the last 24 hours
  emergence turns      # highest-salience plot turns

Configuration comes from .emergence/config.yaml and EMERGENCE_* environment
variables; see 'emergence status' for the effective settings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = storage.NewStorage(context.Background(), &storage.Config{Path: cfg.DBPath})
		if err != nil {
			return fmt.Errorf("failed to open event archive: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default .emergence/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
