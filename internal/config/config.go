// Package config holds the session-scoped dashboard configuration. State
// the browser dashboard kept in ambient storage lives here instead as an
// explicit object: built from defaults, then a config file, then
// environment variables, and passed to whoever needs it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadFile looks when no path is given.
const DefaultPath = ".emergence/config.yaml"

// Config holds all tunables for the event pipeline and its CLI surfaces.
type Config struct {
	// APIBaseURL is the Emergence backend base URL
	// Default: http://localhost:8000
	APIBaseURL string `yaml:"api_base_url"`

	// DBPath is the SQLite event archive path
	// Special value ":memory:" creates an in-memory database (useful for tests)
	// Default: .emergence/events.db
	DBPath string `yaml:"db_path"`

	// FeedCapacity bounds the live feed window
	// Default: 100, Range: 10-1000
	FeedCapacity int `yaml:"feed_capacity"`

	// DayLengthMinutes is the wall-clock length of one simulated day
	// Default: 60, Range: 1-1440
	DayLengthMinutes int `yaml:"day_length_minutes"`

	// ReplayWindowHours is the span of the replay scrubber
	// Default: 24, Range: 1-168
	ReplayWindowHours int `yaml:"replay_window_hours"`

	// ReplayBucketCount is the number of scrubber buckets
	// Default: 24, Range: 1-240
	ReplayBucketCount int `yaml:"replay_bucket_count"`

	// MinSalience is the plot-turn threshold
	// Default: 5.0, Range: >= 0
	MinSalience float64 `yaml:"min_salience"`

	// PlotTurnLimit caps the plot-turn list
	// Default: 10, Range: 1-100
	PlotTurnLimit int `yaml:"plot_turn_limit"`

	// FetchLimit is the page size for historical fetches
	// Default: 500, Range: 1-1000
	FetchLimit int `yaml:"fetch_limit"`

	// ShowBackground reveals work/idle events by default
	// Default: false
	ShowBackground bool `yaml:"show_background"`

	// ShowSystem reveals system-noise events by default
	// Default: false
	ShowSystem bool `yaml:"show_system"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		APIBaseURL:        "http://localhost:8000",
		DBPath:            ".emergence/events.db",
		FeedCapacity:      100,
		DayLengthMinutes:  60,
		ReplayWindowHours: 24,
		ReplayBucketCount: 24,
		MinSalience:       5.0,
		PlotTurnLimit:     10,
		FetchLimit:        500,
		ShowBackground:    false,
		ShowSystem:        false,
	}
}

// DayLength returns the configured day length as a duration.
func (c Config) DayLength() time.Duration {
	return time.Duration(c.DayLengthMinutes) * time.Minute
}

// ReplayWindow returns the configured replay span as a duration.
func (c Config) ReplayWindow() time.Duration {
	return time.Duration(c.ReplayWindowHours) * time.Hour
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.FeedCapacity < 10 || c.FeedCapacity > 1000 {
		return fmt.Errorf("feed_capacity must be between 10 and 1000 (got %d)", c.FeedCapacity)
	}
	if c.DayLengthMinutes < 1 || c.DayLengthMinutes > 1440 {
		return fmt.Errorf("day_length_minutes must be between 1 and 1440 (got %d)", c.DayLengthMinutes)
	}
	if c.ReplayWindowHours < 1 || c.ReplayWindowHours > 168 {
		return fmt.Errorf("replay_window_hours must be between 1 and 168 (got %d)", c.ReplayWindowHours)
	}
	if c.ReplayBucketCount < 1 || c.ReplayBucketCount > 240 {
		return fmt.Errorf("replay_bucket_count must be between 1 and 240 (got %d)", c.ReplayBucketCount)
	}
	if c.MinSalience < 0 {
		return fmt.Errorf("min_salience cannot be negative (got %g)", c.MinSalience)
	}
	if c.PlotTurnLimit < 1 || c.PlotTurnLimit > 100 {
		return fmt.Errorf("plot_turn_limit must be between 1 and 100 (got %d)", c.PlotTurnLimit)
	}
	if c.FetchLimit < 1 || c.FetchLimit > 1000 {
		return fmt.Errorf("fetch_limit must be between 1 and 1000 (got %d)", c.FetchLimit)
	}
	return nil
}

// LoadFile overlays settings from a YAML config file onto c. A missing
// file is not an error; the defaults simply stand.
func (c *Config) LoadFile(path string) error {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// FromEnv creates a Config from defaults plus environment variables.
//
// Environment variables:
//   - EMERGENCE_API_URL: backend base URL (default: http://localhost:8000)
//   - EMERGENCE_DB_PATH: SQLite archive path (default: .emergence/events.db)
//   - EMERGENCE_FEED_CAPACITY: live window bound (default: 100)
//   - EMERGENCE_DAY_LENGTH_MINUTES: simulated day length (default: 60)
//   - EMERGENCE_REPLAY_WINDOW_HOURS: replay span (default: 24)
//   - EMERGENCE_REPLAY_BUCKETS: scrubber bucket count (default: 24)
//   - EMERGENCE_MIN_SALIENCE: plot-turn threshold (default: 5.0)
//   - EMERGENCE_PLOT_TURN_LIMIT: plot-turn list cap (default: 10)
//   - EMERGENCE_FETCH_LIMIT: historical fetch page size (default: 500)
//   - EMERGENCE_SHOW_BACKGROUND: reveal background events (default: false)
//   - EMERGENCE_SHOW_SYSTEM: reveal system events (default: false)
//
// Returns an error if any environment variable has an invalid value.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("EMERGENCE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("EMERGENCE_DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	intVars := []struct {
		name   string
		target *int
	}{
		{"EMERGENCE_FEED_CAPACITY", &cfg.FeedCapacity},
		{"EMERGENCE_DAY_LENGTH_MINUTES", &cfg.DayLengthMinutes},
		{"EMERGENCE_REPLAY_WINDOW_HOURS", &cfg.ReplayWindowHours},
		{"EMERGENCE_REPLAY_BUCKETS", &cfg.ReplayBucketCount},
		{"EMERGENCE_PLOT_TURN_LIMIT", &cfg.PlotTurnLimit},
		{"EMERGENCE_FETCH_LIMIT", &cfg.FetchLimit},
	}
	for _, iv := range intVars {
		if v := os.Getenv(iv.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", iv.name, err)
			}
			*iv.target = n
		}
	}

	if v := os.Getenv("EMERGENCE_MIN_SALIENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid EMERGENCE_MIN_SALIENCE: %w", err)
		}
		cfg.MinSalience = f
	}

	boolVars := []struct {
		name   string
		target *bool
	}{
		{"EMERGENCE_SHOW_BACKGROUND", &cfg.ShowBackground},
		{"EMERGENCE_SHOW_SYSTEM", &cfg.ShowSystem},
	}
	for _, bv := range boolVars {
		if v := os.Getenv(bv.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", bv.name, err)
			}
			*bv.target = b
		}
	}

	return nil
}

// Load builds the effective config: defaults, then the config file, then
// environment overrides, validated at the end.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
