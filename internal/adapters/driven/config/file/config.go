// Package file loads the teamsctl configuration from a TOML file.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config location relative to the user's home directory.
const DefaultPath = ".teamsctl/config.toml"

// Config is the full application configuration.
type Config struct {
	Auth      AuthConfig      `toml:"auth"`
	Graph     GraphConfig     `toml:"graph"`
	Teams     TeamsConfig     `toml:"teams"`
	Stats     StatsConfig     `toml:"stats"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Storage   StorageConfig   `toml:"storage"`
}

// AuthConfig configures the client-credentials token provider.
type AuthConfig struct {
	TenantID     string   `toml:"tenant_id"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
}

// GraphConfig configures the Graph transport.
type GraphConfig struct {
	BaseURL           string  `toml:"base_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	MaxRetries        int     `toml:"max_retries"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// TeamsConfig configures directory operations.
type TeamsConfig struct {
	AllowedUserDomains []string `toml:"allowed_user_domains"`
	OwnerMailPrefix    string   `toml:"owner_mail_prefix"`
	PageSize           int      `toml:"page_size"`
}

// StatsConfig configures the statistics aggregator.
type StatsConfig struct {
	Channels         []string `toml:"channels"`
	RecencyDays      int      `toml:"recency_days"`
	ReplyConcurrency int      `toml:"reply_concurrency"`
	CountQuestions   bool     `toml:"count_questions"`
	RequestBudget    int      `toml:"request_budget"`
}

// SchedulerConfig configures background collection.
type SchedulerConfig struct {
	IntervalMinutes int      `toml:"interval_minutes"`
	Teams           []string `toml:"teams"`
}

// StorageConfig configures the SQLite store.
type StorageConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			RequestsPerSecond: 10.0,
			Burst:             15,
			MaxRetries:        3,
			TimeoutSeconds:    30,
		},
		Teams: TeamsConfig{
			OwnerMailPrefix: "admin_",
			PageSize:        50,
		},
		Stats: StatsConfig{
			Channels:         []string{"general", "main"},
			RecencyDays:      30,
			ReplyConcurrency: 8,
			CountQuestions:   true,
		},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 60,
		},
	}
}

// Load reads the configuration from path. An empty path uses DefaultPath
// under the user's home directory; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, DefaultPath)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// RecencyWindow returns the stats recency window as a duration.
func (c StatsConfig) RecencyWindow() time.Duration {
	return time.Duration(c.RecencyDays) * 24 * time.Hour
}

// Interval returns the scheduler interval as a duration.
func (c SchedulerConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// StoragePath returns the configured database path, defaulting to
// ~/.teamsctl/data/teamsctl.db.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".teamsctl", "data")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, "teamsctl.db"), nil
}
