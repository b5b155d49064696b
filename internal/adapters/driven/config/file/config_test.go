package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10.0, cfg.Graph.RequestsPerSecond)
	assert.Equal(t, 3, cfg.Graph.MaxRetries)
	assert.Equal(t, []string{"general", "main"}, cfg.Stats.Channels)
	assert.Equal(t, 30, cfg.Stats.RecencyDays)
	assert.Equal(t, 60, cfg.Scheduler.IntervalMinutes)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[auth]
tenant_id = "tid"
client_id = "cid"
client_secret = "secret"

[graph]
requests_per_second = 4.0
max_retries = 5

[stats]
channels = ["standup"]
recency_days = 14
request_budget = 200

[scheduler]
interval_minutes = 15
teams = ["t1", "t2"]
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "tid", cfg.Auth.TenantID)
	assert.Equal(t, 4.0, cfg.Graph.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Graph.MaxRetries)
	assert.Equal(t, []string{"standup"}, cfg.Stats.Channels)
	assert.Equal(t, 200, cfg.Stats.RequestBudget)
	assert.Equal(t, []string{"t1", "t2"}, cfg.Scheduler.Teams)

	// Untouched sections keep their defaults
	assert.Equal(t, "admin_", cfg.Teams.OwnerMailPrefix)
	assert.Equal(t, 30, cfg.Graph.TimeoutSeconds)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := Load(path)

	assert.ErrorContains(t, err, "parse config")
}

func TestDurationHelpers(t *testing.T) {
	assert.Equal(t, 14*24*time.Hour, StatsConfig{RecencyDays: 14}.RecencyWindow())
	assert.Equal(t, 15*time.Minute, SchedulerConfig{IntervalMinutes: 15}.Interval())
}

func TestStoragePath_Explicit(t *testing.T) {
	cfg := Config{Storage: StorageConfig{Path: "/tmp/custom.db"}}

	path, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}
