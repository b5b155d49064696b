package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/custodia-labs/teamsctl/internal/adapters/driven/auth"
	"github.com/custodia-labs/teamsctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/teamsctl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/teamsctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/core/services"
	"github.com/custodia-labs/teamsctl/internal/graph"
	"github.com/custodia-labs/teamsctl/internal/graph/teams"
	"github.com/custodia-labs/teamsctl/internal/stats"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	cfg, err := file.Load(os.Getenv("TEAMSCTL_CONFIG"))
	if err != nil {
		log.Printf("failed to load configuration: %v", err)
		return 1
	}

	dbPath, err := cfg.StoragePath()
	if err != nil {
		log.Printf("failed to resolve storage path: %v", err)
		return 1
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		log.Printf("failed to open SQLite store: %v", err)
		return 1
	}
	defer store.Close()

	tokens, err := auth.NewClientCredentials(
		cfg.Auth.TenantID, cfg.Auth.ClientID, cfg.Auth.ClientSecret,
		cfg.Auth.TokenURL, cfg.Auth.Scopes,
	)
	if err != nil {
		log.Printf("failed to initialise authentication: %v", err)
		return 1
	}

	policy := graph.DefaultRetryPolicy()
	if cfg.Graph.MaxRetries > 0 {
		policy.MaxRetries = cfg.Graph.MaxRetries
	}
	if cfg.Graph.TimeoutSeconds > 0 {
		policy.Timeout = time.Duration(cfg.Graph.TimeoutSeconds) * time.Second
	}

	client := graph.NewClient(tokens,
		graph.WithRetryPolicy(policy),
		graph.WithRateLimiter(graph.NewRateLimiterWithConfig(graph.RateLimitConfig{
			RequestsPerSecond: cfg.Graph.RequestsPerSecond,
			BurstSize:         cfg.Graph.Burst,
		})),
	)

	teamsCfg := teams.DefaultConfig()
	if cfg.Graph.BaseURL != "" {
		teamsCfg.BaseURL = cfg.Graph.BaseURL
	}
	if len(cfg.Teams.AllowedUserDomains) > 0 {
		teamsCfg.AllowedUserDomains = cfg.Teams.AllowedUserDomains
	}
	if cfg.Teams.OwnerMailPrefix != "" {
		teamsCfg.OwnerMailPrefix = cfg.Teams.OwnerMailPrefix
	}
	if cfg.Teams.PageSize > 0 {
		teamsCfg.PageSize = cfg.Teams.PageSize
	}
	teamsSvc := teams.NewService(client, teamsCfg)

	statsCfg := stats.DefaultConfig()
	if len(cfg.Stats.Channels) > 0 {
		statsCfg.ChannelNames = cfg.Stats.Channels
	}
	if cfg.Stats.RecencyDays > 0 {
		statsCfg.RecencyWindow = cfg.Stats.RecencyWindow()
	}
	if cfg.Stats.ReplyConcurrency > 0 {
		statsCfg.ReplyConcurrency = cfg.Stats.ReplyConcurrency
	}
	statsCfg.CountQuestions = cfg.Stats.CountQuestions

	// Each collection run gets its own request budget so one runaway team
	// cannot starve the rest of the round.
	collector := services.CollectorFunc(func(ctx context.Context, teamID string) (domain.TeamStats, error) {
		source := teamsSvc.Budgeted(graph.NewBudget(cfg.Stats.RequestBudget))
		return stats.New(source, statsCfg).TeamStats(ctx, teamID)
	})

	scheduler := services.NewScheduler(services.SchedulerConfig{
		Interval: cfg.Scheduler.Interval(),
		Teams:    cfg.Scheduler.Teams,
	}, store, store, collector)

	cli.SetServices(&cli.Services{
		Teams:     teamsSvc,
		Collector: collector,
		Stats:     store,
		Scheduler: scheduler,
	})

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
