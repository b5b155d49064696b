// Package services contains the application services composing the Graph
// transport, the aggregator and the stores into long-running behaviour.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/core/ports/driven"
	"github.com/custodia-labs/teamsctl/internal/logger"
)

// Collector runs one statistics aggregation for a team.
type Collector interface {
	TeamStats(ctx context.Context, teamID string) (domain.TeamStats, error)
}

// CollectorFunc adapts a function to the Collector interface.
type CollectorFunc func(ctx context.Context, teamID string) (domain.TeamStats, error)

func (f CollectorFunc) TeamStats(ctx context.Context, teamID string) (domain.TeamStats, error) {
	return f(ctx, teamID)
}

// SchedulerConfig configures background statistics collection.
type SchedulerConfig struct {
	// Interval is how often a collection job is enqueued per team.
	Interval time.Duration
	// Teams are the team ids statistics are collected for.
	Teams []string
	// PollInterval is how often the worker checks for pending jobs.
	PollInterval time.Duration
}

// ErrNoTeams indicates the scheduler was started without any teams.
var ErrNoTeams = errors.New("scheduler: no teams configured")

// Scheduler periodically enqueues collection jobs and works the queue:
// claim a job, run the aggregation, persist the result.
type Scheduler struct {
	cfg       SchedulerConfig
	jobs      driven.JobStore
	sink      driven.StatsStore
	collector Collector
	log       zerolog.Logger
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg SchedulerConfig, jobs driven.JobStore, sink driven.StatsStore, collector Collector) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Scheduler{
		cfg:       cfg,
		jobs:      jobs,
		sink:      sink,
		collector: collector,
		log:       logger.Component("scheduler"),
	}
}

// Run enqueues one round of jobs immediately, then keeps enqueuing every
// interval while a worker drains the queue. It blocks until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if len(s.cfg.Teams) == 0 {
		return ErrNoTeams
	}

	s.enqueueRound(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.enqueueRound(ctx)
		case <-poll.C:
			s.drain(ctx)
		}
	}
}

// enqueueRound queues one collection job per configured team.
func (s *Scheduler) enqueueRound(ctx context.Context) {
	for _, teamID := range s.cfg.Teams {
		job := domain.CollectionJob{
			ID:         uuid.NewString(),
			TeamID:     teamID,
			Status:     domain.JobPending,
			EnqueuedAt: time.Now(),
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			s.log.Error().Err(err).Str("team", teamID).Msg("failed to enqueue collection job")
			continue
		}
		s.log.Debug().Str("job", job.ID).Str("team", teamID).Msg("collection job enqueued")
	}
}

// drain works the queue until it is empty or ctx is cancelled.
func (s *Scheduler) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, ok, err := s.jobs.ClaimNext(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to claim job")
			return
		}
		if !ok {
			return
		}

		s.runJob(ctx, job)
	}
}

// runJob executes one claimed job.
func (s *Scheduler) runJob(ctx context.Context, job domain.CollectionJob) {
	start := time.Now()

	result, err := s.collector.TeamStats(ctx, job.TeamID)
	if err != nil {
		s.log.Error().Err(err).Str("job", job.ID).Str("team", job.TeamID).
			Msg("collection failed")
		if ferr := s.jobs.Fail(ctx, job.ID, err); ferr != nil {
			s.log.Error().Err(ferr).Str("job", job.ID).Msg("failed to mark job failed")
		}
		return
	}

	if err := s.sink.SaveTeamStats(ctx, result); err != nil {
		s.log.Error().Err(err).Str("job", job.ID).Str("team", job.TeamID).
			Msg("failed to persist stats")
		if ferr := s.jobs.Fail(ctx, job.ID, err); ferr != nil {
			s.log.Error().Err(ferr).Str("job", job.ID).Msg("failed to mark job failed")
		}
		return
	}

	if err := s.jobs.Complete(ctx, job.ID); err != nil {
		s.log.Error().Err(err).Str("job", job.ID).Msg("failed to mark job done")
		return
	}

	s.log.Info().Str("job", job.ID).Str("team", job.TeamID).
		Int("total", result.TotalCount).Int("recent", result.RecentCount).
		Bool("partial", result.Partial).Dur("took", time.Since(start)).
		Msg("team statistics collected")
}
