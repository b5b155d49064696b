package driven

import (
	"context"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
)

// StatsStore is the sink aggregation results are handed to. The core has no
// knowledge of the persistence format behind it.
type StatsStore interface {
	SaveTeamStats(ctx context.Context, stats domain.TeamStats) error
	LatestTeamStats(ctx context.Context, teamID string) (domain.TeamStats, error)
}

// JobStore is the queue backing background statistics collection.
type JobStore interface {
	Enqueue(ctx context.Context, job domain.CollectionJob) error
	// ClaimNext atomically moves the oldest pending job to running and
	// returns it. ok is false when the queue is empty.
	ClaimNext(ctx context.Context) (job domain.CollectionJob, ok bool, err error)
	Complete(ctx context.Context, jobID string) error
	Fail(ctx context.Context, jobID string, cause error) error
}
