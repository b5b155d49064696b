// Package sqlite persists aggregation results and the collection job queue
// in a single SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
)

// ErrNotFound indicates no row matched the query.
var ErrNotFound = errors.New("sqlite: not found")

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

const schema = `
CREATE TABLE IF NOT EXISTS team_stats (
	team_id        TEXT NOT NULL,
	channel_id     TEXT NOT NULL DEFAULT '',
	total_count    INTEGER NOT NULL,
	recent_count   INTEGER NOT NULL,
	question_count INTEGER NOT NULL,
	last_activity  TEXT NOT NULL DEFAULT '',
	partial        INTEGER NOT NULL DEFAULT 0,
	collected_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_team_stats_team
	ON team_stats (team_id, collected_at DESC);

CREATE TABLE IF NOT EXISTS jobs (
	id          TEXT PRIMARY KEY,
	team_id     TEXT NOT NULL,
	status      TEXT NOT NULL,
	attempts    INTEGER NOT NULL DEFAULT 0,
	enqueued_at TEXT NOT NULL,
	started_at  TEXT NOT NULL DEFAULT '',
	finished_at TEXT NOT NULL DEFAULT '',
	last_error  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_jobs_status
	ON jobs (status, enqueued_at);
`

// Store is the SQLite-backed stats sink and job queue.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTeamStats appends one aggregation result to the history.
func (s *Store) SaveTeamStats(ctx context.Context, stats domain.TeamStats) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_stats
			(team_id, channel_id, total_count, recent_count, question_count,
			 last_activity, partial, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.TeamID, stats.ChannelID, stats.TotalCount, stats.RecentCount,
		stats.QuestionCount, stats.LastActivity, boolToInt(stats.Partial),
		stats.CollectedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save team stats: %w", err)
	}
	return nil
}

// LatestTeamStats returns the most recent result for a team, or ErrNotFound.
func (s *Store) LatestTeamStats(ctx context.Context, teamID string) (domain.TeamStats, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT team_id, channel_id, total_count, recent_count, question_count,
		       last_activity, partial, collected_at
		FROM team_stats
		WHERE team_id = ?
		ORDER BY collected_at DESC
		LIMIT 1`, teamID)

	var stats domain.TeamStats
	var partial int
	var collectedAt string
	err := row.Scan(&stats.TeamID, &stats.ChannelID, &stats.TotalCount,
		&stats.RecentCount, &stats.QuestionCount, &stats.LastActivity,
		&partial, &collectedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TeamStats{}, fmt.Errorf("%w: stats for team %s", ErrNotFound, teamID)
	}
	if err != nil {
		return domain.TeamStats{}, fmt.Errorf("load team stats: %w", err)
	}

	stats.Partial = partial != 0
	stats.CollectedAt, _ = time.Parse(time.RFC3339, collectedAt)
	return stats, nil
}

// Enqueue adds a pending collection job.
func (s *Store) Enqueue(ctx context.Context, job domain.CollectionJob) error {
	enqueuedAt := job.EnqueuedAt
	if enqueuedAt.IsZero() {
		enqueuedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, team_id, status, enqueued_at)
		VALUES (?, ?, ?, ?)`,
		job.ID, job.TeamID, string(domain.JobPending),
		enqueuedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

// ClaimNext atomically moves the oldest pending job to running.
func (s *Store) ClaimNext(ctx context.Context) (domain.CollectionJob, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.CollectionJob{}, false, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, team_id, attempts
		FROM jobs
		WHERE status = ?
		ORDER BY enqueued_at
		LIMIT 1`, string(domain.JobPending))

	var job domain.CollectionJob
	err = row.Scan(&job.ID, &job.TeamID, &job.Attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CollectionJob{}, false, nil
	}
	if err != nil {
		return domain.CollectionJob{}, false, fmt.Errorf("claim job: %w", err)
	}

	job.Status = domain.JobRunning
	job.Attempts++
	job.StartedAt = time.Now()

	if _, err := tx.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, attempts = ?, started_at = ?
		WHERE id = ?`,
		string(job.Status), job.Attempts,
		job.StartedAt.UTC().Format(time.RFC3339Nano), job.ID,
	); err != nil {
		return domain.CollectionJob{}, false, fmt.Errorf("claim job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.CollectionJob{}, false, fmt.Errorf("commit: %w", err)
	}
	return job, true, nil
}

// Complete marks a job done.
func (s *Store) Complete(ctx context.Context, jobID string) error {
	return s.finish(ctx, jobID, domain.JobDone, "")
}

// Fail marks a job failed with its cause.
func (s *Store) Fail(ctx context.Context, jobID string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.finish(ctx, jobID, domain.JobFailed, msg)
}

func (s *Store) finish(ctx context.Context, jobID string, status domain.JobStatus, lastError string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, finished_at = ?, last_error = ?
		WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339Nano), lastError, jobID,
	)
	if err != nil {
		return fmt.Errorf("finish job: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: job %s", ErrNotFound, jobID)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
