package domain

import "time"

// JobStatus is the lifecycle state of a collection job.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// CollectionJob is one queued request to collect statistics for a team.
type CollectionJob struct {
	ID         string
	TeamID     string
	Status     JobStatus
	Attempts   int
	EnqueuedAt time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	LastError  string
}
