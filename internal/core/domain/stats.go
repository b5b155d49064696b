package domain

import "time"

// TeamStats is the consolidated message-statistics record for one team.
// It is produced once per aggregation run and never mutated afterwards.
type TeamStats struct {
	// TeamID identifies the team the statistics were collected for.
	TeamID string `json:"teamId"`
	// ChannelID is the channel the counts were taken from. Empty when no
	// channel matched the configured allow-list.
	ChannelID string `json:"channelId,omitempty"`
	// TotalCount is the number of human-authored messages and replies.
	TotalCount int `json:"totalCount"`
	// RecentCount is the subset of TotalCount inside the recency window.
	RecentCount int `json:"recentCount"`
	// QuestionCount is the number of counted items classified as questions.
	QuestionCount int `json:"questionCount"`
	// LastActivity is the most recent activity as a calendar date
	// (YYYY-MM-DD), or empty when nothing was counted.
	LastActivity string `json:"lastActivity,omitempty"`
	// Partial reports that at least one paginated fetch failed permanently,
	// so the counts are a lower bound rather than exact.
	Partial bool `json:"partial"`
	// CollectedAt is when the aggregation run finished.
	CollectedAt time.Time `json:"collectedAt"`
}
