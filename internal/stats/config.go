package stats

import "time"

// Config holds the aggregation policy. The recency window and channel
// allow-list are business policy, not protocol constants, so they live here
// rather than in code.
type Config struct {
	// ChannelNames is the case-insensitive allow-list of channel display
	// names; the first channel matching it is aggregated. A team with no
	// matching channel contributes zero statistics.
	ChannelNames []string
	// RecencyWindow is the age limit for the "recent" count. The lower
	// bound is closed: an item exactly RecencyWindow old still counts.
	RecencyWindow time.Duration
	// ReplyConcurrency bounds how many reply threads are walked at once.
	// This is the system's only backpressure towards the upstream API.
	ReplyConcurrency int
	// CountQuestions enables the question heuristic on counted items.
	CountQuestions bool
}

// DefaultConfig returns the observed production policy.
func DefaultConfig() Config {
	return Config{
		ChannelNames:     []string{"general", "main"},
		RecencyWindow:    30 * 24 * time.Hour,
		ReplyConcurrency: 8,
		CountQuestions:   true,
	}
}
