// Package stats computes per-team message statistics: total and recent
// human-authored message counts, the most recent activity date and a
// question count, across one channel's top-level messages and every reply
// thread under them.
//
// The traversal is best-effort throughout: transient upstream failures are
// absorbed by the Graph client's retries, and anything that still fails
// permanently degrades the run to a partial result instead of discarding
// the counts collected so far. Only credential errors, invalid input and
// caller cancellation surface to the caller.
package stats

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/teamsctl/internal/batch"
	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/graph"
	"github.com/custodia-labs/teamsctl/internal/graph/teams"
	"github.com/custodia-labs/teamsctl/internal/logger"
)

// MessageSource lists channels, messages and replies for a team. Message
// and reply listings return whatever was collected before a permanent
// failure alongside the error.
type MessageSource interface {
	ListChannels(ctx context.Context, teamID string) ([]teams.Channel, error)
	ChannelMessages(ctx context.Context, teamID, channelID string) ([]teams.Message, error)
	MessageReplies(ctx context.Context, teamID, channelID, messageID string) ([]teams.Message, error)
}

// Aggregator computes statistics for one team at a time. Construct one per
// run when a per-run request budget is wanted (hand it a budgeted source).
type Aggregator struct {
	source MessageSource
	cfg    Config
	log    zerolog.Logger
}

// New creates an aggregator over the given source.
func New(source MessageSource, cfg Config) *Aggregator {
	if cfg.ReplyConcurrency <= 0 {
		cfg.ReplyConcurrency = DefaultConfig().ReplyConcurrency
	}
	if cfg.RecencyWindow <= 0 {
		cfg.RecencyWindow = DefaultConfig().RecencyWindow
	}
	return &Aggregator{
		source: source,
		cfg:    cfg,
		log:    logger.Component("stats"),
	}
}

// TeamStats runs one aggregation for the given team.
//
// A team with no channel matching the allow-list yields the zero-value
// record, not an error. Permanent fetch failures inside the traversal mark
// the result partial and keep every count gathered up to that point.
func (a *Aggregator) TeamStats(ctx context.Context, teamID string) (domain.TeamStats, error) {
	if teamID == "" {
		return domain.TeamStats{}, domain.ErrMissingTeam
	}

	// Computed once so every item in the run is judged against the same
	// window. The lower bound is closed.
	cutoff := time.Now().Add(-a.cfg.RecencyWindow)

	channels, err := a.source.ListChannels(ctx, teamID)
	if err != nil {
		if !degradable(err) {
			return domain.TeamStats{}, err
		}
		a.log.Warn().Err(err).Str("team", teamID).Msg("channel list failed, returning partial zero result")
		return a.result(teamID, "", accumulator{partial: true}), nil
	}

	channel, ok := selectChannel(channels, a.cfg.ChannelNames)
	if !ok {
		return a.result(teamID, "", accumulator{}), nil
	}

	var acc accumulator

	msgs, err := a.source.ChannelMessages(ctx, teamID, channel.ID)
	if err != nil {
		if !degradable(err) {
			return domain.TeamStats{}, err
		}
		a.log.Warn().Err(err).Str("team", teamID).Str("channel", channel.ID).
			Int("collected", len(msgs)).Msg("message walk stopped early")
		acc.partial = true
	}
	acc.count(msgs, cutoff, a.cfg.CountQuestions)

	// Every top-level message gets a reply walk, human-authored or not: a
	// bot post can still carry human replies.
	units := make([]func() (accumulator, error), len(msgs))
	for i := range msgs {
		msg := msgs[i]
		units[i] = func() (accumulator, error) {
			return a.walkReplies(ctx, teamID, channel.ID, msg.ID, cutoff)
		}
	}

	outcomes, err := batch.Run(units, a.cfg.ReplyConcurrency)
	if err != nil {
		return domain.TeamStats{}, err
	}

	// Merge only after every unit has completed; the fold is commutative so
	// completion order does not matter.
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			return domain.TeamStats{}, outcome.Err
		}
		acc.absorb(outcome.Value)
	}

	return a.result(teamID, channel.ID, acc), nil
}

// walkReplies tallies one message's reply thread into a local accumulator.
// A permanent failure stops that thread's walk, marks the tally partial and
// keeps the replies counted so far; only fatal errors are returned.
func (a *Aggregator) walkReplies(ctx context.Context, teamID, channelID, messageID string, cutoff time.Time) (accumulator, error) {
	var tally accumulator

	replies, err := a.source.MessageReplies(ctx, teamID, channelID, messageID)
	if err != nil {
		if !degradable(err) {
			return tally, err
		}
		a.log.Warn().Err(err).Str("team", teamID).Str("message", messageID).
			Int("collected", len(replies)).Msg("reply walk stopped early")
		tally.partial = true
	}
	tally.count(replies, cutoff, a.cfg.CountQuestions)

	return tally, nil
}

// result freezes an accumulator into the record handed to the sink.
func (a *Aggregator) result(teamID, channelID string, acc accumulator) domain.TeamStats {
	res := domain.TeamStats{
		TeamID:        teamID,
		ChannelID:     channelID,
		TotalCount:    acc.total,
		RecentCount:   acc.recent,
		QuestionCount: acc.questions,
		Partial:       acc.partial,
		CollectedAt:   time.Now(),
	}
	if acc.hasLatest {
		res.LastActivity = acc.latest.Format(time.DateOnly)
	}
	return res
}

// selectChannel returns the first channel whose display name matches the
// allow-list, case-insensitively.
func selectChannel(channels []teams.Channel, names []string) (teams.Channel, bool) {
	for _, ch := range channels {
		for _, name := range names {
			if strings.EqualFold(ch.DisplayName, name) {
				return ch, true
			}
		}
	}
	return teams.Channel{}, false
}

// degradable reports whether an error can be folded into a partial result.
// Exhausted retries, non-retryable statuses, a spent budget and malformed
// pages all degrade; credential errors and caller cancellation do not.
func degradable(err error) bool {
	var exhausted *graph.RetriesExhaustedError
	var status *graph.StatusError
	switch {
	case errors.As(err, &exhausted), errors.As(err, &status),
		errors.Is(err, graph.ErrBudgetExhausted):
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, graph.ErrTokenUnavailable):
		return false
	default:
		return true
	}
}

// accumulator is the monotone tally of one aggregation run: counts only
// grow, latest only moves forward, partial never resets.
type accumulator struct {
	total     int
	recent    int
	questions int
	latest    time.Time
	hasLatest bool
	partial   bool
}

// count folds a batch of messages into the accumulator. Only human-authored
// items contribute to any count.
func (a *accumulator) count(msgs []teams.Message, cutoff time.Time, countQuestions bool) {
	for i := range msgs {
		msg := &msgs[i]
		if !msg.IsHuman() {
			continue
		}

		a.total++

		if ts, ok := msg.EffectiveTime(); ok {
			if !a.hasLatest || ts.After(a.latest) {
				a.latest = ts
				a.hasLatest = true
			}
			if !ts.Before(cutoff) {
				a.recent++
			}
		}

		if countQuestions && IsQuestion(CleanText(msg.BodyContent())) {
			a.questions++
		}
	}
}

// absorb merges another accumulator in: sums of counts, max of timestamps,
// OR of partial flags.
func (a *accumulator) absorb(other accumulator) {
	a.total += other.total
	a.recent += other.recent
	a.questions += other.questions
	if other.hasLatest && (!a.hasLatest || other.latest.After(a.latest)) {
		a.latest = other.latest
		a.hasLatest = true
	}
	if other.partial {
		a.partial = true
	}
}
