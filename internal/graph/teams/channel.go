package teams

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/graph"
)

// Channel is a named conversation stream within a team.
type Channel struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ListChannels returns every channel of the given team.
func (s *Service) ListChannels(ctx context.Context, teamID string) ([]Channel, error) {
	if teamID == "" {
		return nil, domain.ErrMissingTeam
	}

	query := url.Values{"$select": {"id,displayName"}}
	u := s.resource([]string{"teams", teamID, "channels"}, query)

	channels, err := graph.CollectAll[Channel](ctx, s.client, u)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	for _, ch := range channels {
		if ch.ID == "" {
			return nil, fmt.Errorf("list channels: %w: id", ErrMissingField)
		}
	}
	return channels, nil
}

// ChannelMessages returns the top-level messages of a channel, walking every
// page in cursor order. On a permanent page failure the messages collected
// so far are returned alongside the error.
func (s *Service) ChannelMessages(ctx context.Context, teamID, channelID string) ([]Message, error) {
	if teamID == "" {
		return nil, domain.ErrMissingTeam
	}

	query := url.Values{"$top": {strconv.Itoa(s.cfg.PageSize)}}
	u := s.resource([]string{"teams", teamID, "channels", channelID, "messages"}, query)

	return graph.CollectAll[Message](ctx, s.client, u)
}

// MessageReplies returns the reply thread of one top-level message, walking
// every page in cursor order. Partial results are returned on failure, as
// with ChannelMessages.
func (s *Service) MessageReplies(ctx context.Context, teamID, channelID, messageID string) ([]Message, error) {
	if teamID == "" {
		return nil, domain.ErrMissingTeam
	}

	query := url.Values{"$top": {strconv.Itoa(s.cfg.PageSize)}}
	u := s.resource([]string{"teams", teamID, "channels", channelID, "messages", messageID, "replies"}, query)

	return graph.CollectAll[Message](ctx, s.client, u)
}
