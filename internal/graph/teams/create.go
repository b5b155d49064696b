package teams

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNoOwners indicates no owner accounts matched the configured mail
	// prefix, so a team cannot be provisioned.
	ErrNoOwners = errors.New("teams: no owner accounts found")

	// ErrNameRequired indicates a create request without a display name.
	ErrNameRequired = errors.New("teams: team name required")
)

// CreateTeam provisions a new public team from the standard template, seeded
// with the first configured owner account. Graph accepts only a single
// member at creation time, so the remaining owners are added afterwards.
func (s *Service) CreateTeam(ctx context.Context, name, description string) (*Team, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	owners, err := s.ListOwners(ctx)
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, ErrNoOwners
	}

	payload := map[string]any{
		"template@odata.bind": s.cfg.BaseURL + "/teamsTemplates('standard')",
		"visibility":          "public",
		"displayName":         name,
		"description":         description,
		"guestSettings": map[string]bool{
			"allowCreateUpdateChannels": true,
		},
		"members": []any{conversationMember(s.cfg.BaseURL, owners[0], "owner")},
	}

	resp, err := s.client.PostJSON(ctx, s.resource([]string{"teams"}, nil), payload)
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	teamID, err := teamIDFromLocation(resp.Header.Get("Location"))
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.log.Info().Str("team", teamID).Str("name", name).Msg("team provisioned")

	// Provisioning is asynchronous; follow-up calls 404 if made too soon.
	if err := s.settle(ctx); err != nil {
		return nil, err
	}

	if err := s.AddOwners(ctx, teamID, owners[1:]); err != nil {
		s.log.Error().Err(err).Str("team", teamID).Msg("failed to add remaining owners")
	}

	return &Team{ID: teamID, DisplayName: name, Description: description}, nil
}

// AddOwners adds the given users to a team with the owner role in one bulk
// call.
func (s *Service) AddOwners(ctx context.Context, teamID string, users []User) error {
	if len(users) == 0 {
		return nil
	}

	values := make([]any, 0, len(users))
	for _, u := range users {
		values = append(values, conversationMember(s.cfg.BaseURL, u, "owner"))
	}

	u := s.resource([]string{"teams", teamID, "members", "add"}, nil)
	if _, err := s.client.PostJSON(ctx, u, map[string]any{"values": values}); err != nil {
		return fmt.Errorf("add owners: %w", err)
	}
	return nil
}

// conversationMember builds the aadUserConversationMember payload Graph
// expects for member binding.
func conversationMember(baseURL string, user User, role string) map[string]any {
	member := map[string]any{
		"@odata.type":     "#microsoft.graph.aadUserConversationMember",
		"roles":           []string{},
		"user@odata.bind": fmt.Sprintf("%s/users('%s')", baseURL, user.ID),
	}
	if role != "" {
		member["roles"] = []string{role}
	}
	return member
}

// teamIDFromLocation extracts the team id from the Location header of an
// accepted create response, e.g. /teams('{id}')/operations('{op}').
func teamIDFromLocation(location string) (string, error) {
	parts := strings.Split(location, "'")
	if len(parts) < 2 || parts[1] == "" {
		return "", fmt.Errorf("unexpected location header %q", location)
	}
	return parts[1], nil
}

// settle waits out the provisioning delay, honouring cancellation.
func (s *Service) settle(ctx context.Context) error {
	if s.cfg.CreateSettleDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.CreateSettleDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
