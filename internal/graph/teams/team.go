package teams

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/graph"
)

// Team is a collaboration space containing channels and members.
type Team struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	Description     string `json:"description"`
	CreatedDateTime string `json:"createdDateTime"`
	WebURL          string `json:"webUrl"`
}

// Member is a team member with their directory identity and role.
type Member struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
}

// Role returns the member's primary role, or "unknown" when Graph reports
// none.
func (m Member) Role() string {
	if len(m.Roles) > 0 {
		return m.Roles[0]
	}
	return "unknown"
}

// TeamByName looks up a team by its exact display name.
func (s *Service) TeamByName(ctx context.Context, displayName string) (*Team, error) {
	query := url.Values{
		"$filter": {fmt.Sprintf("(displayName eq '%s')", escapeODataString(displayName))},
		"$select": {"id,displayName,description,createdDateTime"},
	}
	u := s.resource([]string{"groups"}, query)

	var page struct {
		Value []Team `json:"value"`
	}
	if err := s.getJSONEventual(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("get team by name: %w", err)
	}
	if len(page.Value) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, displayName)
	}
	if page.Value[0].ID == "" {
		return nil, fmt.Errorf("get team by name: %w: id", ErrMissingField)
	}
	return &page.Value[0], nil
}

// TeamByID fetches a team by its id.
func (s *Service) TeamByID(ctx context.Context, teamID string) (*Team, error) {
	if teamID == "" {
		return nil, domain.ErrMissingTeam
	}

	u := s.resource([]string{"teams", teamID}, nil)

	var team Team
	if err := s.client.GetJSON(ctx, u, &team); err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTeamNotFound, teamID)
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	if team.ID == "" {
		return nil, fmt.Errorf("get team: %w: id", ErrMissingField)
	}
	return &team, nil
}

// UserTeams returns the teams the given user has joined.
func (s *Service) UserTeams(ctx context.Context, email string) ([]Team, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	u := s.resource([]string{"users", user.ID, "joinedTeams"}, nil)

	var page struct {
		Value []Team `json:"value"`
	}
	if err := s.getJSONEventual(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	return page.Value, nil
}

// TeamMembers returns the members of a team.
func (s *Service) TeamMembers(ctx context.Context, teamID string) ([]Member, error) {
	if teamID == "" {
		return nil, domain.ErrMissingTeam
	}

	u := s.resource([]string{"teams", teamID, "members"}, nil)

	members, err := graph.CollectAll[Member](ctx, s.client, u)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
