package teams

import (
	"context"
	"fmt"
)

// MembershipChange is a typed command describing the teams one user should
// be added to and removed from.
type MembershipChange struct {
	UserEmail string
	Add       []string
	Remove    []string
}

// MembershipResult reports, per team id, which changes took effect.
type MembershipResult struct {
	Added        []string `json:"added"`
	AddFailed    []string `json:"addFailed"`
	Removed      []string `json:"removed"`
	RemoveFailed []string `json:"removeFailed"`
}

// ChangeMembership applies a membership change for one user. Individual team
// failures are collected into the result rather than aborting the batch; an
// error is returned only when the user cannot be resolved at all.
func (s *Service) ChangeMembership(ctx context.Context, change MembershipChange) (*MembershipResult, error) {
	user, err := s.GetUserByEmail(ctx, change.UserEmail)
	if err != nil {
		return nil, err
	}

	result := &MembershipResult{}

	for _, teamID := range change.Add {
		if err := s.addMember(ctx, teamID, user.ID); err != nil {
			s.log.Error().Err(err).Str("team", teamID).Str("user", user.ID).
				Msg("failed to add user to team")
			result.AddFailed = append(result.AddFailed, teamID)
			continue
		}
		result.Added = append(result.Added, teamID)
	}

	for _, teamID := range change.Remove {
		if err := s.removeMember(ctx, teamID, user.ID); err != nil {
			s.log.Error().Err(err).Str("team", teamID).Str("user", user.ID).
				Msg("failed to remove user from team")
			result.RemoveFailed = append(result.RemoveFailed, teamID)
			continue
		}
		result.Removed = append(result.Removed, teamID)
	}

	return result, nil
}

// addMember adds a directory user to a team's underlying group.
func (s *Service) addMember(ctx context.Context, teamID, userID string) error {
	team, err := s.TeamByID(ctx, teamID)
	if err != nil {
		return err
	}

	u := s.resource([]string{"groups", team.ID, "members", "$ref"}, nil)
	payload := map[string]string{
		"@odata.id": fmt.Sprintf("%s/directoryObjects/%s", s.cfg.BaseURL, userID),
	}

	if _, err := s.client.PostJSON(ctx, u, payload); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// removeMember removes a directory user from a team's underlying group.
func (s *Service) removeMember(ctx context.Context, teamID, userID string) error {
	team, err := s.TeamByID(ctx, teamID)
	if err != nil {
		return err
	}

	u := s.resource([]string{"groups", team.ID, "members", userID, "$ref"}, nil)

	if _, err := s.client.Delete(ctx, u); err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}
