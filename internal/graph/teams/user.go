package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
	"github.com/custodia-labs/teamsctl/internal/graph"
)

// User is a directory user.
type User struct {
	ID          string `json:"id"`
	Mail        string `json:"mail"`
	DisplayName string `json:"displayName"`
}

// GetUserByEmail looks up a directory user by mail address. Lookups outside
// the configured mail domains are rejected before any call is made, so this
// cannot be used to probe arbitrary directories.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if !s.emailAllowed(email) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}

	query := url.Values{
		"$filter": {fmt.Sprintf("endsWith(mail,'%s')", escapeODataString(email))},
		"$select": {"id,mail,displayName"},
		"$count":  {"true"},
	}
	u := s.resource([]string{"users"}, query)

	var page struct {
		Value []User `json:"value"`
	}
	if err := s.getJSONEventual(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(page.Value) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}
	if page.Value[0].ID == "" {
		return nil, fmt.Errorf("get user: %w: id", ErrMissingField)
	}
	return &page.Value[0], nil
}

// ListOwners returns the admin accounts seeded as owners of new teams,
// selected by the configured mail prefix.
func (s *Service) ListOwners(ctx context.Context) ([]User, error) {
	query := url.Values{
		"$filter": {fmt.Sprintf("startsWith(mail,'%s')", escapeODataString(s.cfg.OwnerMailPrefix))},
		"$select": {"id,mail,displayName"},
		"$count":  {"true"},
	}
	u := s.resource([]string{"users"}, query)

	var page struct {
		Value []User `json:"value"`
	}
	if err := s.getJSONEventual(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return page.Value, nil
}

// emailAllowed checks the address against the configured domain allow-list.
func (s *Service) emailAllowed(email string) bool {
	if email == "" {
		return false
	}
	if len(s.cfg.AllowedUserDomains) == 0 {
		return true
	}
	lower := strings.ToLower(email)
	for _, dom := range s.cfg.AllowedUserDomains {
		if strings.HasSuffix(lower, "@"+strings.ToLower(dom)) {
			return true
		}
	}
	return false
}

// getJSONEventual performs a GET with the ConsistencyLevel header advanced
// directory queries ($filter + $count) require.
func (s *Service) getJSONEventual(ctx context.Context, u string, out any) error {
	header := http.Header{}
	header.Set("ConsistencyLevel", "eventual")

	resp, err := s.client.Do(ctx, graph.Request{Method: http.MethodGet, URL: u, Header: header})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
