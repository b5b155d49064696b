// Package auth provides bearer credentials for Microsoft Graph using the
// OAuth2 client-credentials flow. Tokens are cached and refreshed by the
// underlying token source; callers only ever see an opaque bearer string.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/custodia-labs/teamsctl/internal/core/domain"
)

// DefaultScope requests every application permission granted to the app
// registration.
const DefaultScope = "https://graph.microsoft.com/.default"

// tokenURLTemplate is the v2 token endpoint for a tenant.
const tokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

// ClientCredentials supplies Graph tokens for a daemon application.
type ClientCredentials struct {
	source oauth2.TokenSource
}

// NewClientCredentials creates a provider for the given tenant and
// application registration. An empty tokenURL derives the tenant's v2
// endpoint.
func NewClientCredentials(tenantID, clientID, clientSecret, tokenURL string, scopes []string) (*ClientCredentials, error) {
	if clientID == "" || clientSecret == "" {
		return nil, domain.ErrAuthRequired
	}
	if tokenURL == "" {
		if tenantID == "" {
			return nil, domain.ErrAuthRequired
		}
		tokenURL = fmt.Sprintf(tokenURLTemplate, tenantID)
	}
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
	}

	return &ClientCredentials{source: conf.TokenSource(context.Background())}, nil
}

// GetToken returns a valid access token, refreshing if needed.
func (p *ClientCredentials) GetToken(_ context.Context) (string, error) {
	tok, err := p.source.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
	}
	return tok.AccessToken, nil
}
