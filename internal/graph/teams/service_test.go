package teams

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/teamsctl/internal/core/ports/driven"
	"github.com/custodia-labs/teamsctl/internal/graph"
)

// newTestService wires a service against an in-process HTTP server.
func newTestService(t *testing.T, cfg Config, handler http.Handler) *Service {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := graph.NewClient(driven.StaticTokenProvider("test-token"),
		graph.WithRetryPolicy(graph.RetryPolicy{
			MaxRetries: 1,
			BaseDelay:  time.Millisecond,
			MaxDelay:   time.Millisecond,
			Timeout:    time.Second,
		}),
		graph.WithRateLimiter(nil),
	)

	cfg.BaseURL = srv.URL
	return NewService(client, cfg)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, graph.BaseURL, cfg.BaseURL)
	assert.Equal(t, "admin_", cfg.OwnerMailPrefix)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Empty(t, cfg.AllowedUserDomains)
}

func TestService_Resource(t *testing.T) {
	s := NewService(nil, Config{BaseURL: "https://example.test/v1"})

	tests := []struct {
		name     string
		segments []string
		query    url.Values
		expected string
	}{
		{
			name:     "plain segments",
			segments: []string{"teams", "abc", "channels"},
			expected: "https://example.test/v1/teams/abc/channels",
		},
		{
			name:     "segment escaping",
			segments: []string{"users", "a b/c"},
			expected: "https://example.test/v1/users/a%20b%2Fc",
		},
		{
			name:     "query encoding",
			segments: []string{"users"},
			query:    url.Values{"$select": {"id,mail"}},
			expected: "https://example.test/v1/users?%24select=id%2Cmail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.resource(tt.segments, tt.query))
		})
	}
}

func TestEscapeODataString(t *testing.T) {
	assert.Equal(t, "plain", escapeODataString("plain"))
	assert.Equal(t, "O''Brien", escapeODataString("O'Brien"))
	assert.Equal(t, "''''", escapeODataString("''"))
}
