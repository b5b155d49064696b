// Package teams is the typed Microsoft Teams surface over the Graph client:
// channel, message and reply listing for statistics collection, plus the
// directory and membership operations used for team administration.
package teams

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/teamsctl/internal/graph"
	"github.com/custodia-labs/teamsctl/internal/logger"
)

// ErrMissingField indicates an upstream response lacked a field this package
// requires. Surfaced as a decode error rather than propagating zero values.
var ErrMissingField = errors.New("teams: response missing required field")

// Config holds the Teams service configuration.
type Config struct {
	// BaseURL is the Graph API root. Defaults to graph.BaseURL.
	BaseURL string
	// AllowedUserDomains restricts directory user lookups to the given mail
	// domains. Empty allows any domain.
	AllowedUserDomains []string
	// OwnerMailPrefix selects the directory accounts seeded as owners of
	// newly created teams.
	OwnerMailPrefix string
	// PageSize is the $top value for paginated collections.
	PageSize int
	// CreateSettleDelay is how long to wait after a team is provisioned
	// before follow-up calls. Graph returns 404 if queried too quickly.
	CreateSettleDelay time.Duration
}

// DefaultConfig returns the default Teams service configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           graph.BaseURL,
		OwnerMailPrefix:   "admin_",
		PageSize:          50,
		CreateSettleDelay: 2 * time.Second,
	}
}

// Service exposes Teams operations over a Graph client.
type Service struct {
	client *graph.Client
	cfg    Config
	log    zerolog.Logger
}

// NewService creates a Teams service.
func NewService(client *graph.Client, cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = graph.BaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &Service{
		client: client,
		cfg:    cfg,
		log:    logger.Component("teams"),
	}
}

// Budgeted returns a copy of the service whose Graph calls draw from b.
func (s *Service) Budgeted(b *graph.Budget) *Service {
	cp := *s
	cp.client = s.client.Budgeted(b)
	return &cp
}

// resource builds an API URL from path segments and query parameters. Path
// segments are escaped individually.
func (s *Service) resource(segments []string, query url.Values) string {
	var sb strings.Builder
	sb.WriteString(s.cfg.BaseURL)
	for _, seg := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(seg))
	}
	if len(query) > 0 {
		sb.WriteByte('?')
		sb.WriteString(query.Encode())
	}
	return sb.String()
}

// escapeODataString doubles single quotes for use inside $filter literals.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
