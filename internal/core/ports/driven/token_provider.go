// Package driven defines the contracts the core expects its collaborators
// to implement: credential supply and result persistence.
package driven

import "context"

// TokenProvider supplies bearer tokens for upstream API requests.
// The token is opaque to callers; acquisition, caching and refresh are
// entirely the provider's concern.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenProvider wraps a fixed token. Useful for tests and for calls
// made on behalf of a caller-supplied credential.
type StaticTokenProvider string

func (s StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	return string(s), nil
}
