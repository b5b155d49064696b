package domain

import "errors"

// Input and credential errors surface to callers unchanged; everything
// transient inside an aggregation run is absorbed before reaching them.
var (
	// ErrAuthRequired indicates no usable credential source is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrMissingTeam indicates an operation was invoked without a team id.
	ErrMissingTeam = errors.New("team id required")

	// ErrUserNotFound indicates a directory lookup matched no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrTeamNotFound indicates a lookup matched no team.
	ErrTeamNotFound = errors.New("team not found")
)
