package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested topic id is absent from the registry.
	// Callers must handle this as a normal outcome, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrRegistryNotBuilt indicates the query surface was called before the
	// first successful build completed. This is a programmer error, not a
	// content problem.
	ErrRegistryNotBuilt = errors.New("registry not built")

	// ErrBuildRejected indicates a strict-mode build found hard violations
	// and the whole load was rejected.
	ErrBuildRejected = errors.New("build rejected")

	// ErrInvalidLevel indicates a requested level outside 1..5.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidLocale indicates a requested locale that is not supported.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrLevelUnavailable indicates a topic exists but has no level at or
	// below the requested one, so no downward fallback is possible.
	ErrLevelUnavailable = errors.New("level unavailable")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates a wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRebuildInProgress indicates a rebuild is already running
	ErrRebuildInProgress = errors.New("rebuild already in progress")

	// ErrArchiveUnavailable indicates the durable record/report archive
	// is not configured for this deployment
	ErrArchiveUnavailable = errors.New("archive unavailable")
)
