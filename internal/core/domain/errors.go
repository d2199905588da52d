package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidQuery indicates the upstream rejected the search query.
	// Not retryable; the user must fix the query.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNoCredential indicates no API token could be resolved.
	ErrNoCredential = errors.New("no credential configured")

	// ErrUnauthorized indicates the API token was rejected.
	ErrUnauthorized = errors.New("credential rejected")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	// Resolved by waiting for the budget to reset, not by retrying
	// immediately.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransient indicates a server-side or network failure that is
	// worth retrying with backoff.
	ErrTransient = errors.New("transient upstream failure")

	// ErrInvalidPath indicates an upstream file path that cannot be
	// mirrored safely under the destination root.
	ErrInvalidPath = errors.New("invalid path")

	// ErrBudgetExhausted indicates the rate budget stayed exhausted
	// past the maximum total wait with no progress.
	ErrBudgetExhausted = errors.New("rate budget exhausted")
)
