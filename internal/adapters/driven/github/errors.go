package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("github: empty query")

	// ErrMissingRevision indicates a match without a blob SHA, which
	// cannot be fetched.
	ErrMissingRevision = errors.New("github: match has no revision")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int

	// RetryAfter is non-zero when a secondary (abuse) limit supplied
	// an explicit pause.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap surfaces the domain classification for errors.Is checks.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status code onto the matching domain error so core
// services can classify failures without importing this package.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.StatusCode == http.StatusUnprocessableEntity:
		return domain.ErrInvalidQuery
	case e.StatusCode >= 500:
		return domain.ErrTransient
	}
	return nil
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr) || errors.Is(err, domain.ErrRateLimited)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

// IsInvalidQuery checks if the error indicates the upstream rejected
// the query syntax.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, domain.ErrInvalidQuery)
}

// IsTransient checks if the error is worth retrying: server-side and
// transport failures, never cancellation, auth failures, bad queries,
// or rate limits.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) {
		return false
	}
	if errors.Is(err, domain.ErrTransient) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
