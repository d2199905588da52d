package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// SearchPageSize is the upstream's maximum code-search page size.
	SearchPageSize = 100

	// DefaultRetryAfter is the secondary-limit pause applied when the
	// response carries no Retry-After value.
	DefaultRetryAfter = 60 * time.Second
)

// Compile-time port checks.
var (
	_ driven.CodeSearcher = (*Client)(nil)
	_ driven.BlobFetcher  = (*Client)(nil)
)

// Client wraps the go-github client with the shared rate budget.
// One Client serves both search and blob calls for a run, so the two
// endpoints drain a single RateLimiter.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// NewClient creates a client that resolves its token lazily from
// provider on first use. provider must be non-nil.
func NewClient(provider driven.TokenProvider) *Client {
	return &Client{
		tokenProvider: provider,
		rateLimiter:   NewRateLimiter(),
	}
}

// NewClientWithToken creates a client with a static access token.
func NewClientWithToken(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		gh:          gh.NewClient(tc),
		rateLimiter: NewRateLimiter(),
	}
}

// NewClientWithHTTPClient creates a client over a custom http.Client.
// Useful in tests together with SetBaseURL.
func NewClientWithHTTPClient(httpClient *http.Client) *Client {
	return &Client{
		gh:          gh.NewClient(httpClient),
		rateLimiter: NewRateLimiter(),
	}
}

// SetBaseURL points the client at a different API root, e.g. a test
// server. The URL must end with a trailing slash.
func (c *Client) SetBaseURL(raw string) error {
	if c.gh == nil {
		return errors.New("github: client not initialised")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so the token is only resolved when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.gh = gh.NewClient(tc)

	return nil
}

// RateLimiter returns the shared rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types and feeds
// authoritative limit values back into the rate limiter.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	// Secondary (abuse) limits carry an explicit pause that overrides
	// the normal reset time for the next wait.
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		retryAfter := DefaultRetryAfter
		if abuseErr.RetryAfter != nil {
			retryAfter = *abuseErr.RetryAfter
		}
		c.rateLimiter.SetRetryAfter(retryAfter)
		return &RateLimitError{
			ResetAt:    time.Now().Add(retryAfter),
			Remaining:  c.rateLimiter.Remaining(),
			Limit:      c.rateLimiter.Limit(),
			RetryAfter: retryAfter,
		}
	}

	// Primary limit exhausted; the error body carries the reset time.
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.rateLimiter.SetBudget(
			rateLimitErr.Rate.Remaining,
			rateLimitErr.Rate.Limit,
			rateLimitErr.Rate.Reset.Time,
		)
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		// A 403/429 with a Retry-After header is a rate limit even
		// when go-github did not classify it as one.
		if ghErr.Response.StatusCode == http.StatusForbidden ||
			ghErr.Response.StatusCode == http.StatusTooManyRequests {
			if ra := retryAfterDuration(ghErr.Response); ra > 0 {
				c.rateLimiter.SetRetryAfter(ra)
				return &RateLimitError{
					ResetAt:    time.Now().Add(ra),
					Remaining:  c.rateLimiter.Remaining(),
					Limit:      c.rateLimiter.Limit(),
					RetryAfter: ra,
				}
			}
		}
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	// Transport failures are retryable; cancellation is not.
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return fmt.Errorf("%s: %w: %v", operation, domain.ErrTransient, err)
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
