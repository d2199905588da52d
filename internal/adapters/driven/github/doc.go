// Package github adapts the GitHub REST API to the core's search and
// fetch ports.
//
// The adapter drives two endpoints: code search (one page at a time)
// and blob retrieval (one file at a time, addressed by blob SHA). Both
// go through a single Client so they share one rate budget.
//
// # Architecture
//
// The package implements the driven ports [driven.CodeSearcher] and
// [driven.BlobFetcher]. It comprises:
//
//   - Client: go-github wrapper; every call waits on the budget first
//     and reconciles it from response headers afterwards
//   - RateLimiter: dual-strategy budget enforcement shared by all calls
//   - error types: APIError and RateLimitError, unwrapping to domain
//     sentinels so core services classify failures without importing
//     this package
//
// # Authentication
//
// A personal access token is resolved through [driven.TokenProvider]
// the first time the client is used. Authenticated requests get 5,000
// API calls per hour; unauthenticated use is not supported because the
// code-search endpoint requires a token.
//
// # Rate Limiting
//
// Dual strategy:
//
//  1. Proactive throttling: a token bucket limits requests to roughly
//     1.2 per second, staying under the hourly quota whilst keeping
//     throughput steady.
//
//  2. Reactive handling: the limiter tracks X-RateLimit-Remaining and
//     X-RateLimit-Reset from every response. When the budget is down
//     to the safety buffer, Wait sleeps until the reset time.
//
// Secondary (abuse-detection) limits carry a Retry-After value; the
// limiter adopts it as the reset time for the next wait.
//
// # Result Mapping
//
// Search items map to [domain.Match] with the blob SHA as the
// revision. Items missing a repository, path, or SHA are skipped;
// they cannot be fetched or mirrored. Blob content arrives base64
// encoded with embedded newlines and is decoded before return.
//
// # Error Handling
//
//   - 422: invalid query, unwraps to domain.ErrInvalidQuery (fatal)
//   - 401: bad credential, unwraps to domain.ErrUnauthorized (fatal)
//   - 404: blob vanished after indexing, unwraps to domain.ErrNotFound
//   - 403/429 with rate headers: RateLimitError, resolved by waiting
//   - 5xx and transport failures: unwrap to domain.ErrTransient
package github
