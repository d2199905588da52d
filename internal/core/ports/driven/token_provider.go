package driven

import "context"

// TokenProvider resolves the API token used for authenticated calls.
// Implementations may chain several sources (environment, config file)
// and are consulted once per client construction.
type TokenProvider interface {
	// GetToken returns a token, or domain.ErrNoCredential when none is
	// configured anywhere in the chain.
	GetToken(ctx context.Context) (string, error)

	// Source names where the token came from, for diagnostics.
	// Empty until GetToken has succeeded.
	Source() string
}
