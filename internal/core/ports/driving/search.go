package driving

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// SearchService lists code-search matches without downloading them.
type SearchService interface {
	// Search returns the query's unique matches, bounded by opts.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchReport, error)
}
