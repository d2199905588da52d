package driven

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// CodeSearcher fetches one page of code-search results from the
// upstream API. Implementations must honour the shared rate budget
// before sending and reconcile it from the response afterwards.
type CodeSearcher interface {
	// SearchCode returns one page of matches for query.
	// page is 1-based; perPage is capped by the upstream page size.
	SearchCode(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error)
}

// BlobFetcher fetches the raw bytes of one matched file at the exact
// revision recorded in the match.
type BlobFetcher interface {
	// FetchBlob returns the decoded file content for m.
	FetchBlob(ctx context.Context, m domain.Match) ([]byte, error)
}
