package driving

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// MirrorService runs the search-to-download pipeline.
type MirrorService interface {
	// Run searches query and downloads every unique match under
	// opts.Root(). Per-match failures accumulate in the summary;
	// only run-level conditions (bad query, rejected credential,
	// exhausted budget, cancellation) return an error.
	Run(ctx context.Context, query string, opts domain.MirrorOptions) (*domain.Summary, error)
}
