package driving

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// CacheService inspects and clears the durable caches.
type CacheService interface {
	// Entries returns all download-cache entries, most recently
	// verified first.
	Entries(ctx context.Context) ([]domain.CacheEntry, error)

	// Purge clears the download and page caches, reporting how many
	// entries of each were removed.
	Purge(ctx context.Context) (blobs, pages int, err error)
}

// HistoryService lists past mirror runs.
type HistoryService interface {
	// Recent returns up to limit run records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
