package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// Ensure CacheManager implements the interfaces.
var (
	_ driving.CacheService   = (*CacheManager)(nil)
	_ driving.HistoryService = (*CacheManager)(nil)
)

// CacheManager inspects and clears the durable caches and lists past
// runs.
type CacheManager struct {
	blobs driven.BlobCacheStore
	pages driven.PageCacheStore
	runs  driven.RunStore
}

// NewCacheManager creates a new cache manager.
func NewCacheManager(blobs driven.BlobCacheStore, pages driven.PageCacheStore, runs driven.RunStore) *CacheManager {
	return &CacheManager{
		blobs: blobs,
		pages: pages,
		runs:  runs,
	}
}

// Entries returns all download-cache entries, most recently verified
// first.
func (c *CacheManager) Entries(ctx context.Context) ([]domain.CacheEntry, error) {
	return c.blobs.List(ctx)
}

// Purge clears the download and page caches, reporting how many
// entries of each were removed.
func (c *CacheManager) Purge(ctx context.Context) (blobs, pages int, err error) {
	blobs, err = c.blobs.Purge(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("purge download cache: %w", err)
	}

	pages, err = c.pages.PurgePages(ctx)
	if err != nil {
		return blobs, 0, fmt.Errorf("purge page cache: %w", err)
	}

	logger.Info("Purged %d cache entries, %d search pages", blobs, pages)
	return blobs, pages, nil
}

// Recent returns up to limit run records, newest first.
func (c *CacheManager) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	return c.runs.ListRuns(ctx, limit)
}
