package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// BlobCacheStore is the durable download cache. Entries are keyed by
// (owner, repo, path) and only trusted at a matching revision; stale
// entries behave as absent. The store must survive process restarts
// and tolerate concurrent writers.
type BlobCacheStore interface {
	// Lookup returns the entry for m's key when its stored revision
	// equals m.Revision. Missing, stale, or unreadable entries report
	// ok=false; unreadable entries must never fail the caller.
	Lookup(ctx context.Context, m domain.Match) (entry domain.CacheEntry, ok bool, err error)

	// Record persists entry, replacing any previous entry for its key.
	Record(ctx context.Context, entry domain.CacheEntry) error

	// List returns all entries, most recently verified first.
	List(ctx context.Context) ([]domain.CacheEntry, error)

	// Purge removes all entries and reports how many were removed.
	Purge(ctx context.Context) (int, error)
}

// PageCacheStore caches whole search pages for a short TTL so repeated
// runs of the same query skip redundant search requests.
type PageCacheStore interface {
	// GetPage returns the cached page for (query, page, perPage) when
	// it is younger than ttl.
	GetPage(ctx context.Context, query string, page, perPage int, ttl time.Duration) (*domain.SearchPage, bool, error)

	// PutPage stores page for (query, page, perPage).
	PutPage(ctx context.Context, query string, page, perPage int, sp *domain.SearchPage) error

	// PurgePages removes all cached pages and reports how many were
	// removed.
	PurgePages(ctx context.Context) (int, error)
}

// RunStore persists mirror-run history.
type RunStore interface {
	// RecordRun inserts or replaces one run record.
	RecordRun(ctx context.Context, rec domain.RunRecord) error

	// ListRuns returns up to limit records, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
