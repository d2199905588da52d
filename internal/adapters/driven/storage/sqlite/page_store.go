package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// pageStore implements driven.PageCacheStore.
type pageStore struct {
	store *Store
}

var _ driven.PageCacheStore = (*pageStore)(nil)

// GetPage returns the cached page for (query, page, perPage) when it
// is younger than ttl. A non-positive ttl disables the cache.
func (s *pageStore) GetPage(ctx context.Context, query string, page, perPage int, ttl time.Duration) (*domain.SearchPage, bool, error) {
	if ttl <= 0 {
		return nil, false, nil
	}

	row := s.store.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at
		FROM search_pages
		WHERE query_hash = ? AND page = ? AND per_page = ?
	`, queryHash(query), page, perPage)

	var payload string
	var fetchedAt sql.NullTime
	if err := row.Scan(&payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("scanning search page: %w", err)
	}

	if !fetchedAt.Valid || time.Since(fetchedAt.Time) > ttl {
		return nil, false, nil
	}

	var sp domain.SearchPage
	if err := json.Unmarshal([]byte(payload), &sp); err != nil {
		return nil, false, fmt.Errorf("unmarshaling search page: %w", err)
	}
	return &sp, true, nil
}

// PutPage stores page, replacing any previous copy.
func (s *pageStore) PutPage(ctx context.Context, query string, page, perPage int, sp *domain.SearchPage) error {
	payload, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("marshalling search page: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO search_pages (query_hash, page, per_page, payload, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(query_hash, page, per_page) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, queryHash(query), page, perPage, string(payload), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("storing search page: %w", err)
	}
	return nil
}

// PurgePages removes all cached pages and reports how many were removed.
func (s *pageStore) PurgePages(ctx context.Context) (int, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM search_pages")
	if err != nil {
		return 0, fmt.Errorf("purging search pages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged search pages: %w", err)
	}
	return int(n), nil
}

// queryHash keys the page cache by a digest of the query text.
func queryHash(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:])
}
