package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// blobStore implements driven.BlobCacheStore.
type blobStore struct {
	store *Store
}

var _ driven.BlobCacheStore = (*blobStore)(nil)

// Lookup retrieves the entry for m's key. The entry only counts as a
// hit when its stored revision equals m.Revision. An unreadable row is
// reported as a miss alongside the error so the caller can log it.
func (s *blobStore) Lookup(ctx context.Context, m domain.Match) (domain.CacheEntry, bool, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT owner, repo, path, revision, local_path, verified_at, run_id
		FROM blobs WHERE owner = ? AND repo = ? AND path = ?
	`, m.Owner, m.Repo, m.Path)

	var entry domain.CacheEntry
	var verifiedAt sql.NullTime
	var runID sql.NullString
	if err := row.Scan(&entry.Owner, &entry.Repo, &entry.Path, &entry.Revision,
		&entry.LocalPath, &verifiedAt, &runID); err != nil {
		if err == sql.ErrNoRows {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, fmt.Errorf("scanning blob entry: %w", err)
	}

	if verifiedAt.Valid {
		entry.VerifiedAt = verifiedAt.Time
	}
	entry.RunID = runID.String

	if entry.Revision != m.Revision {
		return entry, false, nil
	}
	return entry, true, nil
}

// Record stores or updates the entry for its key.
func (s *blobStore) Record(ctx context.Context, entry domain.CacheEntry) error {
	if entry.VerifiedAt.IsZero() {
		entry.VerifiedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO blobs (owner, repo, path, revision, local_path, verified_at, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, repo, path) DO UPDATE SET
			revision = excluded.revision,
			local_path = excluded.local_path,
			verified_at = excluded.verified_at,
			run_id = excluded.run_id
	`, entry.Owner, entry.Repo, entry.Path, entry.Revision,
		entry.LocalPath, entry.VerifiedAt, nullString(entry.RunID))

	if err != nil {
		return fmt.Errorf("recording blob entry: %w", err)
	}
	return nil
}

// List returns all entries, most recently verified first.
func (s *blobStore) List(ctx context.Context) ([]domain.CacheEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT owner, repo, path, revision, local_path, verified_at, run_id
		FROM blobs
		ORDER BY verified_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying blob entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CacheEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.CacheEntry
		var verifiedAt sql.NullTime
		var runID sql.NullString
		if err := rows.Scan(&entry.Owner, &entry.Repo, &entry.Path, &entry.Revision,
			&entry.LocalPath, &verifiedAt, &runID); err != nil {
			return nil, fmt.Errorf("scanning blob entry: %w", err)
		}
		if verifiedAt.Valid {
			entry.VerifiedAt = verifiedAt.Time
		}
		entry.RunID = runID.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blob entries: %w", err)
	}

	return entries, nil
}

// Purge removes all entries and reports how many were removed.
func (s *blobStore) Purge(ctx context.Context) (int, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM blobs")
	if err != nil {
		return 0, fmt.Errorf("purging blob entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged blob entries: %w", err)
	}
	return int(n), nil
}
