package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
)

// DefaultRunHistoryLimit bounds ListRuns when no limit is given.
const DefaultRunHistoryLimit = 20

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// RecordRun inserts or replaces one run record.
func (s *runStore) RecordRun(ctx context.Context, rec domain.RunRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, query, started_at, finished_at, written, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			written = excluded.written,
			skipped = excluded.skipped,
			failed = excluded.failed
	`, rec.ID, rec.Query, rec.StartedAt, rec.FinishedAt,
		rec.Written, rec.Skipped, rec.Failed)

	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit records, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = DefaultRunHistoryLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, started_at, finished_at, written, skipped, failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rec domain.RunRecord
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Query, &startedAt, &finishedAt,
			&rec.Written, &rec.Skipped, &rec.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if startedAt.Valid {
			rec.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			rec.FinishedAt = finishedAt.Time
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return records, nil
}
