package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// Downloader materializes single matches on disk, consulting the
// durable cache before touching the network.
type Downloader struct {
	fetcher driven.BlobFetcher
	cache   driven.BlobCacheStore
	retry   retryPolicy
}

// NewDownloader creates a new downloader.
func NewDownloader(fetcher driven.BlobFetcher, cache driven.BlobCacheStore) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		cache:   cache,
		retry:   defaultRetryPolicy(),
	}
}

// Download materializes m under destRoot and classifies what happened.
// A cache hit at m's revision with the file still on disk is a skip
// with zero network traffic. Failures never abort the run; they are
// reported in the outcome.
func (d *Downloader) Download(ctx context.Context, m domain.Match, destRoot, runID string) domain.Outcome {
	dest, err := m.DestPath(destRoot)
	if err != nil {
		return failure(m, err)
	}

	// 1. Cache first. Unreadable entries count as misses; the error is
	// only worth a log line.
	entry, ok, err := d.cache.Lookup(ctx, m)
	if err != nil {
		logger.Warn("Cache lookup failed for %s: %v", m.Key(), err)
	}
	if ok {
		if _, statErr := os.Stat(entry.LocalPath); statErr == nil {
			logger.Debug("Cache hit: %s @ %s", m.Key(), m.Revision)
			return domain.Outcome{Match: m, Kind: domain.OutcomeSkipped, LocalPath: entry.LocalPath}
		}
		logger.Debug("Cache entry for %s points at a missing file, refetching", m.Key())
	}

	// 2. Fetch the blob. Transient failures retry with backoff; a 404
	// is terminal for this match.
	var content []byte
	err = d.retry.run(ctx, fmt.Sprintf("fetch %s", m.Key()), func(ctx context.Context) error {
		var ferr error
		content, ferr = d.fetcher.FetchBlob(ctx, m)
		return ferr
	})
	if err != nil {
		return failure(m, err)
	}

	// 3. Write atomically so a crash never leaves a half-written file.
	if err := writeFileAtomic(dest, content); err != nil {
		return failure(m, err)
	}

	// 4. Record the entry so the next run can skip this revision.
	rec := domain.CacheEntry{
		Owner:     m.Owner,
		Repo:      m.Repo,
		Path:      m.Path,
		Revision:  m.Revision,
		LocalPath: dest,
		RunID:     runID,
	}
	if err := d.cache.Record(ctx, rec); err != nil {
		logger.Warn("Cache record failed for %s: %v", m.Key(), err)
	}

	logger.Debug("Wrote %s", dest)
	return domain.Outcome{Match: m, Kind: domain.OutcomeWritten, LocalPath: dest}
}

func failure(m domain.Match, err error) domain.Outcome {
	return domain.Outcome{Match: m, Kind: domain.OutcomeFailed, Err: err}
}

// writeFileAtomic writes content to dest through a temp file in the
// same directory, renamed over the final path.
func writeFileAtomic(dest string, content []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
