package domain

import "time"

// CacheEntry maps a match key to an artifact already on disk.
// Entries survive process restarts; an entry is only trusted when its
// Revision equals the current match revision.
type CacheEntry struct {
	// Owner is the repository owner login.
	Owner string

	// Repo is the repository name.
	Repo string

	// Path is the file path within the repository.
	Path string

	// Revision is the blob SHA the artifact was downloaded at.
	Revision string

	// LocalPath is where the artifact was written.
	LocalPath string

	// VerifiedAt is when the entry was last written or confirmed.
	VerifiedAt time.Time

	// RunID is the mirror run that produced the entry.
	RunID string
}

// Key returns the cache identity "owner/repo/path".
func (e CacheEntry) Key() string {
	return e.Owner + "/" + e.Repo + "/" + e.Path
}

// RunRecord is one row of mirror-run history.
type RunRecord struct {
	// ID is the run identifier.
	ID string

	// Query is the search expression the run executed.
	Query string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Written counts files written during the run.
	Written int

	// Skipped counts cache hits during the run.
	Skipped int

	// Failed counts matches that could not be downloaded.
	Failed int
}
