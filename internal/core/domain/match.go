package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Match identifies one file the upstream search API reported as
// satisfying the query. It is immutable once produced.
type Match struct {
	// Owner is the login of the repository owner.
	Owner string

	// Repo is the repository name.
	Repo string

	// Path is the file path within the repository, slash-separated.
	Path string

	// Revision is the blob SHA of the file content at index time.
	// It pins the exact content version for fetching and for cache
	// validity.
	Revision string

	// HTMLURL points at the file on the upstream web UI, for reporting.
	HTMLURL string
}

// Key returns the cache identity "owner/repo/path". Two matches with
// the same key refer to the same file, possibly at different revisions.
func (m Match) Key() string {
	return m.Owner + "/" + m.Repo + "/" + m.Path
}

// DedupKey returns the full uniqueness key including the revision.
// The aggregator never yields two matches with the same dedup key.
func (m Match) DedupKey() string {
	return m.Key() + "@" + m.Revision
}

// DestPath returns the local destination for this match under root,
// mirroring the origin as {owner}/{repo}/{path}. Upstream paths that
// would escape the {owner}/{repo} directory are rejected.
func (m Match) DestPath(root string) (string, error) {
	base := filepath.Join(root, m.Owner, m.Repo)
	dest := filepath.Join(base, filepath.FromSlash(m.Path))

	rel, err := filepath.Rel(base, dest)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, m.Path)
	}
	return dest, nil
}

// SearchPage is one response page from the upstream search API.
// It is transient; the aggregator consumes it and moves on.
type SearchPage struct {
	// Matches are the page's results in upstream order.
	Matches []Match

	// TotalCount is the upstream's count of all matches for the query,
	// which may exceed what the API will actually return.
	TotalCount int

	// NextPage is the next page number to request, 0 when this is the
	// last page.
	NextPage int
}

// SearchReport is the materialized result of a search-only run.
type SearchReport struct {
	// Matches are the unique matches, in first-seen order.
	Matches []Match

	// TotalCount is the upstream's total for the query.
	TotalCount int

	// Truncated reports that the result ceiling, or the configured
	// maximum, cut off the true result set.
	Truncated bool
}
