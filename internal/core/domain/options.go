package domain

// Bounds for a mirror run.
const (
	// DefaultConcurrency is the worker pool size when none is given.
	DefaultConcurrency = 4

	// MaxConcurrency caps the worker pool size.
	MaxConcurrency = 32

	// ResultCeiling is the largest number of results the upstream
	// search API returns for any single query, regardless of its
	// reported total count.
	ResultCeiling = 1000
)

// SearchOptions bound a search.
type SearchOptions struct {
	// MaxResults caps how many matches to yield. Zero, or anything
	// above ResultCeiling, means the ceiling applies.
	MaxResults int

	// RefreshPages bypasses cached search pages.
	RefreshPages bool
}

// Limit returns the effective result bound.
func (o SearchOptions) Limit() int {
	if o.MaxResults <= 0 || o.MaxResults > ResultCeiling {
		return ResultCeiling
	}
	return o.MaxResults
}

// MirrorOptions bound a mirror run.
type MirrorOptions struct {
	// Search bounds the underlying search.
	Search SearchOptions

	// DestRoot is the destination directory; the current directory
	// when empty.
	DestRoot string

	// Concurrency is the download worker count.
	Concurrency int
}

// Workers returns the effective worker count, clamped to
// [1, MaxConcurrency] with DefaultConcurrency when unset.
func (o MirrorOptions) Workers() int {
	switch {
	case o.Concurrency <= 0:
		return DefaultConcurrency
	case o.Concurrency > MaxConcurrency:
		return MaxConcurrency
	default:
		return o.Concurrency
	}
}

// Root returns the effective destination root.
func (o MirrorOptions) Root() string {
	if o.DestRoot == "" {
		return "."
	}
	return o.DestRoot
}
