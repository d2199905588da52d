package domain

// OutcomeKind classifies the result of downloading one match.
type OutcomeKind int

const (
	// OutcomeWritten indicates the file was fetched and written to disk.
	OutcomeWritten OutcomeKind = iota

	// OutcomeSkipped indicates a valid cache entry made the fetch
	// unnecessary.
	OutcomeSkipped

	// OutcomeFailed indicates the match could not be downloaded.
	OutcomeFailed
)

// Outcome is the per-match result produced by the downloader.
type Outcome struct {
	// Match is the match this outcome belongs to.
	Match Match

	// Kind classifies the result.
	Kind OutcomeKind

	// LocalPath is the file written or reused; empty on failure.
	LocalPath string

	// Err is the failure reason when Kind is OutcomeFailed.
	Err error
}

// Failure pairs a match with the reason it could not be downloaded.
type Failure struct {
	// Match is the match that failed.
	Match Match

	// Reason is the terminal error for this match.
	Reason error
}

// Summary is the final result of a mirror run.
type Summary struct {
	// Written counts files fetched and written to disk.
	Written int

	// Skipped counts files satisfied by the cache without a fetch.
	Skipped int

	// Failed lists matches that could not be downloaded, with reasons.
	Failed []Failure

	// Matched counts the unique matches the search yielded.
	Matched int

	// TotalCount is the upstream's total for the query. It can exceed
	// Matched when the result ceiling truncates the set.
	TotalCount int

	// Truncated reports that the result ceiling, or the configured
	// maximum, cut off the true result set.
	Truncated bool
}

// Success reports whether every match was written or skipped.
func (s *Summary) Success() bool {
	return len(s.Failed) == 0
}
