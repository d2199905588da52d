// Package domain defines the core business entities for fetcha.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Match: One file the search API reported for the query
//   - SearchPage: One page of search results
//   - Outcome: The per-match download result
//   - Summary: The final written/skipped/failed tally of a run
//   - CacheEntry: A durable record of an artifact already on disk
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
