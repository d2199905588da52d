package mcp

import (
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search lists code-search matches without downloading.
	Search driving.SearchService

	// Mirror runs the search-to-download pipeline.
	Mirror driving.MirrorService

	// Cache inspects the durable download cache.
	Cache driving.CacheService

	// History lists past mirror runs.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Mirror, Cache, and History are optional; the server degrades to
	// search-only.
	return nil
}
