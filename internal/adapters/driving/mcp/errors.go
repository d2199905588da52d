// Package mcp provides an MCP (Model Context Protocol) server adapter
// for fetcha. It exposes code search and mirroring as tools and the
// download cache and run history as resources, so AI assistants can
// drive the search-to-download pipeline.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
