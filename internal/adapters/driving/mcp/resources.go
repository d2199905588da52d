package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for fetcha resources.
	uriScheme = "fetcha://"

	// runsResourceLimit bounds the run-history resource.
	runsResourceLimit = 20
)

// cacheEntryInfo is the JSON shape of one download-cache entry.
type cacheEntryInfo struct {
	File       string    `json:"file"`
	Revision   string    `json:"revision"`
	LocalPath  string    `json:"local_path"`
	VerifiedAt time.Time `json:"verified_at"`
}

// runInfo is the JSON shape of one run-history record.
type runInfo struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	StartedAt time.Time `json:"started_at"`
	Written   int       `json:"written"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the download cache.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cache",
		Name:        "cache",
		Description: "Download-cache entries with their revisions and local paths",
		MIMEType:    "application/json",
	}, s.handleCacheResource)

	// Template for one repository's cache entries.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "cache/{owner}/{repo}",
		Name:        "repo-cache",
		Description: "Download-cache entries for a single repository",
		MIMEType:    "application/json",
	}, s.handleRepoCacheResource)

	// Static resource for recent run history.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent mirror runs with their queries and counts",
		MIMEType:    "application/json",
	}, s.handleRunsResource)
}

// handleCacheResource returns every download-cache entry.
func (s *Server) handleCacheResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return jsonResource(req.Params.URI, []cacheEntryInfo{})
	}

	entries, err := s.ports.Cache.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}

	return jsonResource(req.Params.URI, entryInfos(entries))
}

// handleRepoCacheResource returns the cache entries for one repository.
func (s *Server) handleRepoCacheResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	owner, repo := extractRepo(req.Params.URI)
	if owner == "" || repo == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries, err := s.ports.Cache.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}

	var filtered []domain.CacheEntry
	for _, e := range entries {
		if e.Owner == owner && e.Repo == repo {
			filtered = append(filtered, e)
		}
	}

	return jsonResource(req.Params.URI, entryInfos(filtered))
}

// handleRunsResource returns recent mirror runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, []runInfo{})
	}

	records, err := s.ports.History.Recent(ctx, runsResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(records))
	for i, rec := range records {
		infos[i] = runInfo{
			ID:        rec.ID,
			Query:     rec.Query,
			StartedAt: rec.StartedAt,
			Written:   rec.Written,
			Skipped:   rec.Skipped,
			Failed:    rec.Failed,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

func entryInfos(entries []domain.CacheEntry) []cacheEntryInfo {
	infos := make([]cacheEntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = cacheEntryInfo{
			File:       e.Key(),
			Revision:   e.Revision,
			LocalPath:  e.LocalPath,
			VerifiedAt: e.VerifiedAt,
		}
	}
	return infos
}

// jsonResource wraps v as a single application/json resource content.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRepo parses fetcha://cache/{owner}/{repo}.
func extractRepo(uri string) (owner, repo string) {
	rest, ok := strings.CutPrefix(uri, uriScheme+"cache/")
	if !ok {
		return "", ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
