package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// defaultSearchResults bounds tool responses when the caller does not
// ask for a specific count.
const defaultSearchResults = 100

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the code search query, e.g. 'lang:go net/http'"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum matches to return (default 100, cap 1000)"`
	Refresh    bool   `json:"refresh,omitempty" jsonschema:"bypass cached search pages"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Matches    []MatchOutput `json:"matches"`
	Count      int           `json:"count"`
	TotalCount int           `json:"total_count"`
	Truncated  bool          `json:"truncated"`
}

// MatchOutput represents a single search match.
type MatchOutput struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Path     string `json:"path"`
	Revision string `json:"revision"`
	HTMLURL  string `json:"html_url,omitempty"`
}

// MirrorInput is the input schema for the mirror tool.
type MirrorInput struct {
	Query       string `json:"query" jsonschema:"the code search query to mirror"`
	Dest        string `json:"dest,omitempty" jsonschema:"destination root directory (default current directory)"`
	Concurrency int    `json:"concurrency,omitempty" jsonschema:"download worker count (default 4)"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"maximum matches to download (cap 1000)"`
}

// MirrorOutput is the output schema for the mirror tool.
type MirrorOutput struct {
	Written    int             `json:"written"`
	Skipped    int             `json:"skipped"`
	Failed     []FailureOutput `json:"failed"`
	TotalCount int             `json:"total_count"`
	Truncated  bool            `json:"truncated"`
}

// FailureOutput names one file that could not be downloaded.
type FailureOutput struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search GitHub code and list matching files without downloading them",
	}, s.handleSearch)

	if s.ports.Mirror != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "mirror",
			Description: "Search GitHub code and download every matching file as {owner}/{repo}/{path}",
		}, s.handleMirror)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}

	opts := domain.SearchOptions{
		MaxResults:   maxResults,
		RefreshPages: input.Refresh,
	}
	report, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Matches:    make([]MatchOutput, len(report.Matches)),
		Count:      len(report.Matches),
		TotalCount: report.TotalCount,
		Truncated:  report.Truncated,
	}
	for i, m := range report.Matches {
		output.Matches[i] = MatchOutput{
			Owner:    m.Owner,
			Repo:     m.Repo,
			Path:     m.Path,
			Revision: m.Revision,
			HTMLURL:  m.HTMLURL,
		}
	}

	return nil, output, nil
}

// handleMirror handles the mirror tool invocation.
func (s *Server) handleMirror(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MirrorInput,
) (*mcp.CallToolResult, MirrorOutput, error) {
	opts := domain.MirrorOptions{
		Search:      domain.SearchOptions{MaxResults: input.MaxResults},
		DestRoot:    input.Dest,
		Concurrency: input.Concurrency,
	}

	summary, err := s.ports.Mirror.Run(ctx, input.Query, opts)
	if err != nil {
		return nil, MirrorOutput{}, err
	}

	output := MirrorOutput{
		Written:    summary.Written,
		Skipped:    summary.Skipped,
		Failed:     make([]FailureOutput, len(summary.Failed)),
		TotalCount: summary.TotalCount,
		Truncated:  summary.Truncated,
	}
	for i, f := range summary.Failed {
		output.Failed[i] = FailureOutput{
			File:   f.Match.Key(),
			Reason: f.Reason.Error(),
		}
	}

	return nil, output, nil
}
