package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// SearchCode fetches one page of code-search results.
// page is 1-based; perPage is clamped to the upstream maximum.
func (c *Client) SearchCode(ctx context.Context, query string, page, perPage int) (*domain.SearchPage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > SearchPageSize {
		perPage = SearchPageSize
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	result, resp, err := c.gh.Search.Code(ctx, query, opts)
	if err != nil {
		return nil, c.wrapError(err, "search code")
	}

	c.updateRateLimitFromResponse(resp)

	sp := &domain.SearchPage{
		TotalCount: result.GetTotal(),
		NextPage:   resp.NextPage,
		Matches:    make([]domain.Match, 0, len(result.CodeResults)),
	}
	for _, item := range result.CodeResults {
		m, ok := matchFromCodeResult(item)
		if !ok {
			// Items without repository, path, or SHA cannot be
			// fetched or mirrored.
			continue
		}
		sp.Matches = append(sp.Matches, m)
	}

	return sp, nil
}

// matchFromCodeResult maps one search item to a domain match.
func matchFromCodeResult(item *gh.CodeResult) (domain.Match, bool) {
	repo := item.GetRepository()
	if repo == nil {
		return domain.Match{}, false
	}

	owner := repo.GetOwner().GetLogin()
	name := repo.GetName()
	path := item.GetPath()
	sha := item.GetSHA()
	if owner == "" || name == "" || path == "" || sha == "" {
		return domain.Match{}, false
	}

	return domain.Match{
		Owner:    owner,
		Repo:     name,
		Path:     path,
		Revision: sha,
		HTMLURL:  item.GetHTMLURL(),
	}, true
}
