package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// searchPageSize is how many results each search request asks for,
// the upstream maximum.
const searchPageSize = 100

// maxSearchPage is the last page the upstream will serve at
// searchPageSize before the result ceiling; requesting beyond it is
// rejected outright.
const maxSearchPage = domain.ResultCeiling / searchPageSize

// SearchComplete is sent on the error channel when the match stream
// ends successfully. It carries the final accounting for the run.
type SearchComplete struct {
	// Matched counts the unique matches yielded.
	Matched int

	// TotalCount is the upstream's total for the query.
	TotalCount int

	// Truncated reports that the result ceiling, or the configured
	// maximum, cut off the true result set.
	Truncated bool
}

// Error implements the error interface so SearchComplete can travel
// on the error channel.
func (SearchComplete) Error() string {
	return "search complete"
}

// IsSearchComplete checks if an error is actually a successful completion.
// Returns the SearchComplete and true if it is, nil and false otherwise.
func IsSearchComplete(err error) (*SearchComplete, bool) {
	var sc *SearchComplete
	if errors.As(err, &sc) {
		return sc, true
	}
	return nil, false
}

// Aggregator streams unique search matches across result pages.
type Aggregator struct {
	searcher driven.CodeSearcher
	pages    driven.PageCacheStore
	pageTTL  time.Duration
	retry    retryPolicy
}

// NewAggregator creates a new aggregator over the given searcher.
func NewAggregator(searcher driven.CodeSearcher) *Aggregator {
	return &Aggregator{
		searcher: searcher,
		retry:    defaultRetryPolicy(),
	}
}

// SetPageCache enables search-page caching with the given TTL.
// A non-positive TTL leaves caching disabled.
func (a *Aggregator) SetPageCache(store driven.PageCacheStore, ttl time.Duration) {
	if store == nil || ttl <= 0 {
		return
	}
	a.pages = store
	a.pageTTL = ttl
}

// Search streams the query's unique matches on the returned channel.
// The stream is lazy, finite, and not restartable. Completion is
// signalled on the error channel with a *SearchComplete sentinel;
// any other error ends the stream early. Both channels are closed
// when the stream ends.
func (a *Aggregator) Search(ctx context.Context, query string, opts domain.SearchOptions) (<-chan domain.Match, <-chan error) {
	matches := make(chan domain.Match)
	errs := make(chan error, 1)

	go func() {
		defer close(matches)
		defer close(errs)
		errs <- a.stream(ctx, query, opts, matches)
	}()

	return matches, errs
}

// stream walks the result pages and sends unique matches until the
// stream completes or fails. The returned error is the stream's final
// word: a *SearchComplete on success.
func (a *Aggregator) stream(ctx context.Context, query string, opts domain.SearchOptions, matches chan<- domain.Match) error {
	limit := opts.Limit()
	seen := make(map[string]struct{})
	yielded := 0
	totalCount := 0
	page := 1

	logger.Section("Search")
	logger.Debug("Query: %q, limit %d", query, limit)

	for {
		sp, err := a.fetchPage(ctx, query, page, opts.RefreshPages)
		if err != nil {
			return err
		}
		totalCount = sp.TotalCount
		logger.Debug("Page %d: %d matches, %d total upstream", page, len(sp.Matches), totalCount)

		for _, m := range sp.Matches {
			key := m.DedupKey()
			if _, dup := seen[key]; dup {
				logger.Debug("Duplicate match %s, skipping", key)
				continue
			}
			seen[key] = struct{}{}

			select {
			case matches <- m:
			case <-ctx.Done():
				return ctx.Err()
			}

			yielded++
			if yielded >= limit {
				return a.complete(yielded, totalCount, limit, false)
			}
		}

		next := sp.NextPage
		if next == 0 || next > maxSearchPage {
			atCeiling := next > maxSearchPage || page >= maxSearchPage
			return a.complete(yielded, totalCount, limit, atCeiling)
		}
		page = next
	}
}

// complete builds the completion sentinel. The set was truncated when
// the upstream had more results than we yielded and the stop was
// bound-driven (the configured maximum or the result ceiling) rather
// than a natural end of the stream.
func (a *Aggregator) complete(yielded, totalCount, limit int, atCeiling bool) *SearchComplete {
	truncated := totalCount > yielded && (yielded >= limit || atCeiling)
	logger.Info("Search complete: %d matched of %d total (truncated=%t)", yielded, totalCount, truncated)
	return &SearchComplete{
		Matched:    yielded,
		TotalCount: totalCount,
		Truncated:  truncated,
	}
}

// fetchPage returns one search page, consulting the page cache first
// and retrying upstream failures per the retry policy. Cache problems
// are logged and ignored; the upstream is the source of truth.
func (a *Aggregator) fetchPage(ctx context.Context, query string, page int, refresh bool) (*domain.SearchPage, error) {
	if a.pages != nil && !refresh {
		sp, ok, err := a.pages.GetPage(ctx, query, page, searchPageSize, a.pageTTL)
		if err != nil {
			logger.Warn("Page cache read failed for page %d: %v", page, err)
		} else if ok {
			logger.Debug("Page %d served from cache", page)
			return sp, nil
		}
	}

	var sp *domain.SearchPage
	err := a.retry.run(ctx, fmt.Sprintf("search page %d", page), func(ctx context.Context) error {
		var err error
		sp, err = a.searcher.SearchCode(ctx, query, page, searchPageSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	if a.pages != nil {
		if err := a.pages.PutPage(ctx, query, page, searchPageSize, sp); err != nil {
			logger.Warn("Page cache write failed for page %d: %v", page, err)
		}
	}
	return sp, nil
}
