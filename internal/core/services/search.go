package services

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driving"
)

// Ensure Searcher implements the interface.
var _ driving.SearchService = (*Searcher)(nil)

// Searcher lists code-search matches without downloading them.
type Searcher struct {
	aggregator *Aggregator
}

// NewSearcher creates a new search service.
func NewSearcher(aggregator *Aggregator) *Searcher {
	return &Searcher{aggregator: aggregator}
}

// Search materializes the query's unique matches, bounded by opts.
func (s *Searcher) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchReport, error) {
	matchesCh, errsCh := s.aggregator.Search(ctx, query, opts)

	report := &domain.SearchReport{}
	for matchesCh != nil || errsCh != nil {
		select {
		case m, ok := <-matchesCh:
			if !ok {
				matchesCh = nil
				continue
			}
			report.Matches = append(report.Matches, m)

		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if sc, isComplete := IsSearchComplete(err); isComplete {
				report.TotalCount = sc.TotalCount
				report.Truncated = sc.Truncated
				continue
			}
			return nil, err
		}
	}

	return report, nil
}
