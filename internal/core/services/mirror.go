package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// Ensure Mirror implements the interface.
var _ driving.MirrorService = (*Mirror)(nil)

// Mirror runs the search-to-download pipeline: one producer streaming
// matches, a pool of download workers consuming them.
type Mirror struct {
	aggregator *Aggregator
	downloader *Downloader
	runs       driven.RunStore
}

// NewMirror creates a new mirror pipeline.
func NewMirror(aggregator *Aggregator, downloader *Downloader) *Mirror {
	return &Mirror{
		aggregator: aggregator,
		downloader: downloader,
	}
}

// SetRunStore enables run-history bookkeeping.
func (s *Mirror) SetRunStore(store driven.RunStore) {
	s.runs = store
}

// Run searches query and downloads every unique match under
// opts.Root(). Per-match failures accumulate in the summary; only
// run-level conditions return an error, alongside whatever summary
// had accumulated by then.
func (s *Mirror) Run(ctx context.Context, query string, opts domain.MirrorOptions) (*domain.Summary, error) {
	runID := uuid.New().String()
	startedAt := time.Now().UTC()
	workers := opts.Workers()
	root := opts.Root()

	logger.Section("Mirror Run")
	logger.Info("Run %s: %q -> %s (%d workers)", runID, query, root, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	matchesCh, errsCh := s.aggregator.Search(ctx, query, opts.Search)

	// Worker pool. Workers drain the match stream even after a fatal
	// error so the producer is never left blocked.
	outcomes := make(chan domain.Outcome)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for m := range matchesCh {
				outcomes <- s.downloader.Download(ctx, m, root, runID)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	summary := &domain.Summary{}
	var complete *SearchComplete
	var fatal error

	for outcomes != nil || errsCh != nil {
		select {
		case err, ok := <-errsCh:
			if !ok {
				errsCh = nil
				continue
			}
			if sc, isComplete := IsSearchComplete(err); isComplete {
				complete = sc
				continue
			}
			// Search failed; stop dispatch and let the workers wind
			// down.
			fatal = err
			cancel()

		case out, ok := <-outcomes:
			if !ok {
				outcomes = nil
				continue
			}
			switch out.Kind {
			case domain.OutcomeWritten:
				summary.Written++
			case domain.OutcomeSkipped:
				summary.Skipped++
			case domain.OutcomeFailed:
				summary.Failed = append(summary.Failed, domain.Failure{Match: out.Match, Reason: out.Err})
				logger.Warn("Failed %s: %v", out.Match.Key(), out.Err)
			}
		}
	}

	finishedAt := time.Now().UTC()

	if complete != nil {
		summary.Matched = complete.Matched
		summary.TotalCount = complete.TotalCount
		summary.Truncated = complete.Truncated
	}
	if fatal == nil && ctx.Err() != nil {
		fatal = ctx.Err()
	}

	s.recordRun(domain.RunRecord{
		ID:         runID,
		Query:      query,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Written:    summary.Written,
		Skipped:    summary.Skipped,
		Failed:     len(summary.Failed),
	})

	logger.Info("Run %s done: %d written, %d skipped, %d failed",
		runID, summary.Written, summary.Skipped, len(summary.Failed))

	if fatal != nil {
		return summary, fatal
	}
	return summary, nil
}

// recordRun persists the run's bookkeeping. It runs on a background
// context so history survives cancellation, and failures only cost a
// log line.
func (s *Mirror) recordRun(rec domain.RunRecord) {
	if s.runs == nil {
		return
	}
	if err := s.runs.RecordRun(context.Background(), rec); err != nil {
		logger.Warn("Run record failed: %v", err)
	}
}
