package mcp

import (
	"context"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report   *domain.SearchReport
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) (*domain.SearchReport, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &domain.SearchReport{}, nil
}

// mockMirrorService is a mock implementation of driving.MirrorService.
type mockMirrorService struct {
	summary   *domain.Summary
	err       error
	lastQuery string
	lastOpts  domain.MirrorOptions
}

func (m *mockMirrorService) Run(
	_ context.Context,
	query string,
	opts domain.MirrorOptions,
) (*domain.Summary, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &domain.Summary{}, nil
}

// mockCacheService is a mock implementation of driving.CacheService.
type mockCacheService struct {
	entries []domain.CacheEntry
	err     error
}

func (m *mockCacheService) Entries(_ context.Context) ([]domain.CacheEntry, error) {
	return m.entries, m.err
}

func (m *mockCacheService) Purge(_ context.Context) (int, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return len(m.entries), 0, nil
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.RunRecord
	err  error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}
