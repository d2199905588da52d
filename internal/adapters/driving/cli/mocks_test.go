package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	report   *domain.SearchReport
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(_ context.Context, _ string, opts domain.SearchOptions) (*domain.SearchReport, error) {
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

func (m *mockMirrorService) Run(_ context.Context, query string, opts domain.MirrorOptions) (*domain.Summary, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.summary == nil && m.err == nil {
		return &domain.Summary{}, nil
	}
	return m.summary, m.err
}

// mockCacheService is a mock implementation of driving.CacheService
// and driving.HistoryService.
type mockCacheService struct {
	entries []domain.CacheEntry
	runs    []domain.RunRecord
	err     error
}

func (m *mockCacheService) Entries(_ context.Context) ([]domain.CacheEntry, error) {
	return m.entries, m.err
}

func (m *mockCacheService) Purge(_ context.Context) (int, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return len(m.entries), 1, nil
}

func (m *mockCacheService) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

// mockTokenProvider is a mock implementation of driven.TokenProvider.
type mockTokenProvider struct {
	token  string
	source string
	err    error
}

func (m *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

func (m *mockTokenProvider) Source() string {
	return m.source
}

// setupTestServices installs mock services and returns the mocks plus
// a cleanup that restores whatever was wired before.
func setupTestServices() (*mockSearchService, *mockMirrorService, *mockCacheService, func()) {
	oldSearch := searchService
	oldMirror := mirrorService
	oldCache := cacheService
	oldHistory := historyService
	oldProvider := tokenProvider
	oldConfig := configStore

	search := &mockSearchService{}
	mirror := &mockMirrorService{}
	cache := &mockCacheService{}

	searchService = search
	mirrorService = mirror
	cacheService = cache
	historyService = cache
	tokenProvider = &mockTokenProvider{token: "ghp_1234567890abcdef", source: "config"}
	configStore = memory.NewConfigStore()

	return search, mirror, cache, func() {
		searchService = oldSearch
		mirrorService = oldMirror
		cacheService = oldCache
		historyService = oldHistory
		tokenProvider = oldProvider
		configStore = oldConfig
	}
}

func testCacheEntry(owner, repo, path, revision string) domain.CacheEntry {
	return domain.CacheEntry{
		Owner:      owner,
		Repo:       repo,
		Path:       path,
		Revision:   revision,
		LocalPath:  "/tmp/mirror/" + owner + "/" + repo + "/" + path,
		VerifiedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}
