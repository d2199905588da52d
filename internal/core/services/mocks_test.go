package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

// testRetryPolicy keeps retry delays out of test runtime.
func testRetryPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts: 3,
		baseDelay:   time.Millisecond,
		maxRateWait: time.Second,
	}
}

func testMatch(owner, repo, path, revision string) domain.Match {
	return domain.Match{
		Owner:    owner,
		Repo:     repo,
		Path:     path,
		Revision: revision,
		HTMLURL:  "https://github.com/" + owner + "/" + repo + "/blob/main/" + path,
	}
}

func testPage(total, next int, matches ...domain.Match) *domain.SearchPage {
	return &domain.SearchPage{
		Matches:    matches,
		TotalCount: total,
		NextPage:   next,
	}
}

// collectStream drains a search stream, separating matches from the
// completion sentinel and any stream error.
func collectStream(t *testing.T, matches <-chan domain.Match, errs <-chan error) ([]domain.Match, *SearchComplete, error) {
	t.Helper()

	var collected []domain.Match
	var complete *SearchComplete
	var streamErr error

	for matches != nil || errs != nil {
		select {
		case m, ok := <-matches:
			if !ok {
				matches = nil
				continue
			}
			collected = append(collected, m)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if sc, isComplete := IsSearchComplete(err); isComplete {
				complete = sc
				continue
			}
			streamErr = err
		}
	}
	return collected, complete, streamErr
}

// mockSearcher is a mock implementation of driven.CodeSearcher serving
// scripted pages. Errors queued for a page are consumed before the
// page itself, so retry behavior can be scripted per page.
type mockSearcher struct {
	mu    sync.Mutex
	pages map[int]*domain.SearchPage
	errs  map[int][]error
	calls []int
}

func newMockSearcher() *mockSearcher {
	return &mockSearcher{
		pages: make(map[int]*domain.SearchPage),
		errs:  make(map[int][]error),
	}
}

func (m *mockSearcher) SearchCode(ctx context.Context, _ string, page, _ int) (*domain.SearchPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, page)

	if queued := m.errs[page]; len(queued) > 0 {
		err := queued[0]
		m.errs[page] = queued[1:]
		return nil, err
	}
	if sp, ok := m.pages[page]; ok {
		return sp, nil
	}
	return &domain.SearchPage{}, nil
}

func (m *mockSearcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockFetcher is a mock implementation of driven.BlobFetcher. Content
// is keyed by DedupKey; errors queued for a match key are consumed
// before its content.
type mockFetcher struct {
	mu      sync.Mutex
	content map[string][]byte
	errs    map[string][]error
	calls   int
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		content: make(map[string][]byte),
		errs:    make(map[string][]error),
	}
}

func (m *mockFetcher) FetchBlob(ctx context.Context, match domain.Match) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if queued := m.errs[match.Key()]; len(queued) > 0 {
		err := queued[0]
		m.errs[match.Key()] = queued[1:]
		return nil, err
	}
	if content, ok := m.content[match.DedupKey()]; ok {
		return content, nil
	}
	return []byte("content of " + match.Path), nil
}

func (m *mockFetcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockBlobCache is a mock implementation of driven.BlobCacheStore with
// the revision-equality lookup contract.
type mockBlobCache struct {
	mu        sync.Mutex
	entries   map[string]domain.CacheEntry
	lookupErr error
	records   int
}

func newMockBlobCache() *mockBlobCache {
	return &mockBlobCache{entries: make(map[string]domain.CacheEntry)}
}

func (m *mockBlobCache) Lookup(_ context.Context, match domain.Match) (domain.CacheEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lookupErr != nil {
		return domain.CacheEntry{}, false, m.lookupErr
	}
	entry, ok := m.entries[match.Key()]
	if !ok || entry.Revision != match.Revision {
		return domain.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

func (m *mockBlobCache) Record(_ context.Context, entry domain.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records++
	m.entries[entry.Key()] = entry
	return nil
}

func (m *mockBlobCache) List(_ context.Context) ([]domain.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]domain.CacheEntry, 0, len(m.entries))
	for _, entry := range m.entries {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (m *mockBlobCache) Purge(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.entries)
	m.entries = make(map[string]domain.CacheEntry)
	return n, nil
}

// mockPageCache is a mock implementation of driven.PageCacheStore.
type mockPageCache struct {
	mu    sync.Mutex
	pages map[string]*domain.SearchPage
	gets  int
	puts  int
}

func newMockPageCache() *mockPageCache {
	return &mockPageCache{pages: make(map[string]*domain.SearchPage)}
}

func pageKey(query string, page, perPage int) string {
	return fmt.Sprintf("%s|%d|%d", query, page, perPage)
}

func (m *mockPageCache) GetPage(_ context.Context, query string, page, perPage int, _ time.Duration) (*domain.SearchPage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gets++
	sp, ok := m.pages[pageKey(query, page, perPage)]
	return sp, ok, nil
}

func (m *mockPageCache) PutPage(_ context.Context, query string, page, perPage int, sp *domain.SearchPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++
	m.pages[pageKey(query, page, perPage)] = sp
	return nil
}

func (m *mockPageCache) PurgePages(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.pages)
	m.pages = make(map[string]*domain.SearchPage)
	return n, nil
}

// mockRunStore is a mock implementation of driven.RunStore.
type mockRunStore struct {
	mu      sync.Mutex
	records []domain.RunRecord
}

func (m *mockRunStore) RecordRun(_ context.Context, rec domain.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]domain.RunRecord, limit)
	copy(out, m.records[len(m.records)-limit:])
	return out, nil
}

func (m *mockRunStore) recorded() []domain.RunRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RunRecord, len(m.records))
	copy(out, m.records)
	return out
}
