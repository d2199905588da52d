package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search without downloading", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasMaxResultsFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("max-results")
	require.NotNil(t, flag, "max-results flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "1000", flag.DefValue)
}

func TestSearchCmd_ListsMatches(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	search.report = &domain.SearchReport{
		Matches: []domain.Match{
			{Owner: "alice", Repo: "proj", Path: "main.go", Revision: "0123456789abcdef0123"},
			{Owner: "bob", Repo: "lib", Path: "pkg/util.go", Revision: "fedcba9876543210fedc"},
		},
		TotalCount: 2,
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "test query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "alice/proj/main.go @ 0123456789ab")
	assert.Contains(t, buf.String(), "bob/lib/pkg/util.go @ fedcba987654")
	assert.Contains(t, buf.String(), "2 matches.")
}

func TestSearchCmd_NoMatches(t *testing.T) {
	_, _, _, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matches found.")
}

func TestSearchCmd_ReportsTruncation(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	search.report = &domain.SearchReport{
		Matches:    []domain.Match{{Owner: "a", Repo: "b", Path: "c.go", Revision: "abc"}},
		TotalCount: 5000,
		Truncated:  true,
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "popular"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "truncated: 1 of 5000")
}

func TestSearchCmd_JSON(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	search.report = &domain.SearchReport{
		Matches:    []domain.Match{{Owner: "alice", Repo: "proj", Path: "main.go", Revision: "abc"}},
		TotalCount: 1,
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "query", "--json"})
	defer func() {
		searchJSON = false
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Owner": "alice"`)
	assert.Contains(t, buf.String(), `"TotalCount": 1`)
}

func TestSearchCmd_ServiceError(t *testing.T) {
	search, _, _, cleanup := setupTestServices()
	defer cleanup()

	search.err = domain.ErrInvalidQuery

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "bad::query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	oldService := searchService
	searchService = nil
	defer func() { searchService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortRevision("0123456789abcdef"))
	assert.Equal(t, "abc", shortRevision("abc"))
}
