package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

var (
	searchMaxResults int
	searchRefresh    bool
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search without downloading",
	Long: `Runs a code search and lists the matching files without
downloading anything. Each match is printed as owner/repo/path with
its content revision.

Uses the same pagination, deduplication, and search-page cache as
'fetcha mirror', so a search followed by a mirror of the same query
costs no extra search requests within the cache TTL.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(
		&searchMaxResults, "max-results", "n", domain.ResultCeiling, "maximum matches to list")
	searchCmd.Flags().BoolVar(
		&searchRefresh, "refresh", false, "bypass cached search pages")
	searchCmd.Flags().BoolVar(
		&searchJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		MaxResults:   searchMaxResults,
		RefreshPages: searchRefresh,
	}
	report, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputReportJSON(cmd, report)
	}
	return outputReportText(cmd, report)
}

func outputReportJSON(cmd *cobra.Command, report *domain.SearchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReportText(cmd *cobra.Command, report *domain.SearchReport) error {
	if len(report.Matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	for _, m := range report.Matches {
		cmd.Printf("%s @ %s\n", m.Key(), shortRevision(m.Revision))
	}
	cmd.Println()
	if report.Truncated {
		cmd.Printf("Result set truncated: %d of %d total matches retrievable.\n",
			len(report.Matches), report.TotalCount)
	} else {
		cmd.Printf("%d matches.\n", len(report.Matches))
	}
	return nil
}

// shortRevision abbreviates a blob SHA for display.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
