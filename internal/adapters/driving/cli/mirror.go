package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

var (
	mirrorDest        string
	mirrorConcurrency int
	mirrorMaxResults  int
	mirrorRefresh     bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror [query]",
	Short: "Search and download every matching file",
	Long: `Runs a code search and downloads every matching file under
{dest}/{owner}/{repo}/{path}.

Result pages are fetched up to the API's 1000-result ceiling and
matches are deduplicated across pages. A file already present in the
download cache at its current revision is skipped without a network
call; a changed revision is re-downloaded.

Individual download failures do not abort the run. They are reported
at the end and the process exits with a distinct status so scripts can
tell a partial mirror from a complete one.

Examples:
  fetcha mirror "lang:go net/http"
  fetcha mirror "jwt parse" --dest ./mirror --concurrency 8
  fetcha mirror "language:python repo:psf/requests" -n 50`,
	Args: cobra.ExactArgs(1),
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().StringVarP(
		&mirrorDest, "dest", "d", ".", "destination root directory")
	mirrorCmd.Flags().IntVarP(
		&mirrorConcurrency, "concurrency", "j", domain.DefaultConcurrency, "download worker count")
	mirrorCmd.Flags().IntVarP(
		&mirrorMaxResults, "max-results", "n", domain.ResultCeiling, "maximum matches to download")
	mirrorCmd.Flags().BoolVar(
		&mirrorRefresh, "refresh", false, "bypass cached search pages")
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	if mirrorService == nil {
		return errors.New("mirror service not configured")
	}

	opts := domain.MirrorOptions{
		Search: domain.SearchOptions{
			MaxResults:   mirrorMaxResults,
			RefreshPages: mirrorRefresh,
		},
		DestRoot:    mirrorDest,
		Concurrency: mirrorConcurrency,
	}
	applyMirrorConfig(cmd, &opts)

	summary, err := mirrorService.Run(cmd.Context(), args[0], opts)
	if summary != nil {
		printSummary(cmd, summary)
	}
	if err != nil {
		return err
	}
	if !summary.Success() {
		return ErrPartialFailure
	}
	return nil
}

// applyMirrorConfig fills in config-file defaults for flags the user
// did not set on the command line.
func applyMirrorConfig(cmd *cobra.Command, opts *domain.MirrorOptions) {
	if configStore == nil {
		return
	}
	if !cmd.Flags().Changed("dest") {
		if v := configStore.GetString("mirror.dest"); v != "" {
			opts.DestRoot = v
		}
	}
	if !cmd.Flags().Changed("concurrency") {
		if v := configStore.GetInt("mirror.concurrency"); v > 0 {
			opts.Concurrency = v
		}
	}
	if !cmd.Flags().Changed("max-results") {
		if v := configStore.GetInt("mirror.max_results"); v > 0 {
			opts.Search.MaxResults = v
		}
	}
}

func printSummary(cmd *cobra.Command, s *domain.Summary) {
	for _, f := range s.Failed {
		cmd.PrintErrf("failed: %s: %v\n", f.Match.Key(), f.Reason)
	}
	if s.Truncated {
		cmd.Printf("Result set truncated: %d of %d total matches retrievable.\n",
			s.Matched, s.TotalCount)
	}
	cmd.Printf("%d written, %d skipped, %d failed\n",
		s.Written, s.Skipped, len(s.Failed))
}
