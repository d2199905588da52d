// Package cli provides the cobra command surface for fetcha.
// Commands talk to the core exclusively through driving ports; the
// composition root in cmd/fetcha wires concrete services in via the
// Set* functions before Execute runs.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fetcha-cli/internal/logger"
)

// Build metadata, set by the composition root from ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Services injected by the composition root.
var (
	searchService  driving.SearchService
	mirrorService  driving.MirrorService
	cacheService   driving.CacheService
	historyService driving.HistoryService
	tokenProvider  driven.TokenProvider
	configStore    driven.ConfigStore
)

// ErrPartialFailure marks a mirror run that completed but could not
// download every file. The caller maps it to a distinct exit code.
var ErrPartialFailure = errors.New("some files failed to download")

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "fetcha",
	Short: "Mirror GitHub code-search results to local disk",
	Long: `fetcha runs a code-search query against the GitHub search API and
downloads every matching file under {dest}/{owner}/{repo}/{path}.

Searches respect the API rate budget, paginate up to the 1000-result
ceiling, and deduplicate matches across pages. Downloaded files are
tracked in a durable cache keyed by content revision, so repeated runs
of the same query skip files that have not changed upstream.

A GitHub token is resolved from GITHUB_TOKEN, then GH_TOKEN, then the
config file (see 'fetcha auth').`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag || os.Getenv("FETCHA_DEBUG") != "" {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "enable verbose logging on stderr")
}

// SetVersionInfo records build metadata for the version command.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// SetSearchService wires the search-only service.
func SetSearchService(s driving.SearchService) {
	searchService = s
}

// SetMirrorService wires the search-to-download pipeline.
func SetMirrorService(s driving.MirrorService) {
	mirrorService = s
}

// SetCacheService wires cache inspection and purging.
func SetCacheService(s driving.CacheService) {
	cacheService = s
}

// SetHistoryService wires run-history listing.
func SetHistoryService(s driving.HistoryService) {
	historyService = s
}

// SetTokenProvider wires the credential chain used by 'auth show'.
func SetTokenProvider(p driven.TokenProvider) {
	tokenProvider = p
}

// SetConfigStore wires the config store used by 'auth' and for
// flag defaults.
func SetConfigStore(s driven.ConfigStore) {
	configStore = s
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
