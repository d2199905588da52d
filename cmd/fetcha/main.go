// Package main is the entry point for the fetcha CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/fetcha-cli/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/fetcha-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fetcha-cli/internal/adapters/driven/github"
	"github.com/custodia-labs/fetcha-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fetcha-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/fetcha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fetcha-cli/internal/core/services"
)

// Build metadata, set at build time via ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Exit codes: 0 full success, 1 fatal error, 2 partial failure (the
// run completed but some files could not be downloaded).
const (
	exitOK      = 0
	exitFatal   = 1
	exitPartial = 2
)

// defaultPageTTL is how long cached search pages stay fresh when the
// config does not say otherwise.
const defaultPageTTL = time.Hour

func main() {
	os.Exit(run())
}

func run() int {
	// Best-effort .env so GITHUB_TOKEN can live next to the project.
	_ = godotenv.Load()

	cli.SetVersionInfo(version, commit, date)

	home, err := fetchaHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetcha: %v\n", err)
		return exitFatal
	}

	config, err := configfile.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetcha: load config: %v\n", err)
		return exitFatal
	}
	cli.SetConfigStore(config)

	provider := auth.NewDefaultChain(config)
	cli.SetTokenProvider(provider)
	client := github.NewClient(provider)

	dataDir := config.GetString("cache.dir")
	if dataDir == "" {
		dataDir = filepath.Join(home, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetcha: open cache store: %v\n", err)
		return exitFatal
	}
	defer store.Close()

	aggregator := services.NewAggregator(client)
	aggregator.SetPageCache(store.PageCache(), pageTTL(config))

	downloader := services.NewDownloader(client, store.BlobCache())

	mirror := services.NewMirror(aggregator, downloader)
	mirror.SetRunStore(store.Runs())
	cli.SetMirrorService(mirror)

	cli.SetSearchService(services.NewSearcher(aggregator))

	manager := services.NewCacheManager(store.BlobCache(), store.PageCache(), store.Runs())
	cli.SetCacheService(manager)
	cli.SetHistoryService(manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch err := cli.Execute(ctx); {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrPartialFailure):
		return exitPartial
	default:
		return exitFatal
	}
}

// fetchaHome returns the config and cache home directory:
// $FETCHA_HOME when set, ~/.fetcha otherwise.
func fetchaHome() (string, error) {
	if dir := os.Getenv("FETCHA_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fetcha"), nil
}

// pageTTL reads cache.page_ttl_seconds from the config. Zero or a
// negative value disables the search-page cache.
func pageTTL(config driven.ConfigStore) time.Duration {
	if _, ok := config.Get("cache.page_ttl_seconds"); !ok {
		return defaultPageTTL
	}
	return time.Duration(config.GetInt("cache.page_ttl_seconds")) * time.Second
}
