package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the durable caches",
	Long: `Inspect or clear the download cache and the search-page cache.

The download cache records the revision each mirrored file was written
at, so unchanged files are skipped on later runs. The page cache holds
recent search responses for the configured TTL.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List download-cache entries",
	RunE:  runCacheList,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove all cache entries and cached search pages",
	RunE:  runCachePurge,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errors.New("cache service not configured")
	}

	entries, err := cacheService.Entries(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("Cache is empty.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%s @ %s -> %s\n", e.Key(), shortRevision(e.Revision), e.LocalPath)
	}
	cmd.Printf("\n%d entries.\n", len(entries))
	return nil
}

func runCachePurge(cmd *cobra.Command, _ []string) error {
	if cacheService == nil {
		return errors.New("cache service not configured")
	}

	blobs, pages, err := cacheService.Purge(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d cache entries and %d cached search pages.\n", blobs, pages)
	return nil
}
