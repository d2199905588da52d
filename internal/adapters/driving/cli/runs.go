package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent mirror runs",
	Long: `Lists recent mirror runs, newest first, with their queries and
written/skipped/failed counts.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.Recent(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %s  %d written, %d skipped, %d failed  %q\n",
			rec.ID,
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Written, rec.Skipped, rec.Failed,
			rec.Query)
	}
	return nil
}
