package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shrijwal/f-t-landsuitability/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded classification runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ledger, err := openLedger(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = ledger.Close() }()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := ledger.ListRuns(ctx, limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs recorded.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 20, "max number of runs to display")
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to out.
func formatRunsList(out io.Writer, runs []store.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCROP\tSTATUS\tSTARTED\tDURATION\tOUTPUT")
	_, _ = fmt.Fprintln(w, "--\t----\t------\t-------\t--------\t------")

	for _, r := range runs {
		dur := ""
		if r.DurationMs > 0 {
			dur = (time.Duration(r.DurationMs) * time.Millisecond).Round(time.Millisecond).String()
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateID(r.ID),
			r.Crop,
			r.Status,
			r.StartedAt.Format("2006-01-02 15:04"),
			dur,
			r.OutputDir,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
