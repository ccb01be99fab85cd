package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shrijwal/f-t-landsuitability/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [run-id]",
	Short: "Summarize a recorded run",
	Long:  "Prints the per-factor class summary of a run from the ledger; defaults to the most recent run. Optionally exports the summary as an xlsx workbook.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ledger, err := openLedger(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = ledger.Close() }()

		var runID string
		if len(args) == 1 {
			runID = args[0]
		} else {
			runs, err := ledger.ListRuns(ctx, 1)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return eris.New("report: no recorded runs")
			}
			runID = runs[0].ID
		}

		run, err := ledger.GetRun(ctx, runID)
		if err != nil {
			return err
		}

		if err := report.WriteTable(os.Stdout, run); err != nil {
			return err
		}

		if xlsxPath, _ := cmd.Flags().GetString("xlsx"); xlsxPath != "" {
			if err := report.WriteXLSX(xlsxPath, run); err != nil {
				return err
			}
			fmt.Printf("report written to %s\n", xlsxPath)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("xlsx", "", "also export the summary as an xlsx workbook")
	rootCmd.AddCommand(reportCmd)
}
