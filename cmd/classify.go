package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrijwal/f-t-landsuitability/internal/pipeline"
	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/report"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <factor>",
	Short: "Classify a single factor raster",
	Long:  "Classifies one raster into suitability classes 0/1/2 using the factor's thresholds. Factors: " + factorNames() + ".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factor, err := suitability.ParseFactor(args[0])
		if err != nil {
			return err
		}

		rules, err := pipeline.RulesWithOverrides(cfg.Thresholds)
		if err != nil {
			return err
		}

		inPath, _ := cmd.Flags().GetString("in")
		if inPath == "" {
			inPath = cfg.Paths.Resolve(cfg.Paths.Inputs[string(factor)])
		}
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return eris.New("classify: --out is required")
		}

		gt := raster.GeoTIFF{}
		grid, meta, err := gt.Read(inPath)
		if err != nil {
			return err
		}

		classified, err := suitability.Classify(grid, rules[factor])
		if err != nil {
			return err
		}

		if err := gt.Write(outPath, classified, meta); err != nil {
			return err
		}

		stat := report.Summarize(factor, classified)
		zap.L().Info("factor classified",
			zap.String("factor", string(factor)),
			zap.String("input", inPath),
			zap.String("output", outPath),
			zap.Int("suitable_cells", stat.SuitableCells),
			zap.Int("moderate_cells", stat.ModerateCells),
			zap.Int("unsuitable_cells", stat.UnsuitableCells),
		)

		fmt.Printf("%s: %d suitable, %d moderate, %d not suitable -> %s\n",
			factor, stat.SuitableCells, stat.ModerateCells, stat.UnsuitableCells, outPath)
		return nil
	},
}

func init() {
	classifyCmd.Flags().String("in", "", "input raster (default: configured path for the factor)")
	classifyCmd.Flags().String("out", "", "output raster path")
	rootCmd.AddCommand(classifyCmd)
}
