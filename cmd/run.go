package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrijwal/f-t-landsuitability/internal/pipeline"
	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/render"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify every factor and build the combined suitability map",
	Long:  "Reads each configured factor raster, classifies it against the crop thresholds, writes the per-factor layers and the veto-gated combined result.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts, err := pipelineOptions(cfg)
		if err != nil {
			return err
		}
		if aoi, _ := cmd.Flags().GetString("aoi"); aoi != "" {
			opts.AOI = aoi
		}
		if crop, _ := cmd.Flags().GetString("crop"); crop != "" {
			opts.Crop = crop
		}

		ledger, err := openLedger(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = ledger.Close() }()

		zap.L().Info("starting suitability run",
			zap.String("crop", opts.Crop),
			zap.String("output_dir", opts.OutputDir),
		)

		res, err := pipeline.New(raster.GeoTIFF{}, raster.GeoTIFF{}, ledger).Run(ctx, opts)
		if err != nil {
			return eris.Wrap(err, "run")
		}

		doRender, _ := cmd.Flags().GetBool("render")
		if doRender || cfg.Render.Enabled {
			if err := renderResult(cfg.Paths.Resolve(cfg.Render.OutDir), res); err != nil {
				return err
			}
		}

		fmt.Printf("run %s complete: %s\n", res.RunID, res.ResultPath)
		return nil
	},
}

// renderResult writes PNG previews for every classified layer and the
// combined map.
func renderResult(outDir string, res *pipeline.Result) error {
	for factor, grid := range res.Classified {
		name := strings.TrimSuffix(pipeline.OutputName(factor), ".tif") + ".png"
		title := fmt.Sprintf("Suitability classes: %s", factor)
		if err := render.ClassMap(grid, title, filepath.Join(outDir, name)); err != nil {
			return err
		}
	}
	return render.ScoreMap(res.Combined, "Combined suitability", filepath.Join(outDir, "result.png"))
}

func init() {
	runCmd.Flags().String("aoi", "", "polygon shapefile restricting the combined map to an area of interest")
	runCmd.Flags().String("crop", "", "crop name recorded with the run (default from config)")
	runCmd.Flags().Bool("render", false, "also write PNG previews of every layer")
	rootCmd.AddCommand(runCmd)
}

// factorNames lists the supported factor arguments for help texts.
func factorNames() string {
	names := make([]string, len(suitability.Factors))
	for i, f := range suitability.Factors {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
