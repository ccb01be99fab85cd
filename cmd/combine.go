package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

var combineCmd = &cobra.Command{
	Use:   "combine <layer.tif> [<layer.tif> ...]",
	Short: "Combine classified layers into one score map",
	Long:  "Overlays already-classified suitability layers: any layer scoring 0 at a cell vetoes it, every other cell gets the sum of its layer classes.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			return eris.New("combine: --out is required")
		}

		gt := raster.GeoTIFF{}
		grids := make([]*raster.Grid, 0, len(args))
		var meta raster.Metadata
		for i, path := range args {
			grid, m, err := gt.Read(path)
			if err != nil {
				return err
			}
			if i == 0 {
				meta = m
			}
			grids = append(grids, grid)
		}

		combined, err := suitability.Combine(grids)
		if err != nil {
			return err
		}

		if err := gt.Write(outPath, combined, meta); err != nil {
			return err
		}

		fmt.Printf("combined %d layers -> %s\n", len(args), outPath)
		return nil
	},
}

func init() {
	combineCmd.Flags().String("out", "", "output raster path")
	rootCmd.AddCommand(combineCmd)
}
