package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <raster.tif>",
	Short: "Render a raster as a PNG heat map",
	Long:  "Renders a classified layer (three-class palette) or a combined score map (continuous palette) as a PNG for inspection.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath := args[0]
		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".png"
		}
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = filepath.Base(inPath)
		}

		grid, _, err := raster.GeoTIFF{}.Read(inPath)
		if err != nil {
			return err
		}

		classes, _ := cmd.Flags().GetBool("classes")
		if classes {
			_, max := grid.Range()
			if max > 2 {
				return eris.Errorf("render: %s holds values above 2, not a class layer", inPath)
			}
			err = render.ClassMap(grid, title, outPath)
		} else {
			err = render.ScoreMap(grid, title, outPath)
		}
		if err != nil {
			return err
		}

		fmt.Printf("rendered %s -> %s\n", inPath, outPath)
		return nil
	},
}

func init() {
	renderCmd.Flags().String("out", "", "output PNG path (default: input path with .png extension)")
	renderCmd.Flags().String("title", "", "plot title (default: input file name)")
	renderCmd.Flags().Bool("classes", false, "use the fixed three-class palette")
	rootCmd.AddCommand(renderCmd)
}
