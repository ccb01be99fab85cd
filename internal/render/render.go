// Package render draws classification and combined score grids as PNG heat
// maps for visual inspection.
package render

import (
	"image/color"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
)

// Suitability class colors: not suitable, moderate, suitable.
var classColors = []color.Color{
	color.RGBA{R: 0x77, G: 0x88, B: 0x99, A: 0xff}, // light slate grey
	color.RGBA{R: 0xff, G: 0x7f, B: 0x50, A: 0xff}, // coral
	color.RGBA{R: 0x22, G: 0x8b, B: 0x22, A: 0xff}, // forest green
}

type classPalette struct{}

func (classPalette) Colors() []color.Color { return classColors }

// gridXYZ adapts a raster grid to the plotter heat map interface. Row 0 of
// the raster is the northernmost row, so the y axis is flipped.
type gridXYZ struct {
	g *raster.Grid
}

func (d gridXYZ) Dims() (int, int) {
	h, w := d.g.Shape()
	return w, h
}

func (d gridXYZ) Z(c, r int) float64 {
	h, _ := d.g.Shape()
	return d.g.At(h-1-r, c)
}

func (d gridXYZ) X(c int) float64 { return float64(c) }
func (d gridXYZ) Y(r int) float64 { return float64(r) }

// ClassMap renders a three-class suitability grid to a PNG using the fixed
// class palette.
func ClassMap(g *raster.Grid, title, path string) error {
	hm := plotter.NewHeatMap(gridXYZ{g: g}, classPalette{})
	hm.Min = 0
	hm.Max = 2
	return save(hm, title, path)
}

// ScoreMap renders a combined score grid to a PNG with a continuous heat
// palette scaled to the grid's value range.
func ScoreMap(g *raster.Grid, title, path string) error {
	hm := plotter.NewHeatMap(gridXYZ{g: g}, palette.Heat(12, 1))
	min, max := g.Range()
	hm.Min = min
	hm.Max = max
	return save(hm, title, path)
}

func save(hm *plotter.HeatMap, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return eris.Wrapf(err, "render: save %s", path)
	}
	return nil
}
