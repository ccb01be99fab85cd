// Package mask restricts suitability outputs to an area of interest given as
// a polygon shapefile. Cells whose center falls outside the AOI are forced
// to the no-data value 0.
package mask

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
)

// Mask is a per-cell membership grid for one raster shape.
type Mask struct {
	h, w   int
	inside []bool
}

// Shape returns (height, width).
func (m *Mask) Shape() (int, int) { return m.h, m.w }

// Contains reports whether cell (r, c) lies inside the area of interest.
func (m *Mask) Contains(r, c int) bool { return m.inside[r*m.w+c] }

// InsideCount returns the number of cells inside the area of interest.
func (m *Mask) InsideCount() int {
	var n int
	for _, in := range m.inside {
		if in {
			n++
		}
	}
	return n
}

// FromRings rasterizes polygon rings (flat XY coordinate slices) onto an h×w
// grid georeferenced by meta. Membership follows the even-odd rule, so holes
// punch through their enclosing ring.
func FromRings(rings [][]float64, h, w int, meta raster.Metadata) (*Mask, error) {
	if h <= 0 || w <= 0 {
		return nil, eris.Errorf("mask: invalid shape %dx%d", h, w)
	}
	if len(rings) == 0 {
		return nil, eris.New("mask: no polygon rings")
	}

	m := &Mask{h: h, w: w, inside: make([]bool, h*w)}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			x, y := meta.CellCenter(r, c)
			pt := geom.Coord{x, y}
			var crossings int
			for _, ring := range rings {
				if xy.IsPointInRing(geom.XY, pt, ring) {
					crossings++
				}
			}
			m.inside[r*m.w+c] = crossings%2 == 1
		}
	}
	return m, nil
}

// FromShapefile reads every polygon record of a shapefile and rasterizes the
// union of their rings.
func FromShapefile(path string, h, w int, meta raster.Metadata) (*Mask, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "mask: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	var rings [][]float64
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		rings = append(rings, polygonRings(poly)...)
	}

	if skipped > 0 {
		zap.L().Debug("mask: skipped non-polygon shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	if len(rings) == 0 {
		return nil, eris.Errorf("mask: no polygon records in %s", path)
	}

	return FromRings(rings, h, w, meta)
}

// polygonRings splits a shapefile polygon into its parts as flat XY rings.
func polygonRings(poly *shp.Polygon) [][]float64 {
	rings := make([][]float64, 0, poly.NumParts)
	for i := int32(0); i < poly.NumParts; i++ {
		start := poly.Parts[i]
		end := poly.NumPoints
		if i+1 < poly.NumParts {
			end = poly.Parts[i+1]
		}
		ring := make([]float64, 0, 2*(end-start))
		for _, p := range poly.Points[start:end] {
			ring = append(ring, p.X, p.Y)
		}
		rings = append(rings, ring)
	}
	return rings
}

// Apply returns a copy of g with every cell outside the area of interest set
// to the no-data value 0.
func (m *Mask) Apply(g *raster.Grid) (*raster.Grid, error) {
	h, w := g.Shape()
	if h != m.h || w != m.w {
		return nil, eris.Errorf("mask: grid is %dx%d, mask is %dx%d", h, w, m.h, m.w)
	}
	out := g.Clone()
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			if !m.Contains(r, c) {
				out.Set(r, c, 0)
			}
		}
	}
	return out, nil
}
