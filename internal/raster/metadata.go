package raster

import (
	"github.com/twpayne/go-geom"
)

// Metadata carries the georeferencing of a raster: the GDAL-style affine
// geotransform, the projection WKT, and the band no-data value if one is set.
type Metadata struct {
	GeoTransform [6]float64
	Projection   string
	NoData       float64
	HasNoData    bool
}

// Pixel maps a (row, col) pixel corner to georeferenced (x, y).
func (m Metadata) Pixel(r, c float64) (x, y float64) {
	gt := m.GeoTransform
	x = gt[0] + c*gt[1] + r*gt[2]
	y = gt[3] + c*gt[4] + r*gt[5]
	return x, y
}

// CellCenter maps a (row, col) cell index to the georeferenced coordinates
// of the cell's center.
func (m Metadata) CellCenter(r, c int) (x, y float64) {
	return m.Pixel(float64(r)+0.5, float64(c)+0.5)
}

// Bounds returns the georeferenced extent of an h×w raster with this
// geotransform.
func (m Metadata) Bounds(h, w int) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, corner := range [][2]float64{{0, 0}, {0, float64(w)}, {float64(h), 0}, {float64(h), float64(w)}} {
		x, y := m.Pixel(corner[0], corner[1])
		b.Extend(geom.NewPointFlat(geom.XY, []float64{x, y}))
	}
	return b
}
