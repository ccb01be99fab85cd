// Package raster provides the in-memory grid model and GeoTIFF I/O for
// co-registered single-band raster layers.
package raster

import (
	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/floats"
)

// Grid is a dense 2D float64 raster, row-major, with fixed height and width.
type Grid struct {
	h, w int
	data []float64
}

// NewGrid allocates a zero-filled h×w grid.
func NewGrid(h, w int) (*Grid, error) {
	if h <= 0 || w <= 0 {
		return nil, eris.Errorf("raster: invalid grid shape %dx%d", h, w)
	}
	return &Grid{h: h, w: w, data: make([]float64, h*w)}, nil
}

// FromBuf wraps an existing row-major buffer as an h×w grid. The buffer is
// not copied; the grid takes ownership.
func FromBuf(h, w int, buf []float64) (*Grid, error) {
	if h <= 0 || w <= 0 {
		return nil, eris.Errorf("raster: invalid grid shape %dx%d", h, w)
	}
	if len(buf) != h*w {
		return nil, eris.Errorf("raster: buffer length %d does not match shape %dx%d", len(buf), h, w)
	}
	return &Grid{h: h, w: w, data: buf}, nil
}

// FromRows builds a grid from a slice of equal-length rows, copying values.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, eris.New("raster: empty rows")
	}
	h, w := len(rows), len(rows[0])
	g := &Grid{h: h, w: w, data: make([]float64, h*w)}
	for r, row := range rows {
		if len(row) != w {
			return nil, eris.Errorf("raster: ragged rows: row %d has %d cells, want %d", r, len(row), w)
		}
		copy(g.data[r*w:(r+1)*w], row)
	}
	return g, nil
}

// Shape returns (height, width).
func (g *Grid) Shape() (int, int) { return g.h, g.w }

// SameShape reports whether o has the same height and width as g.
func (g *Grid) SameShape(o *Grid) bool { return g.h == o.h && g.w == o.w }

// At returns the value at row r, column c.
func (g *Grid) At(r, c int) float64 { return g.data[r*g.w+c] }

// Set stores v at row r, column c.
func (g *Grid) Set(r, c int, v float64) { g.data[r*g.w+c] = v }

// Data returns the underlying row-major buffer. Callers must not resize it.
func (g *Grid) Data() []float64 { return g.data }

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.data))
	copy(data, g.data)
	return &Grid{h: g.h, w: g.w, data: data}
}

// Range returns the minimum and maximum cell values.
func (g *Grid) Range() (min, max float64) {
	return floats.Min(g.data), floats.Max(g.data)
}

// CountEqual returns the number of cells exactly equal to v.
func (g *Grid) CountEqual(v float64) int {
	var n int
	for _, x := range g.data {
		if x == v {
			n++
		}
	}
	return n
}
