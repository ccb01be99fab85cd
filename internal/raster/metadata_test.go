package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// North-up geotransform: origin (-10, 36), 0.01 degree pixels.
var testGT = [6]float64{-10, 0.01, 0, 36, 0, -0.01}

func TestMetadata_Pixel(t *testing.T) {
	m := Metadata{GeoTransform: testGT}

	x, y := m.Pixel(0, 0)
	assert.Equal(t, -10.0, x)
	assert.Equal(t, 36.0, y)

	x, y = m.Pixel(100, 200)
	assert.InDelta(t, -8.0, x, 1e-9)
	assert.InDelta(t, 35.0, y, 1e-9)
}

func TestMetadata_CellCenter(t *testing.T) {
	m := Metadata{GeoTransform: testGT}
	x, y := m.CellCenter(0, 0)
	assert.InDelta(t, -9.995, x, 1e-9)
	assert.InDelta(t, 35.995, y, 1e-9)
}

func TestMetadata_Bounds(t *testing.T) {
	m := Metadata{GeoTransform: testGT}
	b := m.Bounds(100, 200)

	assert.InDelta(t, -10.0, b.Min(0), 1e-9)
	assert.InDelta(t, -8.0, b.Max(0), 1e-9)
	assert.InDelta(t, 35.0, b.Min(1), 1e-9)
	assert.InDelta(t, 36.0, b.Max(1), 1e-9)
}
