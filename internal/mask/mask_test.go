package mask

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
)

// Unit geotransform: cell (r, c) has its center at (c+0.5, -(r+0.5)) with a
// north-up negative y pixel height, matching GDAL conventions.
var unitMeta = raster.Metadata{GeoTransform: [6]float64{0, 1, 0, 0, 0, -1}}

func square(minX, minY, maxX, maxY float64) []float64 {
	return []float64{
		minX, minY,
		maxX, minY,
		maxX, maxY,
		minX, maxY,
		minX, minY,
	}
}

func TestFromRings_Membership(t *testing.T) {
	// Square covering the left 2x2 block of a 2x4 grid.
	m, err := FromRings([][]float64{square(0, -2, 2, 0)}, 2, 4, unitMeta)
	require.NoError(t, err)

	assert.True(t, m.Contains(0, 0))
	assert.True(t, m.Contains(1, 1))
	assert.False(t, m.Contains(0, 2))
	assert.False(t, m.Contains(1, 3))
	assert.Equal(t, 4, m.InsideCount())
}

func TestFromRings_HolePunchesThrough(t *testing.T) {
	outer := square(0, -4, 4, 0)
	hole := square(1, -3, 3, -1)
	m, err := FromRings([][]float64{outer, hole}, 4, 4, unitMeta)
	require.NoError(t, err)

	assert.True(t, m.Contains(0, 0), "corner inside outer ring only")
	assert.False(t, m.Contains(1, 1), "center excluded by hole")
	assert.False(t, m.Contains(2, 2), "center excluded by hole")
	assert.Equal(t, 12, m.InsideCount())
}

func TestFromRings_Errors(t *testing.T) {
	_, err := FromRings(nil, 2, 2, unitMeta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no polygon rings")

	_, err = FromRings([][]float64{square(0, 0, 1, 1)}, 0, 2, unitMeta)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	g, err := raster.FromRows([][]float64{
		{5, 5, 5, 5},
		{5, 5, 5, 5},
	})
	require.NoError(t, err)

	m, err := FromRings([][]float64{square(0, -2, 2, 0)}, 2, 4, unitMeta)
	require.NoError(t, err)

	out, err := m.Apply(g)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 5, 0, 0, 5, 5, 0, 0}, out.Data())
	// Input untouched.
	assert.Equal(t, 5.0, g.At(0, 3))
}

func TestApply_ShapeMismatch(t *testing.T) {
	g, err := raster.NewGrid(3, 3)
	require.NoError(t, err)
	m, err := FromRings([][]float64{square(0, -2, 2, 0)}, 2, 4, unitMeta)
	require.NoError(t, err)

	_, err = m.Apply(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3x3")
}

func TestFromShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoi.shp")

	writer, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	poly := &shp.Polygon{
		Box:       shp.Box{MinX: 0, MinY: -2, MaxX: 2, MaxY: 0},
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: -2},
		},
	}
	writer.Write(poly)
	writer.Close()

	m, err := FromShapefile(path, 2, 4, unitMeta)
	require.NoError(t, err)
	assert.Equal(t, 4, m.InsideCount())
	assert.True(t, m.Contains(1, 0))
	assert.False(t, m.Contains(1, 3))
}

func TestFromShapefile_MissingFile(t *testing.T) {
	_, err := FromShapefile(filepath.Join(t.TempDir(), "absent.shp"), 2, 2, unitMeta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open shapefile")
}
