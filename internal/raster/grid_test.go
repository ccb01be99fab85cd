package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(2, 3)
	require.NoError(t, err)
	h, w := g.Shape()
	assert.Equal(t, 2, h)
	assert.Equal(t, 3, w)
	assert.Equal(t, make([]float64, 6), g.Data())

	_, err = NewGrid(0, 3)
	assert.Error(t, err)
	_, err = NewGrid(2, -1)
	assert.Error(t, err)
}

func TestFromBuf(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6}
	g, err := FromBuf(2, 3, buf)
	require.NoError(t, err)
	assert.Equal(t, 3.0, g.At(0, 2))
	assert.Equal(t, 4.0, g.At(1, 0))

	_, err = FromBuf(2, 3, []float64{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match shape")
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, g.Data())

	_, err = FromRows(nil)
	assert.Error(t, err)

	_, err = FromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ragged rows")
}

func TestGrid_SetAt(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	g.Set(1, 0, 7.5)
	assert.Equal(t, 7.5, g.At(1, 0))
	assert.Equal(t, 0.0, g.At(0, 0))
}

func TestGrid_SameShape(t *testing.T) {
	a, err := NewGrid(2, 3)
	require.NoError(t, err)
	b, err := NewGrid(2, 3)
	require.NoError(t, err)
	c, err := NewGrid(3, 2)
	require.NoError(t, err)

	assert.True(t, a.SameShape(b))
	assert.False(t, a.SameShape(c))
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g, err := FromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	cl := g.Clone()
	cl.Set(0, 0, 99)
	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, 99.0, cl.At(0, 0))
}

func TestGrid_Range(t *testing.T) {
	g, err := FromRows([][]float64{{3, -1}, {7, 2}})
	require.NoError(t, err)
	min, max := g.Range()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 7.0, max)
}

func TestGrid_CountEqual(t *testing.T) {
	g, err := FromRows([][]float64{{0, 1, 2}, {2, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, g.CountEqual(0))
	assert.Equal(t, 2, g.CountEqual(2))
	assert.Equal(t, 0, g.CountEqual(5))
}
