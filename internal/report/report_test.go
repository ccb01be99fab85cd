package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/store"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

func testRun() *store.Run {
	return &store.Run{
		ID:     "run-1",
		Crop:   "avocado",
		Status: store.RunStatusComplete,
		Layers: []store.LayerStat{
			{Factor: "precipitation", SuitableCells: 60, ModerateCells: 25, UnsuitableCells: 15},
			{Factor: "slope", SuitableCells: 80, ModerateCells: 10, UnsuitableCells: 10},
		},
	}
}

func TestSummarize(t *testing.T) {
	g, err := raster.FromRows([][]float64{
		{0, 1, 2},
		{2, 2, 0},
	})
	require.NoError(t, err)

	stat := Summarize(suitability.Slope, g)
	assert.Equal(t, "slope", stat.Factor)
	assert.Equal(t, 3, stat.SuitableCells)
	assert.Equal(t, 1, stat.ModerateCells)
	assert.Equal(t, 2, stat.UnsuitableCells)
	assert.Equal(t, 6, stat.TotalCells())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, testRun()))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "avocado")
	assert.Contains(t, out, "precipitation")
	assert.Contains(t, out, "60.0")
	assert.Contains(t, out, "80.0")
	assert.NotContains(t, out, "error")
}

func TestWriteTable_FailedRun(t *testing.T) {
	run := testRun()
	run.Status = store.RunStatusFailed
	run.Error = "raster: open Tmax.tif"

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, run))
	assert.Contains(t, buf.String(), "raster: open Tmax.tif")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, testRun()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Suitability", sheet.Name)
	require.GreaterOrEqual(t, len(sheet.Rows), 3)
	assert.Equal(t, "Factor", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "precipitation", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "100", sheet.Rows[1].Cells[4].Value)
	assert.Equal(t, "slope", sheet.Rows[2].Cells[0].Value)
}
