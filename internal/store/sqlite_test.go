package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestCreateAndGetRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "avocado", "/data/Suitability")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "avocado", got.Crop)
	assert.Equal(t, "/data/Suitability", got.OutputDir)
	assert.Equal(t, RunStatusRunning, got.Status)
	assert.Empty(t, got.Layers)
}

func TestAddLayerAndFinishRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "avocado", "out")
	require.NoError(t, err)

	layers := []LayerStat{
		{Factor: "precipitation", OutputPath: "out/precip_suitability.tif", SuitableCells: 100, ModerateCells: 40, UnsuitableCells: 60},
		{Factor: "slope", OutputPath: "out/slope_suitability.tif", SuitableCells: 150, ModerateCells: 30, UnsuitableCells: 20},
	}
	for _, l := range layers {
		require.NoError(t, st.AddLayer(ctx, run.ID, l))
	}

	require.NoError(t, st.FinishRun(ctx, run.ID, RunStatusComplete, "", 1500*time.Millisecond))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusComplete, got.Status)
	assert.Equal(t, 1500, got.DurationMs)
	require.Len(t, got.Layers, 2)
	// Ordered by factor.
	assert.Equal(t, "precipitation", got.Layers[0].Factor)
	assert.Equal(t, 200, got.Layers[0].TotalCells())
	assert.Equal(t, "slope", got.Layers[1].Factor)
}

func TestFinishRun_Failed(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "avocado", "out")
	require.NoError(t, err)

	require.NoError(t, st.FinishRun(ctx, run.ID, RunStatusFailed, "raster: open Tmax.tif", time.Second))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "raster: open Tmax.tif", got.Error)
}

func TestFinishRun_UnknownID(t *testing.T) {
	st := newTestStore(t)
	err := st.FinishRun(context.Background(), "no-such-run", RunStatusComplete, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRuns_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateRun(ctx, "avocado", "out1")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond) // force distinct started_at seconds
	second, err := st.CreateRun(ctx, "mango", "out2")
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	limited, err := st.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "mango", limited[0].Crop)
}

func TestGetRun_Missing(t *testing.T) {
	st := newTestStore(t)
	_, err := st.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
