package raster

import (
	"sync"

	"github.com/airbusgeo/godal"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var registerOnce sync.Once

// GeoTIFF reads and writes single-band GeoTIFF rasters through GDAL.
// The zero value is ready to use.
type GeoTIFF struct{}

func registerDrivers() {
	registerOnce.Do(godal.RegisterAll)
}

// Read opens a GeoTIFF and returns its first band as a grid together with
// the dataset's georeferencing metadata.
func (GeoTIFF) Read(path string) (*Grid, Metadata, error) {
	registerDrivers()

	ds, err := godal.Open(path)
	if err != nil {
		return nil, Metadata{}, eris.Wrapf(err, "raster: open %s", path)
	}
	defer func() { _ = ds.Close() }()

	st := ds.Structure()
	if st.NBands < 1 {
		return nil, Metadata{}, eris.Errorf("raster: %s has no bands", path)
	}
	band := ds.Bands()[0]

	buf := make([]float64, st.SizeX*st.SizeY)
	if err := band.Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
		return nil, Metadata{}, eris.Wrapf(err, "raster: read band from %s", path)
	}

	grid, err := FromBuf(st.SizeY, st.SizeX, buf)
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{Projection: ds.Projection()}
	if gt, gtErr := ds.GeoTransform(); gtErr == nil {
		meta.GeoTransform = gt
	}
	if nd, ok := band.NoData(); ok {
		meta.NoData = nd
		meta.HasNoData = true
	}

	zap.L().Debug("raster read",
		zap.String("path", path),
		zap.Int("height", st.SizeY),
		zap.Int("width", st.SizeX),
	)
	return grid, meta, nil
}

// Write persists a grid as a single-band Float32 GeoTIFF, copying the
// geotransform and projection from meta and fixing the band no-data value
// at 0.
func (GeoTIFF) Write(path string, g *Grid, meta Metadata) error {
	registerDrivers()

	h, w := g.Shape()
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, w, h)
	if err != nil {
		return eris.Wrapf(err, "raster: create %s", path)
	}

	if err := ds.SetGeoTransform(meta.GeoTransform); err != nil {
		_ = ds.Close()
		return eris.Wrapf(err, "raster: set geotransform on %s", path)
	}
	if meta.Projection != "" {
		if err := ds.SetProjection(meta.Projection); err != nil {
			_ = ds.Close()
			return eris.Wrapf(err, "raster: set projection on %s", path)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(0); err != nil {
		_ = ds.Close()
		return eris.Wrapf(err, "raster: set nodata on %s", path)
	}
	if err := band.Write(0, 0, g.Data(), w, h); err != nil {
		_ = ds.Close()
		return eris.Wrapf(err, "raster: write band to %s", path)
	}

	if err := ds.Close(); err != nil {
		return eris.Wrapf(err, "raster: close %s", path)
	}

	zap.L().Debug("raster written",
		zap.String("path", path),
		zap.Int("height", h),
		zap.Int("width", w),
	)
	return nil
}
