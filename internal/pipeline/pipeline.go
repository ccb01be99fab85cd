// Package pipeline orchestrates one classification run: read each factor
// raster, classify it, persist the per-factor layer, then combine all layers
// into the final suitability map.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shrijwal/f-t-landsuitability/internal/mask"
	"github.com/shrijwal/f-t-landsuitability/internal/raster"
	"github.com/shrijwal/f-t-landsuitability/internal/report"
	"github.com/shrijwal/f-t-landsuitability/internal/store"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

// Source reads a georeferenced raster into a grid.
type Source interface {
	Read(path string) (*raster.Grid, raster.Metadata, error)
}

// Sink persists a grid as a georeferenced raster.
type Sink interface {
	Write(path string, g *raster.Grid, meta raster.Metadata) error
}

// Ledger records run history. A nil ledger disables recording.
type Ledger interface {
	CreateRun(ctx context.Context, crop, outputDir string) (*store.Run, error)
	AddLayer(ctx context.Context, runID string, layer store.LayerStat) error
	FinishRun(ctx context.Context, runID string, status store.RunStatus, errMsg string, duration time.Duration) error
}

// Options configures one run.
type Options struct {
	Crop        string
	Reference   string
	Inputs      map[suitability.Factor]string
	OutputDir   string
	Concurrency int
	AOI         string
	Rules       map[suitability.Factor]suitability.Rule
}

// Result carries the grids produced by a run so callers can render or
// inspect them without re-reading the output files.
type Result struct {
	RunID      string
	Meta       raster.Metadata
	Classified map[suitability.Factor]*raster.Grid
	Combined   *raster.Grid
	Layers     []store.LayerStat
	ResultPath string
}

// Pipeline wires a raster source, a raster sink and an optional run ledger.
type Pipeline struct {
	source Source
	sink   Sink
	ledger Ledger
}

// New builds a pipeline.
func New(source Source, sink Sink, ledger Ledger) *Pipeline {
	return &Pipeline{source: source, sink: sink, ledger: ledger}
}

// OutputName returns the file name of a factor's classified layer.
func OutputName(f suitability.Factor) string {
	if f == suitability.Precipitation {
		return "precip_suitability.tif"
	}
	return fmt.Sprintf("%s_suitability.tif", f)
}

// ResultName is the file name of the combined suitability map.
const ResultName = "result.tif"

// Run executes the full pipeline. Every factor layer is classified and
// written before combination; any factor failure aborts the run without
// producing a combined map.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Inputs) == 0 {
		return nil, eris.New("pipeline: no input rasters configured")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.Rules == nil {
		opts.Rules = suitability.DefaultRules()
	}

	log := zap.L().With(
		zap.String("component", "pipeline"),
		zap.String("crop", opts.Crop),
	)
	start := time.Now()

	var runID string
	if p.ledger != nil {
		run, err := p.ledger.CreateRun(ctx, opts.Crop, opts.OutputDir)
		if err != nil {
			return nil, err
		}
		runID = run.ID
	}

	res, err := p.run(ctx, runID, opts, log)
	if p.ledger != nil {
		status, errMsg := store.RunStatusComplete, ""
		if err != nil {
			status, errMsg = store.RunStatusFailed, err.Error()
		}
		if ferr := p.ledger.FinishRun(ctx, runID, status, errMsg, time.Since(start)); ferr != nil {
			log.Warn("failed to record run outcome", zap.Error(ferr))
		}
	}
	if err != nil {
		return nil, err
	}

	log.Info("run complete",
		zap.String("run_id", runID),
		zap.String("result", res.ResultPath),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, runID string, opts Options, log *zap.Logger) (*Result, error) {
	// The reference raster supplies the expected shape and the
	// georeferencing copied onto every output.
	refGrid, meta, err := p.source.Read(opts.Reference)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: read reference raster")
	}
	refH, refW := refGrid.Shape()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "pipeline: create output dir %s", opts.OutputDir)
	}

	// Pre-validate factors and rules before any work.
	factors := make([]suitability.Factor, 0, len(opts.Inputs))
	for _, f := range suitability.Factors {
		if _, ok := opts.Inputs[f]; !ok {
			continue
		}
		rule, ok := opts.Rules[f]
		if !ok {
			return nil, eris.Errorf("pipeline: no threshold rule for factor %s", f)
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	if len(factors) != len(opts.Inputs) {
		for f := range opts.Inputs {
			if _, err := suitability.ParseFactor(string(f)); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{
		RunID:      runID,
		Meta:       meta,
		Classified: make(map[suitability.Factor]*raster.Grid, len(factors)),
	}

	// Each factor is independent: classify in parallel, one output file
	// per factor.
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, factor := range factors {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			in, _, err := p.source.Read(opts.Inputs[factor])
			if err != nil {
				return eris.Wrapf(err, "pipeline: read %s raster", factor)
			}
			h, w := in.Shape()
			if h != refH || w != refW {
				return eris.Errorf("pipeline: %s raster is %dx%d, reference is %dx%d", factor, h, w, refH, refW)
			}

			classified, err := suitability.Classify(in, opts.Rules[factor])
			if err != nil {
				return err
			}

			outPath := filepath.Join(opts.OutputDir, OutputName(factor))
			if err := p.sink.Write(outPath, classified, meta); err != nil {
				return err
			}

			stat := report.Summarize(factor, classified)
			stat.OutputPath = outPath

			mu.Lock()
			res.Classified[factor] = classified
			res.Layers = append(res.Layers, stat)
			mu.Unlock()

			log.Info("factor classified",
				zap.String("factor", string(factor)),
				zap.String("output", outPath),
				zap.Int("suitable_cells", stat.SuitableCells),
				zap.Int("moderate_cells", stat.ModerateCells),
				zap.Int("unsuitable_cells", stat.UnsuitableCells),
			)

			if p.ledger != nil {
				if err := p.ledger.AddLayer(gCtx, runID, stat); err != nil {
					log.Warn("failed to record layer", zap.String("factor", string(factor)), zap.Error(err))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Combine in canonical factor order.
	grids := make([]*raster.Grid, 0, len(factors))
	for _, f := range factors {
		grids = append(grids, res.Classified[f])
	}
	combined, err := suitability.Combine(grids)
	if err != nil {
		return nil, err
	}

	if opts.AOI != "" {
		m, err := mask.FromShapefile(opts.AOI, refH, refW, meta)
		if err != nil {
			return nil, err
		}
		combined, err = m.Apply(combined)
		if err != nil {
			return nil, err
		}
		log.Info("AOI mask applied",
			zap.String("aoi", opts.AOI),
			zap.Int("cells_inside", m.InsideCount()),
		)
	}
	res.Combined = combined

	res.ResultPath = filepath.Join(opts.OutputDir, ResultName)
	if err := p.sink.Write(res.ResultPath, combined, meta); err != nil {
		return nil, err
	}

	if err := writeManifest(opts, res); err != nil {
		return nil, err
	}
	return res, nil
}
