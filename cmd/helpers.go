package main

import (
	"context"

	"github.com/shrijwal/f-t-landsuitability/internal/config"
	"github.com/shrijwal/f-t-landsuitability/internal/pipeline"
	"github.com/shrijwal/f-t-landsuitability/internal/store"
	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

// openLedger opens and migrates the run ledger configured in store.path.
func openLedger(ctx context.Context, cfg *config.Config) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// pipelineOptions assembles run options from configuration.
func pipelineOptions(cfg *config.Config) (pipeline.Options, error) {
	rules, err := pipeline.RulesWithOverrides(cfg.Thresholds)
	if err != nil {
		return pipeline.Options{}, err
	}

	inputs := make(map[suitability.Factor]string, len(cfg.Paths.Inputs))
	for name, path := range cfg.Paths.Inputs {
		factor, err := suitability.ParseFactor(name)
		if err != nil {
			return pipeline.Options{}, err
		}
		inputs[factor] = cfg.Paths.Resolve(path)
	}

	return pipeline.Options{
		Crop:        cfg.Pipeline.Crop,
		Reference:   cfg.Paths.Resolve(cfg.Paths.Reference),
		Inputs:      inputs,
		OutputDir:   cfg.Paths.Resolve(cfg.Paths.OutputDir),
		Concurrency: cfg.Pipeline.Concurrency,
		AOI:         cfg.Paths.Resolve(cfg.Paths.AOI),
		Rules:       rules,
	}, nil
}
