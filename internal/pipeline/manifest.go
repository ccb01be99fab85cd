package pipeline

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

// ManifestName is the file name of the run manifest written next to the
// output rasters.
const ManifestName = "manifest.yaml"

// Manifest documents what a run produced and under which thresholds.
type Manifest struct {
	RunID       string           `yaml:"run_id,omitempty"`
	Crop        string           `yaml:"crop"`
	GeneratedAt time.Time        `yaml:"generated_at"`
	Reference   string           `yaml:"reference"`
	AOI         string           `yaml:"aoi,omitempty"`
	Result      string           `yaml:"result"`
	Factors     []ManifestFactor `yaml:"factors"`
}

// ManifestFactor documents one classified layer.
type ManifestFactor struct {
	Factor          string             `yaml:"factor"`
	Input           string             `yaml:"input"`
	Output          string             `yaml:"output"`
	Thresholds      map[string]float64 `yaml:"thresholds"`
	SuitableCells   int                `yaml:"suitable_cells"`
	ModerateCells   int                `yaml:"moderate_cells"`
	UnsuitableCells int                `yaml:"unsuitable_cells"`
}

// writeManifest records the run parameters and outputs in the output dir.
func writeManifest(opts Options, res *Result) error {
	m := Manifest{
		RunID:       res.RunID,
		Crop:        opts.Crop,
		GeneratedAt: time.Now().UTC(),
		Reference:   opts.Reference,
		AOI:         opts.AOI,
		Result:      res.ResultPath,
	}

	for _, stat := range res.Layers {
		factor := suitability.Factor(stat.Factor)
		m.Factors = append(m.Factors, ManifestFactor{
			Factor:          stat.Factor,
			Input:           opts.Inputs[factor],
			Output:          stat.OutputPath,
			Thresholds:      thresholdMap(opts.Rules[factor]),
			SuitableCells:   stat.SuitableCells,
			ModerateCells:   stat.ModerateCells,
			UnsuitableCells: stat.UnsuitableCells,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return eris.Wrap(err, "pipeline: marshal manifest")
	}

	path := filepath.Join(opts.OutputDir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "pipeline: write manifest %s", path)
	}
	return nil
}

// thresholdMap lists only the bounds a rule actually sets.
func thresholdMap(rule suitability.Rule) map[string]float64 {
	out := make(map[string]float64)
	for name, v := range map[string]float64{
		"opt_min":     rule.OptMin,
		"opt_max":     rule.OptMax,
		"abs_min":     rule.AbsMin,
		"abs_max":     rule.AbsMax,
		"exclude_min": rule.ExcludeMin,
		"exclude_max": rule.ExcludeMax,
		"no_data":     rule.NoData,
	} {
		if !math.IsNaN(v) {
			out[name] = v
		}
	}
	return out
}
