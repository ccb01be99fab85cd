package suitability

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
)

// Classify maps every cell of g to a suitability class under rule. The input
// grid is never mutated; the returned grid has the same shape and holds only
// values 0, 1 or 2.
//
// Each cell is decided in a single pass against its original value. The
// sequential reclassification of the naive approach (overwriting a working
// copy band by band, so later comparisons see class labels instead of
// measurements) cannot occur here.
func Classify(g *raster.Grid, rule Rule) (*raster.Grid, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	h, w := g.Shape()
	out, err := raster.NewGrid(h, w)
	if err != nil {
		return nil, err
	}

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			v := g.At(r, c)
			class, err := classifyCell(v, rule)
			if err != nil {
				return nil, eris.Wrapf(err, "suitability: cell (%d,%d)", r, c)
			}
			out.Set(r, c, float64(class))
		}
	}

	zap.L().Debug("layer classified",
		zap.String("factor", string(rule.Factor)),
		zap.Int("height", h),
		zap.Int("width", w),
	)
	return out, nil
}

// classifyCell decides the class of one original cell value. The branch
// operators are factor-specific and deliberately asymmetric at the
// boundaries; see the per-factor decision tables in the rule documentation.
func classifyCell(v float64, rule Rule) (Class, error) {
	switch rule.Factor {
	case Precipitation:
		switch {
		case v < rule.AbsMin || v >= rule.AbsMax:
			return NotSuitable, nil
		case v >= rule.OptMin && v <= rule.OptMax:
			return Suitable, nil
		case (v >= rule.AbsMin && v < rule.OptMin) || (v > rule.OptMax && v < rule.AbsMax):
			return ModeratelySuitable, nil
		}

	case MaxTemperature:
		switch {
		case v >= rule.AbsMax:
			return NotSuitable, nil
		case v >= rule.OptMax:
			return ModeratelySuitable, nil
		case v < rule.OptMax:
			return Suitable, nil
		}

	case MinTemperature:
		switch {
		case v < rule.AbsMin:
			return NotSuitable, nil
		case v < rule.OptMin:
			return ModeratelySuitable, nil
		case v >= rule.OptMin:
			return Suitable, nil
		}

	case Slope:
		switch {
		case v >= rule.AbsMax:
			return NotSuitable, nil
		case v > rule.OptMax:
			return ModeratelySuitable, nil
		case v <= rule.OptMax:
			return Suitable, nil
		}

	case Aspect:
		// The exclusion band is strictly open: exact boundary angles and
		// the -1 flat-terrain sentinel both classify as suitable.
		if v > rule.ExcludeMin && v < rule.ExcludeMax {
			return NotSuitable, nil
		}
		return Suitable, nil

	case SoilPH:
		switch {
		case isSet(rule.NoData) && v == rule.NoData:
			return NotSuitable, nil
		case v < rule.AbsMin || v >= rule.AbsMax:
			return NotSuitable, nil
		case v < rule.OptMin:
			return ModeratelySuitable, nil
		case v < rule.OptMax:
			return Suitable, nil
		case v < rule.AbsMax:
			return ModeratelySuitable, nil
		}

	default:
		return NotSuitable, eris.Errorf("suitability: unknown factor %q", rule.Factor)
	}

	// Unreachable with the shipped rules, whose bands cover the whole real
	// line. A custom rule with holes (e.g. NaN cells) lands here.
	return NotSuitable, eris.Errorf("suitability: %s value %g matches no classification band", rule.Factor, v)
}
