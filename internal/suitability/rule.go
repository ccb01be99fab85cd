package suitability

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Unset marks a threshold a factor does not use.
func Unset() float64 { return math.NaN() }

func isSet(v float64) bool { return !math.IsNaN(v) }

// Rule holds the classification thresholds for one factor.
//
// OptMin..OptMax is the inner envelope of full suitability and
// AbsMin..AbsMax the outer envelope beyond which the factor disqualifies a
// cell. Factors that do not use a bound leave it unset (NaN). Aspect uses
// ExcludeMin..ExcludeMax, a strictly-open angular band of disqualifying
// orientations, instead of the scalar envelopes.
type Rule struct {
	Factor Factor

	OptMin float64 `yaml:"opt_min"`
	OptMax float64 `yaml:"opt_max"`
	AbsMin float64 `yaml:"abs_min"`
	AbsMax float64 `yaml:"abs_max"`

	ExcludeMin float64 `yaml:"exclude_min"`
	ExcludeMax float64 `yaml:"exclude_max"`

	// NoData is an input sentinel classified as NotSuitable (soil pH uses
	// -999). Unset for factors without an input sentinel.
	NoData float64 `yaml:"no_data"`
}

// DefaultRules returns the avocado threshold set (ECOCROP-derived):
// precipitation in mm/year, temperatures in degC, slope and aspect in
// degrees, pH unitless.
func DefaultRules() map[Factor]Rule {
	return map[Factor]Rule{
		Precipitation: {
			Factor: Precipitation,
			OptMin: 500, OptMax: 2000,
			AbsMin: 300, AbsMax: 2500,
			ExcludeMin: Unset(), ExcludeMax: Unset(), NoData: Unset(),
		},
		MaxTemperature: {
			Factor: MaxTemperature,
			OptMin: Unset(), OptMax: 40,
			AbsMin: Unset(), AbsMax: 45,
			ExcludeMin: Unset(), ExcludeMax: Unset(), NoData: Unset(),
		},
		MinTemperature: {
			Factor: MinTemperature,
			OptMin: 14, OptMax: Unset(),
			AbsMin: 10, AbsMax: Unset(),
			ExcludeMin: Unset(), ExcludeMax: Unset(), NoData: Unset(),
		},
		Slope: {
			Factor: Slope,
			OptMin: Unset(), OptMax: 2,
			AbsMin: Unset(), AbsMax: 15,
			ExcludeMin: Unset(), ExcludeMax: Unset(), NoData: Unset(),
		},
		Aspect: {
			Factor: Aspect,
			OptMin: Unset(), OptMax: Unset(),
			AbsMin: Unset(), AbsMax: Unset(),
			// South and south-east orientations: (112.5, 202.5) exclusive.
			ExcludeMin: 112.5, ExcludeMax: 202.5,
			NoData: Unset(),
		},
		SoilPH: {
			Factor: SoilPH,
			OptMin: 5, OptMax: 5.8,
			AbsMin: 4.5, AbsMax: 7,
			ExcludeMin: Unset(), ExcludeMax: Unset(),
			NoData: -999,
		},
	}
}

// Validate checks that the rule carries every bound its factor's decision
// procedure reads, and that set envelopes nest correctly.
func (r Rule) Validate() error {
	var errs []string

	require := func(name string, v float64) {
		if !isSet(v) {
			errs = append(errs, name+" must be set")
		}
	}

	switch r.Factor {
	case Precipitation, SoilPH:
		require("opt_min", r.OptMin)
		require("opt_max", r.OptMax)
		require("abs_min", r.AbsMin)
		require("abs_max", r.AbsMax)
	case MaxTemperature, Slope:
		require("opt_max", r.OptMax)
		require("abs_max", r.AbsMax)
	case MinTemperature:
		require("opt_min", r.OptMin)
		require("abs_min", r.AbsMin)
	case Aspect:
		require("exclude_min", r.ExcludeMin)
		require("exclude_max", r.ExcludeMax)
	default:
		return eris.Errorf("suitability: unknown factor %q", r.Factor)
	}

	if isSet(r.OptMin) && isSet(r.OptMax) && r.OptMin > r.OptMax {
		errs = append(errs, "opt_min must be <= opt_max")
	}
	if isSet(r.AbsMin) && isSet(r.OptMin) && r.AbsMin > r.OptMin {
		errs = append(errs, "abs_min must be <= opt_min")
	}
	if isSet(r.AbsMax) && isSet(r.OptMax) && r.OptMax > r.AbsMax {
		errs = append(errs, "opt_max must be <= abs_max")
	}
	if isSet(r.ExcludeMin) && isSet(r.ExcludeMax) && r.ExcludeMin > r.ExcludeMax {
		errs = append(errs, "exclude_min must be <= exclude_max")
	}

	if len(errs) > 0 {
		return eris.Errorf("suitability: invalid %s rule: %s", r.Factor, strings.Join(errs, "; "))
	}
	return nil
}
