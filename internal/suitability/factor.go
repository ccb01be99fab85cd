// Package suitability implements three-tier threshold classification of
// raster layers and the veto-gated combination of per-factor results.
package suitability

import "github.com/rotisserie/eris"

// Class is the ordinal suitability score of one factor at one cell.
type Class uint8

// Suitability classes, least to most suitable.
const (
	NotSuitable        Class = 0
	ModeratelySuitable Class = 1
	Suitable           Class = 2
)

// Factor identifies one environmental input layer.
type Factor string

// Supported factors.
const (
	Precipitation  Factor = "precipitation"
	MaxTemperature Factor = "tmax"
	MinTemperature Factor = "tmin"
	Slope          Factor = "slope"
	Aspect         Factor = "aspect"
	SoilPH         Factor = "ph"
)

// Factors lists all supported factors in pipeline order.
var Factors = []Factor{Precipitation, MaxTemperature, MinTemperature, Slope, Aspect, SoilPH}

// ParseFactor resolves a user-supplied factor name.
func ParseFactor(s string) (Factor, error) {
	for _, f := range Factors {
		if string(f) == s {
			return f, nil
		}
	}
	return "", eris.Errorf("suitability: unknown factor %q", s)
}
