package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/shrijwal/f-t-landsuitability/internal/suitability"
)

// RulesWithOverrides applies configured threshold overrides onto the default
// rule set. Overrides are keyed by factor name, then bound name.
func RulesWithOverrides(overrides map[string]map[string]float64) (map[suitability.Factor]suitability.Rule, error) {
	rules := suitability.DefaultRules()

	for name, bounds := range overrides {
		factor, err := suitability.ParseFactor(name)
		if err != nil {
			return nil, err
		}
		rule := rules[factor]
		for bound, value := range bounds {
			switch bound {
			case "opt_min":
				rule.OptMin = value
			case "opt_max":
				rule.OptMax = value
			case "abs_min":
				rule.AbsMin = value
			case "abs_max":
				rule.AbsMax = value
			case "exclude_min":
				rule.ExcludeMin = value
			case "exclude_max":
				rule.ExcludeMax = value
			case "no_data":
				rule.NoData = value
			default:
				return nil, eris.Errorf("pipeline: unknown threshold %q for factor %s", bound, factor)
			}
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		rules[factor] = rule
	}
	return rules, nil
}
