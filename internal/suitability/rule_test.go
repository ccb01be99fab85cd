package suitability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules_AllFactorsValid(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, len(Factors))
	for _, f := range Factors {
		rule, ok := rules[f]
		require.True(t, ok, "missing rule for %s", f)
		assert.Equal(t, f, rule.Factor)
		assert.NoError(t, rule.Validate())
	}
}

func TestRuleValidate(t *testing.T) {
	base := DefaultRules()

	tests := []struct {
		name    string
		mutate  func(r Rule) Rule
		factor  Factor
		wantErr string
	}{
		{
			name:   "valid precipitation rule",
			factor: Precipitation,
			mutate: func(r Rule) Rule { return r },
		},
		{
			name:    "precipitation missing abs_max",
			factor:  Precipitation,
			mutate:  func(r Rule) Rule { r.AbsMax = Unset(); return r },
			wantErr: "abs_max must be set",
		},
		{
			name:    "inverted optimum envelope",
			factor:  Precipitation,
			mutate:  func(r Rule) Rule { r.OptMin, r.OptMax = 2000, 500; return r },
			wantErr: "opt_min must be <= opt_max",
		},
		{
			name:    "absolute envelope inside optimum",
			factor:  SoilPH,
			mutate:  func(r Rule) Rule { r.AbsMin = 5.5; return r },
			wantErr: "abs_min must be <= opt_min",
		},
		{
			name:    "tmax missing opt_max",
			factor:  MaxTemperature,
			mutate:  func(r Rule) Rule { r.OptMax = Unset(); return r },
			wantErr: "opt_max must be set",
		},
		{
			name:    "tmin missing abs_min",
			factor:  MinTemperature,
			mutate:  func(r Rule) Rule { r.AbsMin = Unset(); return r },
			wantErr: "abs_min must be set",
		},
		{
			name:    "aspect missing exclusion band",
			factor:  Aspect,
			mutate:  func(r Rule) Rule { r.ExcludeMin = Unset(); return r },
			wantErr: "exclude_min must be set",
		},
		{
			name:    "inverted exclusion band",
			factor:  Aspect,
			mutate:  func(r Rule) Rule { r.ExcludeMin, r.ExcludeMax = 202.5, 112.5; return r },
			wantErr: "exclude_min must be <= exclude_max",
		},
		{
			name:    "unknown factor",
			factor:  Precipitation,
			mutate:  func(r Rule) Rule { r.Factor = "wind"; return r },
			wantErr: "unknown factor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(base[tt.factor]).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseFactor(t *testing.T) {
	f, err := ParseFactor("precipitation")
	require.NoError(t, err)
	assert.Equal(t, Precipitation, f)

	_, err = ParseFactor("humidity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown factor "humidity"`)
}
