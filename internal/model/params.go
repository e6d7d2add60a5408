package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Keys of the regulatory parameter table.
const (
	ParamHaircutLevel2A = "haircut_level2a"
	ParamHaircutLevel2B = "haircut_level2b"
	ParamLCRInflowCap   = "lcr_inflow_cap"

	// Present in the parameter table but not read by any computation.
	ParamASFFactorPrefix         = "asf_factor_"
	ParamRSFFactorPrefix         = "rsf_factor_"
	ParamEVETier1BreachRatio     = "eve_tier1_breach_ratio"
	ParamCapitalRequirementRatio = "capital_requirement_ratio"
)

// ErrInvalidParameter marks a parameter value that is not a number.
var ErrInvalidParameter = errors.New("model: invalid regulatory parameter")

// Parameters are the regulatory parameters threaded into each computation.
type Parameters struct {
	HaircutLevel2A decimal.Decimal `json:"haircut_level2a"`
	HaircutLevel2B decimal.Decimal `json:"haircut_level2b"`
	LCRInflowCap   decimal.Decimal `json:"lcr_inflow_cap"`
}

// DefaultParameters are the Basel III defaults: 15% / 50% haircuts and a
// 75% inflow cap.
func DefaultParameters() Parameters {
	return Parameters{
		HaircutLevel2A: decimal.NewFromFloat(0.15),
		HaircutLevel2B: decimal.NewFromFloat(0.5),
		LCRInflowCap:   decimal.NewFromFloat(0.75),
	}
}

// ParseParameters reads the string-encoded parameter table. Missing keys
// take their default. Malformed values also take their default and are
// reported in the returned error; the Parameters are usable either way.
func ParseParameters(raw map[string]string) (Parameters, error) {
	p := DefaultParameters()
	var errs []error
	for _, f := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{ParamHaircutLevel2A, &p.HaircutLevel2A},
		{ParamHaircutLevel2B, &p.HaircutLevel2B},
		{ParamLCRInflowCap, &p.LCRInflowCap},
	} {
		s, ok := raw[f.key]
		if !ok {
			continue
		}
		v, err := decimal.NewFromString(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, f.key, s))
			continue
		}
		*f.dst = v
	}
	return p, errors.Join(errs...)
}

// Haircut returns the HQLA haircut for a tier. Unknown tiers, including
// None, get a 100% haircut.
func (p Parameters) Haircut(t HQLAType) decimal.Decimal {
	switch t {
	case HQLALevel1:
		return decimal.Zero
	case HQLALevel2A:
		return p.HaircutLevel2A
	case HQLALevel2B:
		return p.HaircutLevel2B
	}
	return decimal.NewFromInt(1)
}
