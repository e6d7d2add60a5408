package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/capital"
	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/model"
)

// PV01Profile sums PV01 per tenor bucket.
func (e *Engine) PV01Profile(ctx context.Context, scenarioID *int64) ([]irrbb.BucketPV01, error) {
	return run(e, "pv01_profile", scenarioID, func() ([]irrbb.BucketPV01, error) {
		instr, err := e.instruments(ctx, scenarioID)
		if err != nil {
			return nil, err
		}
		return irrbb.PV01Profile(instr), nil
	})
}

// EVESensitivity computes ΔEVE under a parallel shock.
func (e *Engine) EVESensitivity(ctx context.Context, scenarioID *int64, shockBps decimal.Decimal) (irrbb.EVEResult, error) {
	return run(e, "eve_sensitivity", scenarioID, func() (irrbb.EVEResult, error) {
		instr, err := e.instruments(ctx, scenarioID)
		if err != nil {
			return irrbb.EVEResult{}, err
		}
		return irrbb.EVESensitivity(instr, shockBps), nil
	})
}

// NIISensitivity computes ΔNII under a parallel shock from the repricing
// gap of the cashflows.
func (e *Engine) NIISensitivity(ctx context.Context, f model.Filter, shockBps decimal.Decimal) (irrbb.NIIResult, error) {
	return run(e, "nii_sensitivity", f.ScenarioID, func() (irrbb.NIIResult, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return irrbb.NIIResult{}, err
		}
		return irrbb.NIISensitivity(cfs, shockBps), nil
	})
}

// EBAScenariosEVE computes ΔEVE under the six EBA shock scenarios.
func (e *Engine) EBAScenariosEVE(ctx context.Context, scenarioID *int64) ([]irrbb.ScenarioImpact, error) {
	return run(e, "eba_eve", scenarioID, func() ([]irrbb.ScenarioImpact, error) {
		instr, err := e.instruments(ctx, scenarioID)
		if err != nil {
			return nil, err
		}
		return irrbb.EBAScenariosEVE(instr), nil
	})
}

// EBAScenariosNII computes short-end ΔNII under the six EBA scenarios.
func (e *Engine) EBAScenariosNII(ctx context.Context, scenarioID *int64) ([]irrbb.ScenarioImpact, error) {
	return run(e, "eba_nii", scenarioID, func() ([]irrbb.ScenarioImpact, error) {
		instr, err := e.instruments(ctx, scenarioID)
		if err != nil {
			return nil, err
		}
		return irrbb.EBAScenariosNII(instr), nil
	})
}

// CustomShock applies a caller-supplied per-bucket curve.
func (e *Engine) CustomShock(ctx context.Context, scenarioID *int64, curve irrbb.Curve) (irrbb.CustomResult, error) {
	return run(e, "custom_shock", scenarioID, func() (irrbb.CustomResult, error) {
		instr, err := e.instruments(ctx, scenarioID)
		if err != nil {
			return irrbb.CustomResult{}, err
		}
		return irrbb.CustomShock(instr, curve), nil
	})
}

// RiskSummary reports total PV01 and the worst ΔEVE and ΔNII over the
// candidate parallel shocks. An empty list means ±200bp.
func (e *Engine) RiskSummary(ctx context.Context, scenarioID *int64, shocks []decimal.Decimal) (irrbb.Summary, error) {
	return run(e, "irrbb_summary", scenarioID, func() (irrbb.Summary, error) {
		return e.riskSummary(ctx, model.ForScenario(scenarioID), shocks)
	})
}

func (e *Engine) riskSummary(ctx context.Context, f model.Filter, shocks []decimal.Decimal) (irrbb.Summary, error) {
	instr, err := e.instruments(ctx, f.ScenarioID)
	if err != nil {
		return irrbb.Summary{}, err
	}
	cfs, err := e.cashflows(ctx, f)
	if err != nil {
		return irrbb.Summary{}, err
	}
	items, err := e.balance(ctx, f)
	if err != nil {
		return irrbb.Summary{}, err
	}
	return irrbb.RiskSummary(instr, cfs, capital.Amount(items, model.LineTier1), shocks), nil
}
