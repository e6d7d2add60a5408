package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/capital"
	"github.com/baselworks/risk-engine/internal/model"
)

// CapitalRatios computes CET1, Tier1 and Total Capital ratios.
func (e *Engine) CapitalRatios(ctx context.Context, f model.Filter) (capital.Ratios, error) {
	return e.CapitalRatiosUnderShock(ctx, f, decimal.Zero)
}

// CapitalRatiosUnderShock computes the capital ratios with total RWA
// scaled by (1 + shock).
func (e *Engine) CapitalRatiosUnderShock(ctx context.Context, f model.Filter, shock decimal.Decimal) (capital.Ratios, error) {
	return run(e, "capital_ratios", f.ScenarioID, func() (capital.Ratios, error) {
		exps, err := e.exposures(ctx, f)
		if err != nil {
			return capital.Ratios{}, err
		}
		items, err := e.balance(ctx, f)
		if err != nil {
			return capital.Ratios{}, err
		}
		res := capital.ComputeShocked(exps, items, shock)
		if shock.IsZero() {
			e.record("cet1", f.ScenarioID, res.CET1Ratio)
			e.record("tier1", f.ScenarioID, res.Tier1Ratio)
			e.record("total_capital", f.ScenarioID, res.TotalCapitalRatio)
		}
		return res, nil
	})
}

// RWABreakdown groups RWA by approach and asset class.
func (e *Engine) RWABreakdown(ctx context.Context, f model.Filter) ([]capital.RWAGroup, error) {
	return run(e, "rwa_breakdown", f.ScenarioID, func() ([]capital.RWAGroup, error) {
		exps, err := e.exposures(ctx, f)
		if err != nil {
			return nil, err
		}
		return capital.Breakdown(exps), nil
	})
}

// RWAByApproach totals RWA per approach.
func (e *Engine) RWAByApproach(ctx context.Context, f model.Filter) ([]capital.ApproachTotal, error) {
	return run(e, "rwa_by_approach", f.ScenarioID, func() ([]capital.ApproachTotal, error) {
		exps, err := e.exposures(ctx, f)
		if err != nil {
			return nil, err
		}
		return capital.ByApproach(exps), nil
	})
}

// OutputFloor checks IRB RWA against 72.5% of STD RWA.
func (e *Engine) OutputFloor(ctx context.Context, f model.Filter) (capital.FloorCheck, error) {
	return run(e, "output_floor", f.ScenarioID, func() (capital.FloorCheck, error) {
		exps, err := e.exposures(ctx, f)
		if err != nil {
			return capital.FloorCheck{}, err
		}
		return capital.OutputFloor(exps), nil
	})
}

// CapitalSeries computes the capital ratios per reporting date.
func (e *Engine) CapitalSeries(ctx context.Context, f model.Filter) ([]capital.SeriesPoint, error) {
	return run(e, "capital_series", f.ScenarioID, func() ([]capital.SeriesPoint, error) {
		exps, err := e.exposures(ctx, f)
		if err != nil {
			return nil, err
		}
		items, err := e.balance(ctx, f)
		if err != nil {
			return nil, err
		}
		return capital.Series(exps, items), nil
	})
}
