package engine

import (
	"context"

	"github.com/baselworks/risk-engine/internal/liquidity"
	"github.com/baselworks/risk-engine/internal/model"
)

// LCR computes the aggregate Liquidity Coverage Ratio.
func (e *Engine) LCR(ctx context.Context, f model.Filter) (liquidity.LCRResult, error) {
	return run(e, "lcr", f.ScenarioID, func() (liquidity.LCRResult, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return liquidity.LCRResult{}, err
		}
		p, err := e.params(ctx)
		if err != nil {
			return liquidity.LCRResult{}, err
		}
		res := liquidity.LCR(cfs, p)
		e.record("lcr", f.ScenarioID, res.LCR)
		return res, nil
	})
}

// NSFR computes the aggregate Net Stable Funding Ratio.
func (e *Engine) NSFR(ctx context.Context, f model.Filter) (liquidity.NSFRResult, error) {
	return run(e, "nsfr", f.ScenarioID, func() (liquidity.NSFRResult, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return liquidity.NSFRResult{}, err
		}
		res := liquidity.NSFR(cfs)
		e.record("nsfr", f.ScenarioID, res.NSFR)
		return res, nil
	})
}

// CashflowGapHeatmap computes net capped cashflows per maturity bucket and
// date.
func (e *Engine) CashflowGapHeatmap(ctx context.Context, f model.Filter) (liquidity.Heatmap, error) {
	return run(e, "heatmap", f.ScenarioID, func() (liquidity.Heatmap, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return liquidity.Heatmap{}, err
		}
		p, err := e.params(ctx)
		if err != nil {
			return liquidity.Heatmap{}, err
		}
		return liquidity.CashflowGapHeatmap(cfs, p), nil
	})
}

// LCRSeries computes the LCR per date against the scenario's fixed HQLA
// stock.
func (e *Engine) LCRSeries(ctx context.Context, f model.Filter) ([]liquidity.LCRPoint, error) {
	return run(e, "lcr_series", f.ScenarioID, func() ([]liquidity.LCRPoint, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return nil, err
		}
		p, err := e.params(ctx)
		if err != nil {
			return nil, err
		}
		return liquidity.LCRSeries(cfs, p, liquidity.SeriesHQLA(f.ScenarioID)), nil
	})
}

// NSFRSeries computes the NSFR per date.
func (e *Engine) NSFRSeries(ctx context.Context, f model.Filter) ([]liquidity.NSFRPoint, error) {
	return run(e, "nsfr_series", f.ScenarioID, func() ([]liquidity.NSFRPoint, error) {
		cfs, err := e.cashflows(ctx, f)
		if err != nil {
			return nil, err
		}
		return liquidity.NSFRSeries(cfs), nil
	})
}
