package engine

import (
	"context"

	"github.com/baselworks/risk-engine/internal/capital"
	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/liquidity"
	"github.com/baselworks/risk-engine/internal/metrics"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/stress"
	"github.com/baselworks/risk-engine/internal/threshold"
)

// load fetches every record type for one filter.
func (e *Engine) load(ctx context.Context, f model.Filter) (stress.Data, error) {
	var data stress.Data
	var err error
	if data.Cashflows, err = e.cashflows(ctx, f); err != nil {
		return data, err
	}
	if data.Exposures, err = e.exposures(ctx, f); err != nil {
		return data, err
	}
	if data.Balance, err = e.balance(ctx, f); err != nil {
		return data, err
	}
	if data.Instruments, err = e.instruments(ctx, f.ScenarioID); err != nil {
		return data, err
	}
	if data.Params, err = e.params(ctx); err != nil {
		return data, err
	}
	return data, nil
}

// RunStressTest compares base metrics with their stressed counterparts.
// Invalid input is rejected with an error wrapping stress.ErrInvalidInput.
func (e *Engine) RunStressTest(ctx context.Context, in stress.Input) (stress.Result, error) {
	return run(e, "stress", in.ScenarioID, func() (stress.Result, error) {
		if err := in.Validate(); err != nil {
			return stress.Result{}, err
		}
		data, err := e.load(ctx, model.ForScenario(in.ScenarioID))
		if err != nil {
			return stress.Result{}, err
		}
		res := stress.Run(in, data)
		e.logger.Info("stress test run",
			"scenario", model.ScenarioLabel(in.ScenarioID),
			"shock_bps", in.ShockBps.String(),
			"lcr_base", res.Base.LCR.String(),
			"lcr_stressed", res.Stressed.LCR.String())
		return res, nil
	})
}

// Thresholds evaluates the current metrics against the regulatory display
// thresholds.
func (e *Engine) Thresholds(ctx context.Context, f model.Filter) ([]threshold.Check, error) {
	return run(e, "thresholds", f.ScenarioID, func() ([]threshold.Check, error) {
		data, err := e.load(ctx, f)
		if err != nil {
			return nil, err
		}

		lcr := liquidity.LCR(data.Cashflows, data.Params)
		nsfr := liquidity.NSFR(data.Cashflows)
		ratios := capital.Compute(data.Exposures, data.Balance)
		summary := irrbb.RiskSummary(data.Instruments, data.Cashflows, ratios.Tier1, nil)
		floor := capital.OutputFloor(data.Exposures)

		snap := threshold.Snapshot{
			threshold.MetricLCR:            lcr.LCR,
			threshold.MetricNSFR:           nsfr.NSFR,
			threshold.MetricCET1:           ratios.CET1Ratio,
			threshold.MetricCET1WithBuffer: ratios.CET1Ratio,
			threshold.MetricTier1:          ratios.Tier1Ratio,
			threshold.MetricTotalCapital:   ratios.TotalCapitalRatio,
			threshold.MetricIRBOverSTD:     model.RatioOf(floor.IRB, floor.STD),
		}
		if ratios.Tier1.IsPositive() {
			snap[threshold.MetricEVEOverTier1] = model.NewRatio(summary.MaxDeltaEVEPct)
		}

		checks := threshold.Evaluate(snap)
		for _, c := range threshold.Breaches(checks) {
			metrics.ThresholdBreaches.WithLabelValues(string(c.Metric)).Inc()
		}
		return checks, nil
	})
}
