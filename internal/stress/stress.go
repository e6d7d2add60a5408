// Package stress composes the liquidity, capital and IRRBB sub-engines under
// a single set of shock parameters and reports base against stressed
// metrics.
package stress

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/capital"
	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/liquidity"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
)

// ErrInvalidInput is returned by Input.Validate.
var ErrInvalidInput = errors.New("stress: invalid input")

var one = decimal.NewFromInt(1)

// Input is the shock parameter set of one stress run.
type Input struct {
	ShockBps            decimal.Decimal `json:"shock_bps"`
	RetailWithdrawal    decimal.Decimal `json:"retail_withdrawal"`    // fraction of retail funding lost
	WholesaleWithdrawal decimal.Decimal `json:"wholesale_withdrawal"` // fraction of wholesale funding lost
	RWAStress           decimal.Decimal `json:"rwa_stress"`           // fractional RWA inflation
	ScenarioID          *int64          `json:"scenario_id,omitempty"`
}

// DefaultInput is +200bp, 20% retail and 40% wholesale outflow, +10% RWA.
func DefaultInput() Input {
	return Input{
		ShockBps:            decimal.NewFromInt(200),
		RetailWithdrawal:    decimal.NewFromFloat(0.2),
		WholesaleWithdrawal: decimal.NewFromFloat(0.4),
		RWAStress:           decimal.NewFromFloat(0.1),
	}
}

// Validate checks that the rate shock is within ±shock.MaxAbsBps, that
// withdrawals are fractions in [0, 1] and that RWA stress keeps RWA positive.
func (in Input) Validate() error {
	if in.ShockBps.Abs().GreaterThan(shock.MaxAbsBps) {
		return fmt.Errorf("%w: shock_bps %s exceeds ±%sbp", ErrInvalidInput, in.ShockBps, shock.MaxAbsBps)
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"retail_withdrawal", in.RetailWithdrawal},
		{"wholesale_withdrawal", in.WholesaleWithdrawal},
	} {
		if f.v.IsNegative() || f.v.GreaterThan(one) {
			return fmt.Errorf("%w: %s must be within [0, 1], got %s", ErrInvalidInput, f.name, f.v)
		}
	}
	if !in.RWAStress.GreaterThan(one.Neg()) {
		return fmt.Errorf("%w: rwa_stress must be greater than -1, got %s", ErrInvalidInput, in.RWAStress)
	}
	return nil
}

// Metrics is one side of the comparison.
type Metrics struct {
	LCR        model.Ratio     `json:"lcr"`
	NSFR       model.Ratio     `json:"nsfr"`
	CET1Ratio  model.Ratio     `json:"cet1_ratio"`
	Tier1Ratio model.Ratio     `json:"tier1_ratio"`
	DeltaEVE   decimal.Decimal `json:"delta_eve"`
	DeltaNII   decimal.Decimal `json:"delta_nii"`
}

// Result is the base/stressed comparison.
type Result struct {
	Input    Input   `json:"input"`
	Base     Metrics `json:"base"`
	Stressed Metrics `json:"stressed"`
}

// Data is the snapshot a stress run reads.
type Data struct {
	Cashflows   []model.Cashflow
	Exposures   []model.RWAExposure
	Balance     []model.BalanceSheetItem
	Instruments []model.IRRBBInstrument
	Params      model.Parameters
}

// Baseline computes the unstressed metrics: LCR from the latest date of the
// LCR series, aggregate NSFR, unshocked capital ratios, parallel-shock ΔEVE
// and repricing-gap ΔNII.
func Baseline(in Input, data Data) Metrics {
	series := liquidity.LCRSeries(data.Cashflows, data.Params, liquidity.SeriesHQLA(in.ScenarioID))
	ratios := capital.Compute(data.Exposures, data.Balance)
	return Metrics{
		LCR:        liquidity.LatestLCR(series),
		NSFR:       liquidity.NSFR(data.Cashflows).NSFR,
		CET1Ratio:  ratios.CET1Ratio,
		Tier1Ratio: ratios.Tier1Ratio,
		DeltaEVE:   irrbb.EVESensitivity(data.Instruments, in.ShockBps).DeltaEVE,
		DeltaNII:   irrbb.NIISensitivity(data.Cashflows, in.ShockBps).DeltaNII,
	}
}

// Apply derives the stressed metrics from a baseline:
//
//	LCR   × (1 − retail − wholesale/2)
//	NSFR  × (1 − wholesale)
//	CET1, Tier1 / (1 + rwa_stress)
//
// Stressed LCR is not floored and can go negative. ΔEVE and ΔNII carry
// over unchanged since the rate shock is already the stressed one.
func Apply(in Input, base Metrics) Result {
	lcrFactor := one.Sub(in.RetailWithdrawal).Sub(in.WholesaleWithdrawal.Div(decimal.NewFromInt(2)))
	nsfrFactor := one.Sub(in.WholesaleWithdrawal)
	rwaFactor := one.Add(in.RWAStress)

	return Result{
		Input: in,
		Base:  base,
		Stressed: Metrics{
			LCR:        base.LCR.Mul(lcrFactor),
			NSFR:       base.NSFR.Mul(nsfrFactor),
			CET1Ratio:  base.CET1Ratio.Quo(rwaFactor),
			Tier1Ratio: base.Tier1Ratio.Quo(rwaFactor),
			DeltaEVE:   base.DeltaEVE,
			DeltaNII:   base.DeltaNII,
		},
	}
}

// Run computes the baseline from data and applies the stress.
func Run(in Input, data Data) Result {
	return Apply(in, Baseline(in, data))
}
