package irrbb

import (
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// EVEBreachRatio is the supervisory outlier test: |ΔEVE| above 15% of
// Tier1 capital.
var EVEBreachRatio = decimal.NewFromFloat(0.15)

// DefaultSummaryShocks are used when the caller supplies none.
var DefaultSummaryShocks = []decimal.Decimal{decimal.NewFromInt(200), decimal.NewFromInt(-200)}

// Summary holds the headline IRRBB KPIs.
type Summary struct {
	Shocks         []decimal.Decimal `json:"shocks_bps"`
	TotalPV01      decimal.Decimal   `json:"total_pv01"`
	Tier1          decimal.Decimal   `json:"tier1"`
	MaxDeltaEVE    decimal.Decimal   `json:"max_delta_eve"`
	MaxDeltaEVEPct decimal.Decimal   `json:"max_delta_eve_pct_tier1"`
	EVEBreach      bool              `json:"eve_breach"`
	MaxDeltaNII    decimal.Decimal   `json:"max_delta_nii"`
}

// RiskSummary evaluates each candidate parallel shock and keeps the
// largest ΔEVE and ΔNII magnitudes. ΔEVE uses total PV01, ΔNII the
// repricing gap. A non-positive Tier1 gives a ratio of zero and no breach.
func RiskSummary(instruments []model.IRRBBInstrument, cashflows []model.Cashflow, tier1 decimal.Decimal, shocks []decimal.Decimal) Summary {
	if len(shocks) == 0 {
		shocks = DefaultSummaryShocks
	}
	total := TotalPV01(instruments)
	gaps := RepricingGap(cashflows)

	maxEVE, maxNII := decimal.Zero, decimal.Zero
	for _, s := range shocks {
		maxEVE = decimal.Max(maxEVE, Scaled(total, s).Abs())
		maxNII = decimal.Max(maxNII, DeltaNII(gaps, s).Abs())
	}

	pct := decimal.Zero
	if tier1.IsPositive() {
		pct = maxEVE.Div(tier1)
	}

	return Summary{
		Shocks:         append([]decimal.Decimal(nil), shocks...),
		TotalPV01:      total,
		Tier1:          tier1,
		MaxDeltaEVE:    maxEVE,
		MaxDeltaEVEPct: pct,
		EVEBreach:      pct.GreaterThan(EVEBreachRatio),
		MaxDeltaNII:    maxNII,
	}
}
