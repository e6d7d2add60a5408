// Package capital computes capital adequacy ratios against risk-weighted
// assets, RWA breakdowns, the IRB output-floor check and the per-date
// capital series.
package capital

import (
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// Ratios holds the capital base and the three Basel III capital ratios.
type Ratios struct {
	RWA               decimal.Decimal `json:"rwa"`
	RWAShock          decimal.Decimal `json:"rwa_shock"` // fraction applied to RWA, 0 when unshocked
	CET1              decimal.Decimal `json:"cet1"`
	Tier1             decimal.Decimal `json:"tier1"`
	TotalCapital      decimal.Decimal `json:"total_capital"`
	CET1Ratio         model.Ratio     `json:"cet1_ratio"`
	Tier1Ratio        model.Ratio     `json:"tier1_ratio"`
	TotalCapitalRatio model.Ratio     `json:"total_capital_ratio"`
}

// TotalRWA sums amount × risk_weight over all exposures.
func TotalRWA(exposures []model.RWAExposure) decimal.Decimal {
	total := decimal.Zero
	for _, e := range exposures {
		total = total.Add(e.RWAAmount())
	}
	return total
}

// Amount sums the balance-sheet items carrying the given label.
func Amount(items []model.BalanceSheetItem, line model.BalanceSheetLine) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Item == line {
			total = total.Add(it.Amount)
		}
	}
	return total
}

// Compute returns CET1, Tier1 and Total Capital over total RWA. A total
// RWA of zero or less makes every ratio +Inf.
func Compute(exposures []model.RWAExposure, items []model.BalanceSheetItem) Ratios {
	return ComputeShocked(exposures, items, decimal.Zero)
}

// ComputeShocked is Compute with total RWA scaled by (1 + shock), e.g. a
// shock of 0.25 models a 25% RWA inflation after a downgrade.
func ComputeShocked(exposures []model.RWAExposure, items []model.BalanceSheetItem, shock decimal.Decimal) Ratios {
	rwa := TotalRWA(exposures).Mul(decimal.NewFromInt(1).Add(shock))
	return ratiosFor(rwa, shock,
		Amount(items, model.LineCET1),
		Amount(items, model.LineTier1),
		Amount(items, model.LineTotalCapital),
	)
}

func ratiosFor(rwa, shock, cet1, tier1, total decimal.Decimal) Ratios {
	return Ratios{
		RWA:               rwa,
		RWAShock:          shock,
		CET1:              cet1,
		Tier1:             tier1,
		TotalCapital:      total,
		CET1Ratio:         model.RatioOf(cet1, rwa),
		Tier1Ratio:        model.RatioOf(tier1, rwa),
		TotalCapitalRatio: model.RatioOf(total, rwa),
	}
}
