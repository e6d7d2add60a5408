package liquidity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// LCRPoint is one date of the LCR series.
type LCRPoint struct {
	Date          time.Time       `json:"date"`
	Inflows       decimal.Decimal `json:"inflows"`
	Outflows      decimal.Decimal `json:"outflows"`
	CappedInflows decimal.Decimal `json:"capped_inflows"`
	NetOutflows   decimal.Decimal `json:"net_outflows"`
	LCR           model.Ratio     `json:"lcr"`
	NetCashflow   decimal.Decimal `json:"net_cashflow"` // inflows − outflows, uncapped
}

// NSFRPoint is one date of the NSFR series.
type NSFRPoint struct {
	Date time.Time       `json:"date"`
	ASF  decimal.Decimal `json:"asf"`
	RSF  decimal.Decimal `json:"rsf"`
	NSFR model.Ratio     `json:"nsfr"`
}

// seriesHQLA is the HQLA stock assumed by the LCR series for each scenario.
// It is a fixed figure per scenario, not derived from the cashflows.
// TODO: replace with per-date haircut-adjusted HQLA once the stock is
// reported per reporting date.
var seriesHQLA = map[int64]decimal.Decimal{
	1: decimal.NewFromInt(80_000_000), // ECB stress (outflow spike)
	2: decimal.NewFromInt(60_000_000), // liquidity shock (wholesale freeze)
	3: decimal.NewFromInt(70_000_000), // interest rate shock
}

var (
	baselineSeriesHQLA = decimal.NewFromInt(1_000_000_000)
	fallbackSeriesHQLA = decimal.NewFromInt(100_000_000)
)

// SeriesHQLA returns the fixed HQLA stock used by LCRSeries. A nil
// scenario is the baseline; unknown scenarios use a fallback stock.
func SeriesHQLA(scenarioID *int64) decimal.Decimal {
	if scenarioID == nil {
		return baselineSeriesHQLA
	}
	if v, ok := seriesHQLA[*scenarioID]; ok {
		return v
	}
	return fallbackSeriesHQLA
}

// LCRSeries computes the LCR per calendar date against a fixed HQLA stock,
// using the same inflow cap and zero-denominator rule as LCR.
func LCRSeries(cashflows []model.Cashflow, p model.Parameters, hqla decimal.Decimal) []LCRPoint {
	dates, days := byDate(cashflows)
	points := make([]LCRPoint, 0, len(dates))
	for _, d := range dates {
		df := days[d]
		capped := CapInflows(df.inflows, df.outflows, p.LCRInflowCap)
		net := df.outflows.Sub(capped)
		points = append(points, LCRPoint{
			Date:          d,
			Inflows:       df.inflows,
			Outflows:      df.outflows,
			CappedInflows: capped,
			NetOutflows:   net,
			LCR:           model.RatioOf(hqla, net),
			NetCashflow:   df.inflows.Sub(df.outflows),
		})
	}
	return points
}

// NSFRSeries computes ASF / RSF per calendar date.
func NSFRSeries(cashflows []model.Cashflow) []NSFRPoint {
	dates, days := byDate(cashflows)
	points := make([]NSFRPoint, 0, len(dates))
	for _, d := range dates {
		df := days[d]
		points = append(points, NSFRPoint{
			Date: d,
			ASF:  df.asf,
			RSF:  df.rsf,
			NSFR: model.RatioOf(df.asf, df.rsf),
		})
	}
	return points
}

// LatestLCR returns the LCR of the most recent date. An empty series has no
// net outflows and so reports +Inf.
func LatestLCR(points []LCRPoint) model.Ratio {
	if len(points) == 0 {
		return model.Inf()
	}
	return points[len(points)-1].LCR
}
