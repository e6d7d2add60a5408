// Package liquidity computes the Basel III liquidity metrics: the Liquidity
// Coverage Ratio, the Net Stable Funding Ratio, the cashflow-gap heatmap and
// their per-date series.
//
// Every function is pure: it reads the records it is given and the
// parameters threaded in by the caller, and nothing else.
package liquidity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// LCRResult carries the LCR and the quantities it is built from.
type LCRResult struct {
	HQLA          decimal.Decimal `json:"hqla"` // post-haircut
	Outflows      decimal.Decimal `json:"outflows"`
	Inflows       decimal.Decimal `json:"inflows"`
	CappedInflows decimal.Decimal `json:"capped_inflows"`
	NetOutflows   decimal.Decimal `json:"net_outflows"`
	LCR           model.Ratio     `json:"lcr"`
}

// NSFRResult carries the NSFR with its ASF/RSF breakdown by product.
type NSFRResult struct {
	ASF           decimal.Decimal            `json:"asf"`
	RSF           decimal.Decimal            `json:"rsf"`
	NSFR          model.Ratio                `json:"nsfr"`
	ASFComponents map[string]decimal.Decimal `json:"asf_components"`
	RSFComponents map[string]decimal.Decimal `json:"rsf_components"`
}

// AdjustedHQLA sums amount × (1 − haircut) over HQLA-eligible cashflows.
func AdjustedHQLA(cashflows []model.Cashflow, p model.Parameters) decimal.Decimal {
	one := decimal.NewFromInt(1)
	total := decimal.Zero
	for _, cf := range cashflows {
		if !cf.HQLAType.Eligible() {
			continue
		}
		total = total.Add(cf.Amount.Mul(one.Sub(p.Haircut(cf.HQLAType))))
	}
	return total
}

// CapInflows limits inflows to outflows × cap.
func CapInflows(inflows, outflows, cap decimal.Decimal) decimal.Decimal {
	return decimal.Min(inflows, outflows.Mul(cap))
}

// LCR computes HQLA / (outflows − capped inflows) over the whole horizon.
// Net outflows of zero or less give +Inf.
func LCR(cashflows []model.Cashflow, p model.Parameters) LCRResult {
	inflows, outflows := totals(cashflows)
	capped := CapInflows(inflows, outflows, p.LCRInflowCap)
	net := outflows.Sub(capped)
	hqla := AdjustedHQLA(cashflows, p)

	return LCRResult{
		HQLA:          hqla,
		Outflows:      outflows,
		Inflows:       inflows,
		CappedInflows: capped,
		NetOutflows:   net,
		LCR:           model.RatioOf(hqla, net),
	}
}

// NSFR computes ASF / RSF. ASF is amount × asf_factor over inflows and RSF
// is amount × rsf_factor over outflows, both also grouped by product.
func NSFR(cashflows []model.Cashflow) NSFRResult {
	res := NSFRResult{
		ASF:           decimal.Zero,
		RSF:           decimal.Zero,
		ASFComponents: make(map[string]decimal.Decimal),
		RSFComponents: make(map[string]decimal.Decimal),
	}
	for _, cf := range cashflows {
		switch cf.Direction {
		case model.DirectionInflow:
			asf := cf.Amount.Mul(cf.ASFFactor)
			res.ASF = res.ASF.Add(asf)
			res.ASFComponents[cf.Product] = res.ASFComponents[cf.Product].Add(asf)
		case model.DirectionOutflow:
			rsf := cf.Amount.Mul(cf.RSFFactor)
			res.RSF = res.RSF.Add(rsf)
			res.RSFComponents[cf.Product] = res.RSFComponents[cf.Product].Add(rsf)
		}
	}
	res.NSFR = model.RatioOf(res.ASF, res.RSF)
	return res
}

func totals(cashflows []model.Cashflow) (inflows, outflows decimal.Decimal) {
	for _, cf := range cashflows {
		switch cf.Direction {
		case model.DirectionInflow:
			inflows = inflows.Add(cf.Amount)
		case model.DirectionOutflow:
			outflows = outflows.Add(cf.Amount)
		}
	}
	return inflows, outflows
}

// dayFlows aggregates one calendar date.
type dayFlows struct {
	inflows  decimal.Decimal
	outflows decimal.Decimal
	asf      decimal.Decimal
	rsf      decimal.Decimal
}

// byDate groups cashflows by calendar date and returns the dates ascending.
func byDate(cashflows []model.Cashflow) ([]time.Time, map[time.Time]*dayFlows) {
	days := make(map[time.Time]*dayFlows)
	for _, cf := range cashflows {
		key := model.CalendarDate(cf.Date)
		df, ok := days[key]
		if !ok {
			df = &dayFlows{}
			days[key] = df
		}
		switch cf.Direction {
		case model.DirectionInflow:
			df.inflows = df.inflows.Add(cf.Amount)
			df.asf = df.asf.Add(cf.Amount.Mul(cf.ASFFactor))
		case model.DirectionOutflow:
			df.outflows = df.outflows.Add(cf.Amount)
			df.rsf = df.rsf.Add(cf.Amount.Mul(cf.RSFFactor))
		}
	}

	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, days
}
