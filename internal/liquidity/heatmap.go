package liquidity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// Heatmap is the net signed cashflow per liquidity bucket and date.
// Values[i][j] belongs to Buckets[i] on Dates[j].
type Heatmap struct {
	Buckets []model.MaturityBucket `json:"buckets"`
	Dates   []time.Time            `json:"dates"`
	Values  [][]decimal.Decimal    `json:"values"`
}

// At returns the cell for a bucket and date, or zero when absent.
func (h Heatmap) At(bucket model.MaturityBucket, date time.Time) decimal.Decimal {
	day := model.CalendarDate(date)
	for i, b := range h.Buckets {
		if b != bucket {
			continue
		}
		for j, d := range h.Dates {
			if d.Equal(day) {
				return h.Values[i][j]
			}
		}
	}
	return decimal.Zero
}

// shareScale is the number of decimal places kept on a proportional share.
const shareScale = 16

// CashflowGapHeatmap buckets each cashflow by days to maturity and nets
// capped inflows against outflows per (date, bucket).
//
// Inflows are capped per date at that date's outflows × inflow cap. The
// capped total is spread over the date's inflow records in proportion to
// their amounts; a date with no inflow contributes nothing. Shares are
// truncated and the date's last inflow record takes the remainder, so the
// shares of a date sum to exactly the capped total.
func CashflowGapHeatmap(cashflows []model.Cashflow, p model.Parameters) Heatmap {
	dates, days := byDate(cashflows)

	col := make(map[time.Time]int, len(dates))
	for j, d := range dates {
		col[d] = j
	}
	row := make(map[model.MaturityBucket]int, len(model.MaturityBuckets))
	values := make([][]decimal.Decimal, len(model.MaturityBuckets))
	for i, b := range model.MaturityBuckets {
		row[b] = i
		values[i] = make([]decimal.Decimal, len(dates))
		for j := range values[i] {
			values[i][j] = decimal.Zero
		}
	}

	lastInflow := make(map[time.Time]int, len(dates))
	for k, cf := range cashflows {
		if cf.Direction == model.DirectionInflow {
			lastInflow[model.CalendarDate(cf.Date)] = k
		}
	}
	allocated := make(map[time.Time]decimal.Decimal, len(dates))

	for k, cf := range cashflows {
		day := model.CalendarDate(cf.Date)
		i, j := row[cf.MaturityBucket()], col[day]

		switch cf.Direction {
		case model.DirectionInflow:
			df := days[day]
			if !df.inflows.IsPositive() {
				continue
			}
			capped := CapInflows(df.inflows, df.outflows, p.LCRInflowCap)
			var share decimal.Decimal
			if k == lastInflow[day] {
				share = capped.Sub(allocated[day])
			} else {
				share, _ = cf.Amount.Mul(capped).QuoRem(df.inflows, shareScale)
			}
			allocated[day] = allocated[day].Add(share)
			values[i][j] = values[i][j].Add(share)
		case model.DirectionOutflow:
			values[i][j] = values[i][j].Sub(cf.Amount)
		}
	}

	buckets := make([]model.MaturityBucket, len(model.MaturityBuckets))
	copy(buckets, model.MaturityBuckets)
	return Heatmap{Buckets: buckets, Dates: dates, Values: values}
}
