package capital

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// SeriesPoint is the capital position on one reporting date.
type SeriesPoint struct {
	Date time.Time `json:"date"`
	Ratios
}

// Series pivots balance-sheet items by date and divides each date's
// capital by the same date's RWA. Dates present on either side appear;
// a missing side counts as zero.
func Series(exposures []model.RWAExposure, items []model.BalanceSheetItem) []SeriesPoint {
	type day struct {
		rwa, cet1, tier1, total decimal.Decimal
	}
	days := make(map[time.Time]*day)
	get := func(t time.Time) *day {
		k := model.CalendarDate(t)
		if d, ok := days[k]; ok {
			return d
		}
		d := &day{}
		days[k] = d
		return d
	}

	for _, e := range exposures {
		d := get(e.Date)
		d.rwa = d.rwa.Add(e.RWAAmount())
	}
	for _, it := range items {
		d := get(it.Date)
		switch it.Item {
		case model.LineCET1:
			d.cet1 = d.cet1.Add(it.Amount)
		case model.LineTier1:
			d.tier1 = d.tier1.Add(it.Amount)
		case model.LineTotalCapital:
			d.total = d.total.Add(it.Amount)
		}
	}

	dates := make([]time.Time, 0, len(days))
	for t := range days {
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	points := make([]SeriesPoint, 0, len(dates))
	for _, t := range dates {
		d := days[t]
		points = append(points, SeriesPoint{
			Date:   t,
			Ratios: ratiosFor(d.rwa, decimal.Zero, d.cet1, d.tier1, d.total),
		})
	}
	return points
}
