package liquidity_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/liquidity"
	"github.com/baselworks/risk-engine/internal/model"
)

func matures(c model.Cashflow, days int) model.Cashflow {
	c.MaturityDate = c.Date.AddDate(0, 0, days)
	return c
}

func TestHeatmap_ProportionalCap(t *testing.T) {
	flows := []model.Cashflow{
		matures(cf("2024-01-01", model.DirectionInflow, 100, model.HQLANone), 3),
		matures(cf("2024-01-01", model.DirectionInflow, 300, model.HQLANone), 20),
		matures(cf("2024-01-01", model.DirectionOutflow, 200, model.HQLANone), 60),
	}

	hm := liquidity.CashflowGapHeatmap(flows, model.DefaultParameters())

	// Capped total = min(400, 150) = 150, split 1:3.
	if got := hm.At(model.Maturity0to7d, day("2024-01-01")); !got.Equal(d(37.5)) {
		t.Errorf("0-7d: expected 37.5, got %s", got)
	}
	if got := hm.At(model.Maturity8to30d, day("2024-01-01")); !got.Equal(d(112.5)) {
		t.Errorf("8-30d: expected 112.5, got %s", got)
	}
	if got := hm.At(model.Maturity31to90d, day("2024-01-01")); !got.Equal(d(-200)) {
		t.Errorf("31-90d: expected -200, got %s", got)
	}
	if got := hm.At(model.MaturityOver1y, day("2024-01-01")); !got.IsZero() {
		t.Errorf(">1y: expected 0, got %s", got)
	}
}

func TestHeatmap_DateWithoutOutflowsContributesNothing(t *testing.T) {
	flows := []model.Cashflow{
		matures(cf("2024-01-02", model.DirectionInflow, 50, model.HQLANone), 3),
	}
	hm := liquidity.CashflowGapHeatmap(flows, model.DefaultParameters())
	if got := hm.At(model.Maturity0to7d, day("2024-01-02")); !got.IsZero() {
		t.Errorf("expected inflow capped to zero, got %s", got)
	}
}

func TestHeatmap_Shape(t *testing.T) {
	flows := []model.Cashflow{
		matures(cf("2024-01-03", model.DirectionOutflow, 10, model.HQLANone), 400),
		matures(cf("2024-01-01", model.DirectionOutflow, 10, model.HQLANone), 1),
	}
	hm := liquidity.CashflowGapHeatmap(flows, model.DefaultParameters())

	if len(hm.Buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(hm.Buckets))
	}
	if len(hm.Dates) != 2 || !hm.Dates[0].Before(hm.Dates[1]) {
		t.Fatalf("expected 2 ascending dates, got %v", hm.Dates)
	}
	for i, row := range hm.Values {
		if len(row) != len(hm.Dates) {
			t.Errorf("row %s has %d columns", hm.Buckets[i], len(row))
		}
	}
	if got := hm.At(model.MaturityOver1y, day("2024-01-03")); !got.Equal(d(-10)) {
		t.Errorf("expected -10 in >1y, got %s", got)
	}
}

func TestHeatmap_CappedInflowMass(t *testing.T) {
	// Per date the inflow contributions never exceed outflow × 0.75.
	tests := []struct {
		name     string
		flows    []model.Cashflow
		inflows  map[string]float64
		outflows map[string]float64
	}{
		{
			name: "uneven split",
			flows: []model.Cashflow{
				matures(cf("2024-01-01", model.DirectionInflow, 70, model.HQLANone), 1),
				matures(cf("2024-01-01", model.DirectionInflow, 90, model.HQLANone), 100),
				matures(cf("2024-01-01", model.DirectionInflow, 40, model.HQLANone), 500),
				matures(cf("2024-01-01", model.DirectionOutflow, 120, model.HQLANone), 10),
				matures(cf("2024-01-02", model.DirectionInflow, 10, model.HQLANone), 1),
				matures(cf("2024-01-02", model.DirectionOutflow, 100, model.HQLANone), 1),
			},
			inflows:  map[string]float64{"2024-01-01": 200, "2024-01-02": 10},
			outflows: map[string]float64{"2024-01-01": 120, "2024-01-02": 100},
		},
		{
			name:     "seven sevenths",
			flows:    sevenInflowsOfOne(),
			inflows:  map[string]float64{"2024-01-01": 7},
			outflows: map[string]float64{"2024-01-01": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm := liquidity.CashflowGapHeatmap(tt.flows, model.DefaultParameters())
			for j, date := range hm.Dates {
				key := date.Format("2006-01-02")
				sum := decimal.Zero
				for i := range hm.Buckets {
					sum = sum.Add(hm.Values[i][j])
				}
				capped := sum.Add(d(tt.outflows[key]))
				limit := decimal.Min(d(tt.inflows[key]), d(tt.outflows[key]).Mul(d(0.75)))
				if capped.GreaterThan(limit) {
					t.Errorf("%s: capped inflow %s exceeds %s", key, capped, limit)
				}
				if !capped.Equal(limit) {
					t.Errorf("%s: capped inflow %s, expected %s", key, capped, limit)
				}
			}
		})
	}
}

// sevenInflowsOfOne spreads 1.5 of capped inflow over seven records, which
// does not divide evenly.
func sevenInflowsOfOne() []model.Cashflow {
	flows := []model.Cashflow{
		matures(cf("2024-01-01", model.DirectionOutflow, 2, model.HQLANone), 400),
	}
	for k := 0; k < 7; k++ {
		flows = append(flows, matures(cf("2024-01-01", model.DirectionInflow, 1, model.HQLANone), 1+k*60))
	}
	return flows
}
