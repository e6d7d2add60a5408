package irrbb_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/model"
)

func flow(dir model.Direction, amount float64, days int) model.Cashflow {
	return model.Cashflow{
		Date:         jan1,
		MaturityDate: jan1.AddDate(0, 0, days),
		Amount:       d(amount),
		Direction:    dir,
		HQLAType:     model.HQLANone,
	}
}

func TestRepricingGap(t *testing.T) {
	flows := []model.Cashflow{
		flow(model.DirectionInflow, 100, 7),   // 0-1y
		flow(model.DirectionOutflow, 40, 3),   // 0-1y
		flow(model.DirectionInflow, 50, 8),    // 1-3y
		flow(model.DirectionOutflow, 70, 90),  // 3-5y
		flow(model.DirectionInflow, 10, 181),  // 10y+
		flow(model.DirectionInflow, 5, 10000), // 10y+
	}
	gaps := irrbb.RepricingGap(flows)
	want := []float64{60, 50, -70, 0, 15}
	if len(gaps) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(gaps))
	}
	for i, w := range want {
		if gaps[i].Bucket != model.RepricingBuckets[i] {
			t.Errorf("position %d: expected %s, got %s", i, model.RepricingBuckets[i], gaps[i].Bucket)
		}
		if !gaps[i].Gap.Equal(d(w)) {
			t.Errorf("%s: expected %v, got %s", gaps[i].Bucket, w, gaps[i].Gap)
		}
	}
}

func TestNIISensitivity(t *testing.T) {
	flows := []model.Cashflow{
		flow(model.DirectionInflow, 1000, 5),
		flow(model.DirectionOutflow, 400, 60),
	}
	res := irrbb.NIISensitivity(flows, d(200))
	if !res.TotalGap.Equal(d(600)) {
		t.Errorf("expected total gap 600, got %s", res.TotalGap)
	}
	if !res.DeltaNII.Equal(d(12)) {
		t.Errorf("expected ΔNII 12, got %s", res.DeltaNII)
	}
}

func TestNIISensitivity_Empty(t *testing.T) {
	res := irrbb.NIISensitivity(nil, d(200))
	if !res.DeltaNII.IsZero() || len(res.GapByBucket) != 5 {
		t.Errorf("expected zero ΔNII with five empty buckets, got %+v", res)
	}
}

// --- Summary ---

func TestRiskSummary(t *testing.T) {
	flows := []model.Cashflow{flow(model.DirectionOutflow, 1000, 5)}
	shocks := []decimal.Decimal{d(100), d(-300)}

	s := irrbb.RiskSummary(ladder(), flows, d(20), shocks)

	if !s.TotalPV01.Equal(d(150)) {
		t.Errorf("expected total PV01 150, got %s", s.TotalPV01)
	}
	// |150 × -0.03| = 4.5 beats 1.5.
	if !s.MaxDeltaEVE.Equal(d(4.5)) {
		t.Errorf("expected max ΔEVE 4.5, got %s", s.MaxDeltaEVE)
	}
	if !s.MaxDeltaEVEPct.Equal(d(0.225)) {
		t.Errorf("expected 22.5%% of Tier1, got %s", s.MaxDeltaEVEPct)
	}
	if !s.EVEBreach {
		t.Error("expected breach above 15%")
	}
	// |-1000 × -0.03| = 30.
	if !s.MaxDeltaNII.Equal(d(30)) {
		t.Errorf("expected max ΔNII 30, got %s", s.MaxDeltaNII)
	}
}

func TestRiskSummary_NoTier1(t *testing.T) {
	s := irrbb.RiskSummary(ladder(), nil, decimal.Zero, []decimal.Decimal{d(200)})
	if !s.MaxDeltaEVEPct.IsZero() || s.EVEBreach {
		t.Errorf("zero Tier1 must give a zero ratio and no breach, got %+v", s)
	}
}

func TestRiskSummary_DefaultShocks(t *testing.T) {
	s := irrbb.RiskSummary(ladder(), nil, d(1000), nil)
	if len(s.Shocks) != 2 {
		t.Fatalf("expected default ±200 shocks, got %v", s.Shocks)
	}
	if !s.MaxDeltaEVE.Equal(d(3)) {
		t.Errorf("expected max ΔEVE 3, got %s", s.MaxDeltaEVE)
	}
	if s.EVEBreach {
		t.Error("0.3% of Tier1 must not breach")
	}
}
