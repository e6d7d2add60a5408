package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
	"github.com/baselworks/risk-engine/internal/stress"
	"github.com/baselworks/risk-engine/internal/threshold"
)

func d(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
)

func ratio(f float64) model.Ratio {
	return model.NewRatio(d(f))
}

func assertRatio(t *testing.T, want float64, got model.Ratio) {
	t.Helper()
	assert.True(t, got.Equal(ratio(want)), "want %v, got %s", want, got)
}

func assertDecimal(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), "want %v, got %s", want, got)
}

// dataset is one reporting date of base data plus a scenario 1 outflow on
// the following day.
func dataset() *store.Dataset {
	return &store.Dataset{
		Scenarios: []model.Scenario{{ID: 1, Name: "ECB stress"}},
		Params:    map[string]string{},
		Cashflows: []model.Cashflow{
			{Date: jan1, MaturityDate: jan1.AddDate(0, 0, 4), Product: "deposit", Amount: d(200),
				Direction: model.DirectionInflow, HQLAType: model.HQLANone, ASFFactor: d(0.9), RSFFactor: d(0)},
			{Date: jan1, MaturityDate: jan1.AddDate(0, 0, 60), Product: "govt_bond", Amount: d(100),
				Direction: model.DirectionInflow, HQLAType: model.HQLALevel1, ASFFactor: d(0.5), RSFFactor: d(0)},
			{Date: jan1, MaturityDate: jan1.AddDate(0, 0, 19), Product: "loan", Amount: d(200),
				Direction: model.DirectionOutflow, HQLAType: model.HQLANone, ASFFactor: d(0), RSFFactor: d(0.85)},
			{Date: jan2, Product: "wholesale", Amount: d(400), Direction: model.DirectionOutflow,
				HQLAType: model.HQLANone, ASFFactor: d(0), RSFFactor: d(0), ScenarioID: model.ScenarioRef(1)},
		},
		RWA: []model.RWAExposure{
			{Date: jan1, ExposureID: "EXP-1", AssetClass: "Corporate", Approach: model.ApproachSTD, Amount: d(1000), RiskWeight: d(1)},
		},
		IRRBB: []model.IRRBBInstrument{
			{Date: jan1, Instrument: "FRN", TenorBucket: model.Tenor0to1y, PV01: d(10)},
			{Date: jan1, Instrument: "BOND", TenorBucket: model.Tenor1to3y, PV01: d(20)},
		},
		BalanceSheet: []model.BalanceSheetItem{
			{Date: jan1, Item: model.LineCET1, Amount: d(100)},
			{Date: jan1, Item: model.LineTier1, Amount: d(120)},
			{Date: jan1, Item: model.LineTotalCapital, Amount: d(150)},
		},
	}
}

func newEngine(ds *store.Dataset) *engine.Engine {
	return engine.New(store.NewMemoryStoreFrom(ds), nil)
}

func TestLCR_Filters(t *testing.T) {
	ctx := context.Background()
	e := newEngine(dataset())

	base, err := e.LCR(ctx, model.Filter{End: &jan1})
	require.NoError(t, err)
	assertDecimal(t, 150, base.CappedInflows)
	assertRatio(t, 2, base.LCR)

	scen, err := e.LCR(ctx, model.ForScenario(model.ScenarioRef(1)))
	require.NoError(t, err)
	assertDecimal(t, 400, scen.NetOutflows)
	assertRatio(t, 0, scen.LCR)

	none, err := e.LCR(ctx, model.ForScenario(model.ScenarioRef(9)))
	require.NoError(t, err)
	assert.True(t, none.LCR.IsInf())
}

func TestLCR_MalformedParameterFallsBack(t *testing.T) {
	ds := dataset()
	ds.Params = map[string]string{model.ParamLCRInflowCap: "lots"}
	e := newEngine(ds)

	res, err := e.LCR(context.Background(), model.Filter{End: &jan1})
	require.NoError(t, err)
	assertRatio(t, 2, res.LCR)
}

func TestLiquiditySeries(t *testing.T) {
	ctx := context.Background()
	e := newEngine(dataset())

	lcr, err := e.LCRSeries(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, lcr, 2)
	assertRatio(t, 20_000_000, lcr[0].LCR)
	assertRatio(t, 2_500_000, lcr[1].LCR)

	nsfr, err := e.NSFRSeries(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, nsfr, 2)
	assertDecimal(t, 230, nsfr[0].ASF)
	assertDecimal(t, 170, nsfr[0].RSF)

	hm, err := e.CashflowGapHeatmap(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Len(t, hm.Dates, 2)
	assert.Len(t, hm.Values, len(hm.Buckets))
}

func TestCapital(t *testing.T) {
	ctx := context.Background()
	e := newEngine(dataset())

	r, err := e.CapitalRatios(ctx, model.Filter{})
	require.NoError(t, err)
	assertRatio(t, 0.1, r.CET1Ratio)
	assertRatio(t, 0.12, r.Tier1Ratio)
	assertRatio(t, 0.15, r.TotalCapitalRatio)

	shocked, err := e.CapitalRatiosUnderShock(ctx, model.Filter{}, d(0.25))
	require.NoError(t, err)
	assertDecimal(t, 1250, shocked.RWA)
	assertRatio(t, 0.08, shocked.CET1Ratio)

	// Balance-sheet items honour the date window too.
	late, err := e.CapitalRatios(ctx, model.Filter{Start: &jan2})
	require.NoError(t, err)
	assert.True(t, late.CET1Ratio.IsInf(), "no RWA after jan1, got %s", late.CET1Ratio)
	assert.True(t, late.CET1.IsZero())

	floor, err := e.OutputFloor(ctx, model.Filter{})
	require.NoError(t, err)
	assert.True(t, floor.Breach)

	groups, err := e.RWABreakdown(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Corporate", groups[0].AssetClass)

	series, err := e.CapitalSeries(ctx, model.Filter{})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assertRatio(t, 0.1, series[0].CET1Ratio)
}

func TestIRRBB(t *testing.T) {
	ctx := context.Background()
	e := newEngine(dataset())

	profile, err := e.PV01Profile(ctx, nil)
	require.NoError(t, err)
	require.Len(t, profile, 5)
	assertDecimal(t, 10, profile[0].PV01)
	assertDecimal(t, 20, profile[1].PV01)

	eve, err := e.EVESensitivity(ctx, nil, d(100))
	require.NoError(t, err)
	assertDecimal(t, 0.3, eve.DeltaEVE)

	custom, err := e.CustomShock(ctx, nil, irrbb.Curve{model.Tenor1to3y: d(-50)})
	require.NoError(t, err)
	assertDecimal(t, -0.1, custom.DeltaEVE)

	eba, err := e.EBAScenariosEVE(ctx, nil)
	require.NoError(t, err)
	require.Len(t, eba, len(irrbb.EBAScenarios))
	assertDecimal(t, 0.6, eba[0].Delta)

	sum, err := e.RiskSummary(ctx, nil, nil)
	require.NoError(t, err)
	assertDecimal(t, 30, sum.TotalPV01)
	assertDecimal(t, 0.6, sum.MaxDeltaEVE)
	assertDecimal(t, 120, sum.Tier1)
	assert.False(t, sum.EVEBreach)
}

func TestMetrics_RepeatedCallsAgree(t *testing.T) {
	ctx := context.Background()
	e := newEngine(dataset())
	all := model.Filter{}

	tests := []struct {
		name string
		call func() (any, error)
	}{
		{"heatmap", func() (any, error) { return e.CashflowGapHeatmap(ctx, all) }},
		{"lcr series", func() (any, error) { return e.LCRSeries(ctx, all) }},
		{"nsfr series", func() (any, error) { return e.NSFRSeries(ctx, all) }},
		{"nsfr", func() (any, error) { return e.NSFR(ctx, all) }},
		{"eba eve", func() (any, error) { return e.EBAScenariosEVE(ctx, nil) }},
		{"eba nii", func() (any, error) { return e.EBAScenariosNII(ctx, nil) }},
		{"capital series", func() (any, error) { return e.CapitalSeries(ctx, all) }},
		{"rwa breakdown", func() (any, error) { return e.RWABreakdown(ctx, all) }},
		{"pv01 profile", func() (any, error) { return e.PV01Profile(ctx, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := tt.call()
			require.NoError(t, err)
			second, err := tt.call()
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestRunStressTest(t *testing.T) {
	e := newEngine(dataset())

	res, err := e.RunStressTest(context.Background(), stress.DefaultInput())
	require.NoError(t, err)
	assertRatio(t, 2_500_000, res.Base.LCR)
	assertRatio(t, 1_500_000, res.Stressed.LCR)
	assertRatio(t, 0.1, res.Base.CET1Ratio)
	assert.True(t, res.Stressed.CET1Ratio.Equal(res.Base.CET1Ratio.Quo(d(1.1))))
	assertDecimal(t, 0.6, res.Stressed.DeltaEVE)
}

func TestRunStressTest_InvalidInput(t *testing.T) {
	in := stress.DefaultInput()
	in.RetailWithdrawal = d(1.5)

	_, err := newEngine(dataset()).RunStressTest(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, stress.ErrInvalidInput)
}

func TestThresholds(t *testing.T) {
	e := newEngine(dataset())

	checks, err := e.Thresholds(context.Background(), model.Filter{End: &jan1})
	require.NoError(t, err)
	require.Len(t, checks, len(threshold.Regulatory))
	for _, c := range checks {
		assert.True(t, c.Available, "metric %s", c.Metric)
	}

	breaches := threshold.Breaches(checks)
	require.Len(t, breaches, 1)
	assert.Equal(t, threshold.MetricIRBOverSTD, breaches[0].Metric)
}

func TestThresholds_NoTier1LeavesEVEUnavailable(t *testing.T) {
	ds := dataset()
	ds.BalanceSheet = nil

	checks, err := newEngine(ds).Thresholds(context.Background(), model.Filter{})
	require.NoError(t, err)
	for _, c := range checks {
		if c.Metric == threshold.MetricEVEOverTier1 {
			assert.False(t, c.Available)
			assert.False(t, c.Breach)
		}
	}
}

func TestParameters(t *testing.T) {
	ds := dataset()
	ds.Params = map[string]string{
		model.ParamHaircutLevel2A: "abc",
		model.ParamLCRInflowCap:   "0.5",
		"eve_tier1_breach_ratio":  "0.15",
	}

	set, err := newEngine(ds).Parameters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eve_tier1_breach_ratio"}, set.Unused)
	assert.Len(t, set.Problems, 1)
	assert.True(t, set.Effective.LCRInflowCap.Equal(d(0.5)))
	assert.True(t, set.Effective.HaircutLevel2A.Equal(model.DefaultParameters().HaircutLevel2A))
}

func TestScenarios(t *testing.T) {
	got, err := newEngine(dataset()).Scenarios(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ECB stress", got[0].Name)
}

var errUnavailable = errors.New("database unavailable")

// brokenView fails every record fetch.
type brokenView struct{ store.DataView }

func (brokenView) Cashflows(context.Context, model.Filter) ([]model.Cashflow, error) {
	return nil, errUnavailable
}

func (brokenView) RWAExposures(context.Context, model.Filter) ([]model.RWAExposure, error) {
	return nil, errUnavailable
}

func (brokenView) IRRBBInstruments(context.Context, *int64) ([]model.IRRBBInstrument, error) {
	return nil, errUnavailable
}

func TestDataViewErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	e := engine.New(brokenView{}, nil)

	_, err := e.LCR(ctx, model.Filter{})
	assert.ErrorIs(t, err, errUnavailable)
	assert.ErrorContains(t, err, "fetch cashflows")

	_, err = e.CapitalRatios(ctx, model.Filter{})
	assert.ErrorIs(t, err, errUnavailable)

	_, err = e.PV01Profile(ctx, nil)
	assert.ErrorIs(t, err, errUnavailable)

	_, err = e.RunStressTest(ctx, stress.DefaultInput())
	assert.ErrorIs(t, err, errUnavailable)
}
