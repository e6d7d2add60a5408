package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func loadSample(t *testing.T) *store.Dataset {
	t.Helper()
	ds, err := store.LoadFixture(filepath.Join("testdata", "sample.yaml"))
	require.NoError(t, err)
	return ds
}

// viewContract runs the same assertions against every DataView
// implementation loaded with the sample fixture.
func viewContract(t *testing.T, view store.DataView) {
	ctx := context.Background()

	t.Run("cashflows unfiltered", func(t *testing.T) {
		cfs, err := view.Cashflows(ctx, model.Filter{})
		require.NoError(t, err)
		require.Len(t, cfs, 4)
		assert.Equal(t, "deposit", cfs[0].Product)
		assert.True(t, cfs[0].Amount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, model.DirectionInflow, cfs[0].Direction)
		assert.True(t, cfs[0].ASFFactor.Equal(decimal.NewFromFloat(0.9)))
		assert.Equal(t, *date("2024-01-05"), cfs[0].MaturityDate)
		assert.Nil(t, cfs[0].ScenarioID)
	})

	t.Run("cashflows by scenario", func(t *testing.T) {
		cfs, err := view.Cashflows(ctx, model.ForScenario(model.ScenarioRef(1)))
		require.NoError(t, err)
		require.Len(t, cfs, 1)
		assert.Equal(t, "repo", cfs[0].Product)
		assert.True(t, cfs[0].MaturityDate.IsZero(), "missing maturity must decode as zero")
		require.NotNil(t, cfs[0].ScenarioID)
		assert.Equal(t, int64(1), *cfs[0].ScenarioID)
	})

	t.Run("cashflows by date range", func(t *testing.T) {
		cfs, err := view.Cashflows(ctx, model.Filter{Start: date("2024-01-02"), End: date("2024-01-02")})
		require.NoError(t, err)
		require.Len(t, cfs, 1)
		assert.Equal(t, model.HQLALevel2A, cfs[0].HQLAType)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		cfs, err := view.Cashflows(ctx, model.ForScenario(model.ScenarioRef(99)))
		require.NoError(t, err)
		assert.Empty(t, cfs)
	})

	t.Run("rwa", func(t *testing.T) {
		exps, err := view.RWAExposures(ctx, model.Filter{End: date("2024-01-01")})
		require.NoError(t, err)
		require.Len(t, exps, 2)
		assert.Equal(t, model.ApproachIRB, exps[1].Approach)
		assert.True(t, exps[1].RWAAmount().Equal(decimal.NewFromInt(750)))
	})

	t.Run("irrbb", func(t *testing.T) {
		instr, err := view.IRRBBInstruments(ctx, nil)
		require.NoError(t, err)
		require.Len(t, instr, 3)

		scoped, err := view.IRRBBInstruments(ctx, model.ScenarioRef(2))
		require.NoError(t, err)
		require.Len(t, scoped, 1)
		assert.Equal(t, model.Tenor5to10y, scoped[0].TenorBucket)
		assert.True(t, scoped[0].PV01.Equal(decimal.NewFromInt(40)))
	})

	t.Run("balance sheet", func(t *testing.T) {
		items, err := view.BalanceSheet(ctx, model.ScenarioRef(1))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, model.LineCET1, items[0].Item)
		assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(90)))
	})

	t.Run("parameters", func(t *testing.T) {
		params, err := view.Parameters(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.75", params[model.ParamLCRInflowCap])
		assert.Len(t, params, 4)
	})

	t.Run("scenarios", func(t *testing.T) {
		scenarios, err := view.Scenarios(ctx)
		require.NoError(t, err)
		require.Len(t, scenarios, 2)
		assert.Equal(t, int64(1), scenarios[0].ID)
		assert.Equal(t, "Liquidity shock", scenarios[1].Name)
		assert.True(t, scenarios[1].LiquidityShock.Equal(decimal.NewFromFloat(0.4)))
	})
}

func TestMemoryStore(t *testing.T) {
	viewContract(t, store.NewMemoryStoreFrom(loadSample(t)))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := store.NewMemoryStoreFrom(loadSample(t))
	ctx := context.Background()

	cfs, err := s.Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	cfs[0].Product = "mutated"

	again, err := s.Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "deposit", again[0].Product)

	params, err := s.Parameters(ctx)
	require.NoError(t, err)
	params["lcr_inflow_cap"] = "1"
	params, err = s.Parameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.75", params["lcr_inflow_cap"])
}

func TestMemoryStore_ImportReplacesScenarios(t *testing.T) {
	s := store.NewMemoryStoreFrom(loadSample(t))
	require.NoError(t, s.Import(context.Background(), &store.Dataset{
		Scenarios: []model.Scenario{{ID: 2, Name: "Renamed"}},
	}))

	scenarios, err := s.Scenarios(context.Background())
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "Renamed", scenarios[1].Name)
}

func TestMemoryStore_FromMatchesImport(t *testing.T) {
	ctx := context.Background()
	imported := store.NewMemoryStore()
	require.NoError(t, imported.Import(ctx, loadSample(t)))
	require.NoError(t, imported.Import(ctx, nil))

	built := store.NewMemoryStoreFrom(loadSample(t))

	want, err := imported.Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	got, err := built.Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := store.NewMemoryStoreFrom(nil).Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regmetrics.db")
	s, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Import(context.Background(), loadSample(t)))
	viewContract(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "regmetrics.db")
	s, err := store.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Import(context.Background(), loadSample(t)))
	require.NoError(t, s.Close())

	reopened, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	cfs, err := reopened.Cashflows(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Len(t, cfs, 4)
}

func TestSQLiteStore_ReimportReplacesReferenceData(t *testing.T) {
	ctx := context.Background()
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "regmetrics.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Import(ctx, loadSample(t)))
	require.NoError(t, s.Import(ctx, &store.Dataset{
		Scenarios: []model.Scenario{{ID: 2, Name: "Renamed"}},
		Params:    map[string]string{"lcr_inflow_cap": "0.5"},
	}))

	scenarios, err := s.Scenarios(ctx)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "Renamed", scenarios[1].Name)

	params, err := s.Parameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.5", params["lcr_inflow_cap"])
}

func TestSQLiteStore_EmptyDatabase(t *testing.T) {
	s, err := store.OpenSQLite(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	defer s.Close()

	cfs, err := s.Cashflows(context.Background(), model.Filter{})
	require.NoError(t, err)
	assert.Empty(t, cfs)

	params, err := s.Parameters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestLoadFixture_Errors(t *testing.T) {
	_, err := store.LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = store.ParseFixture([]byte("cashflows:\n  - date: 01/02/2024\n    direction: inflow\n"))
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	_, err = store.ParseFixture([]byte("cashflows:\n  - date: \"2024-01-02\"\n    direction: sideways\n"))
	assert.ErrorIs(t, err, store.ErrInvalidRecord)

	_, err = store.ParseFixture([]byte("cashflows: [unterminated"))
	assert.Error(t, err)
}

func TestParseFixture_Empty(t *testing.T) {
	ds, err := store.ParseFixture([]byte("{}"))
	require.NoError(t, err)
	assert.NotNil(t, ds.Params)
	assert.Empty(t, ds.Cashflows)
}
