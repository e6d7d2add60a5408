package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

// TestPostgresStore needs a disposable database; every table is dropped
// before and after the run.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("REGMETRICS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("REGMETRICS_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	drop := func() {
		_, err := pool.Exec(ctx, `DROP TABLE IF EXISTS balance_sheet, irrbb, rwa, cashflows, params, scenarios`)
		require.NoError(t, err)
	}
	drop()
	defer drop()

	s := store.NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate must be idempotent")
	require.NoError(t, s.Import(ctx, loadSample(t)))

	viewContract(t, s)
}

func TestCachedStore(t *testing.T) {
	url := os.Getenv("REGMETRICS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("REGMETRICS_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	ctx := context.Background()
	primary := store.NewMemoryStoreFrom(loadSample(t))
	cached := store.NewCachedStore(primary, rdb, time.Minute)
	require.NoError(t, cached.Invalidate(ctx))
	defer cached.Invalidate(ctx)

	viewContract(t, cached)

	// Reference data now comes from the cache, record views do not.
	require.NoError(t, primary.Import(ctx, &store.Dataset{
		Params:    map[string]string{model.ParamLCRInflowCap: "0.5"},
		Cashflows: []model.Cashflow{{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Direction: model.DirectionInflow}},
	}))

	params, err := cached.Parameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.75", params[model.ParamLCRInflowCap])

	cfs, err := cached.Cashflows(ctx, model.Filter{})
	require.NoError(t, err)
	assert.Len(t, cfs, 5)

	require.NoError(t, cached.Invalidate(ctx))
	params, err = cached.Parameters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.5", params[model.ParamLCRInflowCap])
}
