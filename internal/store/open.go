package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Options selects and configures a data view. The first configured source
// wins: DatabaseURL, then SQLitePath, then FixturePath; with none set the
// view is an empty memory store.
type Options struct {
	DatabaseURL string
	SQLitePath  string
	FixturePath string
	RedisURL    string // caches reference data in front of a SQL source
	CacheTTL    time.Duration
	Migrate     bool // create PostgreSQL tables on open
	Logger      *slog.Logger
}

// Open builds the configured data view. The returned cleanup releases
// connections and must be called once the view is no longer used.
func Open(ctx context.Context, opts Options) (DataView, func(), error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cleanup []func()
	closeAll := func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}
	fail := func(err error) (DataView, func(), error) {
		closeAll()
		return nil, func() {}, err
	}

	var view DataView
	switch {
	case opts.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, opts.DatabaseURL)
		if err != nil {
			return fail(fmt.Errorf("database connection failed: %w", err))
		}
		cleanup = append(cleanup, pool.Close)
		pg := NewPostgresStore(pool)
		if opts.Migrate {
			if err := pg.Migrate(ctx); err != nil {
				return fail(err)
			}
		}
		view = pg
		logger.Info("connected to PostgreSQL")

	case opts.SQLitePath != "":
		lite, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return fail(err)
		}
		cleanup = append(cleanup, func() { lite.Close() })
		view = lite
		logger.Info("opened SQLite store", "path", opts.SQLitePath)

	case opts.FixturePath != "":
		ds, err := LoadFixture(opts.FixturePath)
		if err != nil {
			return fail(err)
		}
		logger.Info("loaded fixture into in-memory store", "path", opts.FixturePath,
			"cashflows", len(ds.Cashflows), "rwa", len(ds.RWA),
			"irrbb", len(ds.IRRBB), "balance_sheet", len(ds.BalanceSheet))
		return NewMemoryStoreFrom(ds), closeAll, nil

	default:
		logger.Warn("no data source configured, using an empty in-memory store")
		return NewMemoryStore(), closeAll, nil
	}

	// Wrap with Redis read-through cache if configured.
	if opts.RedisURL != "" {
		opt, err := redis.ParseURL(opts.RedisURL)
		if err != nil {
			return fail(fmt.Errorf("invalid REDIS_URL: %w", err))
		}
		rdb := redis.NewClient(opt)
		cleanup = append(cleanup, func() { rdb.Close() })
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		view = NewCachedStore(view, rdb, ttl)
		logger.Info("Redis cache enabled", "ttl", ttl)
	}

	return view, closeAll, nil
}
