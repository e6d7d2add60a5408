package store_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestOpen_Precedence(t *testing.T) {
	ctx := context.Background()
	fixture := filepath.Join("testdata", "sample.yaml")

	t.Run("empty memory", func(t *testing.T) {
		view, cleanup, err := store.Open(ctx, store.Options{Logger: quietLogger()})
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &store.MemoryStore{}, view)

		cfs, err := view.Cashflows(ctx, model.Filter{})
		require.NoError(t, err)
		assert.Empty(t, cfs)
	})

	t.Run("fixture", func(t *testing.T) {
		view, cleanup, err := store.Open(ctx, store.Options{FixturePath: fixture, Logger: quietLogger()})
		require.NoError(t, err)
		defer cleanup()

		cfs, err := view.Cashflows(ctx, model.Filter{})
		require.NoError(t, err)
		assert.Len(t, cfs, 4)
	})

	t.Run("sqlite wins over fixture", func(t *testing.T) {
		view, cleanup, err := store.Open(ctx, store.Options{
			SQLitePath:  filepath.Join(t.TempDir(), "x.db"),
			FixturePath: fixture,
			Logger:      quietLogger(),
		})
		require.NoError(t, err)
		defer cleanup()
		assert.IsType(t, &store.SQLiteStore{}, view)
	})

	t.Run("bad fixture", func(t *testing.T) {
		_, cleanup, err := store.Open(ctx, store.Options{FixturePath: "does-not-exist.yaml", Logger: quietLogger()})
		defer cleanup()
		assert.Error(t, err)
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, cleanup, err := store.Open(ctx, store.Options{
			SQLitePath: filepath.Join(t.TempDir(), "y.db"),
			RedisURL:   "not-a-url",
			Logger:     quietLogger(),
		})
		defer cleanup()
		assert.Error(t, err)
	})
}
