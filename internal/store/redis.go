package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/baselworks/risk-engine/internal/model"
)

const (
	paramsKey    = "regmetrics:params"
	scenariosKey = "regmetrics:scenarios"
)

// CachedStore wraps a primary DataView with a Redis read-through cache for
// the reference data (parameters and scenarios). Record views always pass
// through so every computation sees the current snapshot.
type CachedStore struct {
	primary DataView
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary view.
func NewCachedStore(primary DataView, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Read-through (check cache first) ---

func (s *CachedStore) Parameters(ctx context.Context) (map[string]string, error) {
	var params map[string]string
	if s.cached(ctx, paramsKey, &params) {
		return params, nil
	}

	params, err := s.primary.Parameters(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, paramsKey, params)
	return params, nil
}

func (s *CachedStore) Scenarios(ctx context.Context) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if s.cached(ctx, scenariosKey, &scenarios) {
		return scenarios, nil
	}

	scenarios, err := s.primary.Scenarios(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, scenariosKey, scenarios)
	return scenarios, nil
}

// Invalidate drops the cached reference data, e.g. after an import.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, paramsKey, scenariosKey).Err()
}

// --- Passthrough (not cached) ---

func (s *CachedStore) Cashflows(ctx context.Context, f model.Filter) ([]model.Cashflow, error) {
	return s.primary.Cashflows(ctx, f)
}

func (s *CachedStore) RWAExposures(ctx context.Context, f model.Filter) ([]model.RWAExposure, error) {
	return s.primary.RWAExposures(ctx, f)
}

func (s *CachedStore) IRRBBInstruments(ctx context.Context, scenarioID *int64) ([]model.IRRBBInstrument, error) {
	return s.primary.IRRBBInstruments(ctx, scenarioID)
}

func (s *CachedStore) BalanceSheet(ctx context.Context, scenarioID *int64) ([]model.BalanceSheetItem, error) {
	return s.primary.BalanceSheet(ctx, scenarioID)
}

// --- Cache helpers ---

// cached reports whether key was found and decoded into dst. Redis errors
// count as a miss.
func (s *CachedStore) cached(ctx context.Context, key string, dst any) bool {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (s *CachedStore) store(ctx context.Context, key string, v any) {
	if data, err := json.Marshal(v); err == nil {
		s.rdb.Set(ctx, key, data, s.ttl)
	}
}
