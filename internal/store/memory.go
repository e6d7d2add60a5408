package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baselworks/risk-engine/internal/model"
)

// MemoryStore implements DataView with in-memory slices. Used for fixtures,
// testing and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu sync.RWMutex
	ds Dataset
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ds: Dataset{Params: make(map[string]string)}}
}

// NewMemoryStoreFrom creates an in-memory store holding ds.
func NewMemoryStoreFrom(ds *Dataset) *MemoryStore {
	s := NewMemoryStore()
	s.add(ds)
	return s
}

// Import appends the records of ds. Parameters and scenarios with an
// existing key are replaced. It never fails.
func (s *MemoryStore) Import(_ context.Context, ds *Dataset) error {
	s.add(ds)
	return nil
}

func (s *MemoryStore) add(ds *Dataset) {
	if ds == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range ds.Params {
		s.ds.Params[k] = v
	}
	for _, sc := range ds.Scenarios {
		replaced := false
		for i := range s.ds.Scenarios {
			if s.ds.Scenarios[i].ID == sc.ID {
				s.ds.Scenarios[i] = sc
				replaced = true
			}
		}
		if !replaced {
			s.ds.Scenarios = append(s.ds.Scenarios, sc)
		}
	}
	sort.Slice(s.ds.Scenarios, func(i, j int) bool { return s.ds.Scenarios[i].ID < s.ds.Scenarios[j].ID })

	s.ds.Cashflows = append(s.ds.Cashflows, ds.Cashflows...)
	s.ds.RWA = append(s.ds.RWA, ds.RWA...)
	s.ds.IRRBB = append(s.ds.IRRBB, ds.IRRBB...)
	s.ds.BalanceSheet = append(s.ds.BalanceSheet, ds.BalanceSheet...)

	sortByDate(s.ds.Cashflows, func(c model.Cashflow) time.Time { return c.Date })
	sortByDate(s.ds.RWA, func(e model.RWAExposure) time.Time { return e.Date })
	sortByDate(s.ds.IRRBB, func(in model.IRRBBInstrument) time.Time { return in.Date })
	sortByDate(s.ds.BalanceSheet, func(b model.BalanceSheetItem) time.Time { return b.Date })
}

func (s *MemoryStore) Cashflows(_ context.Context, f model.Filter) ([]model.Cashflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.ds.Cashflows, func(c model.Cashflow) bool { return f.Includes(c.Date, c.ScenarioID) }), nil
}

func (s *MemoryStore) RWAExposures(_ context.Context, f model.Filter) ([]model.RWAExposure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.ds.RWA, func(e model.RWAExposure) bool { return f.Includes(e.Date, e.ScenarioID) }), nil
}

func (s *MemoryStore) IRRBBInstruments(_ context.Context, scenarioID *int64) ([]model.IRRBBInstrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := model.ForScenario(scenarioID)
	return filter(s.ds.IRRBB, func(in model.IRRBBInstrument) bool { return f.IncludesScenario(in.ScenarioID) }), nil
}

func (s *MemoryStore) BalanceSheet(_ context.Context, scenarioID *int64) ([]model.BalanceSheetItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := model.ForScenario(scenarioID)
	return filter(s.ds.BalanceSheet, func(b model.BalanceSheetItem) bool { return f.IncludesScenario(b.ScenarioID) }), nil
}

func (s *MemoryStore) Parameters(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	params := make(map[string]string, len(s.ds.Params))
	for k, v := range s.ds.Params {
		params[k] = v
	}
	return params, nil
}

func (s *MemoryStore) Scenarios(_ context.Context) ([]model.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Scenario, len(s.ds.Scenarios))
	copy(out, s.ds.Scenarios)
	return out, nil
}

// filter returns a new slice so callers never alias the store's records.
func filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
