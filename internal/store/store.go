// Package store provides the read-only data view the metrics engine
// computes from. Implementations include PostgreSQL and SQLite (SQL
// sources), in-memory (fixtures and testing), and a Redis read-through cache
// for the slow-changing reference data.
package store

import (
	"context"
	"errors"

	"github.com/baselworks/risk-engine/internal/model"
)

// ErrInvalidRecord is returned when a stored or imported record cannot be
// decoded into its typed form.
var ErrInvalidRecord = errors.New("store: invalid record")

// DataView is the read interface consumed by the engine. Every filter
// dimension is optional; a nil dimension means no filter. Results are
// ordered by date, then insertion order.
type DataView interface {
	// Cashflows returns cashflow records by scenario and date range.
	Cashflows(ctx context.Context, f model.Filter) ([]model.Cashflow, error)

	// RWAExposures returns credit exposures by scenario and date range.
	RWAExposures(ctx context.Context, f model.Filter) ([]model.RWAExposure, error)

	// IRRBBInstruments returns banking-book instruments by scenario.
	IRRBBInstruments(ctx context.Context, scenarioID *int64) ([]model.IRRBBInstrument, error)

	// BalanceSheet returns balance-sheet items by scenario.
	BalanceSheet(ctx context.Context, scenarioID *int64) ([]model.BalanceSheetItem, error)

	// Parameters returns the raw regulatory parameter table.
	Parameters(ctx context.Context) (map[string]string, error)

	// Scenarios lists every scenario ordered by ID.
	Scenarios(ctx context.Context) ([]model.Scenario, error)
}

// Importer loads a dataset into a writable store.
type Importer interface {
	Import(ctx context.Context, ds *Dataset) error
}
