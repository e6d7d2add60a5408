// Package engine serves regulatory metrics from a data view. Each call
// fetches a fresh snapshot through the view, threads the regulatory
// parameters explicitly into the pure sub-engines and returns their result.
// The engine holds no mutable state of its own.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/baselworks/risk-engine/internal/metrics"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/store"
)

// Engine computes metrics over a DataView.
type Engine struct {
	view   store.DataView
	logger *slog.Logger
}

// New creates an engine. A nil logger uses slog.Default().
func New(view store.DataView, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{view: view, logger: logger}
}

// run instruments one computation.
func run[T any](e *Engine, metric string, scenario *int64, fn func() (T, error)) (T, error) {
	start := time.Now()
	label := model.ScenarioLabel(scenario)

	res, err := fn()
	elapsed := time.Since(start)
	metrics.ComputationDuration.WithLabelValues(metric).Observe(elapsed.Seconds())
	if err != nil {
		metrics.ComputationErrors.WithLabelValues(metric).Inc()
		e.logger.Error("computation failed", "metric", metric, "scenario", label, "err", err)
		var zero T
		return zero, err
	}
	metrics.ComputationsTotal.WithLabelValues(metric, label).Inc()
	e.logger.Debug("computed", "metric", metric, "scenario", label, "duration", elapsed)
	return res, nil
}

// record exports a headline ratio.
func (e *Engine) record(ratio string, scenario *int64, r model.Ratio) {
	if r.IsInf() {
		metrics.InfiniteRatios.WithLabelValues(ratio).Inc()
		return
	}
	metrics.LatestRatio.WithLabelValues(ratio, model.ScenarioLabel(scenario)).Set(r.Float64())
}

// --- Data access ---

func (e *Engine) cashflows(ctx context.Context, f model.Filter) ([]model.Cashflow, error) {
	cfs, err := e.view.Cashflows(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fetch cashflows: %w", err)
	}
	metrics.RecordsFetched.WithLabelValues("cashflows").Observe(float64(len(cfs)))
	return cfs, nil
}

func (e *Engine) exposures(ctx context.Context, f model.Filter) ([]model.RWAExposure, error) {
	exps, err := e.view.RWAExposures(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("fetch rwa: %w", err)
	}
	metrics.RecordsFetched.WithLabelValues("rwa").Observe(float64(len(exps)))
	return exps, nil
}

func (e *Engine) instruments(ctx context.Context, scenarioID *int64) ([]model.IRRBBInstrument, error) {
	instr, err := e.view.IRRBBInstruments(ctx, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("fetch irrbb: %w", err)
	}
	metrics.RecordsFetched.WithLabelValues("irrbb").Observe(float64(len(instr)))
	return instr, nil
}

// balance fetches balance-sheet items and applies the filter's date bounds,
// which the view itself only takes a scenario for.
func (e *Engine) balance(ctx context.Context, f model.Filter) ([]model.BalanceSheetItem, error) {
	items, err := e.view.BalanceSheet(ctx, f.ScenarioID)
	if err != nil {
		return nil, fmt.Errorf("fetch balance sheet: %w", err)
	}
	metrics.RecordsFetched.WithLabelValues("balance_sheet").Observe(float64(len(items)))
	if f.Start == nil && f.End == nil {
		return items, nil
	}
	out := items[:0:0]
	for _, it := range items {
		if f.Includes(it.Date, it.ScenarioID) {
			out = append(out, it)
		}
	}
	return out, nil
}

// params fetches and parses the regulatory parameters. Malformed values
// fall back to their defaults and are logged, not returned.
func (e *Engine) params(ctx context.Context) (model.Parameters, error) {
	raw, err := e.view.Parameters(ctx)
	if err != nil {
		return model.Parameters{}, fmt.Errorf("fetch params: %w", err)
	}
	p, perr := model.ParseParameters(raw)
	if perr != nil {
		e.logger.Warn("malformed regulatory parameter, using default", "err", perr)
	}
	return p, nil
}

// --- Reference data ---

// ParameterSet is the parameter table as stored and as applied.
type ParameterSet struct {
	Raw       map[string]string `json:"raw"`
	Effective model.Parameters  `json:"effective"`
	Unused    []string          `json:"unused"` // stored keys no computation reads
	Problems  []string          `json:"problems,omitempty"`
}

// Scenarios lists the scenarios available for selection.
func (e *Engine) Scenarios(ctx context.Context) ([]model.Scenario, error) {
	return run(e, "scenarios", nil, func() ([]model.Scenario, error) {
		s, err := e.view.Scenarios(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch scenarios: %w", err)
		}
		return s, nil
	})
}

// Parameters reports the stored parameters alongside the values the
// computations will use.
func (e *Engine) Parameters(ctx context.Context) (ParameterSet, error) {
	return run(e, "parameters", nil, func() (ParameterSet, error) {
		raw, err := e.view.Parameters(ctx)
		if err != nil {
			return ParameterSet{}, fmt.Errorf("fetch params: %w", err)
		}
		p, perr := model.ParseParameters(raw)
		set := ParameterSet{Raw: raw, Effective: p, Unused: []string{}}
		if perr != nil {
			set.Problems = strings.Split(perr.Error(), "\n")
		}
		for k := range raw {
			switch k {
			case model.ParamHaircutLevel2A, model.ParamHaircutLevel2B, model.ParamLCRInflowCap:
			default:
				set.Unused = append(set.Unused, k)
			}
		}
		sort.Strings(set.Unused)
		return set, nil
	})
}
