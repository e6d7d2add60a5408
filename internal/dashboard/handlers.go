package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/irrbb"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
	"github.com/baselworks/risk-engine/internal/stress"
)

var defaultShockBps = decimal.NewFromInt(200)

// serve runs a filtered engine call and writes its result.
func serve(w http.ResponseWriter, r *http.Request, fn func(model.Filter) (any, error)) {
	f, err := filterFrom(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	res, err := fn(f)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, res)
}

// --- Reference data ---

// Scenarios handles GET /api/v1/scenarios
func (s *Service) Scenarios(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Scenarios(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, res)
}

// Parameters handles GET /api/v1/parameters
func (s *Service) Parameters(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.Parameters(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, res)
}

// Thresholds handles GET /api/v1/thresholds
func (s *Service) Thresholds(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.Thresholds(r.Context(), f) })
}

// --- Liquidity ---

// LCR handles GET /api/v1/liquidity/lcr
func (s *Service) LCR(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.LCR(r.Context(), f) })
}

// LCRSeries handles GET /api/v1/liquidity/lcr/series
func (s *Service) LCRSeries(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.LCRSeries(r.Context(), f) })
}

// NSFR handles GET /api/v1/liquidity/nsfr
func (s *Service) NSFR(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.NSFR(r.Context(), f) })
}

// NSFRSeries handles GET /api/v1/liquidity/nsfr/series
func (s *Service) NSFRSeries(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.NSFRSeries(r.Context(), f) })
}

// Heatmap handles GET /api/v1/liquidity/heatmap
func (s *Service) Heatmap(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.CashflowGapHeatmap(r.Context(), f) })
}

// --- Capital ---

// CapitalRatios handles GET /api/v1/capital/ratios[?rwa_shock=0.25]
func (s *Service) CapitalRatios(w http.ResponseWriter, r *http.Request) {
	shockPct, err := decimalParam(r, "rwa_shock", decimal.Zero)
	if err != nil {
		fail(w, r, err)
		return
	}
	if shockPct.LessThanOrEqual(decimal.NewFromInt(-1)) {
		fail(w, r, fmt.Errorf("%w: rwa_shock must be greater than -1", errBadQuery))
		return
	}
	serve(w, r, func(f model.Filter) (any, error) {
		return s.engine.CapitalRatiosUnderShock(r.Context(), f, shockPct)
	})
}

// RWABreakdown handles GET /api/v1/capital/rwa
func (s *Service) RWABreakdown(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.RWABreakdown(r.Context(), f) })
}

// RWAByApproach handles GET /api/v1/capital/rwa/approach
func (s *Service) RWAByApproach(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.RWAByApproach(r.Context(), f) })
}

// OutputFloor handles GET /api/v1/capital/output-floor
func (s *Service) OutputFloor(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.OutputFloor(r.Context(), f) })
}

// CapitalSeries handles GET /api/v1/capital/series
func (s *Service) CapitalSeries(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.CapitalSeries(r.Context(), f) })
}

// --- IRRBB ---

// PV01Profile handles GET /api/v1/irrbb/pv01
func (s *Service) PV01Profile(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) { return s.engine.PV01Profile(r.Context(), f.ScenarioID) })
}

// EVESensitivity handles GET /api/v1/irrbb/eve?shock_bps=200
func (s *Service) EVESensitivity(w http.ResponseWriter, r *http.Request) {
	bps, err := shockParam(r, defaultShockBps)
	if err != nil {
		fail(w, r, err)
		return
	}
	serve(w, r, func(f model.Filter) (any, error) {
		return s.engine.EVESensitivity(r.Context(), f.ScenarioID, bps)
	})
}

// NIISensitivity handles GET /api/v1/irrbb/nii?shock_bps=200
func (s *Service) NIISensitivity(w http.ResponseWriter, r *http.Request) {
	bps, err := shockParam(r, defaultShockBps)
	if err != nil {
		fail(w, r, err)
		return
	}
	serve(w, r, func(f model.Filter) (any, error) {
		return s.engine.NIISensitivity(r.Context(), f, bps)
	})
}

// EBAResponse pairs the ΔEVE and ΔNII impacts of the six EBA scenarios.
type EBAResponse struct {
	EVE []irrbb.ScenarioImpact `json:"eve"`
	NII []irrbb.ScenarioImpact `json:"nii"`
}

// EBAScenarios handles GET /api/v1/irrbb/eba
func (s *Service) EBAScenarios(w http.ResponseWriter, r *http.Request) {
	serve(w, r, func(f model.Filter) (any, error) {
		eve, err := s.engine.EBAScenariosEVE(r.Context(), f.ScenarioID)
		if err != nil {
			return nil, err
		}
		nii, err := s.engine.EBAScenariosNII(r.Context(), f.ScenarioID)
		if err != nil {
			return nil, err
		}
		return EBAResponse{EVE: eve, NII: nii}, nil
	})
}

// CustomShockRequest is the JSON body for POST /irrbb/custom.
type CustomShockRequest struct {
	Shocks map[string]decimal.Decimal `json:"shocks"` // tenor bucket → bps
}

// CustomShock handles POST /api/v1/irrbb/custom
func (s *Service) CustomShock(w http.ResponseWriter, r *http.Request) {
	var req CustomShockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	curve, err := shock.CurveFromMap(req.Shocks)
	if err != nil {
		fail(w, r, err)
		return
	}
	serve(w, r, func(f model.Filter) (any, error) {
		return s.engine.CustomShock(r.Context(), f.ScenarioID, curve)
	})
}

// RiskSummary handles GET /api/v1/irrbb/summary?shocks=200,-200
func (s *Service) RiskSummary(w http.ResponseWriter, r *http.Request) {
	var shocks []decimal.Decimal
	if raw := r.URL.Query().Get("shocks"); raw != "" {
		var err error
		if shocks, err = shock.ParseList(raw); err != nil {
			fail(w, r, err)
			return
		}
	}
	serve(w, r, func(f model.Filter) (any, error) {
		return s.engine.RiskSummary(r.Context(), f.ScenarioID, shocks)
	})
}

// --- Stress ---

// StressResponse is the JSON body returned from POST /stress.
type StressResponse struct {
	RunID string `json:"run_id"`
	stress.Result
}

// RunStressTest handles POST /api/v1/stress. Fields missing from the body
// take their default values.
func (s *Service) RunStressTest(w http.ResponseWriter, r *http.Request) {
	in := stress.DefaultInput()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := s.engine.RunStressTest(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	runID := uuid.New().String()
	slog.Info("stress test served",
		"run_id", runID,
		"scenario", model.ScenarioLabel(in.ScenarioID),
		"cet1_stressed", res.Stressed.CET1Ratio.String(),
	)
	writeJSON(w, StressResponse{RunID: runID, Result: res})
}
