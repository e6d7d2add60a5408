// Package dashboard provides the HTTP handlers that serve regulatory
// metrics as JSON for the dashboard frontend.
//
// Every handler is a read-only view over the engine: it parses query
// parameters, calls one engine operation and encodes the result. Amounts
// are shopspring/decimal and encode as JSON strings; infinite ratios encode
// as "Infinity".
package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baselworks/risk-engine/internal/engine"
	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
	"github.com/baselworks/risk-engine/internal/stress"
)

// Service serves engine outputs over HTTP.
type Service struct {
	engine *engine.Engine
}

// NewService creates a dashboard service.
func NewService(e *engine.Engine) *Service {
	return &Service{engine: e}
}

// Routes registers every endpoint on r. The server mounts it under /api/v1.
func (s *Service) Routes(r chi.Router) {
	r.Get("/scenarios", s.Scenarios)
	r.Get("/parameters", s.Parameters)
	r.Get("/thresholds", s.Thresholds)

	r.Route("/liquidity", func(r chi.Router) {
		r.Get("/lcr", s.LCR)
		r.Get("/lcr/series", s.LCRSeries)
		r.Get("/nsfr", s.NSFR)
		r.Get("/nsfr/series", s.NSFRSeries)
		r.Get("/heatmap", s.Heatmap)
	})

	r.Route("/capital", func(r chi.Router) {
		r.Get("/ratios", s.CapitalRatios)
		r.Get("/rwa", s.RWABreakdown)
		r.Get("/rwa/approach", s.RWAByApproach)
		r.Get("/output-floor", s.OutputFloor)
		r.Get("/series", s.CapitalSeries)
	})

	r.Route("/irrbb", func(r chi.Router) {
		r.Get("/pv01", s.PV01Profile)
		r.Get("/eve", s.EVESensitivity)
		r.Get("/nii", s.NIISensitivity)
		r.Get("/eba", s.EBAScenarios)
		r.Post("/custom", s.CustomShock)
		r.Get("/summary", s.RiskSummary)
	})

	r.Post("/stress", s.RunStressTest)
}

// writeJSON encodes v with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// fail maps an error to a status. Caller mistakes are 400; anything else,
// data-view failures included, is 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isBadRequest(err):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "path", r.URL.Path, "err", err)
		writeError(w, err.Error(), http.StatusInternalServerError)
	}
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		errBadQuery,
		stress.ErrInvalidInput,
		shock.ErrInvalidCurve,
		shock.ErrUnknownBucket,
		shock.ErrOutOfRange,
		model.ErrInvalidParameter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
