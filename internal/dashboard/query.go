package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
	"github.com/baselworks/risk-engine/internal/shock"
)

var errBadQuery = errors.New("invalid query parameter")

const dateLayout = "2006-01-02"

// filterFrom reads scenario, start and end. Absent parameters mean no
// filter on that dimension.
func filterFrom(r *http.Request) (model.Filter, error) {
	q := r.URL.Query()
	var f model.Filter
	var err error
	if f.ScenarioID, err = scenarioFrom(r); err != nil {
		return f, err
	}
	if f.Start, err = parseDate("start", q.Get("start")); err != nil {
		return f, err
	}
	if f.End, err = parseDate("end", q.Get("end")); err != nil {
		return f, err
	}
	if f.Start != nil && f.End != nil && f.End.Before(*f.Start) {
		return f, fmt.Errorf("%w: end %s is before start %s", errBadQuery,
			f.End.Format(dateLayout), f.Start.Format(dateLayout))
	}
	return f, nil
}

func scenarioFrom(r *http.Request) (*int64, error) {
	s := r.URL.Query().Get("scenario")
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: scenario %q is not an integer", errBadQuery, s)
	}
	return &id, nil
}

func parseDate(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not YYYY-MM-DD", errBadQuery, name, s)
	}
	return &t, nil
}

// decimalParam reads an optional decimal query parameter.
func decimalParam(r *http.Request, name string, def decimal.Decimal) (decimal.Decimal, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", errBadQuery, name, s)
	}
	return v, nil
}

// shockParam reads an optional shock in basis points.
func shockParam(r *http.Request, def decimal.Decimal) (decimal.Decimal, error) {
	s := r.URL.Query().Get("shock_bps")
	if s == "" {
		return def, nil
	}
	return shock.ParseBps(s)
}
