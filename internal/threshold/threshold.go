// Package threshold compares metric values against the Basel III and EBA
// supervisory thresholds shown next to each KPI.
//
// The thresholds are reported, never enforced: a breach is a display flag
// and no computation is refused because of one.
package threshold

import (
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// Metric names a value that has a supervisory threshold.
type Metric string

const (
	MetricLCR            Metric = "lcr"
	MetricNSFR           Metric = "nsfr"
	MetricCET1           Metric = "cet1_ratio"
	MetricCET1WithBuffer Metric = "cet1_ratio_with_buffer"
	MetricTier1          Metric = "tier1_ratio"
	MetricTotalCapital   Metric = "total_capital_ratio"
	MetricEVEOverTier1   Metric = "delta_eve_pct_tier1"
	MetricIRBOverSTD     Metric = "irb_over_std_rwa"
)

// Bound is the direction of a threshold.
type Bound string

const (
	AtLeast Bound = ">="
	AtMost  Bound = "<="
)

// Threshold is one supervisory limit.
type Threshold struct {
	Metric      Metric          `json:"metric"`
	Bound       Bound           `json:"bound"`
	Limit       decimal.Decimal `json:"limit"`
	Description string          `json:"description"`
}

// ConservationBuffer is added on top of the CET1 minimum.
var ConservationBuffer = decimal.NewFromFloat(0.025)

var cet1Minimum = decimal.NewFromFloat(0.045)

// Regulatory lists the thresholds in display order.
var Regulatory = []Threshold{
	{MetricLCR, AtLeast, decimal.NewFromInt(1), "LCR at least 100%"},
	{MetricNSFR, AtLeast, decimal.NewFromInt(1), "NSFR at least 100%"},
	{MetricCET1, AtLeast, cet1Minimum, "CET1 ratio at least 4.5%"},
	{MetricCET1WithBuffer, AtLeast, cet1Minimum.Add(ConservationBuffer), "CET1 ratio at least 7.0% including the conservation buffer"},
	{MetricTier1, AtLeast, decimal.NewFromFloat(0.06), "Tier1 ratio at least 6.0%"},
	{MetricTotalCapital, AtLeast, decimal.NewFromFloat(0.08), "Total Capital ratio at least 8.0%"},
	{MetricEVEOverTier1, AtMost, decimal.NewFromFloat(0.15), "|ΔEVE| at most 15% of Tier1 capital"},
	{MetricIRBOverSTD, AtLeast, decimal.NewFromFloat(0.725), "IRB RWA at least 72.5% of STD RWA (output floor)"},
}

// Breached reports whether v violates the threshold. +Inf satisfies any
// lower bound and breaches any upper bound.
func (t Threshold) Breached(v model.Ratio) bool {
	switch t.Bound {
	case AtLeast:
		return v.LessThan(t.Limit)
	case AtMost:
		return v.GreaterThan(t.Limit)
	}
	return false
}

// Snapshot holds the current value of each metric. Metrics missing from
// the snapshot are reported as unavailable.
type Snapshot map[Metric]model.Ratio

// Check is the outcome of one threshold.
type Check struct {
	Threshold
	Value     model.Ratio `json:"value"`
	Available bool        `json:"available"`
	Breach    bool        `json:"breach"`
}

// Evaluate checks every regulatory threshold against the snapshot.
func Evaluate(s Snapshot) []Check {
	checks := make([]Check, 0, len(Regulatory))
	for _, t := range Regulatory {
		v, ok := s[t.Metric]
		checks = append(checks, Check{
			Threshold: t,
			Value:     v,
			Available: ok,
			Breach:    ok && t.Breached(v),
		})
	}
	return checks
}

// Breaches returns only the breached checks.
func Breaches(checks []Check) []Check {
	var out []Check
	for _, c := range checks {
		if c.Breach {
			out = append(out, c)
		}
	}
	return out
}
