package irrbb

import (
	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// Curve is a per-bucket rate shock in basis points. A bucket absent from
// the curve is not shocked.
type Curve map[model.TenorBucket]decimal.Decimal

// ParallelCurve shocks every tenor bucket by the same amount.
func ParallelCurve(bps decimal.Decimal) Curve {
	c := make(Curve, len(model.TenorBuckets))
	for _, b := range model.TenorBuckets {
		c[b] = bps
	}
	return c
}

// EBAScenario is one of the six prescribed yield-curve shock shapes.
type EBAScenario struct {
	Name   string
	Shocks [5]int64 // bps, in model.TenorBuckets order
}

// Curve returns the scenario's shocks keyed by tenor bucket.
func (s EBAScenario) Curve() Curve {
	c := make(Curve, len(model.TenorBuckets))
	for i, b := range model.TenorBuckets {
		c[b] = decimal.NewFromInt(s.Shocks[i])
	}
	return c
}

// ShortEnd returns the shock on the 0-1y bucket.
func (s EBAScenario) ShortEnd() decimal.Decimal {
	return decimal.NewFromInt(s.Shocks[0])
}

// EBAScenarios is the EBA standardised shock set, in reporting order.
var EBAScenarios = []EBAScenario{
	{Name: "Parallel Up", Shocks: [5]int64{200, 200, 200, 200, 200}},
	{Name: "Parallel Down", Shocks: [5]int64{-200, -200, -200, -200, -200}},
	{Name: "Steepener", Shocks: [5]int64{-50, 0, 100, 150, 200}},
	{Name: "Flattener", Shocks: [5]int64{250, 200, 150, 100, 50}},
	{Name: "Short Rate Up", Shocks: [5]int64{300, 200, 100, 0, 0}},
	{Name: "Short Rate Down", Shocks: [5]int64{-300, -200, -100, 0, 0}},
}

// ScenarioImpact is ΔEVE or ΔNII under one named scenario.
type ScenarioImpact struct {
	Scenario string          `json:"scenario"`
	Delta    decimal.Decimal `json:"delta"`
}

// CustomResult is the outcome of a caller-supplied curve shock.
type CustomResult struct {
	Shocks   Curve           `json:"shocks"`
	DeltaEVE decimal.Decimal `json:"delta_eve"`
	// DeltaNII equals DeltaEVE on this path. It is not a repricing-gap
	// figure; see NIISensitivity for that.
	DeltaNII decimal.Decimal `json:"delta_nii"`
}

// ApplyCurve sums pv01[bucket] × shock[bucket] / 10000 over the standard
// tenor buckets. Buckets missing on either side contribute zero.
func ApplyCurve(instruments []model.IRRBBInstrument, curve Curve) decimal.Decimal {
	sums := pv01ByBucket(instruments)
	total := decimal.Zero
	for _, b := range model.TenorBuckets {
		shock, ok := curve[b]
		if !ok {
			continue
		}
		total = total.Add(Scaled(sums[b], shock))
	}
	return total
}

// EBAScenariosEVE applies each EBA shock vector to the PV01 profile.
func EBAScenariosEVE(instruments []model.IRRBBInstrument) []ScenarioImpact {
	out := make([]ScenarioImpact, 0, len(EBAScenarios))
	for _, s := range EBAScenarios {
		out = append(out, ScenarioImpact{Scenario: s.Name, Delta: ApplyCurve(instruments, s.Curve())})
	}
	return out
}

// EBAScenariosNII restricts each EBA scenario to the 0-1y bucket and its
// short-end shock, approximating the one-year NII horizon.
func EBAScenariosNII(instruments []model.IRRBBInstrument) []ScenarioImpact {
	short := pv01ByBucket(instruments)[model.Tenor0to1y]
	out := make([]ScenarioImpact, 0, len(EBAScenarios))
	for _, s := range EBAScenarios {
		out = append(out, ScenarioImpact{Scenario: s.Name, Delta: Scaled(short, s.ShortEnd())})
	}
	return out
}

// CustomShock applies an arbitrary per-bucket curve.
func CustomShock(instruments []model.IRRBBInstrument, curve Curve) CustomResult {
	eve := ApplyCurve(instruments, curve)
	shocks := make(Curve, len(model.TenorBuckets))
	for _, b := range model.TenorBuckets {
		shocks[b] = curve[b]
	}
	return CustomResult{Shocks: shocks, DeltaEVE: eve, DeltaNII: eve}
}
