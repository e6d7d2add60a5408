package capital

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/baselworks/risk-engine/internal/model"
)

// OutputFloorFactor is the minimum share of standardised RWA that IRB RWA
// must reach.
var OutputFloorFactor = decimal.NewFromFloat(0.725)

// RWAGroup is the RWA of one (approach, asset class) pair.
type RWAGroup struct {
	Approach           model.Approach  `json:"approach"`
	AssetClass         string          `json:"asset_class"`
	Exposure           decimal.Decimal `json:"exposure"`
	RWA                decimal.Decimal `json:"rwa"`
	CapitalRequirement decimal.Decimal `json:"capital_requirement"`
}

// ApproachTotal is the RWA of one calculation approach.
type ApproachTotal struct {
	Approach model.Approach  `json:"approach"`
	RWA      decimal.Decimal `json:"rwa"`
}

// FloorCheck compares IRB RWA against the output floor.
type FloorCheck struct {
	STD       decimal.Decimal `json:"std_rwa"`
	IRB       decimal.Decimal `json:"irb_rwa"`
	Factor    decimal.Decimal `json:"factor"`
	Floor     decimal.Decimal `json:"floor"` // STD × factor
	Shortfall decimal.Decimal `json:"shortfall"`
	Breach    bool            `json:"breach"`
}

// Breakdown groups RWA by approach and asset class, largest first. Equal
// totals are ordered by approach, then asset class.
func Breakdown(exposures []model.RWAExposure) []RWAGroup {
	type key struct {
		approach model.Approach
		class    string
	}
	index := make(map[key]int)
	var groups []RWAGroup
	for _, e := range exposures {
		k := key{e.Approach, e.AssetClass}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, RWAGroup{
				Approach:           e.Approach,
				AssetClass:         e.AssetClass,
				Exposure:           decimal.Zero,
				RWA:                decimal.Zero,
				CapitalRequirement: decimal.Zero,
			})
		}
		g := &groups[i]
		g.Exposure = g.Exposure.Add(e.Amount)
		g.RWA = g.RWA.Add(e.RWAAmount())
		g.CapitalRequirement = g.CapitalRequirement.Add(e.CapitalRequirement())
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if c := a.RWA.Cmp(b.RWA); c != 0 {
			return c > 0
		}
		if a.Approach != b.Approach {
			return a.Approach < b.Approach
		}
		return a.AssetClass < b.AssetClass
	})
	return groups
}

// ByApproach totals RWA per approach, largest first.
func ByApproach(exposures []model.RWAExposure) []ApproachTotal {
	totals := make(map[model.Approach]decimal.Decimal)
	for _, e := range exposures {
		totals[e.Approach] = totals[e.Approach].Add(e.RWAAmount())
	}
	out := make([]ApproachTotal, 0, len(totals))
	for a, rwa := range totals {
		out = append(out, ApproachTotal{Approach: a, RWA: rwa})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].RWA.Cmp(out[j].RWA); c != 0 {
			return c > 0
		}
		return out[i].Approach < out[j].Approach
	})
	return out
}

// OutputFloor checks IRB RWA ≥ 72.5% of STD RWA. The breach flag is for
// display only.
func OutputFloor(exposures []model.RWAExposure) FloorCheck {
	std, irb := decimal.Zero, decimal.Zero
	for _, e := range exposures {
		switch e.Approach {
		case model.ApproachSTD:
			std = std.Add(e.RWAAmount())
		case model.ApproachIRB:
			irb = irb.Add(e.RWAAmount())
		}
	}
	return CheckFloor(std, irb)
}

// CheckFloor applies the output floor to precomputed totals.
func CheckFloor(std, irb decimal.Decimal) FloorCheck {
	floor := std.Mul(OutputFloorFactor)
	shortfall := floor.Sub(irb)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	return FloorCheck{
		STD:       std,
		IRB:       irb,
		Factor:    OutputFloorFactor,
		Floor:     floor,
		Shortfall: shortfall,
		Breach:    irb.LessThan(floor),
	}
}
