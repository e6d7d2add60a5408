// Package model defines the record types read from the regulatory data store
// and the value types shared by the metric sub-engines.
// Monetary amounts use shopspring/decimal, never float64.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalRequirementRatio is the Pillar 1 minimum applied to RWA (8%).
var CapitalRequirementRatio = decimal.NewFromFloat(0.08)

// Direction of a cashflow.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// HQLAType is the liquidity tier of a cashflow's underlying asset.
type HQLAType string

const (
	HQLALevel1  HQLAType = "Level1"
	HQLALevel2A HQLAType = "Level2A"
	HQLALevel2B HQLAType = "Level2B"
	HQLANone    HQLAType = "None"
)

// Eligible reports whether the tier counts towards the HQLA stock.
func (t HQLAType) Eligible() bool {
	switch t {
	case HQLALevel1, HQLALevel2A, HQLALevel2B:
		return true
	}
	return false
}

// Cashflow is one contractual or behavioural cashflow used by the
// liquidity sub-engine and the repricing-gap ΔNII.
type Cashflow struct {
	Date         time.Time       `json:"date"`
	MaturityDate time.Time       `json:"maturity_date"` // zero when unknown
	Product      string          `json:"product"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"` // non-negative
	Direction    Direction       `json:"direction"`
	HQLAType     HQLAType        `json:"hqlatype"`
	ASFFactor    decimal.Decimal `json:"asf_factor"`
	RSFFactor    decimal.Decimal `json:"rsf_factor"`
	ScenarioID   *int64          `json:"scenario_id,omitempty"`
}

// DaysToMaturity returns maturity_date − date in whole days. ok is false
// when the maturity date is unknown.
func (c Cashflow) DaysToMaturity() (days int, ok bool) {
	if c.MaturityDate.IsZero() {
		return 0, false
	}
	return DaysBetween(c.Date, c.MaturityDate), true
}

// Signed returns +amount for inflows and −amount for outflows.
func (c Cashflow) Signed() decimal.Decimal {
	if c.Direction == DirectionInflow {
		return c.Amount
	}
	return c.Amount.Neg()
}

// Approach is the credit-risk calculation approach of an exposure.
type Approach string

const (
	ApproachSTD Approach = "STD"
	ApproachIRB Approach = "IRB"
)

// RWAExposure is a single credit exposure with its regulatory risk weight.
type RWAExposure struct {
	Date       time.Time       `json:"date"`
	ExposureID string          `json:"exposure_id"`
	AssetClass string          `json:"asset_class"`
	Approach   Approach        `json:"approach"`
	Amount     decimal.Decimal `json:"amount"`
	RiskWeight decimal.Decimal `json:"risk_weight"` // in [0, 1]
	ScenarioID *int64          `json:"scenario_id,omitempty"`
}

// RWAAmount is amount × risk_weight.
func (e RWAExposure) RWAAmount() decimal.Decimal {
	return e.Amount.Mul(e.RiskWeight)
}

// CapitalRequirement is RWAAmount × 8%.
func (e RWAExposure) CapitalRequirement() decimal.Decimal {
	return e.RWAAmount().Mul(CapitalRequirementRatio)
}

// IRRBBInstrument is a banking-book instrument with its PV01 sensitivity.
type IRRBBInstrument struct {
	Date            time.Time       `json:"date"`
	Instrument      string          `json:"instrument"`
	Cashflow        decimal.Decimal `json:"cashflow"`
	MaturityDate    time.Time       `json:"maturity_date"`
	TenorBucket     TenorBucket     `json:"tenor_bucket"`
	PV01            decimal.Decimal `json:"pv01"` // signed, per basis point
	RateSensitivity decimal.Decimal `json:"rate_sensitivity"`
	ScenarioID      *int64          `json:"scenario_id,omitempty"`
}

// BalanceSheetLine labels a balance-sheet item.
type BalanceSheetLine string

const (
	LineCET1             BalanceSheetLine = "CET1"
	LineTier1            BalanceSheetLine = "Tier1"
	LineTotalCapital     BalanceSheetLine = "Total Capital"
	LineTotalAssets      BalanceSheetLine = "Total Assets"
	LineTotalLiabilities BalanceSheetLine = "Total Liabilities"
)

// BalanceSheetItem is one balance-sheet amount on a reporting date.
type BalanceSheetItem struct {
	Date       time.Time        `json:"date"`
	Item       BalanceSheetLine `json:"item"`
	Amount     decimal.Decimal  `json:"amount"`
	ScenarioID *int64           `json:"scenario_id,omitempty"`
}

// Scenario is a named stress scenario. Its ID partitions every record type.
type Scenario struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	LiquidityShock decimal.Decimal `json:"liquidity_shock"`
	IRShift        decimal.Decimal `json:"ir_shift"`
	CreditShock    decimal.Decimal `json:"credit_shock"`
}

// DaysBetween returns the number of calendar days from a to b, ignoring
// the time of day.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDate(b).Sub(CalendarDate(a)) / (24 * time.Hour))
}

// CalendarDate truncates t to midnight UTC of its calendar date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
