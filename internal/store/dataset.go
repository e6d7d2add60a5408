package store

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/baselworks/risk-engine/internal/model"
)

const dateLayout = "2006-01-02"

// Dataset is a complete snapshot of every record type.
type Dataset struct {
	Scenarios    []model.Scenario
	Params       map[string]string
	Cashflows    []model.Cashflow
	RWA          []model.RWAExposure
	IRRBB        []model.IRRBBInstrument
	BalanceSheet []model.BalanceSheetItem
}

// fixture is the YAML layout of a Dataset. Dates are YYYY-MM-DD strings.
type fixture struct {
	Scenarios []struct {
		ID             int64           `yaml:"id"`
		Name           string          `yaml:"name"`
		Description    string          `yaml:"description"`
		LiquidityShock decimal.Decimal `yaml:"liquidity_shock"`
		IRShift        decimal.Decimal `yaml:"ir_shift"`
		CreditShock    decimal.Decimal `yaml:"credit_shock"`
	} `yaml:"scenarios"`
	Params    map[string]string `yaml:"params"`
	Cashflows []struct {
		Date         string          `yaml:"date"`
		MaturityDate string          `yaml:"maturity_date"`
		Product      string          `yaml:"product"`
		Counterparty string          `yaml:"counterparty"`
		Amount       decimal.Decimal `yaml:"amount"`
		Direction    string          `yaml:"direction"`
		HQLAType     string          `yaml:"hqlatype"`
		ASFFactor    decimal.Decimal `yaml:"asf_factor"`
		RSFFactor    decimal.Decimal `yaml:"rsf_factor"`
		ScenarioID   *int64          `yaml:"scenario_id"`
	} `yaml:"cashflows"`
	RWA []struct {
		Date       string          `yaml:"date"`
		ExposureID string          `yaml:"exposure_id"`
		AssetClass string          `yaml:"asset_class"`
		Approach   string          `yaml:"approach"`
		Amount     decimal.Decimal `yaml:"amount"`
		RiskWeight decimal.Decimal `yaml:"risk_weight"`
		ScenarioID *int64          `yaml:"scenario_id"`
	} `yaml:"rwa"`
	IRRBB []struct {
		Date            string          `yaml:"date"`
		Instrument      string          `yaml:"instrument"`
		Cashflow        decimal.Decimal `yaml:"cashflow"`
		MaturityDate    string          `yaml:"maturity_date"`
		TenorBucket     string          `yaml:"tenor_bucket"`
		PV01            decimal.Decimal `yaml:"pv01"`
		RateSensitivity decimal.Decimal `yaml:"rate_sensitivity"`
		ScenarioID      *int64          `yaml:"scenario_id"`
	} `yaml:"irrbb"`
	BalanceSheet []struct {
		Date       string          `yaml:"date"`
		Item       string          `yaml:"item"`
		Amount     decimal.Decimal `yaml:"amount"`
		ScenarioID *int64          `yaml:"scenario_id"`
	} `yaml:"balance_sheet"`
}

// LoadFixture reads a YAML dataset from disk.
func LoadFixture(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	ds, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return ds, nil
}

// ParseFixture decodes a YAML dataset.
func ParseFixture(data []byte) (*Dataset, error) {
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	ds := &Dataset{Params: fx.Params}
	if ds.Params == nil {
		ds.Params = make(map[string]string)
	}
	var p fieldParser

	for _, s := range fx.Scenarios {
		ds.Scenarios = append(ds.Scenarios, model.Scenario{
			ID:             s.ID,
			Name:           s.Name,
			Description:    s.Description,
			LiquidityShock: s.LiquidityShock,
			IRShift:        s.IRShift,
			CreditShock:    s.CreditShock,
		})
	}
	for i, c := range fx.Cashflows {
		p.at("cashflows", i)
		ds.Cashflows = append(ds.Cashflows, model.Cashflow{
			Date:         p.date("date", c.Date),
			MaturityDate: p.optionalDate("maturity_date", c.MaturityDate),
			Product:      c.Product,
			Counterparty: c.Counterparty,
			Amount:       c.Amount,
			Direction:    p.direction(c.Direction),
			HQLAType:     model.HQLAType(c.HQLAType),
			ASFFactor:    c.ASFFactor,
			RSFFactor:    c.RSFFactor,
			ScenarioID:   c.ScenarioID,
		})
	}
	for i, r := range fx.RWA {
		p.at("rwa", i)
		ds.RWA = append(ds.RWA, model.RWAExposure{
			Date:       p.date("date", r.Date),
			ExposureID: r.ExposureID,
			AssetClass: r.AssetClass,
			Approach:   model.Approach(r.Approach),
			Amount:     r.Amount,
			RiskWeight: r.RiskWeight,
			ScenarioID: r.ScenarioID,
		})
	}
	for i, r := range fx.IRRBB {
		p.at("irrbb", i)
		ds.IRRBB = append(ds.IRRBB, model.IRRBBInstrument{
			Date:            p.date("date", r.Date),
			Instrument:      r.Instrument,
			Cashflow:        r.Cashflow,
			MaturityDate:    p.optionalDate("maturity_date", r.MaturityDate),
			TenorBucket:     model.TenorBucket(r.TenorBucket),
			PV01:            r.PV01,
			RateSensitivity: r.RateSensitivity,
			ScenarioID:      r.ScenarioID,
		})
	}
	for i, b := range fx.BalanceSheet {
		p.at("balance_sheet", i)
		ds.BalanceSheet = append(ds.BalanceSheet, model.BalanceSheetItem{
			Date:       p.date("date", b.Date),
			Item:       model.BalanceSheetLine(b.Item),
			Amount:     b.Amount,
			ScenarioID: b.ScenarioID,
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	return ds, nil
}

// fieldParser decodes string fields and keeps the first error.
type fieldParser struct {
	where string
	err   error
}

func (p *fieldParser) at(table string, index int) {
	p.where = fmt.Sprintf("%s[%d]", table, index)
}

func (p *fieldParser) fail(field, value, reason string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s.%s=%q: %s", ErrInvalidRecord, p.where, field, value, reason)
	}
}

func (p *fieldParser) date(field, s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		p.fail(field, s, "expected YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

func (p *fieldParser) optionalDate(field, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	return p.date(field, s)
}

func (p *fieldParser) decimal(field, s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		p.fail(field, s, "not a number")
		return decimal.Zero
	}
	return v
}

func (p *fieldParser) direction(s string) model.Direction {
	switch d := model.Direction(s); d {
	case model.DirectionInflow, model.DirectionOutflow:
		return d
	}
	p.fail("direction", s, "expected inflow or outflow")
	return ""
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// optionalDateArg returns nil for a zero date so it is stored as NULL.
func optionalDateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatDate(t)
}

func scenarioArg(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func sortByDate[T any](records []T, date func(T) time.Time) {
	sort.SliceStable(records, func(i, j int) bool {
		return date(records[i]).Before(date(records[j]))
	})
}
