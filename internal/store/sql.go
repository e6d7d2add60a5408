package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/baselworks/risk-engine/internal/model"
)

// rows is the subset of pgx.Rows and *sql.Rows the SQL view reads.
type rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// stdRows adapts *sql.Rows, whose Close returns an error.
type stdRows struct{ *sql.Rows }

func (r stdRows) Close() { _ = r.Rows.Close() }

type queryFunc func(ctx context.Context, query string, args ...any) (rows, error)

type execFunc func(ctx context.Context, query string, args ...any) error

// dialect renders bind parameters. typ is the SQL type the value is cast
// to where the driver needs it.
type dialect struct {
	placeholder func(n int, typ string) string
}

var (
	postgresDialect = dialect{placeholder: func(n int, typ string) string {
		return fmt.Sprintf("$%d::%s", n, typ)
	}}
	sqliteDialect = dialect{placeholder: func(int, string) string { return "?" }}
)

// where builds a WHERE clause for the non-nil filter dimensions.
func (d dialect) where(f model.Filter, withDates bool) (string, []any) {
	var conds []string
	var args []any
	add := func(cond, typ string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, d.placeholder(len(args), typ)))
	}
	if f.ScenarioID != nil {
		add("scenario_id = %s", "BIGINT", *f.ScenarioID)
	}
	if withDates && f.Start != nil {
		add("date >= %s", "DATE", formatDate(*f.Start))
	}
	if withDates && f.End != nil {
		add("date <= %s", "DATE", formatDate(*f.End))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// column is an insert target and the type its bind parameter is cast to.
type column struct {
	name string
	typ  string
}

func (d dialect) insert(table string, cols []column) string {
	names := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
		params[i] = d.placeholder(i+1, c.typ)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(params, ", "))
}

// upsert is insert that replaces the row when key already exists.
func (d dialect) upsert(table, key string, cols []column) string {
	var sets []string
	for _, c := range cols {
		if c.name != key {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c.name, c.name))
		}
	}
	return fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s",
		d.insert(table, cols), key, strings.Join(sets, ", "))
}

// Column lists are shared by both SQL stores. Numeric and date columns are
// read back as text so one decoder serves both drivers.
const (
	selectCashflows = `SELECT CAST(date AS TEXT), CAST(maturity_date AS TEXT), product, counterparty,
	        CAST(amount AS TEXT), direction, hqlatype,
	        CAST(asf_factor AS TEXT), CAST(rsf_factor AS TEXT), scenario_id
	 FROM cashflows`
	selectRWA = `SELECT CAST(date AS TEXT), exposure_id, asset_class, approach,
	        CAST(amount AS TEXT), CAST(risk_weight AS TEXT), scenario_id
	 FROM rwa`
	selectIRRBB = `SELECT CAST(date AS TEXT), instrument, CAST(cashflow AS TEXT), CAST(maturity_date AS TEXT),
	        tenor_bucket, CAST(pv01 AS TEXT), CAST(rate_sensitivity AS TEXT), scenario_id
	 FROM irrbb`
	selectBalanceSheet = `SELECT CAST(date AS TEXT), item, CAST(amount AS TEXT), scenario_id
	 FROM balance_sheet`
	selectScenarios = `SELECT id, name, description,
	        CAST(liquidity_shock AS TEXT), CAST(ir_shift AS TEXT), CAST(credit_shock AS TEXT)
	 FROM scenarios ORDER BY id`
	selectParams = `SELECT key, value FROM params`
	orderByDate  = ` ORDER BY date, id`
)

var (
	cashflowColumns = []column{
		{"date", "DATE"}, {"maturity_date", "DATE"}, {"product", "TEXT"}, {"counterparty", "TEXT"},
		{"amount", "NUMERIC"}, {"direction", "TEXT"}, {"hqlatype", "TEXT"},
		{"asf_factor", "NUMERIC"}, {"rsf_factor", "NUMERIC"}, {"scenario_id", "BIGINT"},
	}
	rwaColumns = []column{
		{"date", "DATE"}, {"exposure_id", "TEXT"}, {"asset_class", "TEXT"}, {"approach", "TEXT"},
		{"amount", "NUMERIC"}, {"risk_weight", "NUMERIC"}, {"scenario_id", "BIGINT"},
	}
	irrbbColumns = []column{
		{"date", "DATE"}, {"instrument", "TEXT"}, {"cashflow", "NUMERIC"}, {"maturity_date", "DATE"},
		{"tenor_bucket", "TEXT"}, {"pv01", "NUMERIC"}, {"rate_sensitivity", "NUMERIC"}, {"scenario_id", "BIGINT"},
	}
	balanceSheetColumns = []column{
		{"date", "DATE"}, {"item", "TEXT"}, {"amount", "NUMERIC"}, {"scenario_id", "BIGINT"},
	}
	scenarioColumns = []column{
		{"id", "BIGINT"}, {"name", "TEXT"}, {"description", "TEXT"},
		{"liquidity_shock", "NUMERIC"}, {"ir_shift", "NUMERIC"}, {"credit_shock", "NUMERIC"},
	}
	paramColumns = []column{{"key", "TEXT"}, {"value", "TEXT"}}
)

// sqlView implements DataView over any SQL driver.
type sqlView struct {
	dialect dialect
	query   queryFunc
}

func (v sqlView) Cashflows(ctx context.Context, f model.Filter) ([]model.Cashflow, error) {
	where, args := v.dialect.where(f, true)
	return collect(ctx, v.query, "cashflows", selectCashflows+where+orderByDate, args, scanCashflow)
}

func (v sqlView) RWAExposures(ctx context.Context, f model.Filter) ([]model.RWAExposure, error) {
	where, args := v.dialect.where(f, true)
	return collect(ctx, v.query, "rwa", selectRWA+where+orderByDate, args, scanRWA)
}

func (v sqlView) IRRBBInstruments(ctx context.Context, scenarioID *int64) ([]model.IRRBBInstrument, error) {
	where, args := v.dialect.where(model.ForScenario(scenarioID), false)
	return collect(ctx, v.query, "irrbb", selectIRRBB+where+orderByDate, args, scanIRRBB)
}

func (v sqlView) BalanceSheet(ctx context.Context, scenarioID *int64) ([]model.BalanceSheetItem, error) {
	where, args := v.dialect.where(model.ForScenario(scenarioID), false)
	return collect(ctx, v.query, "balance_sheet", selectBalanceSheet+where+orderByDate, args, scanBalanceSheet)
}

func (v sqlView) Scenarios(ctx context.Context) ([]model.Scenario, error) {
	return collect(ctx, v.query, "scenarios", selectScenarios, nil, scanScenario)
}

func (v sqlView) Parameters(ctx context.Context) (map[string]string, error) {
	rs, err := v.query(ctx, selectParams)
	if err != nil {
		return nil, fmt.Errorf("query params: %w", err)
	}
	defer rs.Close()

	params := make(map[string]string)
	for rs.Next() {
		var key, value string
		if err := rs.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan params: %w", err)
		}
		params[key] = value
	}
	return params, rs.Err()
}

func collect[T any](ctx context.Context, query queryFunc, table, q string, args []any, scan func(rows) (T, error)) ([]T, error) {
	rs, err := query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rs.Close()

	out := make([]T, 0)
	for rs.Next() {
		rec, err := scan(rs)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return out, nil
}

func scanCashflow(r rows) (model.Cashflow, error) {
	var c model.Cashflow
	var date, amount, direction, hqla, asf, rsf string
	var maturity *string
	if err := r.Scan(&date, &maturity, &c.Product, &c.Counterparty,
		&amount, &direction, &hqla, &asf, &rsf, &c.ScenarioID); err != nil {
		return c, err
	}
	p := fieldParser{where: "cashflows"}
	c.Date = p.date("date", date)
	if maturity != nil {
		c.MaturityDate = p.date("maturity_date", *maturity)
	}
	c.Amount = p.decimal("amount", amount)
	c.Direction = p.direction(direction)
	c.HQLAType = model.HQLAType(hqla)
	c.ASFFactor = p.decimal("asf_factor", asf)
	c.RSFFactor = p.decimal("rsf_factor", rsf)
	return c, p.err
}

func scanRWA(r rows) (model.RWAExposure, error) {
	var e model.RWAExposure
	var date, approach, amount, weight string
	if err := r.Scan(&date, &e.ExposureID, &e.AssetClass, &approach,
		&amount, &weight, &e.ScenarioID); err != nil {
		return e, err
	}
	p := fieldParser{where: "rwa"}
	e.Date = p.date("date", date)
	e.Approach = model.Approach(approach)
	e.Amount = p.decimal("amount", amount)
	e.RiskWeight = p.decimal("risk_weight", weight)
	return e, p.err
}

func scanIRRBB(r rows) (model.IRRBBInstrument, error) {
	var in model.IRRBBInstrument
	var date, cashflow, bucket, pv01, sens string
	var maturity *string
	if err := r.Scan(&date, &in.Instrument, &cashflow, &maturity,
		&bucket, &pv01, &sens, &in.ScenarioID); err != nil {
		return in, err
	}
	p := fieldParser{where: "irrbb"}
	in.Date = p.date("date", date)
	if maturity != nil {
		in.MaturityDate = p.date("maturity_date", *maturity)
	}
	in.Cashflow = p.decimal("cashflow", cashflow)
	in.TenorBucket = model.TenorBucket(bucket)
	in.PV01 = p.decimal("pv01", pv01)
	in.RateSensitivity = p.decimal("rate_sensitivity", sens)
	return in, p.err
}

func scanBalanceSheet(r rows) (model.BalanceSheetItem, error) {
	var b model.BalanceSheetItem
	var date, item, amount string
	if err := r.Scan(&date, &item, &amount, &b.ScenarioID); err != nil {
		return b, err
	}
	p := fieldParser{where: "balance_sheet"}
	b.Date = p.date("date", date)
	b.Item = model.BalanceSheetLine(item)
	b.Amount = p.decimal("amount", amount)
	return b, p.err
}

func scanScenario(r rows) (model.Scenario, error) {
	var s model.Scenario
	var liq, ir, credit string
	if err := r.Scan(&s.ID, &s.Name, &s.Description, &liq, &ir, &credit); err != nil {
		return s, err
	}
	p := fieldParser{where: "scenarios"}
	s.LiquidityShock = p.decimal("liquidity_shock", liq)
	s.IRShift = p.decimal("ir_shift", ir)
	s.CreditShock = p.decimal("credit_shock", credit)
	return s, p.err
}

// importDataset inserts every record of ds through exec. Scenarios and
// params replace existing rows with the same key; records are appended.
func importDataset(ctx context.Context, d dialect, exec execFunc, ds *Dataset) error {
	run := func(table, q string, args ...any) error {
		if err := exec(ctx, q, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
		return nil
	}
	ins := func(table string, cols []column, args ...any) error {
		return run(table, d.insert(table, cols), args...)
	}

	for _, s := range ds.Scenarios {
		if err := run("scenarios", d.upsert("scenarios", "id", scenarioColumns), s.ID, s.Name, s.Description,
			s.LiquidityShock.String(), s.IRShift.String(), s.CreditShock.String()); err != nil {
			return err
		}
	}
	for k, v := range ds.Params {
		if err := run("params", d.upsert("params", "key", paramColumns), k, v); err != nil {
			return err
		}
	}
	for _, c := range ds.Cashflows {
		if err := ins("cashflows", cashflowColumns, formatDate(c.Date), optionalDateArg(c.MaturityDate),
			c.Product, c.Counterparty, c.Amount.String(), string(c.Direction), string(c.HQLAType),
			c.ASFFactor.String(), c.RSFFactor.String(), scenarioArg(c.ScenarioID)); err != nil {
			return err
		}
	}
	for _, e := range ds.RWA {
		if err := ins("rwa", rwaColumns, formatDate(e.Date), e.ExposureID, e.AssetClass, string(e.Approach),
			e.Amount.String(), e.RiskWeight.String(), scenarioArg(e.ScenarioID)); err != nil {
			return err
		}
	}
	for _, in := range ds.IRRBB {
		if err := ins("irrbb", irrbbColumns, formatDate(in.Date), in.Instrument, in.Cashflow.String(),
			optionalDateArg(in.MaturityDate), string(in.TenorBucket), in.PV01.String(),
			in.RateSensitivity.String(), scenarioArg(in.ScenarioID)); err != nil {
			return err
		}
	}
	for _, b := range ds.BalanceSheet {
		if err := ins("balance_sheet", balanceSheetColumns, formatDate(b.Date), string(b.Item),
			b.Amount.String(), scenarioArg(b.ScenarioID)); err != nil {
			return err
		}
	}
	return nil
}
