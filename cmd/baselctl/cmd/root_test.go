package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselworks/risk-engine/internal/shock"
	"github.com/baselworks/risk-engine/internal/stress"
)

const fixture = `
scenarios:
  - id: 1
    name: ECB stress
params:
  lcr_inflow_cap: "0.75"
cashflows:
  - {date: "2024-01-01", maturity_date: "2024-01-05", product: deposit, amount: 200, direction: inflow, hqlatype: None, asf_factor: 0.9, rsf_factor: 0}
  - {date: "2024-01-01", maturity_date: "2024-03-01", product: govt_bond, amount: 100, direction: inflow, hqlatype: Level1, asf_factor: 0.5, rsf_factor: 0}
  - {date: "2024-01-01", maturity_date: "2024-01-20", product: loan, amount: 200, direction: outflow, hqlatype: None, asf_factor: 0, rsf_factor: 0.85}
  - {date: "2024-01-02", product: repo, amount: 80, direction: outflow, hqlatype: None, asf_factor: 0, rsf_factor: 0.5, scenario_id: 1}
rwa:
  - {date: "2024-01-01", exposure_id: EXP-1, asset_class: Corporate, approach: STD, amount: 1000, risk_weight: 1}
  - {date: "2024-01-01", exposure_id: EXP-2, asset_class: Retail, approach: IRB, amount: 1000, risk_weight: 0.75}
irrbb:
  - {date: "2024-01-01", instrument: FRN, tenor_bucket: 0-1y, pv01: 10}
  - {date: "2024-01-01", instrument: BOND, tenor_bucket: 1-3y, pv01: 20}
balance_sheet:
  - {date: "2024-01-01", item: CET1, amount: 175}
  - {date: "2024-01-01", item: Tier1, amount: 210}
  - {date: "2024-01-01", item: Total Capital, amount: 280}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))
	return path
}

// execute runs baselctl with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func executeJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), "output: %s", out)
}

func TestLCR(t *testing.T) {
	path := writeFixture(t)

	var res map[string]any
	executeJSON(t, &res, "--fixture", path, "--end", "2024-01-01", "lcr")
	assert.Equal(t, "2", res["lcr"])

	var series []map[string]any
	executeJSON(t, &series, "--fixture", path, "lcr", "--series")
	assert.Len(t, series, 2)

	executeJSON(t, &res, "--fixture", path, "--scenario", "1", "lcr")
	assert.Equal(t, "0", res["lcr"])
}

func TestCapital(t *testing.T) {
	path := writeFixture(t)

	var res map[string]any
	executeJSON(t, &res, "--fixture", path, "capital", "--rwa-shock", "0.25")
	assert.Equal(t, "2187.5", res["rwa"])
	assert.Equal(t, "0.08", res["cet1_ratio"])

	var floor map[string]any
	executeJSON(t, &floor, "--fixture", path, "capital", "floor")
	assert.Equal(t, false, floor["breach"])

	var groups []map[string]any
	executeJSON(t, &groups, "--fixture", path, "capital", "rwa", "--by-approach")
	require.Len(t, groups, 2)
	assert.Equal(t, "STD", groups[0]["approach"])

	_, err := execute(t, "--fixture", path, "capital", "--rwa-shock", "-1")
	assert.Error(t, err)
}

func TestIRRBB(t *testing.T) {
	path := writeFixture(t)

	var eve map[string]any
	executeJSON(t, &eve, "--fixture", path, "irrbb", "eve", "--shock-bps", "100")
	assert.Equal(t, "0.3", eve["delta_eve"])

	var custom map[string]any
	executeJSON(t, &custom, "--fixture", path, "irrbb", "custom", "0-1y=200,1-3y=-100")
	assert.Equal(t, "0", custom["delta_eve"])

	var eba map[string][]map[string]any
	executeJSON(t, &eba, "--fixture", path, "irrbb", "eba")
	assert.Len(t, eba["eve"], 6)
	assert.Len(t, eba["nii"], 6)

	var summary map[string]any
	executeJSON(t, &summary, "--fixture", path, "irrbb", "summary", "--shocks", "50,-400")
	assert.Equal(t, "1.2", summary["max_delta_eve"])
}

func TestIRRBB_BadShocks(t *testing.T) {
	path := writeFixture(t)

	_, err := execute(t, "--fixture", path, "irrbb", "custom", "2-4y=100")
	assert.ErrorIs(t, err, shock.ErrUnknownBucket)

	_, err = execute(t, "--fixture", path, "irrbb", "eve", "--shock-bps", "50000")
	assert.ErrorIs(t, err, shock.ErrOutOfRange)
}

func TestStress(t *testing.T) {
	path := writeFixture(t)

	var res map[string]map[string]any
	executeJSON(t, &res, "--fixture", path, "stress", "--rwa-stress", "0.25")
	assert.Equal(t, "0.1", res["base"]["cet1_ratio"])
	assert.Equal(t, "0.08", res["stressed"]["cet1_ratio"])

	_, err := execute(t, "--fixture", path, "stress", "--wholesale", "2")
	assert.ErrorIs(t, err, stress.ErrInvalidInput)
}

func TestThresholds(t *testing.T) {
	path := writeFixture(t)

	var checks []map[string]any
	executeJSON(t, &checks, "--fixture", path, "--end", "2024-01-01", "thresholds")
	require.NotEmpty(t, checks)
	for _, c := range checks {
		assert.Equal(t, false, c["breach"], "metric %v", c["metric"])
	}
}

func TestImportThenQuerySQLite(t *testing.T) {
	path := writeFixture(t)
	db := filepath.Join(t.TempDir(), "risk.db")

	var summary ImportSummary
	executeJSON(t, &summary, "--sqlite", db, "import", path)
	assert.Equal(t, 4, summary.Cashflows)
	assert.Equal(t, 1, summary.Scenarios)

	var scenarios []map[string]any
	executeJSON(t, &scenarios, "--sqlite", db, "scenarios")
	require.Len(t, scenarios, 1)
	assert.Equal(t, "ECB stress", scenarios[0]["name"])

	var res map[string]any
	executeJSON(t, &res, "--sqlite", db, "--end", "2024-01-01", "lcr")
	assert.Equal(t, "2", res["lcr"])
}

func TestImport_RequiresSQLite(t *testing.T) {
	_, err := execute(t, "import", writeFixture(t))
	assert.ErrorContains(t, err, "--sqlite")
}

func TestBadFlags(t *testing.T) {
	path := writeFixture(t)

	_, err := execute(t, "--fixture", path, "--scenario", "one", "lcr")
	assert.Error(t, err)

	_, err = execute(t, "--fixture", path, "--start", "2024/01/01", "nsfr")
	assert.Error(t, err)
}
