package store

// postgresSchema creates the regulatory tables. Amounts are NUMERIC for
// exact decimal precision.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS scenarios (
    id              BIGINT PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    liquidity_shock NUMERIC NOT NULL DEFAULT 0,
    ir_shift        NUMERIC NOT NULL DEFAULT 0,
    credit_shock    NUMERIC NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS params (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cashflows (
    id            BIGSERIAL PRIMARY KEY,
    date          DATE NOT NULL,
    maturity_date DATE,
    product       TEXT NOT NULL,
    counterparty  TEXT NOT NULL,
    amount        NUMERIC NOT NULL CHECK (amount >= 0),
    direction     TEXT NOT NULL CHECK (direction IN ('inflow', 'outflow')),
    hqlatype      TEXT NOT NULL DEFAULT 'None',
    asf_factor    NUMERIC NOT NULL DEFAULT 0,
    rsf_factor    NUMERIC NOT NULL DEFAULT 0,
    scenario_id   BIGINT REFERENCES scenarios (id)
);
CREATE INDEX IF NOT EXISTS cashflows_scenario_date ON cashflows (scenario_id, date);

CREATE TABLE IF NOT EXISTS rwa (
    id          BIGSERIAL PRIMARY KEY,
    date        DATE NOT NULL,
    exposure_id TEXT NOT NULL,
    asset_class TEXT NOT NULL,
    approach    TEXT NOT NULL,
    amount      NUMERIC NOT NULL,
    risk_weight NUMERIC NOT NULL,
    scenario_id BIGINT REFERENCES scenarios (id)
);
CREATE INDEX IF NOT EXISTS rwa_scenario_date ON rwa (scenario_id, date);

CREATE TABLE IF NOT EXISTS irrbb (
    id               BIGSERIAL PRIMARY KEY,
    date             DATE NOT NULL,
    instrument       TEXT NOT NULL,
    cashflow         NUMERIC NOT NULL DEFAULT 0,
    maturity_date    DATE,
    tenor_bucket     TEXT NOT NULL,
    pv01             NUMERIC NOT NULL,
    rate_sensitivity NUMERIC NOT NULL DEFAULT 0,
    scenario_id      BIGINT REFERENCES scenarios (id)
);

CREATE TABLE IF NOT EXISTS balance_sheet (
    id          BIGSERIAL PRIMARY KEY,
    date        DATE NOT NULL,
    item        TEXT NOT NULL,
    amount      NUMERIC NOT NULL,
    scenario_id BIGINT REFERENCES scenarios (id)
);
`

// sqliteSchema mirrors postgresSchema. Amounts are TEXT so decimals
// round-trip exactly.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scenarios (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT NOT NULL DEFAULT '',
    liquidity_shock TEXT NOT NULL DEFAULT '0',
    ir_shift        TEXT NOT NULL DEFAULT '0',
    credit_shock    TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS params (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cashflows (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    date          TEXT NOT NULL,
    maturity_date TEXT,
    product       TEXT NOT NULL,
    counterparty  TEXT NOT NULL,
    amount        TEXT NOT NULL,
    direction     TEXT NOT NULL CHECK (direction IN ('inflow', 'outflow')),
    hqlatype      TEXT NOT NULL DEFAULT 'None',
    asf_factor    TEXT NOT NULL DEFAULT '0',
    rsf_factor    TEXT NOT NULL DEFAULT '0',
    scenario_id   INTEGER REFERENCES scenarios (id)
);
CREATE INDEX IF NOT EXISTS cashflows_scenario_date ON cashflows (scenario_id, date);

CREATE TABLE IF NOT EXISTS rwa (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    date        TEXT NOT NULL,
    exposure_id TEXT NOT NULL,
    asset_class TEXT NOT NULL,
    approach    TEXT NOT NULL,
    amount      TEXT NOT NULL,
    risk_weight TEXT NOT NULL,
    scenario_id INTEGER REFERENCES scenarios (id)
);
CREATE INDEX IF NOT EXISTS rwa_scenario_date ON rwa (scenario_id, date);

CREATE TABLE IF NOT EXISTS irrbb (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    date             TEXT NOT NULL,
    instrument       TEXT NOT NULL,
    cashflow         TEXT NOT NULL DEFAULT '0',
    maturity_date    TEXT,
    tenor_bucket     TEXT NOT NULL,
    pv01             TEXT NOT NULL,
    rate_sensitivity TEXT NOT NULL DEFAULT '0',
    scenario_id      INTEGER REFERENCES scenarios (id)
);

CREATE TABLE IF NOT EXISTS balance_sheet (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    date        TEXT NOT NULL,
    item        TEXT NOT NULL,
    amount      TEXT NOT NULL,
    scenario_id INTEGER REFERENCES scenarios (id)
);
`
