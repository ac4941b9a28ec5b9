package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id            TEXT PRIMARY KEY,
    occurred_at   TEXT NOT NULL,
    amount        INTEGER NOT NULL,
    category      TEXT NOT NULL,
    merchant_raw  TEXT NOT NULL,
    merchant_key  TEXT NOT NULL,
    note          TEXT,
    recorded_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budgets (
    category      TEXT PRIMARY KEY,
    monthly_limit INTEGER NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fixed_costs (
    id            TEXT PRIMARY KEY,
    name          TEXT NOT NULL,
    amount        INTEGER NOT NULL,
    due_day       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_occurred ON transactions(occurred_at);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
CREATE INDEX IF NOT EXISTS idx_transactions_merchant ON transactions(merchant_key);
`
