// Package store provides the SQLite-backed transaction ledger. It plays the
// collaborator roles the engine expects: transaction source, budget source,
// and fixed-cost schedule. The engine itself never touches it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger wraps the ledger database.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// AddTransaction records one validated transaction. The raw merchant string
// is kept next to the normalized key for display.
func (l *Ledger) AddTransaction(tx model.Transaction, merchantRaw string) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	_, err := l.db.Exec(`INSERT OR REPLACE INTO transactions
		(id, occurred_at, amount, category, merchant_raw, merchant_key, note, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Timestamp.UTC().Format(time.RFC3339), tx.Amount, string(tx.CategoryID),
		merchantRaw, tx.MerchantKey, tx.Note, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// Entry pairs a transaction with the merchant string as it was entered,
// before normalization.
type Entry struct {
	Transaction model.Transaction
	MerchantRaw string
}

// AddTransactions records a batch atomically.
func (l *Ledger) AddTransactions(entries []Entry) error {
	dbtx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = dbtx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		tx := e.Transaction
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid transaction %s: %w", tx.ID, err)
		}
		raw := e.MerchantRaw
		if raw == "" {
			raw = tx.MerchantKey
		}
		_, err = dbtx.Exec(`INSERT OR REPLACE INTO transactions
			(id, occurred_at, amount, category, merchant_raw, merchant_key, note, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, tx.Timestamp.UTC().Format(time.RFC3339), tx.Amount, string(tx.CategoryID),
			raw, tx.MerchantKey, tx.Note, now,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
		}
	}

	return dbtx.Commit()
}

// Transactions reads every recorded transaction, ordered by occurrence.
func (l *Ledger) Transactions() ([]model.Transaction, error) {
	rows, err := l.db.Query(`SELECT id, occurred_at, amount, category, merchant_key, note
		FROM transactions ORDER BY occurred_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var occurred, category string
		var note sql.NullString

		if err := rows.Scan(&tx.ID, &occurred, &tx.Amount, &category, &tx.MerchantKey, &note); err != nil {
			return nil, err
		}
		tx.Timestamp, _ = time.Parse(time.RFC3339, occurred)
		tx.CategoryID = model.CategoryID(category)
		if note.Valid {
			tx.Note = note.String
		}
		txns = append(txns, tx)
	}
	return txns, rows.Err()
}

// SetBudget stores or replaces the monthly limit for a category.
func (l *Ledger) SetBudget(categoryID model.CategoryID, monthlyLimit int64) error {
	if !categoryID.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, categoryID)
	}
	if monthlyLimit < 0 {
		return fmt.Errorf("%w: %d", model.ErrNegativeLimit, monthlyLimit)
	}

	_, err := l.db.Exec(`INSERT OR REPLACE INTO budgets (category, monthly_limit, updated_at)
		VALUES (?, ?, ?)`,
		string(categoryID), monthlyLimit, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	return nil
}

// Budgets returns the stored limits materialized as active budgets for the
// calendar month enclosing asOf.
func (l *Ledger) Budgets(asOf time.Time) ([]model.CategoryBudget, error) {
	rows, err := l.db.Query("SELECT category, monthly_limit FROM budgets ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	start, end := pipeline.MonthBounds(asOf)
	var budgets []model.CategoryBudget
	for rows.Next() {
		var category string
		var limit int64
		if err := rows.Scan(&category, &limit); err != nil {
			return nil, err
		}
		budgets = append(budgets, model.CategoryBudget{
			CategoryID:   model.CategoryID(category),
			MonthlyLimit: limit,
			PeriodStart:  start,
			PeriodEnd:    end,
		})
	}
	return budgets, rows.Err()
}

// AddFixedCost stores a recurring monthly bill due on dueDay of each month.
func (l *Ledger) AddFixedCost(id, name string, amount int64, dueDay int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", model.ErrNegativeAmount, amount)
	}
	if dueDay < 1 || dueDay > 31 {
		return fmt.Errorf("due day %d out of range", dueDay)
	}

	_, err := l.db.Exec(`INSERT OR REPLACE INTO fixed_costs (id, name, amount, due_day)
		VALUES (?, ?, ?, ?)`, id, name, amount, dueDay)
	if err != nil {
		return fmt.Errorf("saving fixed cost: %w", err)
	}
	return nil
}

// FixedCosts materializes each stored bill's next due date on or after asOf.
// A due day past the end of a short month clamps to its last day.
func (l *Ledger) FixedCosts(asOf time.Time) ([]model.FixedCost, error) {
	rows, err := l.db.Query("SELECT name, amount, due_day FROM fixed_costs ORDER BY due_day, name")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var costs []model.FixedCost
	for rows.Next() {
		var fc model.FixedCost
		var dueDay int
		if err := rows.Scan(&fc.Name, &fc.Amount, &dueDay); err != nil {
			return nil, err
		}
		fc.DueDate = nextDueDate(asOf, dueDay)
		costs = append(costs, fc)
	}
	return costs, rows.Err()
}

// TransactionCount returns the number of recorded transactions.
func (l *Ledger) TransactionCount() (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

func nextDueDate(asOf time.Time, dueDay int) time.Time {
	y, m, d := asOf.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, asOf.Location())
	due := dateWithClampedDay(y, m, dueDay, asOf.Location())
	if due.Before(today) {
		due = dateWithClampedDay(y, m+1, dueDay, asOf.Location())
	}
	return due
}

func dateWithClampedDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
