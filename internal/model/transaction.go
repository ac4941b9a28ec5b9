// Package model defines domain types for the spendwx engine.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CategoryID identifies one of the closed set of spending categories.
type CategoryID string

const (
	CategoryGroceries     CategoryID = "groceries"
	CategoryDining        CategoryID = "dining"
	CategoryTransport     CategoryID = "transport"
	CategoryUtilities     CategoryID = "utilities"
	CategoryEntertainment CategoryID = "entertainment"
	CategoryShopping      CategoryID = "shopping"
	CategoryHealth        CategoryID = "health"
	CategoryTravel        CategoryID = "travel"
	CategorySubscriptions CategoryID = "subscriptions"
	CategoryOther         CategoryID = "other"
)

// Categories lists every known category in display order.
var Categories = []CategoryID{
	CategoryGroceries,
	CategoryDining,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryTravel,
	CategorySubscriptions,
	CategoryOther,
}

// Valid reports whether the category is part of the closed enumeration.
func (c CategoryID) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyMerchant   = errors.New("empty merchant key")
	ErrZeroTimestamp   = errors.New("timestamp cannot be zero")
	ErrNegativeLimit   = errors.New("monthly limit must not be negative")
	ErrInvalidPeriod   = errors.New("period end before period start")
)

// Transaction is a single recorded money movement. Amounts are in minor
// currency units (cents); once recorded a transaction never changes.
type Transaction struct {
	ID          string
	Timestamp   time.Time // when the spend occurred, not when it was recorded
	Amount      int64
	CategoryID  CategoryID
	MerchantKey string // normalized merchant identity, see pipeline.NormalizeMerchant
	Note        string
}

// Validate reports the first malformation found, or nil for a well-formed
// transaction. Callers must validate before handing transactions to the
// engine; the engine treats malformed input as a caller bug.
func (t Transaction) Validate() error {
	if t.Amount < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, t.Amount)
	}
	if !t.CategoryID.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, t.CategoryID)
	}
	if strings.TrimSpace(t.MerchantKey) == "" {
		return ErrEmptyMerchant
	}
	if t.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	return nil
}

// CategoryBudget is the monthly spending limit for one category.
// A zero MonthlyLimit means no budget is configured; forecasting is
// suppressed rather than divided by zero.
type CategoryBudget struct {
	CategoryID   CategoryID
	MonthlyLimit int64
	PeriodStart  time.Time
	PeriodEnd    time.Time
}

// Validate checks the budget's own invariants.
func (b CategoryBudget) Validate() error {
	if !b.CategoryID.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, b.CategoryID)
	}
	if b.MonthlyLimit < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLimit, b.MonthlyLimit)
	}
	if !b.PeriodStart.IsZero() && !b.PeriodEnd.IsZero() && b.PeriodEnd.Before(b.PeriodStart) {
		return ErrInvalidPeriod
	}
	return nil
}

// Configured reports whether the budget actually bounds spending.
func (b CategoryBudget) Configured() bool {
	return b.MonthlyLimit > 0
}

// BudgetContext pairs an active budget with the month-to-date spend already
// recorded against it, which is what the anomaly detector needs to judge a
// candidate against the remaining headroom.
type BudgetContext struct {
	Budget      CategoryBudget
	SpentToDate int64
}

// Remaining returns the unspent part of the limit, floored at zero.
func (b BudgetContext) Remaining() int64 {
	r := b.Budget.MonthlyLimit - b.SpentToDate
	if r < 0 {
		return 0
	}
	return r
}

// FixedCost is one known upcoming bill or subscription charge, supplied by
// the bill-schedule collaborator. The engine never infers these.
type FixedCost struct {
	Name    string
	Amount  int64
	DueDate time.Time
}

// HistoryPoint is one past spend inside a MerchantHistoryWindow.
type HistoryPoint struct {
	Time        time.Time
	Amount      int64
	MerchantKey string
}

// MerchantHistoryWindow is a bounded, time-ordered view over past spends in
// one category, tagged by merchant so the detector can choose between the
// same-merchant and same-category populations. It is derived on demand and
// never persisted.
type MerchantHistoryWindow struct {
	MerchantKey string
	CategoryID  CategoryID
	Points      []HistoryPoint // ascending by time
}

// MerchantAmounts returns the amounts for the window's own merchant.
func (w MerchantHistoryWindow) MerchantAmounts() []float64 {
	var out []float64
	for _, p := range w.Points {
		if p.MerchantKey == w.MerchantKey {
			out = append(out, float64(p.Amount))
		}
	}
	return out
}

// CategoryAmounts returns every amount in the window regardless of merchant.
func (w MerchantHistoryWindow) CategoryAmounts() []float64 {
	out := make([]float64, 0, len(w.Points))
	for _, p := range w.Points {
		out = append(out, float64(p.Amount))
	}
	return out
}
