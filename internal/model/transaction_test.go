package model

import (
	"errors"
	"testing"
	"time"
)

func validTx() Transaction {
	return Transaction{
		ID:          "tx-1",
		Timestamp:   time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
		Amount:      4250,
		CategoryID:  CategoryGroceries,
		MerchantKey: "whole foods market",
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTx().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"negative amount", func(tx *Transaction) { tx.Amount = -1 }, ErrNegativeAmount},
		{"unknown category", func(tx *Transaction) { tx.CategoryID = "rocketry" }, ErrUnknownCategory},
		{"blank merchant", func(tx *Transaction) { tx.MerchantKey = "   " }, ErrEmptyMerchant},
		{"zero timestamp", func(tx *Transaction) { tx.Timestamp = time.Time{} }, ErrZeroTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestZeroAmountIsValid(t *testing.T) {
	tx := validTx()
	tx.Amount = 0
	if err := tx.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for zero amount", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	b := CategoryBudget{CategoryID: CategoryDining, MonthlyLimit: 50000}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	b.MonthlyLimit = -1
	if err := b.Validate(); !errors.Is(err, ErrNegativeLimit) {
		t.Errorf("Validate() = %v, want ErrNegativeLimit", err)
	}

	b = CategoryBudget{
		CategoryID:   CategoryDining,
		MonthlyLimit: 50000,
		PeriodStart:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := b.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Validate() = %v, want ErrInvalidPeriod", err)
	}
}

func TestBudgetConfigured(t *testing.T) {
	if (CategoryBudget{MonthlyLimit: 0}).Configured() {
		t.Error("Configured() = true for zero limit, want false")
	}
	if !(CategoryBudget{MonthlyLimit: 1}).Configured() {
		t.Error("Configured() = false for positive limit, want true")
	}
}

func TestBudgetContextRemaining(t *testing.T) {
	ctx := BudgetContext{
		Budget:      CategoryBudget{CategoryID: CategoryDining, MonthlyLimit: 100000},
		SpentToDate: 92000,
	}
	if got := ctx.Remaining(); got != 8000 {
		t.Errorf("Remaining() = %d, want 8000", got)
	}

	ctx.SpentToDate = 120000
	if got := ctx.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d, want 0 when overspent", got)
	}
}

func TestWindowAmountSplit(t *testing.T) {
	w := MerchantHistoryWindow{
		MerchantKey: "corner cafe",
		CategoryID:  CategoryDining,
		Points: []HistoryPoint{
			{Amount: 1000, MerchantKey: "corner cafe"},
			{Amount: 2500, MerchantKey: "thai palace"},
			{Amount: 1200, MerchantKey: "corner cafe"},
		},
	}

	if got := w.MerchantAmounts(); len(got) != 2 {
		t.Errorf("MerchantAmounts() len = %d, want 2", len(got))
	}
	if got := w.CategoryAmounts(); len(got) != 3 {
		t.Errorf("CategoryAmounts() len = %d, want 3", len(got))
	}
}
