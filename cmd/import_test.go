package cmd

import (
	"strings"
	"testing"

	"github.com/spendwx/spendwx/internal/model"
)

func TestParseCSV(t *testing.T) {
	in := `date,amount,category,merchant,note
2026-08-01,42.50,groceries,Whole Foods Market Inc.,weekly shop
2026-08-02,12.00,dining,Blue Bottle Coffee,
2026-08-03,9.99,unknown-category,Netflix LLC,
not-a-date,5.00,dining,Cafe,
2026-08-04,oops,dining,Cafe,
`

	entries, skipped, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}

	first := entries[0].Transaction
	if first.Amount != 4250 {
		t.Errorf("Amount = %d, want 4250", first.Amount)
	}
	if first.CategoryID != model.CategoryGroceries {
		t.Errorf("CategoryID = %q, want groceries", first.CategoryID)
	}
	if first.MerchantKey != "whole foods market" {
		t.Errorf("MerchantKey = %q, want %q", first.MerchantKey, "whole foods market")
	}
	if entries[0].MerchantRaw != "Whole Foods Market Inc." {
		t.Errorf("MerchantRaw = %q, want the string as written", entries[0].MerchantRaw)
	}
	if first.ID == "" {
		t.Error("ID is empty, want generated")
	}

	// Unknown categories land in the catch-all rather than being dropped.
	if entries[2].Transaction.CategoryID != model.CategoryOther {
		t.Errorf("unknown category mapped to %q, want other", entries[2].Transaction.CategoryID)
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	in := "date,amount,merchant\n2026-08-01,1.00,Cafe\n"
	if _, _, err := parseCSV(strings.NewReader(in)); err == nil {
		t.Error("parseCSV() error = nil, want missing-column error")
	}
}

func TestParseCSVPreservesProvidedID(t *testing.T) {
	in := "id,date,amount,category,merchant\ntx-1,2026-08-01,1.00,dining,Cafe\n"
	entries, _, err := parseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Transaction.ID != "tx-1" {
		t.Errorf("ID = %q, want tx-1", entries[0].Transaction.ID)
	}
}
