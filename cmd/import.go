package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"
	"github.com/spendwx/spendwx/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import transactions from a CSV export",
	Long: `Import transactions from a CSV file with a header row. Expected
columns: date, amount, category, merchant, and optionally id and note.
Amounts are in major units (e.g. 42.50); dates are YYYY-MM-DD.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	entries, skipped, err := parseCSV(f)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no importable rows in %s", args[0])
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.AddTransactions(entries); err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	if !flagQuiet {
		fmt.Printf("  Imported %d transactions", len(entries))
		if skipped > 0 {
			fmt.Printf(" (%d rows skipped)", skipped)
		}
		fmt.Println()
	}

	return nil
}

// parseCSV reads ledger entries from a CSV stream, keeping the merchant
// string as written alongside its normalized key. Rows that fail to parse
// are skipped rather than aborting the whole import.
func parseCSV(r io.Reader) ([]store.Entry, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "amount", "category", "merchant"} {
		if _, ok := cols[required]; !ok {
			return nil, 0, fmt.Errorf("CSV missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var entries []store.Entry
	skipped := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		when, err := time.ParseInLocation("2006-01-02", field(row, "date"), time.Local)
		if err != nil {
			skipped++
			continue
		}
		amount, err := parseAmount(field(row, "amount"))
		if err != nil {
			skipped++
			continue
		}

		id := field(row, "id")
		if id == "" {
			id = uuid.NewString()
		}

		category := model.CategoryID(strings.ToLower(field(row, "category")))
		if !category.Valid() {
			category = model.CategoryOther
		}

		merchantRaw := field(row, "merchant")
		tx := model.Transaction{
			ID:          id,
			Timestamp:   when,
			Amount:      amount,
			CategoryID:  category,
			MerchantKey: pipeline.NormalizeMerchant(merchantRaw),
			Note:        field(row, "note"),
		}
		if tx.Validate() != nil {
			skipped++
			continue
		}

		entries = append(entries, store.Entry{Transaction: tx, MerchantRaw: merchantRaw})
	}

	return entries, skipped, nil
}
