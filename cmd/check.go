package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
	"github.com/spendwx/spendwx/internal/config"
	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"
)

var (
	flagCheckAmount   string
	flagCheckCategory string
	flagCheckMerchant string
	flagCheckNote     string
	flagCheckDate     string
	flagCheckCommit   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a purchase against your history before committing it",
	Long: `Evaluate a candidate transaction for anomalies against merchant and
category history. With --commit the transaction is recorded afterwards.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&flagCheckAmount, "amount", "a", "", "Amount, e.g. 42.50 (required)")
	checkCmd.Flags().StringVarP(&flagCheckCategory, "category", "c", "", "Category (required)")
	checkCmd.Flags().StringVarP(&flagCheckMerchant, "merchant", "m", "", "Merchant name (required)")
	checkCmd.Flags().StringVar(&flagCheckNote, "note", "", "Optional note")
	checkCmd.Flags().StringVar(&flagCheckDate, "date", "", "Transaction date (YYYY-MM-DD, default: as-of)")
	checkCmd.Flags().BoolVar(&flagCheckCommit, "commit", false, "Record the transaction after evaluating")
	_ = checkCmd.MarkFlagRequired("amount")
	_ = checkCmd.MarkFlagRequired("category")
	_ = checkCmd.MarkFlagRequired("merchant")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	asOf, err := resolveAsOf()
	if err != nil {
		return err
	}

	amount, err := parseAmount(flagCheckAmount)
	if err != nil {
		return err
	}

	category := model.CategoryID(flagCheckCategory)
	if !category.Valid() {
		return fmt.Errorf("unknown category %q (one of: %s)", flagCheckCategory, categoryList())
	}

	when := asOf
	if flagCheckDate != "" {
		when, err = time.ParseInLocation("2006-01-02", flagCheckDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", flagCheckDate)
		}
	}

	candidate := model.Transaction{
		ID:          uuid.NewString(),
		Timestamp:   when,
		Amount:      amount,
		CategoryID:  category,
		MerchantKey: pipeline.NormalizeMerchant(flagCheckMerchant),
		Note:        flagCheckNote,
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	txns, err := ledger.Transactions()
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	budgets, err := ledger.Budgets(asOf)
	if err != nil {
		return fmt.Errorf("loading budgets: %w", err)
	}

	engine := newEngine(cfg)
	result, err := engine.EvaluateCandidate(candidate, txns, budgets, asOf)
	if err != nil {
		return err
	}

	printAnomaly(cfg, candidate, result)

	if flagCheckCommit {
		if err := ledger.AddTransaction(candidate, flagCheckMerchant); err != nil {
			return fmt.Errorf("recording transaction: %w", err)
		}
		fmt.Println("  Recorded.")
		fmt.Println()
	}

	return nil
}

func printAnomaly(cfg config.Config, candidate model.Transaction, result model.AnomalyResult) {
	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Printf("  %s at %s  [%s]\n",
		cli.FormatAmount(candidate.Amount, symbol),
		candidate.MerchantKey,
		candidate.CategoryID,
	)
	fmt.Println()
	fmt.Printf("  Severity: %s\n", cli.FormatSeverity(result.Severity))
	fmt.Printf("  %s\n", result.Reason)

	if c := result.Comparison; c != nil {
		fmt.Printf("  Typical: %s  This: %s (%s)\n",
			cli.FormatAmount(int64(c.Average), symbol),
			cli.FormatAmount(c.Current, symbol),
			cli.FormatMultiplier(c.Multiplier),
		)
	}
	if result.UsedCategory {
		fmt.Println("  Baseline from category history (new merchant).")
	}
	if result.BudgetEscalated {
		fmt.Println("  Raised: this would consume a large share of the remaining budget.")
	}
	fmt.Println()
}

func categoryList() string {
	out := ""
	for i, c := range model.Categories {
		if i > 0 {
			out += ", "
		}
		out += string(c)
	}
	return out
}
