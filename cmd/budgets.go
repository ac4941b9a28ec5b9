package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Show monthly category budgets",
	RunE:  runBudgets,
}

var budgetsSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set a category's monthly limit (0 disables it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetsSet,
}

func init() {
	budgetsCmd.AddCommand(budgetsSetCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	asOf, err := resolveAsOf()
	if err != nil {
		return err
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	budgets, err := ledger.Budgets(asOf)
	if err != nil {
		return fmt.Errorf("loading budgets: %w", err)
	}
	txns, err := ledger.Transactions()
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	if len(budgets) == 0 {
		fmt.Println("\n  No budgets configured. Run `spendwx budgets set <category> <limit>`.")
		return nil
	}

	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  %s", asOf.Format("Jan 2006"))))
	fmt.Println()

	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		spent := pipeline.SumAmounts(pipeline.MonthToDate(txns, b.CategoryID, asOf))
		if !b.Configured() {
			rows = append(rows, []string{
				string(b.CategoryID), "(unset)", cli.FormatAmount(spent, symbol), "-", "",
			})
			continue
		}
		remaining := b.MonthlyLimit - spent
		rows = append(rows, []string{
			string(b.CategoryID),
			cli.FormatAmount(b.MonthlyLimit, symbol),
			cli.FormatAmount(spent, symbol),
			cli.FormatAmount(remaining, symbol),
			cli.RenderBudgetBar(spent, b.MonthlyLimit, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Limit", "Spent", "Remaining", "Usage"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

func runBudgetsSet(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	category := model.CategoryID(args[0])
	if !category.Valid() {
		return fmt.Errorf("unknown category %q (one of: %s)", args[0], categoryList())
	}

	limit, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	ledger, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer ledger.Close()

	if err := ledger.SetBudget(category, limit); err != nil {
		return fmt.Errorf("setting budget: %w", err)
	}

	if limit == 0 {
		fmt.Printf("  Budget for %s disabled.\n", category)
	} else {
		fmt.Printf("  %s budget set to %s per month.\n",
			category, cli.FormatAmount(limit, cfg.General.Currency))
	}
	return nil
}
