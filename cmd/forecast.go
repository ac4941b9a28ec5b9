package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Month-end projections per budgeted category",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
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

	txns, err := ledger.Transactions()
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	budgets, err := ledger.Budgets(asOf)
	if err != nil {
		return fmt.Errorf("loading budgets: %w", err)
	}
	schedule, err := ledger.FixedCosts(asOf)
	if err != nil {
		return fmt.Errorf("loading fixed costs: %w", err)
	}

	engine := newEngine(cfg)
	report, err := engine.Run(txns, budgets, schedule, nil, asOf)
	if err != nil {
		return err
	}

	if len(report.Predictions) == 0 {
		fmt.Println("\n  No budgets configured. Run `spendwx budgets set <category> <limit>`.")
		return nil
	}

	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTH-END FORECAST  %s", asOf.Format("Jan 2006"))))
	fmt.Println()

	rows := make([][]string, 0, len(report.Predictions))
	for _, p := range report.Predictions {
		warn := "-"
		if p.DaysUntilOverspend != nil {
			warn = fmt.Sprintf("%dd", *p.DaysUntilOverspend)
		}
		rows = append(rows, []string{
			string(p.CategoryID),
			cli.FormatAmount(p.CurrentSpent, symbol),
			cli.FormatAmount(p.Limit, symbol),
			cli.FormatAmount(p.PredictedTotal, symbol),
			cli.FormatTrend(p.Trend),
			warn,
			cli.FormatPercent(p.Confidence),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Limit", "Projected", "Trend", "Overspend in", "Confidence"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, p := range report.Predictions {
		fmt.Printf("  %-14s %s\n", p.CategoryID, cli.RenderBudgetBar(p.CurrentSpent, p.Limit, 30))
	}
	fmt.Println()

	return nil
}
