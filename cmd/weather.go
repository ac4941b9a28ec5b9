package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Today's financial weather report",
	RunE:  runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(_ *cobra.Command, _ []string) error {
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

	wx := report.Weather
	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL WEATHER  %s %s",
		cli.FormatDayOfWeek(int(wx.Day)), asOf.Format("Jan 2"))))
	fmt.Println()

	fmt.Printf("  Condition:     %s\n", cli.FormatCondition(wx.Condition))
	fmt.Printf("  Risk:          %s\n", cli.FormatRisk(wx.RiskLevel))
	fmt.Printf("  Expected:      %s today\n", cli.FormatAmount(wx.ExpectedSpending, symbol))
	fmt.Printf("  Safe to spend: %s today\n", cli.FormatAmount(wx.SafeToSpend, symbol))
	fmt.Println()
	fmt.Printf("  %s\n", wx.Advice)

	if spark := spendSparkline(txns, asOf); spark != "" {
		fmt.Println()
		fmt.Printf("  Last 14 days: %s\n", spark)
	}

	if len(wx.UpcomingExpenses) > 0 {
		fmt.Println()
		rows := make([][]string, 0, len(wx.UpcomingExpenses))
		for _, fc := range wx.UpcomingExpenses {
			rows = append(rows, []string{
				fc.Name,
				fc.DueDate.Format("Mon Jan 2"),
				cli.FormatAmountCompact(fc.Amount, symbol),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Coming up",
			Headers: []string{"Bill", "Due", "Amount"},
			Rows:    rows,
		}))
	}
	fmt.Println()

	return nil
}

// spendSparkline renders recent daily totals as a small inline chart.
func spendSparkline(txns []model.Transaction, asOf time.Time) string {
	points := pipeline.DailyTotals(txns, asOf.AddDate(0, 0, -13), asOf)
	if len(points) == 0 {
		return ""
	}
	values := make([]float64, len(points))
	any := false
	for i, p := range points {
		values[i] = p.Value
		if p.Value > 0 {
			any = true
		}
	}
	if !any {
		return ""
	}
	return cli.RenderSparkline(values)
}
