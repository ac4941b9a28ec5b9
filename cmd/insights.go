package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendwx/spendwx/internal/cli"
	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/pipeline"
)

var flagInsightsMax int

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Ranked list of what deserves attention",
	RunE:  runInsights,
}

func init() {
	insightsCmd.Flags().IntVar(&flagInsightsMax, "max", 0, "Max insights to show (default: config)")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if flagInsightsMax > 0 {
		cfg.General.MaxInsights = flagInsightsMax
	}

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

	// Re-evaluate the recent ledger so notable past purchases surface in
	// the ranking, not just the candidate-time checks.
	anomalies := recentAnomalies(engine, txns, budgets, asOf)

	report, err := engine.Run(txns, budgets, schedule, anomalies, asOf)
	if err != nil {
		return err
	}

	symbol := cfg.General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()

	if len(report.Insights) == 0 {
		fmt.Println("  Nothing needs your attention.")
		fmt.Println()
		return nil
	}

	for i, ins := range report.Insights {
		fmt.Printf("  %d. %s\n", i+1, ins.Title)
		switch ins.Kind {
		case model.InsightAnomaly:
			a := ins.Anomaly
			fmt.Printf("     %s  %s at %s\n",
				cli.FormatSeverity(a.Severity),
				cli.FormatAmount(a.Amount, symbol),
				a.MerchantKey,
			)
		case model.InsightPrediction:
			p := ins.Prediction
			fmt.Printf("     Projected %s of a %s limit (%s)\n",
				cli.FormatAmount(p.PredictedTotal, symbol),
				cli.FormatAmount(p.Limit, symbol),
				cli.FormatTrend(p.Trend),
			)
		case model.InsightWeather:
			fmt.Printf("     %s, safe to spend %s today\n",
				cli.FormatCondition(ins.Weather.Condition),
				cli.FormatAmount(ins.Weather.SafeToSpend, symbol),
			)
		}
		fmt.Println()
	}

	return nil
}

// recentAnomalies replays the last week of transactions through the
// detector, each against the history that preceded it.
func recentAnomalies(engine *pipeline.Engine, txns []model.Transaction, budgets []model.CategoryBudget, asOf time.Time) []model.AnomalyResult {
	since := asOf.AddDate(0, 0, -7)

	var out []model.AnomalyResult
	for i, tx := range txns {
		if tx.Timestamp.Before(since) || tx.Timestamp.After(asOf) {
			continue
		}
		result, err := engine.EvaluateCandidate(tx, txns[:i], budgets, tx.Timestamp)
		if err != nil {
			continue
		}
		if result.Severity >= model.SeverityMedium {
			out = append(out, result)
		}
	}
	return out
}
