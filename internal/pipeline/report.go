package pipeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spendwx/spendwx/internal/anomaly"
	"github.com/spendwx/spendwx/internal/forecast"
	"github.com/spendwx/spendwx/internal/insight"
	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/stats"
	"github.com/spendwx/spendwx/internal/weather"
)

// Engine bundles the four components plus the windowing knobs. It holds
// configuration only; every method is a pure function of its arguments, so
// one Engine is safe for any number of concurrent callers.
type Engine struct {
	Detector   *anomaly.Detector
	Forecaster *forecast.Forecaster
	Classifier *weather.Classifier
	Ranker     *insight.Ranker

	Window WindowOptions
	// HalfLifeDays weights the expected-spending estimate toward recent
	// days. Zero falls back to the default.
	HalfLifeDays float64
	// SpendingTrendDays is how much history feeds the expected-spending
	// estimate.
	SpendingTrendDays int
	// UpcomingDays is how far ahead the fixed-cost schedule is scanned.
	UpcomingDays int
	MaxInsights  int
}

// NewEngine assembles an engine with default component configuration.
func NewEngine() *Engine {
	return &Engine{
		Detector:          anomaly.New(anomaly.DefaultConfig()),
		Forecaster:        forecast.New(forecast.DefaultConfig()),
		Classifier:        weather.New(weather.DefaultConfig()),
		Ranker:            insight.New(insight.DefaultConfig()),
		Window:            DefaultWindowOptions(),
		HalfLifeDays:      7,
		SpendingTrendDays: 30,
		UpcomingDays:      7,
		MaxInsights:       5,
	}
}

// Report is the combined payload the presentation layer pulls on a
// dashboard render.
type Report struct {
	AsOf        time.Time
	Predictions []model.BudgetPrediction
	Weather     model.WeatherForecast
	Insights    []model.RankedInsight
}

// Run produces the full report for one user's data: per-category month-end
// predictions, today's weather, and the ranked insight list. anomalies are
// prior evaluation results the caller chose to carry into ranking (it may
// pass nil; the engine never stores them itself).
func (e *Engine) Run(txns []model.Transaction, budgets []model.CategoryBudget, schedule []model.FixedCost, anomalies []model.AnomalyResult, asOf time.Time) (*Report, error) {
	if asOf.IsZero() {
		return nil, model.ErrZeroTimestamp
	}

	var predictions []model.BudgetPrediction
	for _, b := range budgets {
		monthTxns := MonthToDate(txns, b.CategoryID, asOf)
		pred, err := e.Forecaster.Predict(b.CategoryID, monthTxns, b, asOf)
		if err != nil {
			return nil, fmt.Errorf("forecasting %s: %w", b.CategoryID, err)
		}
		if pred != nil {
			predictions = append(predictions, *pred)
		}
	}

	expected := e.expectedSpendingToday(txns, asOf)
	safe := e.safeToSpendToday(txns, budgets, asOf)
	upcoming := UpcomingFixedCosts(schedule, asOf, e.UpcomingDays)

	wx := e.Classifier.Classify(expected, safe, upcoming, asOf.Weekday())
	insights := e.Ranker.Rank(anomalies, predictions, &wx, e.MaxInsights)

	return &Report{
		AsOf:        asOf,
		Predictions: predictions,
		Weather:     wx,
		Insights:    insights,
	}, nil
}

// EvaluateCandidate checks a proposed transaction against history before it
// is committed. txns must be the history snapshot without the candidate;
// serializing evaluate-then-commit per user is the caller's job.
func (e *Engine) EvaluateCandidate(candidate model.Transaction, txns []model.Transaction, budgets []model.CategoryBudget, asOf time.Time) (model.AnomalyResult, error) {
	window := HistoryWindow(txns, candidate.MerchantKey, candidate.CategoryID, asOf, e.Window)

	var budgetCtx *model.BudgetContext
	for _, b := range budgets {
		if b.CategoryID == candidate.CategoryID && b.Configured() {
			budgetCtx = &model.BudgetContext{
				Budget:      b,
				SpentToDate: SumAmounts(MonthToDate(txns, b.CategoryID, asOf)),
			}
			break
		}
	}

	return e.Detector.Evaluate(candidate, window, budgetCtx)
}

// expectedSpendingToday estimates today's spend from the recency-weighted
// average of recent daily totals.
func (e *Engine) expectedSpendingToday(txns []model.Transaction, asOf time.Time) int64 {
	since := asOf.AddDate(0, 0, -e.SpendingTrendDays)
	points := DailyTotals(txns, since, asOf)
	wma, err := stats.WeightedMovingAverage(points, e.HalfLifeDays, asOf)
	if err != nil {
		return 0 // no history yet, expect nothing
	}
	return int64(math.Round(wma))
}

// safeToSpendToday spreads the remaining budgeted headroom over the days
// left in the month. The last day of the month still has one day of
// headroom, not a division by zero.
func (e *Engine) safeToSpendToday(txns []model.Transaction, budgets []model.CategoryBudget, asOf time.Time) int64 {
	var remaining int64
	for _, b := range budgets {
		if !b.Configured() {
			continue
		}
		spent := SumAmounts(MonthToDate(txns, b.CategoryID, asOf))
		if r := b.MonthlyLimit - spent; r > 0 {
			remaining += r
		}
	}

	daysLeft := forecast.DaysIn(asOf) - asOf.Day() + 1 // today counts
	if daysLeft < 1 {
		daysLeft = 1
	}
	return remaining / int64(daysLeft)
}

// UpcomingFixedCosts returns schedule entries due within days of asOf,
// soonest first.
func UpcomingFixedCosts(schedule []model.FixedCost, asOf time.Time, days int) []model.FixedCost {
	cutoff := asOf.AddDate(0, 0, days)
	var out []model.FixedCost
	for _, fc := range schedule {
		if fc.DueDate.Before(asOf) || fc.DueDate.After(cutoff) {
			continue
		}
		out = append(out, fc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}
