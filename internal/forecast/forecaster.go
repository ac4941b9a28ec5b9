// Package forecast projects month-end category spend from pace to date.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/stats"
)

// Config holds the forecaster's tunables.
type Config struct {
	// TrendDeadBand is the tolerance around the limit within which the
	// trend reads stable, so noise near the boundary doesn't flip the
	// classification transaction to transaction.
	TrendDeadBand float64
}

// DefaultConfig returns the shipped dead-band.
func DefaultConfig() Config {
	return Config{TrendDeadBand: 0.10}
}

// Forecaster projects category spend. Pure: identical inputs always yield
// identical predictions, with asOf the only notion of "now".
type Forecaster struct {
	cfg Config
}

// New returns a forecaster using cfg exactly as given, so a deliberate zero
// dead-band stays zero. DefaultConfig supplies the shipped value.
func New(cfg Config) *Forecaster {
	return &Forecaster{cfg: cfg}
}

// DaysIn returns the number of days in asOf's month.
func DaysIn(asOf time.Time) int {
	y, m, _ := asOf.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, asOf.Location()).Day()
}

// Predict projects the month-end total for one category from its
// month-to-date transactions. A nil prediction with a nil error means no
// budget is configured and there is nothing to forecast. Predict errors
// only on genuinely invalid input.
func (f *Forecaster) Predict(categoryID model.CategoryID, monthToDate []model.Transaction, budget model.CategoryBudget, asOf time.Time) (*model.BudgetPrediction, error) {
	if asOf.IsZero() {
		return nil, model.ErrZeroTimestamp
	}
	if err := budget.Validate(); err != nil {
		return nil, fmt.Errorf("invalid budget: %w", err)
	}
	if !budget.Configured() {
		return nil, nil
	}

	var currentSpent int64
	for _, tx := range monthToDate {
		if tx.Amount < 0 {
			return nil, fmt.Errorf("transaction %s: %w", tx.ID, model.ErrNegativeAmount)
		}
		currentSpent += tx.Amount
	}

	dayOfMonth := asOf.Day()
	daysInMonth := DaysIn(asOf)
	daysRemaining := daysInMonth - dayOfMonth // 0 on the last day

	var dailyAverage float64
	if dayOfMonth > 0 {
		dailyAverage = float64(currentSpent) / float64(dayOfMonth)
	}

	predictedTotal := currentSpent + int64(math.Round(dailyAverage*float64(daysRemaining)))

	pred := &model.BudgetPrediction{
		CategoryID:     categoryID,
		CurrentSpent:   currentSpent,
		Limit:          budget.MonthlyLimit,
		PredictedTotal: predictedTotal,
		Confidence:     stats.ConfidenceFromProgress(float64(dayOfMonth) / float64(daysInMonth)),
		Trend:          f.trend(predictedTotal, budget.MonthlyLimit),
	}

	pred.DaysUntilOverspend = daysUntilOverspend(currentSpent, budget.MonthlyLimit, dailyAverage, daysRemaining)
	return pred, nil
}

// daysUntilOverspend returns 0 when already over, nil when there is no pace
// to extrapolate from, and nil when the limit holds for the rest of the
// period at the current pace. The UI treats "will not overspend" and
// "cannot compute" identically, so the safe boundary is not a false alarm.
func daysUntilOverspend(currentSpent, limit int64, dailyAverage float64, daysRemaining int) *int {
	if currentSpent >= limit {
		zero := 0
		return &zero
	}
	if dailyAverage <= 0 {
		return nil
	}
	days := int(math.Floor(float64(limit-currentSpent) / dailyAverage))
	if days > daysRemaining {
		return nil
	}
	return &days
}

func (f *Forecaster) trend(predictedTotal, limit int64) model.Trend {
	upper := float64(limit) * (1 + f.cfg.TrendDeadBand)
	lower := float64(limit) * (1 - f.cfg.TrendDeadBand)
	switch {
	case float64(predictedTotal) > upper:
		return model.TrendUp
	case float64(predictedTotal) < lower:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}
