// Package anomaly classifies single transactions against merchant history.
package anomaly

import (
	"fmt"

	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/stats"
)

// Config holds the detector's tunables. These are product-tuning values,
// not physical constants; the host overrides them from its config file.
type Config struct {
	// MediumZ and HighZ are the z-score tier boundaries. Ties land on the
	// more severe side so the detector never under-warns.
	MediumZ float64
	HighZ   float64
	// MinMerchantPoints is how many same-merchant observations are needed
	// before the merchant population is trusted over the category one.
	MinMerchantPoints int
	// MinBaselinePoints is the floor below which no baseline is fabricated.
	MinBaselinePoints int
	// BudgetEscalation is the fraction of the remaining monthly limit a
	// single purchase may consume before severity is forced to medium.
	BudgetEscalation float64
}

// DefaultConfig returns the shipped tier boundaries.
func DefaultConfig() Config {
	return Config{
		MediumZ:           1.5,
		HighZ:             3.0,
		MinMerchantPoints: 3,
		MinBaselinePoints: 2,
		BudgetEscalation:  0.5,
	}
}

// Detector evaluates candidate transactions. It holds only configuration;
// every Evaluate call is a pure function of its arguments.
type Detector struct {
	cfg Config
}

// New returns a detector using cfg exactly as given, so a deliberate zero
// threshold stays zero. DefaultConfig supplies the shipped boundaries.
func New(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// severityRule pairs a z-score predicate with the severity it assigns.
// Rules are evaluated in order, first match wins, so the precedence is
// readable straight from the table.
type severityRule struct {
	match    func(z float64) bool
	severity model.Severity
}

func (d *Detector) severityRules() []severityRule {
	return []severityRule{
		{func(z float64) bool { return z >= d.cfg.HighZ }, model.SeverityHigh},
		{func(z float64) bool { return z >= d.cfg.MediumZ }, model.SeverityMedium},
		{func(z float64) bool { return true }, model.SeverityLow},
	}
}

// Evaluate classifies one candidate transaction against the supplied history
// window. The window must not contain the candidate itself; the caller owns
// that ordering. budget may be nil when no budget is configured for the
// category. Evaluate never fails for well-formed input regardless of history
// size; a malformed candidate is a caller bug and errors immediately.
func (d *Detector) Evaluate(candidate model.Transaction, history model.MerchantHistoryWindow, budget *model.BudgetContext) (model.AnomalyResult, error) {
	if err := candidate.Validate(); err != nil {
		return model.AnomalyResult{}, fmt.Errorf("invalid candidate: %w", err)
	}

	result := model.AnomalyResult{
		Severity:    model.SeverityLow,
		Amount:      candidate.Amount,
		CategoryID:  candidate.CategoryID,
		MerchantKey: candidate.MerchantKey,
	}

	// Same-merchant amounts are the primary signal; thin merchant history
	// falls back to the whole category, and the result says so since the
	// caller needs to know which population was compared against.
	values := history.MerchantAmounts()
	if len(values) < d.cfg.MinMerchantPoints {
		values = history.CategoryAmounts()
		result.UsedCategory = true
	}

	if len(values) < d.cfg.MinBaselinePoints {
		// Never fabricate a baseline from zero or one data point.
		result.BudgetEscalated = d.escalate(candidate.Amount, budget, &result)
		result.Reason = lookupReason(result.Severity, result.UsedCategory, result.BudgetEscalated, true)
		return result, nil
	}

	amount := float64(candidate.Amount)
	z, err := stats.ZScore(amount, values)
	if err != nil {
		// Guarded by the baseline check above; degrade, never propagate.
		result.Reason = reasonFirstSeen
		return result, nil
	}

	for _, rule := range d.severityRules() {
		if rule.match(z) {
			result.Severity = rule.severity
			break
		}
	}

	result.BudgetEscalated = d.escalate(candidate.Amount, budget, &result)

	if mean, merr := stats.Mean(values); merr == nil && mean > 0 {
		result.Comparison = &model.Comparison{
			Current:    candidate.Amount,
			Average:    mean,
			Multiplier: amount / mean,
		}
	}

	result.Reason = lookupReason(result.Severity, result.UsedCategory, result.BudgetEscalated, false)
	return result, nil
}

// escalate raises severity to at least medium when the candidate alone
// would eat more than the configured fraction of the remaining limit.
// A statistically normal purchase can still be dangerous relative to what
// is left in the budget.
func (d *Detector) escalate(amount int64, budget *model.BudgetContext, result *model.AnomalyResult) bool {
	if budget == nil || !budget.Budget.Configured() {
		return false
	}
	remaining := budget.Remaining()
	if float64(amount) <= d.cfg.BudgetEscalation*float64(remaining) {
		return false
	}
	if result.Severity < model.SeverityMedium {
		result.Severity = model.SeverityMedium
	}
	return true
}
