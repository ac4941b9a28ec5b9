// Package weather turns today's spending pressure into a discrete
// risk state, the "financial weather" shown on the dashboard.
package weather

import (
	"time"

	"github.com/spendwx/spendwx/internal/model"
)

// Config holds the ratio boundaries of the condition and risk rules.
type Config struct {
	StormyRatio        float64 // ratio above which the day is stormy outright
	RainyRatio         float64 // also the stormy boundary when bills loom
	CloudyRatio        float64
	WeekendCloudyRatio float64 // weekends cloud over earlier
	PartlyCloudyRatio  float64
	HighRiskRatio      float64
	MediumRiskRatio    float64
	MaxUpcoming        int // bound on the surfaced bill list
}

// DefaultConfig returns the shipped boundaries.
func DefaultConfig() Config {
	return Config{
		StormyRatio:        1.5,
		RainyRatio:         1.2,
		CloudyRatio:        0.9,
		WeekendCloudyRatio: 0.7,
		PartlyCloudyRatio:  0.5,
		HighRiskRatio:      1.2,
		MediumRiskRatio:    0.8,
		MaxUpcoming:        5,
	}
}

// Classifier assigns conditions. Pure and stateless beyond configuration.
type Classifier struct {
	cfg Config
}

// New returns a classifier using cfg exactly as given, so a deliberate zero
// ratio stays zero. DefaultConfig supplies the shipped boundaries.
func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// conditionInput is everything the ordered condition rules may look at.
type conditionInput struct {
	ratio    float64
	upcoming int // count of known upcoming fixed costs
	weekend  bool
}

// conditionRule pairs a predicate with the condition it assigns. The chain
// is evaluated top to bottom, first match wins; the ordering is the
// precedence, so tests can exercise each rule independently.
type conditionRule struct {
	match     func(in conditionInput) bool
	condition model.Condition
}

func (c *Classifier) conditionRules() []conditionRule {
	cfg := c.cfg
	return []conditionRule{
		{func(in conditionInput) bool {
			return in.ratio > cfg.StormyRatio || (in.upcoming > 0 && in.ratio > cfg.RainyRatio)
		}, model.ConditionStormy},
		{func(in conditionInput) bool {
			return in.ratio > cfg.RainyRatio || in.upcoming >= 2
		}, model.ConditionRainy},
		{func(in conditionInput) bool {
			return in.ratio > cfg.CloudyRatio || (in.weekend && in.ratio > cfg.WeekendCloudyRatio)
		}, model.ConditionCloudy},
		{func(in conditionInput) bool {
			return in.ratio > cfg.PartlyCloudyRatio || in.upcoming > 0
		}, model.ConditionPartlyCloudy},
		{func(in conditionInput) bool { return true }, model.ConditionSunny},
	}
}

// Classify produces today's forecast. expectedSpending and safeToSpend are
// per-day minor-unit amounts; upcoming is the collaborator-supplied bill
// schedule, already limited to the near future.
//
// Condition and risk level are deliberately computed from separate rule
// sets: condition drives the display theme, risk level drives alerting, and
// they may disagree at boundary ratios.
func (c *Classifier) Classify(expectedSpending, safeToSpend int64, upcoming []model.FixedCost, day time.Weekday) model.WeatherForecast {
	// Exhausted budget guard: with nothing safe to spend, any positive
	// expected spending produces an enormous ratio rather than a division
	// by zero, which is exactly the worst tier.
	denom := safeToSpend
	if denom < 1 {
		denom = 1
	}
	ratio := float64(expectedSpending) / float64(denom)

	in := conditionInput{
		ratio:    ratio,
		upcoming: len(upcoming),
		weekend:  isWeekend(day),
	}

	condition := model.ConditionSunny
	for _, rule := range c.conditionRules() {
		if rule.match(in) {
			condition = rule.condition
			break
		}
	}

	bounded := upcoming
	if len(bounded) > c.cfg.MaxUpcoming {
		bounded = bounded[:c.cfg.MaxUpcoming]
	}

	return model.WeatherForecast{
		Condition:        condition,
		ExpectedSpending: expectedSpending,
		SafeToSpend:      safeToSpend,
		RiskLevel:        c.riskLevel(ratio, upcoming, safeToSpend),
		Advice:           adviceFor(condition, day),
		UpcomingExpenses: bounded,
		Day:              day,
	}
}

func (c *Classifier) riskLevel(ratio float64, upcoming []model.FixedCost, safeToSpend int64) model.RiskLevel {
	var upcomingSum int64
	for _, fc := range upcoming {
		upcomingSum += fc.Amount
	}
	switch {
	case ratio > c.cfg.HighRiskRatio || upcomingSum > safeToSpend:
		return model.RiskHigh
	case ratio > c.cfg.MediumRiskRatio || len(upcoming) > 0:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
