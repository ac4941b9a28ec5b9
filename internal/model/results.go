package model

import "time"

// Severity grades how unusual a single transaction is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Comparison relates a candidate amount to its historical baseline.
// It is absent from an AnomalyResult when history is too sparse for a
// meaningful baseline.
type Comparison struct {
	Current    int64   // candidate amount, minor units
	Average    float64 // baseline mean, minor units
	Multiplier float64 // Current / Average
}

// AnomalyResult is the verdict on one candidate transaction. It is owned by
// the evaluation that produced it and holds no references back into the
// transaction log.
type AnomalyResult struct {
	Severity        Severity
	Reason          string
	Comparison      *Comparison // nil when no baseline could be computed
	Amount          int64       // the evaluated candidate amount
	CategoryID      CategoryID
	MerchantKey     string
	UsedCategory    bool // population fell back from merchant to category
	BudgetEscalated bool // severity raised by remaining-budget pressure
}

// Trend classifies a category's projected month against its limit.
type Trend int

const (
	TrendStable Trend = iota
	TrendUp
	TrendDown
)

func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	case TrendStable:
		return "stable"
	default:
		return "unknown"
	}
}

// BudgetPrediction is the month-end projection for one budgeted category.
type BudgetPrediction struct {
	CategoryID     CategoryID
	CurrentSpent   int64
	Limit          int64
	PredictedTotal int64
	// DaysUntilOverspend is nil both when there is no pace to extrapolate
	// from and when the limit holds for the rest of the period; the two
	// render identically as "no warning".
	DaysUntilOverspend *int
	Confidence         float64 // 0..1, grows as the month progresses
	Trend              Trend
}

// Overage returns how far the projection exceeds the limit, floored at zero.
func (p BudgetPrediction) Overage() int64 {
	o := p.PredictedTotal - p.Limit
	if o < 0 {
		return 0
	}
	return o
}

// Condition is the financial-weather state, strictly ordered by risk.
type Condition int

const (
	ConditionSunny Condition = iota
	ConditionPartlyCloudy
	ConditionCloudy
	ConditionRainy
	ConditionStormy
)

func (c Condition) String() string {
	switch c {
	case ConditionSunny:
		return "sunny"
	case ConditionPartlyCloudy:
		return "partly_cloudy"
	case ConditionCloudy:
		return "cloudy"
	case ConditionRainy:
		return "rainy"
	case ConditionStormy:
		return "stormy"
	default:
		return "unknown"
	}
}

// RiskLevel drives alerting thresholds. It is computed from rules that
// overlap but do not coincide with the condition rules, so the two can
// disagree near boundaries.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// WeatherForecast is the daily risk classification for today's spending.
// Amounts are per-day minor units.
type WeatherForecast struct {
	Condition        Condition
	ExpectedSpending int64
	SafeToSpend      int64
	RiskLevel        RiskLevel
	Advice           string
	UpcomingExpenses []FixedCost
	Day              time.Weekday
}

// InsightKind tags what a ranked insight was derived from.
type InsightKind int

const (
	InsightAnomaly InsightKind = iota
	InsightPrediction
	InsightWeather
)

func (k InsightKind) String() string {
	switch k {
	case InsightAnomaly:
		return "anomaly"
	case InsightPrediction:
		return "prediction"
	case InsightWeather:
		return "weather"
	default:
		return "unknown"
	}
}

// RankedInsight is one presentation-ready item in the bounded insight list.
// Exactly one of Anomaly, Prediction, Weather is set, matching Kind.
type RankedInsight struct {
	Kind       InsightKind
	Title      string
	Impact     int64 // estimated financial impact, minor units
	Anomaly    *AnomalyResult
	Prediction *BudgetPrediction
	Weather    *WeatherForecast
}
