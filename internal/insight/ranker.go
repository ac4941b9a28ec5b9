// Package insight merges anomaly, forecast, and weather output into a
// bounded, priority-ordered list for presentation.
package insight

import (
	"fmt"
	"sort"

	"github.com/spendwx/spendwx/internal/model"
)

// Config holds the ranker's tunables.
type Config struct {
	// HorizonDays is the look-ahead within which an overspend prediction
	// is actionable; anything further out would only clutter the list.
	HorizonDays int
	// UrgentDays promotes near-term overspend predictions above medium
	// anomalies.
	UrgentDays int
}

// DefaultConfig returns the shipped horizon.
func DefaultConfig() Config {
	return Config{HorizonDays: 10, UrgentDays: 3}
}

// Ranker assembles the final insight list. Never fails; an empty input set
// yields an empty list.
type Ranker struct {
	cfg Config
}

// New returns a ranker using cfg exactly as given, so a deliberate zero
// horizon stays zero. DefaultConfig supplies the shipped values.
func New(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// Priority tiers, ascending order is descending urgency. Weather is always
// last: it is ambient context, not an action item.
const (
	tierHighAnomaly = iota
	tierUrgentPrediction
	tierMediumAnomaly
	tierPrediction
	tierWeather
)

type ranked struct {
	tier    int
	order   int // arrival position, preserved on impact ties
	insight model.RankedInsight
}

// Rank filters, orders, and truncates the engine outputs. Within a tier,
// items sort by estimated financial impact descending; the sort is stable
// so equal-impact items keep their arrival order and the UI stays
// deterministic.
func (r *Ranker) Rank(anomalies []model.AnomalyResult, predictions []model.BudgetPrediction, weather *model.WeatherForecast, maxItems int) []model.RankedInsight {
	if maxItems <= 0 {
		return []model.RankedInsight{}
	}

	var items []ranked
	order := 0
	add := func(tier int, in model.RankedInsight) {
		items = append(items, ranked{tier: tier, order: order, insight: in})
		order++
	}

	for i := range anomalies {
		a := &anomalies[i]
		var tier int
		switch a.Severity {
		case model.SeverityHigh:
			tier = tierHighAnomaly
		case model.SeverityMedium:
			tier = tierMediumAnomaly
		default:
			continue // low severity is not worth surfacing
		}
		add(tier, model.RankedInsight{
			Kind:    model.InsightAnomaly,
			Title:   anomalyTitle(a),
			Impact:  a.Amount,
			Anomaly: a,
		})
	}

	for i := range predictions {
		p := &predictions[i]
		if p.DaysUntilOverspend == nil || *p.DaysUntilOverspend > r.cfg.HorizonDays {
			continue
		}
		tier := tierPrediction
		if *p.DaysUntilOverspend <= r.cfg.UrgentDays {
			tier = tierUrgentPrediction
		}
		add(tier, model.RankedInsight{
			Kind:       model.InsightPrediction,
			Title:      predictionTitle(p),
			Impact:     p.Overage(),
			Prediction: p,
		})
	}

	if weather != nil {
		add(tierWeather, model.RankedInsight{
			Kind:    model.InsightWeather,
			Title:   fmt.Sprintf("Financial weather: %s", weather.Condition),
			Weather: weather,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].tier != items[j].tier {
			return items[i].tier < items[j].tier
		}
		if items[i].insight.Impact != items[j].insight.Impact {
			return items[i].insight.Impact > items[j].insight.Impact
		}
		return items[i].order < items[j].order
	})

	if len(items) > maxItems {
		items = items[:maxItems]
	}

	out := make([]model.RankedInsight, 0, len(items))
	for _, it := range items {
		out = append(out, it.insight)
	}
	return out
}

func anomalyTitle(a *model.AnomalyResult) string {
	return fmt.Sprintf("Unusual %s spend at %s: %s", a.CategoryID, a.MerchantKey, a.Reason)
}

func predictionTitle(p *model.BudgetPrediction) string {
	days := *p.DaysUntilOverspend
	switch days {
	case 0:
		return fmt.Sprintf("%s budget is already overspent", p.CategoryID)
	case 1:
		return fmt.Sprintf("%s on pace to overspend tomorrow", p.CategoryID)
	default:
		return fmt.Sprintf("%s on pace to overspend in %d days", p.CategoryID, days)
	}
}
