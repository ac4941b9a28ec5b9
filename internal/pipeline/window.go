package pipeline

import (
	"sort"
	"time"

	"github.com/spendwx/spendwx/internal/model"
	"github.com/spendwx/spendwx/internal/stats"
)

// WindowOptions bound the derived merchant history view. Zero values fall
// back to the shipped defaults.
type WindowOptions struct {
	LookbackDays int // how far back category history reaches
	MaxPoints    int // cap on points kept, most recent win
}

// DefaultWindowOptions returns the shipped lookback bounds.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{LookbackDays: 90, MaxPoints: 50}
}

func (o WindowOptions) withDefaults() WindowOptions {
	def := DefaultWindowOptions()
	if o.LookbackDays == 0 {
		o.LookbackDays = def.LookbackDays
	}
	if o.MaxPoints == 0 {
		o.MaxPoints = def.MaxPoints
	}
	return o
}

// HistoryWindow builds the bounded merchant/category view the detector
// evaluates against. It keeps same-category transactions inside the
// lookback, ordered by time ascending, truncated to the most recent
// MaxPoints. The caller must not include the candidate transaction itself.
func HistoryWindow(txns []model.Transaction, merchantKey string, categoryID model.CategoryID, asOf time.Time, opts WindowOptions) model.MerchantHistoryWindow {
	opts = opts.withDefaults()
	since := asOf.AddDate(0, 0, -opts.LookbackDays)

	w := model.MerchantHistoryWindow{
		MerchantKey: merchantKey,
		CategoryID:  categoryID,
	}
	for _, tx := range txns {
		if tx.CategoryID != categoryID {
			continue
		}
		if tx.Timestamp.Before(since) || tx.Timestamp.After(asOf) {
			continue
		}
		w.Points = append(w.Points, model.HistoryPoint{
			Time:        tx.Timestamp,
			Amount:      tx.Amount,
			MerchantKey: tx.MerchantKey,
		})
	}

	sort.SliceStable(w.Points, func(i, j int) bool {
		return w.Points[i].Time.Before(w.Points[j].Time)
	})
	if len(w.Points) > opts.MaxPoints {
		w.Points = w.Points[len(w.Points)-opts.MaxPoints:]
	}
	return w
}

// FilterByTime returns transactions whose timestamp falls within
// [since, until).
func FilterByTime(txns []model.Transaction, since, until time.Time) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txns {
		if tx.Timestamp.Before(since) {
			continue
		}
		if !tx.Timestamp.Before(until) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// MonthBounds returns the calendar month boundaries enclosing asOf.
func MonthBounds(asOf time.Time) (start, end time.Time) {
	y, m, _ := asOf.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, asOf.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}

// MonthToDate returns the transactions of asOf's calendar month up to and
// including asOf, optionally restricted to one category.
func MonthToDate(txns []model.Transaction, categoryID model.CategoryID, asOf time.Time) []model.Transaction {
	start, _ := MonthBounds(asOf)
	var result []model.Transaction
	for _, tx := range txns {
		if categoryID != "" && tx.CategoryID != categoryID {
			continue
		}
		if tx.Timestamp.Before(start) || tx.Timestamp.After(asOf) {
			continue
		}
		result = append(result, tx)
	}
	return result
}

// SumAmounts totals a transaction slice in minor units.
func SumAmounts(txns []model.Transaction) int64 {
	var sum int64
	for _, tx := range txns {
		sum += tx.Amount
	}
	return sum
}

// DailyTotals buckets transactions into per-day totals over [since, until),
// one point per day including zero-spend gaps, ordered ascending. The gap
// days matter: a quiet week should pull the weighted average down.
// Days are calendar days in since's location; timestamps stored in other
// locations (the ledger round-trips through UTC) are converted first so a
// late-evening spend lands in the caller's day, not the UTC day.
func DailyTotals(txns []model.Transaction, since, until time.Time) []stats.Point {
	totals := make(map[string]int64)
	for _, tx := range FilterByTime(txns, since, until) {
		totals[tx.Timestamp.In(since.Location()).Format("2006-01-02")] += tx.Amount
	}

	var points []stats.Point
	day := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())
	for day.Before(until) {
		points = append(points, stats.Point{
			Time:  day,
			Value: float64(totals[day.Format("2006-01-02")]),
		})
		day = day.AddDate(0, 0, 1)
	}
	return points
}
