package anomaly

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/spendwx/spendwx/internal/model"
)

func candidateTx(amount int64) model.Transaction {
	return model.Transaction{
		ID:          "tx-candidate",
		Timestamp:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Amount:      amount,
		CategoryID:  model.CategoryDining,
		MerchantKey: "corner bistro",
	}
}

// window builds a history window for "corner bistro" in dining, with the
// given same-merchant amounts followed by other-merchant amounts.
func window(t *testing.T, merchant []int64, others []int64) model.MerchantHistoryWindow {
	t.Helper()
	w := model.MerchantHistoryWindow{
		MerchantKey: "corner bistro",
		CategoryID:  model.CategoryDining,
	}
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, a := range merchant {
		w.Points = append(w.Points, model.HistoryPoint{
			Time: base.AddDate(0, 0, i), Amount: a, MerchantKey: "corner bistro",
		})
	}
	for i, a := range others {
		w.Points = append(w.Points, model.HistoryPoint{
			Time: base.AddDate(0, 0, len(merchant)+i), Amount: a, MerchantKey: "noodle bar",
		})
	}
	return w
}

func TestEvaluate_EmptyHistory(t *testing.T) {
	d := New(DefaultConfig())

	res, err := d.Evaluate(candidateTx(2500), window(t, nil, nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity != model.SeverityLow {
		t.Fatalf("severity = %v, want low", res.Severity)
	}
	if res.Comparison != nil {
		t.Fatal("comparison should be absent with no baseline")
	}
	if res.Reason == "" {
		t.Fatal("reason must not be empty")
	}
}

func TestEvaluate_SinglePointStaysLow(t *testing.T) {
	d := New(DefaultConfig())

	res, err := d.Evaluate(candidateTx(90000), window(t, []int64{1000}, nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity != model.SeverityLow {
		t.Fatalf("severity = %v, want low below the baseline floor", res.Severity)
	}
	if res.Comparison != nil {
		t.Fatal("comparison should be absent below the baseline floor")
	}
}

func TestEvaluate_ConstantHistorySpike(t *testing.T) {
	// History [1000,1000,1000,1000], candidate 5000: zero spread, so the
	// sentinel path fires and a differing value classifies high.
	d := New(DefaultConfig())

	res, err := d.Evaluate(candidateTx(5000), window(t, []int64{1000, 1000, 1000, 1000}, nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity != model.SeverityHigh {
		t.Fatalf("severity = %v, want high", res.Severity)
	}
	if res.UsedCategory {
		t.Fatal("merchant population was large enough, fallback should not fire")
	}
	if res.Comparison == nil {
		t.Fatal("comparison missing")
	}
	if math.Abs(res.Comparison.Multiplier-5.0) > 1e-12 {
		t.Fatalf("multiplier = %v, want 5.0", res.Comparison.Multiplier)
	}
}

func TestEvaluate_CategoryFallback(t *testing.T) {
	d := New(DefaultConfig())

	// Two merchant points is below the trust floor; category amounts fill in.
	res, err := d.Evaluate(candidateTx(2000), window(t, []int64{1800, 2100}, []int64{1900, 2000, 2200}), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.UsedCategory {
		t.Fatal("expected category fallback to be reported")
	}
	if res.Severity != model.SeverityLow {
		t.Fatalf("severity = %v, want low for a typical amount", res.Severity)
	}
}

func TestEvaluate_TierBoundariesInclusive(t *testing.T) {
	// History mean 1000, sample stddev 1000 (constructed), so z equals
	// (amount-1000)/1000 exactly. Ties must land on the severer tier.
	history := window(t, []int64{0, 1000, 2000}, nil)
	d := New(DefaultConfig())

	cases := []struct {
		amount int64
		want   model.Severity
	}{
		{2499, model.SeverityLow},    // z just under 1.5
		{2500, model.SeverityMedium}, // z exactly 1.5
		{3999, model.SeverityMedium}, // z just under 3.0
		{4000, model.SeverityHigh},   // z exactly 3.0
	}
	for _, tc := range cases {
		res, err := d.Evaluate(candidateTx(tc.amount), history, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Severity != tc.want {
			t.Errorf("amount %d: severity = %v, want %v", tc.amount, res.Severity, tc.want)
		}
	}
}

func TestEvaluate_BudgetEscalation(t *testing.T) {
	d := New(DefaultConfig())
	history := window(t, []int64{5000, 5100, 4900, 5000}, nil)
	budget := &model.BudgetContext{
		Budget: model.CategoryBudget{
			CategoryID:   model.CategoryDining,
			MonthlyLimit: 100000,
		},
		SpentToDate: 92000, // 8000 remaining
	}

	// 5000 is statistically normal here but eats 62% of the remaining limit.
	res, err := d.Evaluate(candidateTx(5000), history, budget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity < model.SeverityMedium {
		t.Fatalf("severity = %v, want at least medium after escalation", res.Severity)
	}
	if !res.BudgetEscalated {
		t.Fatal("expected escalation flag")
	}

	// Same purchase with plenty of headroom stays low.
	budget.SpentToDate = 10000
	res, err = d.Evaluate(candidateTx(5000), history, budget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity != model.SeverityLow || res.BudgetEscalated {
		t.Fatalf("severity = %v escalated = %v, want low/false with headroom", res.Severity, res.BudgetEscalated)
	}
}

func TestEvaluate_EscalationDoesNotDemote(t *testing.T) {
	d := New(DefaultConfig())
	history := window(t, []int64{1000, 1000, 1000, 1000}, nil)
	budget := &model.BudgetContext{
		Budget:      model.CategoryBudget{CategoryID: model.CategoryDining, MonthlyLimit: 1000000},
		SpentToDate: 0,
	}

	res, err := d.Evaluate(candidateTx(5000), history, budget)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Severity != model.SeverityHigh {
		t.Fatalf("severity = %v, want high preserved under a roomy budget", res.Severity)
	}
}

func TestEvaluate_ReasonDeterministic(t *testing.T) {
	d := New(DefaultConfig())
	history := window(t, []int64{1000, 1000, 1000, 1000}, nil)

	first, err := d.Evaluate(candidateTx(5000), history, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.Evaluate(candidateTx(5000), history, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Reason != second.Reason {
		t.Fatalf("reason not deterministic: %q vs %q", first.Reason, second.Reason)
	}
	if first.Reason == "" {
		t.Fatal("reason must not be empty")
	}
}

func TestEvaluate_MalformedCandidate(t *testing.T) {
	d := New(DefaultConfig())

	bad := candidateTx(100)
	bad.CategoryID = "snacks-and-misc"
	if _, err := d.Evaluate(bad, window(t, nil, nil), nil); !errors.Is(err, model.ErrUnknownCategory) {
		t.Fatalf("err = %v, want ErrUnknownCategory", err)
	}

	neg := candidateTx(100)
	neg.Amount = -1
	if _, err := d.Evaluate(neg, window(t, nil, nil), nil); !errors.Is(err, model.ErrNegativeAmount) {
		t.Fatalf("err = %v, want ErrNegativeAmount", err)
	}
}
