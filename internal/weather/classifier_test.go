package weather

import (
	"testing"
	"time"

	"github.com/spendwx/spendwx/internal/model"
)

func bill(name string, amount int64) model.FixedCost {
	return model.FixedCost{
		Name:    name,
		Amount:  amount,
		DueDate: time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestClassify_QuietDay(t *testing.T) {
	c := New(DefaultConfig())

	fc := c.Classify(0, 0, nil, time.Tuesday)
	if fc.Condition != model.ConditionSunny {
		t.Fatalf("Condition = %v, want sunny", fc.Condition)
	}
	if fc.RiskLevel != model.RiskLow {
		t.Fatalf("RiskLevel = %v, want low", fc.RiskLevel)
	}
}

func TestClassify_ExhaustedBudget(t *testing.T) {
	// Nothing safe to spend: any positive expectation is the worst tier,
	// not a division by zero.
	c := New(DefaultConfig())

	fc := c.Classify(100, 0, nil, time.Tuesday)
	if fc.Condition != model.ConditionStormy {
		t.Fatalf("Condition = %v, want stormy", fc.Condition)
	}
	if fc.RiskLevel != model.RiskHigh {
		t.Fatalf("RiskLevel = %v, want high", fc.RiskLevel)
	}
}

func TestClassify_ConditionChain(t *testing.T) {
	c := New(DefaultConfig())
	rent := bill("rent", 90000)
	power := bill("electricity", 8000)

	cases := []struct {
		name     string
		expected int64
		safe     int64
		upcoming []model.FixedCost
		day      time.Weekday
		want     model.Condition
	}{
		{"well under budget", 4000, 10000, nil, time.Wednesday, model.ConditionSunny},
		{"over half", 6000, 10000, nil, time.Wednesday, model.ConditionPartlyCloudy},
		{"calm but a bill looms", 1000, 10000, []model.FixedCost{rent}, time.Wednesday, model.ConditionPartlyCloudy},
		{"near the line", 9500, 10000, nil, time.Wednesday, model.ConditionCloudy},
		{"weekend clouds earlier", 7500, 10000, nil, time.Saturday, model.ConditionCloudy},
		{"same ratio on a weekday", 7500, 10000, nil, time.Wednesday, model.ConditionPartlyCloudy},
		{"over the line", 12500, 10000, nil, time.Wednesday, model.ConditionRainy},
		{"two bills pending", 1000, 10000, []model.FixedCost{rent, power}, time.Wednesday, model.ConditionRainy},
		{"well over", 16000, 10000, nil, time.Wednesday, model.ConditionStormy},
		{"over the line with a bill", 12500, 10000, []model.FixedCost{rent}, time.Wednesday, model.ConditionStormy},
	}
	for _, tc := range cases {
		fc := c.Classify(tc.expected, tc.safe, tc.upcoming, tc.day)
		if fc.Condition != tc.want {
			t.Errorf("%s: Condition = %v, want %v", tc.name, fc.Condition, tc.want)
		}
	}
}

func TestClassify_MonotoneInExpectedSpending(t *testing.T) {
	// Raising expected spending alone must never improve the condition.
	c := New(DefaultConfig())
	upcoming := []model.FixedCost{bill("rent", 90000)}

	prev := model.ConditionSunny
	for expected := int64(0); expected <= 20000; expected += 250 {
		fc := c.Classify(expected, 10000, upcoming, time.Thursday)
		if fc.Condition < prev {
			t.Fatalf("condition regressed from %v to %v at expected=%d", prev, fc.Condition, expected)
		}
		prev = fc.Condition
	}
}

func TestClassify_ConditionAndRiskDisagree(t *testing.T) {
	c := New(DefaultConfig())

	// Two small pending bills at a calm ratio: the condition chain reads
	// rainy from the bill count while the risk rules stay at medium.
	fc := c.Classify(3000, 10000, []model.FixedCost{bill("music", 1000), bill("cloud storage", 500)}, time.Monday)
	if fc.Condition != model.ConditionRainy {
		t.Fatalf("Condition = %v, want rainy", fc.Condition)
	}
	if fc.RiskLevel != model.RiskMedium {
		t.Fatalf("RiskLevel = %v, want medium (distinct from the rainy condition)", fc.RiskLevel)
	}

	// Conversely a bill bigger than the day's headroom forces high risk
	// while the condition is still only partly cloudy.
	fc = c.Classify(1000, 10000, []model.FixedCost{bill("rent", 90000)}, time.Monday)
	if fc.Condition != model.ConditionPartlyCloudy {
		t.Fatalf("Condition = %v, want partly_cloudy", fc.Condition)
	}
	if fc.RiskLevel != model.RiskHigh {
		t.Fatalf("RiskLevel = %v, want high (bill exceeds safe-to-spend)", fc.RiskLevel)
	}
}

func TestClassify_AdviceDeterministicAndDaySensitive(t *testing.T) {
	c := New(DefaultConfig())

	first := c.Classify(4000, 10000, nil, time.Friday)
	second := c.Classify(4000, 10000, nil, time.Friday)
	if first.Advice != second.Advice {
		t.Fatalf("advice not deterministic: %q vs %q", first.Advice, second.Advice)
	}
	if first.Advice == "" {
		t.Fatal("advice must not be empty")
	}

	weekend := c.Classify(4000, 10000, nil, time.Saturday)
	if weekend.Advice == first.Advice {
		t.Fatal("friday and weekend advice should differ for the same condition")
	}
}

func TestNew_KeepsExplicitZeroThreshold(t *testing.T) {
	// A weekend ratio lowered to zero must survive construction: with it,
	// any weekend spending at all reads cloudy.
	cfg := DefaultConfig()
	cfg.WeekendCloudyRatio = 0
	c := New(cfg)

	fc := c.Classify(3000, 10000, nil, time.Saturday)
	if fc.Condition != model.ConditionCloudy {
		t.Fatalf("Condition = %v, want cloudy with a zero weekend ratio", fc.Condition)
	}

	// The same day under the shipped ratio stays sunny.
	def := New(DefaultConfig()).Classify(3000, 10000, nil, time.Saturday)
	if def.Condition != model.ConditionSunny {
		t.Fatalf("Condition = %v, want sunny under defaults", def.Condition)
	}
}

func TestClassify_UpcomingListBounded(t *testing.T) {
	c := New(DefaultConfig())
	var bills []model.FixedCost
	for i := 0; i < 9; i++ {
		bills = append(bills, bill("bill", 1000))
	}

	fc := c.Classify(1000, 10000, bills, time.Monday)
	if len(fc.UpcomingExpenses) != DefaultConfig().MaxUpcoming {
		t.Fatalf("UpcomingExpenses len = %d, want %d", len(fc.UpcomingExpenses), DefaultConfig().MaxUpcoming)
	}
}
