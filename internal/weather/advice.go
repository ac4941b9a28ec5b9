package weather

import (
	"time"

	"github.com/spendwx/spendwx/internal/model"
)

// adviceKey selects a line from the static advice table. Weekend and friday
// never overlap, so each condition has three variants: weekday, friday, and
// weekend.
type adviceKey struct {
	condition model.Condition
	weekend   bool
	friday    bool
}

var adviceTable = map[adviceKey]string{
	{model.ConditionSunny, false, false}: "Clear skies. Your spending is well under control today.",
	{model.ConditionSunny, false, true}:  "Clear skies into the weekend. You've earned a treat, within reason.",
	{model.ConditionSunny, true, false}:  "A sunny weekend day. Enjoy it without worrying about the budget.",

	{model.ConditionPartlyCloudy, false, false}: "Mostly fine. Keep an eye on the small stuff today.",
	{model.ConditionPartlyCloudy, false, true}:  "A few clouds before the weekend. Plan your weekend spending now.",
	{model.ConditionPartlyCloudy, true, false}:  "Some clouds this weekend. Fine for plans, skip the impulse buys.",

	{model.ConditionCloudy, false, false}: "Overcast. Stick to planned purchases today.",
	{model.ConditionCloudy, false, true}:  "Clouding over before the weekend. Set yourself a weekend cap.",
	{model.ConditionCloudy, true, false}:  "A cloudy weekend day. Cheap plans beat expensive ones today.",

	{model.ConditionRainy, false, false}: "Rain. Spending is running hot, cut back where you can.",
	{model.ConditionRainy, false, true}:  "Rainy going into the weekend. A quiet weekend would help the month.",
	{model.ConditionRainy, true, false}:  "A rainy weekend day. Hold off on anything that can wait.",

	{model.ConditionStormy, false, false}: "Storm warning. Essentials only until things settle.",
	{model.ConditionStormy, false, true}:  "Storm ahead of the weekend. Cancel the expensive plans, keep the cheap ones.",
	{model.ConditionStormy, true, false}:  "Stormy weekend. Spend nothing you don't absolutely have to.",
}

func adviceFor(condition model.Condition, day time.Weekday) string {
	key := adviceKey{
		condition: condition,
		weekend:   isWeekend(day),
		friday:    day == time.Friday,
	}
	if advice, ok := adviceTable[key]; ok {
		return advice
	}
	// Unreachable for known conditions; keep a safe default anyway.
	return adviceTable[adviceKey{model.ConditionSunny, false, false}]
}
