// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spendwx/spendwx/internal/model"
)

// FormatAmount formats a minor-currency-unit amount as a money string.
// e.g., 123456 -> "$1,234.56", -500 -> "-$5.00"
func FormatAmount(cents int64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	if cents < 0 {
		return "-" + FormatAmount(-cents, symbol)
	}
	return fmt.Sprintf("%s%s.%02d", symbol, FormatNumber(cents/100), cents%100)
}

// FormatAmountCompact formats a minor-unit amount without fractional cents
// when the value is a whole number of major units.
func FormatAmountCompact(cents int64, symbol string) string {
	if cents%100 == 0 {
		if symbol == "" {
			symbol = "$"
		}
		if cents < 0 {
			return "-" + FormatAmountCompact(-cents, symbol)
		}
		return symbol + FormatNumber(cents/100)
	}
	return FormatAmount(cents, symbol)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMultiplier formats a spending multiplier, e.g. 5.0 -> "5.0x".
func FormatMultiplier(m float64) string {
	return fmt.Sprintf("%.1fx", m)
}

// FormatSeverity renders a severity with a colored badge.
func FormatSeverity(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return errorStyle.Render("HIGH")
	case model.SeverityMedium:
		return warnStyle.Render("MEDIUM")
	default:
		return mutedStyle.Render("low")
	}
}

// FormatCondition renders a weather condition with its icon.
func FormatCondition(c model.Condition) string {
	switch c {
	case model.ConditionStormy:
		return "⛈  stormy"
	case model.ConditionRainy:
		return "🌧  rainy"
	case model.ConditionCloudy:
		return "☁  cloudy"
	case model.ConditionPartlyCloudy:
		return "⛅ partly cloudy"
	default:
		return "☀  sunny"
	}
}

// FormatRisk renders a risk level with color.
func FormatRisk(r model.RiskLevel) string {
	switch r {
	case model.RiskHigh:
		return errorStyle.Render("high")
	case model.RiskMedium:
		return warnStyle.Render("medium")
	default:
		return costStyle.Render("low")
	}
}

// FormatTrend renders a trend direction as an arrow.
func FormatTrend(t model.Trend) string {
	switch t {
	case model.TrendUp:
		return "↑ up"
	case model.TrendDown:
		return "↓ down"
	default:
		return "→ stable"
	}
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
