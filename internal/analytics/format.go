package analytics

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fintrack/internal/core"
)

const currencySymbol = "$"

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders m with grouped thousands and two decimals, e.g. "$1,234.50".
func FormatCurrency(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, currencySymbol, printer.Sprintf("%d", cents/100), cents%100)
}

// FormatCurrencyWhole renders m rounded half up to whole units, e.g. "$1,235".
func FormatCurrencyWhole(m core.Money) string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s", sign, currencySymbol, printer.Sprintf("%d", (cents+50)/100))
}

// FormatAmount renders a fractional currency amount such as an average.
func FormatAmount(units float64) string {
	if math.IsNaN(units) || math.IsInf(units, 0) {
		units = 0
	}
	return FormatCurrency(core.Money{Cents: int64(math.Round(units * 100))})
}

// FormatPercent renders pct with one decimal, e.g. "80.5%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent renders pct with an explicit sign for non-negative values, e.g. "+21.0%".
func FormatSignedPercent(pct float64) string {
	if pct >= 0 {
		return "+" + FormatPercent(pct)
	}
	return FormatPercent(pct)
}
