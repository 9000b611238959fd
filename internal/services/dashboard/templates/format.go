// Package templates renders the dashboard pages as templ components.
package templates

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits for display. The dashboard is English-only.
var printer = message.NewPrinter(language.English)

// FormatCurrency formats a monetary value with grouped digits.
func FormatCurrency(value float64) string {
	return printer.Sprintf("$%.2f", value)
}

// FormatCount formats an integer with grouped digits.
func FormatCount(value int) string {
	return printer.Sprintf("%d", value)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}

// FormatDate formats a date for display, or a dash for the zero time.
func FormatDate(value time.Time) string {
	if value.IsZero() {
		return "—"
	}
	return value.Format("Jan 2, 2006")
}

// InputDate formats a date for an <input type="date"> value attribute.
func InputDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02")
}
