package transaction

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer renders numbers in US English: dot decimals, comma grouping.
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders an amount as a US dollar string with two decimals
// and thousands separators. Non-finite input is treated as 0; negative
// finite values render as negative currency ("-$5.00").
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}

	return printer.Sprintf("$%.2f", amount)
}

// FormatDate renders a calendar date (or full timestamp) as an abbreviated
// en-US date, e.g. "Jan 15, 2024". Unparsable input renders as the literal
// "Invalid Date" marker rather than an error.
func FormatDate(dateString string) string {
	t, err := parseDate(dateString)
	if err != nil {
		return "Invalid Date"
	}

	return t.Format("Jan 2, 2006")
}
