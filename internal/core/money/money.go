// Package money formats amounts the way the dashboard shows them
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	crore = 1e7
	lakh  = 1e5
)

// NA is shown for missing values
const NA = "N/A"

var printer = message.NewPrinter(language.English)

// INR formats v as rupees, scaling to crore and lakh for large amounts
//
//	12345678  -> ₹1.23 Cr
//	250000    -> ₹2.5 L
//	1234.5    -> ₹1,234.50
func INR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	switch {
	case v >= crore:
		return "₹" + printer.Sprint(number.Decimal(v/crore, number.MaxFractionDigits(2))) + " Cr"
	case v >= lakh:
		return "₹" + printer.Sprint(number.Decimal(v/lakh, number.MaxFractionDigits(2))) + " L"
	default:
		return "₹" + printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
}

// INRPtr is INR for optional values
func INRPtr(v *float64) string {
	if v == nil {
		return NA
	}
	return INR(*v)
}

// Count formats an integer with thousands grouping
func Count(n int64) string {
	return printer.Sprint(number.Decimal(n))
}
