package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCurrency renders an amount for display. INR amounts use crore (Cr)
// and lakh (L) units from one lakh upwards.
func FormatCurrency(amount float64, currency string) string {
	switch currency {
	case CurrencyINR:
		switch {
		case amount >= 10000000:
			return fmt.Sprintf("₹%.2fCr", amount/10000000)
		case amount >= 100000:
			return fmt.Sprintf("₹%.2fL", amount/100000)
		default:
			return "₹" + groupThousands(amount)
		}
	case CurrencyUSD:
		return "$" + groupThousands(amount)
	case CurrencyEUR:
		return "€" + groupThousands(amount)
	case CurrencyGBP:
		return "£" + groupThousands(amount)
	default:
		return fmt.Sprintf("%s %s", groupThousands(amount), currency)
	}
}

// groupThousands formats with two decimals and comma separated thousands.
func groupThousands(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}
	text := fmt.Sprintf("%.2f", amount)
	whole, fraction := text[:len(text)-3], text[len(text)-3:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + fraction
}
