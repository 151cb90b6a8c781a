package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₦"

// FormatNaira renders an amount with thousands separators, e.g. ₦6,000 or ₦1,500.50.
// Whole amounts drop the fractional part.
func FormatNaira(amount decimal.Decimal) string {
	return CurrencySymbol + FormatAmount(amount)
}

// FormatAmount is FormatNaira without the symbol. It works on the decimal's
// digits directly, so amounts of any size print exactly.
func FormatAmount(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	if amount.IsInteger() {
		s = amount.StringFixed(0)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	out := sign + groupThousands(whole)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
