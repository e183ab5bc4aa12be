package views

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount the way en-IN formats rupees: two decimals, the
// last three integer digits grouped together and the rest in pairs.
func FormatINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")

	return sign + "₹" + groupIndian(whole) + "." + frac
}

// FormatINRFloat is FormatINR for a plain float price.
func FormatINRFloat(amount float64) string {
	return FormatINR(decimal.NewFromFloat(amount))
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
