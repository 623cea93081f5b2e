package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with thousands separators and at most three
// fraction digits: 1408 -> "1,408", 1234.5 -> "1,234.5".
func FormatPrice(d decimal.Decimal) string {
	s := d.Round(3).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

func FormatYen(v int64) string {
	return FormatPrice(decimal.NewFromInt(v))
}
