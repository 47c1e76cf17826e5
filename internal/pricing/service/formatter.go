package service

import (
	"fmt"
	"strings"
)

// currencySymbols covers the currencies tenants actually operate in. Unknown
// codes fall back to "<amount> <code>".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"TRY": "₺",
	"JPY": "¥",
	"KRW": "₩",
	"CHF": "CHF ",
	"AUD": "A$",
	"CAD": "C$",
}

// zeroDecimalCurrencies have no minor unit exponent.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
}

// formatAmount renders a minor-unit amount as a display string, e.g.
// 123450 USD -> "$1,234.50", 5000 JPY -> "¥5,000".
func formatAmount(minor int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	var body string
	if zeroDecimalCurrencies[currency] {
		body = groupThousands(fmt.Sprintf("%d", minor))
	} else {
		major := minor / 100
		cents := minor % 100
		if cents < 0 {
			cents = -cents
		}
		body = fmt.Sprintf("%s.%02d", groupThousands(fmt.Sprintf("%d", major)), cents)
	}

	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + body
	}
	return body + " " + currency
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	n := len(digits)
	if n <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
