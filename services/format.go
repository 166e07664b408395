package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with thousands grouping, two decimal
// places and a currency code suffix, e.g. "1,234,567.89 SAR".
func FormatMoney(amount decimal.Decimal, currency string) string {
	return FormatAmount(amount) + " " + currency
}

// FormatAmount renders an amount with thousands grouping and exactly two
// decimal places, without a currency code.
func FormatAmount(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(MoneyPlaces)

	parts := strings.SplitN(raw, ".", 2)
	result := groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatQty renders a quantity: whole numbers without decimals, fractional
// values with two decimal places.
func FormatQty(qty decimal.Decimal) string {
	if qty.Equal(qty.Truncate(0)) {
		return qty.StringFixed(0)
	}
	return qty.StringFixed(2)
}
