// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency (or an unknown one) is configured.
const DefaultCurrency = money.INR

// currency returns a never-nil currency for code.
func currency(code string) *money.Currency {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// FormatAmount formats an amount in the given ISO currency.
// e.g., 1300 INR -> "₹1,300.00", -42.5 USD -> "-$42.50"
func FormatAmount(amount decimal.Decimal, code string) string {
	cur := currency(code)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatSignedAmount is FormatAmount with an explicit "+" on gains.
// Zero is shown without a sign.
func FormatSignedAmount(amount decimal.Decimal, code string) string {
	if amount.IsPositive() {
		return "+" + FormatAmount(amount, code)
	}
	return FormatAmount(amount, code)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatProgress formats a goal percentage that is already scaled to 0-100.
// Negative values are kept.
func FormatProgress(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDays formats a completed-days counter, e.g. "12/30".
func FormatDays(done, length int) string {
	return fmt.Sprintf("%d/%d", done, length)
}

// FormatCompact formats an amount with k/M suffixes for tight spaces.
// e.g., 500 -> "500", 1300 -> "1.3k", -25000 -> "-25k"
func FormatCompact(amount decimal.Decimal) string {
	f := amount.InexactFloat64()
	abs := math.Abs(f)

	var s string
	switch {
	case abs >= 1_000_000:
		s = strconv.FormatFloat(abs/1_000_000, 'f', 1, 64) + "M"
	case abs >= 1_000:
		s = strconv.FormatFloat(abs/1_000, 'f', 1, 64) + "k"
	default:
		s = amount.Abs().Round(0).String()
	}
	s = strings.Replace(s, ".0k", "k", 1)
	s = strings.Replace(s, ".0M", "M", 1)

	if f < 0 && s != "0" {
		return "-" + s
	}
	return s
}
