package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input to an amount. Anything that is not a number
// (including blank input) becomes zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// CoerceAmount converts a loosely typed decoded value (from JSON decoded with
// UseNumber, or from YAML) to an amount, falling back to zero.
func CoerceAmount(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case json.Number:
		return ParseAmount(x.String())
	case string:
		return ParseAmount(x)
	case bool:
		if x {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case uint64:
		return ParseAmount(strconv.FormatUint(x, 10))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(x)
	default:
		return decimal.Zero
	}
}

// CoerceBool applies loose truthiness: zero numbers, blank strings and nil are false.
func CoerceBool(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number, int, int64, uint64, float64:
		return !CoerceAmount(x).IsZero()
	default:
		return true
	}
}
