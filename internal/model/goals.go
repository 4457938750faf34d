package model

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Goals maps a challenge length to its target cumulative amount.
type Goals map[int]decimal.Decimal

// DefaultGoals returns the built-in targets.
func DefaultGoals() Goals {
	return Goals{
		30: decimal.NewFromInt(13000),
		60: decimal.NewFromInt(26000),
		90: decimal.NewFromInt(39000),
	}
}

// For returns the target for length, or zero when none is set.
func (g Goals) For(length int) decimal.Decimal {
	if v, ok := g[length]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns an independent copy.
func (g Goals) Clone() Goals {
	out := make(Goals, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// MarshalJSON writes string keys ("30") and bare number values.
func (g Goals) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.Number, len(g))
	for k, v := range g {
		raw[strconv.Itoa(k)] = json.Number(v.String())
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts any object; non-integer keys are skipped and values
// are coerced to amounts.
func (g *Goals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Goals, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[n] = CoerceAmount(v)
	}
	*g = out
	return nil
}
