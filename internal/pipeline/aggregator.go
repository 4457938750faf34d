// Package pipeline loads challenge state from the key-value store and derives statistics from it.
package pipeline

import (
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals aggregates the first length records of days. Records past the
// prefix are never read. Every amount in the prefix counts toward Total, done or
// not; untouched days hold zero so they contribute nothing.
func ComputeTotals(days *model.Days, length int, goal decimal.Decimal) model.Totals {
	prefix := days.Prefix(length)

	stats := model.Totals{
		Length: len(prefix),
		Total:  decimal.Zero,
		Goal:   goal,
	}

	for _, d := range prefix {
		stats.Total = stats.Total.Add(d.Amount)
		if !d.Done {
			continue
		}
		stats.DaysDone++
		switch d.Amount.Sign() {
		case 1:
			stats.Wins++
		case -1:
			stats.Losses++
		}
	}

	stats.GoalProgress = GoalProgress(stats.Total, goal)

	if stats.DaysDone > 0 {
		stats.AvgPerDone = stats.Total.Div(decimal.NewFromInt(int64(stats.DaysDone)))
	}
	if stats.Length > 0 {
		stats.AvgPerDay = stats.Total.Div(decimal.NewFromInt(int64(stats.Length)))
	}

	return stats
}

// GoalProgress returns total as a percentage of goal, capped at 100.
// There is no lower bound: a net loss yields a negative percentage.
// A non-positive goal yields 0.
func GoalProgress(total, goal decimal.Decimal) float64 {
	if !goal.IsPositive() {
		return 0
	}
	pct := total.Div(goal).Mul(hundred).InexactFloat64()
	if pct > 100 {
		return 100
	}
	return pct
}
