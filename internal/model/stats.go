package model

import "github.com/shopspring/decimal"

// Totals holds the statistics derived from the active prefix of the day store.
// They are recomputed on demand and never persisted.
type Totals struct {
	Length   int
	Total    decimal.Decimal
	DaysDone int
	Wins     int
	Losses   int

	Goal         decimal.Decimal
	GoalProgress float64 // percent, capped at 100 but not floored

	AvgPerDone decimal.Decimal // Total / DaysDone, zero when nothing is done
	AvgPerDay  decimal.Decimal // Total / Length
}
