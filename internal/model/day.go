// Package model defines the day records, goals, and derived statistics of a challenge.
package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DayCount is the fixed number of day slots kept for every challenge length.
// Shorter challenges only look at a prefix; the store is never resized.
const DayCount = 90

// Lengths lists the selectable challenge lengths in days.
var Lengths = []int{30, 60, 90}

// ValidLength reports whether n is a selectable challenge length.
func ValidLength(n int) bool {
	for _, l := range Lengths {
		if l == n {
			return true
		}
	}
	return false
}

// DayRecord is the outcome recorded for a single challenge day.
type DayRecord struct {
	Day    int // 1-based, equal to slot index + 1
	Done   bool
	Amount decimal.Decimal // profit (positive) or loss (negative)
}

type dayRecordJSON struct {
	Day    int         `json:"day"`
	Done   bool        `json:"done"`
	Amount json.Number `json:"amount"`
}

// MarshalJSON writes the amount as a bare JSON number.
func (d DayRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(dayRecordJSON{
		Day:    d.Day,
		Done:   d.Done,
		Amount: json.Number(d.Amount.String()),
	})
}

type dayRecordYAML struct {
	Day    int     `yaml:"day"`
	Done   bool    `yaml:"done"`
	Amount float64 `yaml:"amount"`
}

// MarshalYAML mirrors the JSON shape for YAML exports.
func (d DayRecord) MarshalYAML() (any, error) {
	return dayRecordYAML{Day: d.Day, Done: d.Done, Amount: d.Amount.InexactFloat64()}, nil
}

// Days is the full set of day slots. Being an array, its length is always DayCount.
type Days [DayCount]DayRecord

// NewDays returns zeroed records numbered 1..DayCount.
func NewDays() Days {
	var d Days
	for i := range d {
		d[i] = DayRecord{Day: i + 1}
	}
	return d
}

// Prefix returns the first n records, clamped to [0, DayCount].
func (d *Days) Prefix(n int) []DayRecord {
	if n < 0 {
		n = 0
	}
	if n > DayCount {
		n = DayCount
	}
	return d[:n]
}

// Equal compares records by value. Amounts compare numerically, so 12.5 equals 12.50.
func (d DayRecord) Equal(o DayRecord) bool {
	return d.Day == o.Day && d.Done == o.Done && d.Amount.Equal(o.Amount)
}

// Equal reports whether every slot matches.
func (d *Days) Equal(o *Days) bool {
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
