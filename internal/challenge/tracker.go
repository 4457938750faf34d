// Package challenge holds the challenge state manager: the day store, the goal
// map, and the operations that mutate and persist them.
package challenge

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/theirongolddev/mchallenge/internal/logging"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/pipeline"
	"github.com/theirongolddev/mchallenge/internal/source"
	"github.com/theirongolddev/mchallenge/internal/store"

	"github.com/shopspring/decimal"
)

// ClearPrompt is the question asked before wiping all days.
const ClearPrompt = "Clear all progress for all challenges?"

var (
	ErrIndexOutOfRange = errors.New("day index out of range")
	ErrInvalidLength   = errors.New("challenge length must be 30, 60 or 90")
	ErrNotConfirmed    = errors.New("not confirmed")
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Tracker owns the in-memory day store and goal map and writes each one back
// in full after every change. The two are loaded and saved independently.
type Tracker struct {
	kv     store.KV
	logger *slog.Logger

	days  model.Days
	goals model.Goals
}

// Open loads both aggregates from kv.
func Open(kv store.KV, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tracker{
		kv:     kv,
		logger: logger,
		days:   pipeline.LoadDays(kv, logger),
		goals:  pipeline.LoadGoals(kv),
	}
}

// Days returns a copy of all day records.
func (t *Tracker) Days() model.Days {
	return t.days
}

// Day returns the record at index (0-based).
func (t *Tracker) Day(index int) (model.DayRecord, error) {
	if index < 0 || index >= model.DayCount {
		return model.DayRecord{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return t.days[index], nil
}

// Goals returns a copy of the goal map.
func (t *Tracker) Goals() model.Goals {
	return t.goals.Clone()
}

// Goal returns the target for length.
func (t *Tracker) Goal(length int) decimal.Decimal {
	return t.goals.For(length)
}

// Totals computes statistics over the first length days.
func (t *Tracker) Totals(length int) model.Totals {
	return pipeline.ComputeTotals(&t.days, length, t.goals.For(length))
}

// SetDay replaces the record at index, keeping its day number, and persists.
func (t *Tracker) SetDay(index int, done bool, amount decimal.Decimal) error {
	if index < 0 || index >= model.DayCount {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	next := t.days
	next[index] = model.DayRecord{Day: next[index].Day, Done: done, Amount: amount}
	return t.commitDays(next)
}

// Clear resets all days to zero once c confirms. Goals are untouched.
func (t *Tracker) Clear(c Confirmer) error {
	if c == nil || !c.Confirm(ClearPrompt) {
		return ErrNotConfirmed
	}
	return t.commitDays(model.NewDays())
}

// Import replaces all days with the decoded file. On any error the current
// days are left as they were.
func (t *Tracker) Import(data []byte, format source.Format) error {
	days, err := source.DecodeDays(data, format)
	if err != nil {
		return err
	}
	return t.commitDays(days)
}

// Export writes all days regardless of the selected length.
func (t *Tracker) Export(w io.Writer, format source.Format) error {
	return source.EncodeDays(w, t.days, format)
}

// ExportBytes is Export into a byte slice.
func (t *Tracker) ExportBytes(format source.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Export(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetGoal stores the target for length and persists the goal map.
func (t *Tracker) SetGoal(length int, amount decimal.Decimal) error {
	if !model.ValidLength(length) {
		return fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	next := t.goals.Clone()
	next[length] = amount
	if err := pipeline.SaveGoals(t.kv, next); err != nil {
		return err
	}
	t.goals = next
	return nil
}

func (t *Tracker) commitDays(next model.Days) error {
	if err := pipeline.SaveDays(t.kv, next); err != nil {
		return err
	}
	t.days = next
	t.logger.Debug("days saved", "done", countDone(&next))
	return nil
}

func countDone(days *model.Days) int {
	n := 0
	for _, d := range days {
		if d.Done {
			n++
		}
	}
	return n
}
