package challenge

import (
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
)

// Editor is the day edit dialog state: either closed, or editing one day with
// a draft amount that is only applied on save.
type Editor struct {
	open  bool
	index int
	draft string
}

// Select opens the editor on index with the day's current amount as the draft.
func (e *Editor) Select(t *Tracker, index int) error {
	d, err := t.Day(index)
	if err != nil {
		return err
	}
	e.open = true
	e.index = index
	e.draft = d.Amount.String()
	return nil
}

// Editing returns the open day index and draft amount.
func (e *Editor) Editing() (index int, draft string, ok bool) {
	return e.index, e.draft, e.open
}

// SetDraft replaces the draft amount text.
func (e *Editor) SetDraft(s string) {
	if e.open {
		e.draft = s
	}
}

// SaveDone marks the day done with the draft amount (non-numeric drafts save as 0) and closes.
func (e *Editor) SaveDone(t *Tracker) error {
	if !e.open {
		return nil
	}
	if err := t.SetDay(e.index, true, model.ParseAmount(e.draft)); err != nil {
		return err
	}
	e.Cancel()
	return nil
}

// SaveNotDone marks the day not done, which always zeroes its amount, and closes.
func (e *Editor) SaveNotDone(t *Tracker) error {
	if !e.open {
		return nil
	}
	if err := t.SetDay(e.index, false, decimal.Zero); err != nil {
		return err
	}
	e.Cancel()
	return nil
}

// Cancel closes the editor and discards the draft.
func (e *Editor) Cancel() {
	*e = Editor{}
}
