package challenge

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/pipeline"
	"github.com/theirongolddev/mchallenge/internal/source"
	"github.com/theirongolddev/mchallenge/internal/store"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func yes(string) bool { return true }
func no(string) bool  { return false }

func newTracker(t *testing.T) (*Tracker, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return Open(kv, nil), kv
}

func TestSetDay_PersistsAndKeepsIdentity(t *testing.T) {
	tr, kv := newTracker(t)

	if err := tr.SetDay(4, true, dec("500")); err != nil {
		t.Fatalf("SetDay: %v", err)
	}

	d, _ := tr.Day(4)
	if d.Day != 5 || !d.Done || !d.Amount.Equal(dec("500")) {
		t.Fatalf("day = %+v, want day 5 done with 500", d)
	}

	reopened := Open(kv, nil)
	if got, _ := reopened.Day(4); !got.Equal(d) {
		t.Fatalf("reloaded day = %+v, want %+v", got, d)
	}
}

func TestSetDay_NotDoneZeroes(t *testing.T) {
	tr, _ := newTracker(t)
	var ed Editor

	_ = tr.SetDay(7, true, dec("500"))

	if err := ed.Select(tr, 7); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := ed.SaveNotDone(tr); err != nil {
		t.Fatalf("SaveNotDone: %v", err)
	}

	d, _ := tr.Day(7)
	if d.Done || !d.Amount.IsZero() {
		t.Fatalf("day = %+v, want not done with 0", d)
	}
}

func TestSetDay_OutOfRange(t *testing.T) {
	tr, kv := newTracker(t)

	for _, idx := range []int{-1, model.DayCount} {
		if err := tr.SetDay(idx, true, dec("1")); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetDay(%d) err = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if _, ok, _ := kv.Get(pipeline.DaysKey); ok {
		t.Error("out-of-range SetDay wrote to the store")
	}
}

func TestClear(t *testing.T) {
	tr, _ := newTracker(t)
	_ = tr.SetDay(0, true, dec("100"))
	_ = tr.SetDay(89, true, dec("-50"))
	_ = tr.SetGoal(30, dec("777"))

	if err := tr.Clear(ConfirmFunc(no)); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("declined Clear err = %v, want ErrNotConfirmed", err)
	}
	if d, _ := tr.Day(0); !d.Done {
		t.Fatal("declined Clear changed days")
	}

	var asked string
	err := tr.Clear(ConfirmFunc(func(p string) bool { asked = p; return true }))
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if asked != ClearPrompt {
		t.Errorf("prompt = %q, want %q", asked, ClearPrompt)
	}

	days := tr.Days()
	fresh := model.NewDays()
	if !days.Equal(&fresh) {
		t.Fatal("Clear did not reset all days")
	}
	if !tr.Goal(30).Equal(dec("777")) {
		t.Errorf("goal 30 = %s after Clear, want 777", tr.Goal(30))
	}
}

func TestClear_NilConfirmer(t *testing.T) {
	tr, _ := newTracker(t)
	if err := tr.Clear(nil); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("Clear(nil) err = %v, want ErrNotConfirmed", err)
	}
}

func TestExportImport_Idempotent(t *testing.T) {
	tr, _ := newTracker(t)
	_ = tr.SetDay(0, true, dec("500"))
	_ = tr.SetDay(1, true, dec("-200"))
	_ = tr.SetDay(60, false, dec("3.75"))

	before := tr.Days()
	data, err := tr.ExportBytes(source.FormatJSON)
	if err != nil {
		t.Fatalf("ExportBytes: %v", err)
	}
	if err := tr.Import(data, source.FormatJSON); err != nil {
		t.Fatalf("Import: %v", err)
	}

	after := tr.Days()
	if !after.Equal(&before) {
		t.Fatal("export then import changed the store")
	}
}

func TestImport_RejectsShortArray(t *testing.T) {
	tr, kv := newTracker(t)
	_ = tr.SetDay(3, true, dec("10"))
	before := tr.Days()
	storedBefore, _, _ := kv.Get(pipeline.DaysKey)

	items := make([]string, 45)
	for i := range items {
		items[i] = fmt.Sprintf(`{"day":%d,"done":true,"amount":1}`, i+1)
	}
	err := tr.Import([]byte("["+strings.Join(items, ",")+"]"), source.FormatJSON)
	if !errors.Is(err, source.ErrFormat) {
		t.Fatalf("Import err = %v, want ErrFormat", err)
	}

	after := tr.Days()
	if !after.Equal(&before) {
		t.Fatal("rejected import changed the store")
	}
	if storedAfter, _, _ := kv.Get(pipeline.DaysKey); storedAfter != storedBefore {
		t.Fatal("rejected import rewrote the stored blob")
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	tr, _ := newTracker(t)
	if err := tr.Import([]byte("{{"), source.FormatJSON); !errors.Is(err, source.ErrParse) {
		t.Fatalf("Import err = %v, want ErrParse", err)
	}
}

func TestExport_IgnoresSelectedLength(t *testing.T) {
	tr, _ := newTracker(t)
	_ = tr.SetDay(89, true, dec("9"))

	data, err := tr.ExportBytes(source.FormatJSON)
	if err != nil {
		t.Fatalf("ExportBytes: %v", err)
	}
	if n := strings.Count(string(data), `"day"`); n != model.DayCount {
		t.Fatalf("export has %d records, want %d", n, model.DayCount)
	}
	if !strings.Contains(string(data), `"day": 90,`) {
		t.Fatal("export is missing day 90")
	}
}

func TestSetGoal(t *testing.T) {
	tr, kv := newTracker(t)

	if err := tr.SetGoal(60, dec("30000")); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	if err := tr.SetGoal(45, dec("1")); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("SetGoal(45) err = %v, want ErrInvalidLength", err)
	}

	reopened := Open(kv, nil)
	if !reopened.Goal(60).Equal(dec("30000")) {
		t.Errorf("reloaded goal 60 = %s, want 30000", reopened.Goal(60))
	}
	if !reopened.Goal(30).Equal(dec("13000")) {
		t.Errorf("reloaded goal 30 = %s, want 13000", reopened.Goal(30))
	}
}

func TestTotals_UsesGoalForLength(t *testing.T) {
	tr, _ := newTracker(t)
	_ = tr.SetDay(0, true, dec("3900"))

	got := tr.Totals(90)
	if !got.Goal.Equal(dec("39000")) {
		t.Errorf("Goal = %s, want 39000", got.Goal)
	}
	if got.GoalProgress != 10 {
		t.Errorf("GoalProgress = %v, want 10", got.GoalProgress)
	}
}
