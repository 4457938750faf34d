package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/mchallenge/internal/challenge"
	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

func newTestApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tr := challenge.Open(store.NewMemory(), nil)
	a := NewApp(tr, config.DefaultConfig(), "memory", 30)
	a.setupForm = nil
	a.needSetup = false
	a.width, a.height = 120, 40
	return a
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+n":
			msg = tea.KeyMsg{Type: tea.KeyCtrlN}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewApp_FirstRunShowsSetup(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := NewApp(challenge.Open(store.NewMemory(), nil), config.DefaultConfig(), "memory", 0)
	if a.setupForm == nil {
		t.Fatal("setup form not created without a config file")
	}
	if a.length != 30 {
		t.Errorf("length = %d, want default 30", a.length)
	}
}

func TestGridNavigation(t *testing.T) {
	a := newTestApp(t)

	a = press(t, a, "l", "l", "j")
	if a.cursor != 12 {
		t.Fatalf("cursor = %d, want 12", a.cursor)
	}
	a = press(t, a, "j", "j")
	if a.cursor != 22 {
		t.Fatalf("cursor = %d, want 22 (bottom row of 30)", a.cursor)
	}
	a = press(t, a, "G")
	if a.cursor != 29 {
		t.Fatalf("G cursor = %d, want 29", a.cursor)
	}
	a = press(t, a, "l")
	if a.cursor != 29 {
		t.Fatalf("cursor moved past the last day: %d", a.cursor)
	}
	a = press(t, a, "g", "h", "k")
	if a.cursor != 0 {
		t.Fatalf("cursor moved before the first day: %d", a.cursor)
	}
}

func TestLengthSwitchClampsCursor(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "3", "G")
	if a.length != 90 || a.cursor != 89 {
		t.Fatalf("length=%d cursor=%d, want 90/89", a.length, a.cursor)
	}
	a = press(t, a, "1")
	if a.length != 30 || a.cursor != 29 {
		t.Fatalf("length=%d cursor=%d, want 30/29", a.length, a.cursor)
	}
	if !a.totals.Goal.Equal(dec("13000")) {
		t.Errorf("goal = %s, want 13000", a.totals.Goal)
	}
}

func TestDayEditor_SaveDone(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "l", "enter")
	if a.dialog != dialogDay {
		t.Fatalf("dialog = %v, want day editor", a.dialog)
	}
	a.input.SetValue("500")
	a = press(t, a, "enter")

	if a.dialog != dialogNone {
		t.Fatal("dialog still open after save")
	}
	d, _ := a.tracker.Day(1)
	if !d.Done || !d.Amount.Equal(dec("500")) {
		t.Fatalf("day 2 = %+v, want done with 500", d)
	}
	if !a.totals.Total.Equal(dec("500")) || a.totals.Wins != 1 {
		t.Errorf("totals not recomputed: %+v", a.totals)
	}
}

func TestDayEditor_NotDoneZeroes(t *testing.T) {
	a := newTestApp(t)
	_ = a.tracker.SetDay(0, true, dec("500"))

	a = press(t, a, "enter", "ctrl+n")
	d, _ := a.tracker.Day(0)
	if d.Done || !d.Amount.IsZero() {
		t.Fatalf("day 1 = %+v, want not done with 0", d)
	}
}

func TestDayEditor_CancelDoesNotPersist(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "enter")
	a.input.SetValue("999")
	a = press(t, a, "esc")

	if a.dialog != dialogNone {
		t.Fatal("dialog still open after esc")
	}
	if d, _ := a.tracker.Day(0); d.Done || !d.Amount.IsZero() {
		t.Fatalf("cancel changed day 1: %+v", d)
	}
}

func TestGoalDialog(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "2", "t")
	if a.dialog != dialogGoal || a.input.Value() != "26000" {
		t.Fatalf("goal dialog = %v with %q, want 26000", a.dialog, a.input.Value())
	}
	a.input.SetValue("30000")
	a = press(t, a, "enter")

	if !a.tracker.Goal(60).Equal(dec("30000")) {
		t.Errorf("goal 60 = %s, want 30000", a.tracker.Goal(60))
	}
	if !a.totals.Goal.Equal(dec("30000")) {
		t.Errorf("totals goal = %s, want 30000", a.totals.Goal)
	}
}

func TestExportImportDialogs(t *testing.T) {
	a := newTestApp(t)
	_ = a.tracker.SetDay(5, true, dec("-200"))
	path := filepath.Join(t.TempDir(), "challenge-all.json")

	a = press(t, a, "e")
	a.input.SetValue(path)
	a = press(t, a, "enter")
	if a.flashErr {
		t.Fatalf("export failed: %s", a.flash)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"day\": 1,") {
		t.Fatalf("unexpected export layout: %.40q", data)
	}

	_ = a.tracker.SetDay(5, false, decimal.Zero)
	a = press(t, a, "i")
	a.input.SetValue(path)
	a = press(t, a, "enter")
	if a.flashErr {
		t.Fatalf("import failed: %s", a.flash)
	}
	if d, _ := a.tracker.Day(5); !d.Done || !d.Amount.Equal(dec("-200")) {
		t.Fatalf("day 6 after import = %+v", d)
	}
}

func TestImportDialog_RejectsWrongLength(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "short.json")
	if err := os.WriteFile(path, []byte(`[{"day":1,"done":true,"amount":5}]`), 0o600); err != nil {
		t.Fatal(err)
	}

	a = press(t, a, "i")
	a.input.SetValue(path)
	a = press(t, a, "enter")

	if !a.flashErr || a.flash != "Imported file must be for a 90-day challenge." {
		t.Fatalf("flash = %q (err=%v)", a.flash, a.flashErr)
	}
	if d, _ := a.tracker.Day(0); d.Done {
		t.Fatal("rejected import changed the store")
	}
}

func TestApplyClear(t *testing.T) {
	a := newTestApp(t)
	_ = a.tracker.SetDay(0, true, dec("100"))
	_ = a.tracker.SetGoal(30, dec("5000"))

	a = a.applyClear(false)
	if d, _ := a.tracker.Day(0); !d.Done {
		t.Fatal("declined clear reset the days")
	}

	a = a.applyClear(true)
	if d, _ := a.tracker.Day(0); d.Done || !d.Amount.IsZero() {
		t.Fatalf("clear left day 1 = %+v", d)
	}
	if !a.tracker.Goal(30).Equal(dec("5000")) {
		t.Error("clear touched the goals")
	}
	if !a.totals.Total.IsZero() {
		t.Errorf("totals not recomputed after clear: %s", a.totals.Total)
	}
}

func TestStartClearOpensForm(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "C")
	if a.clearForm == nil {
		t.Fatal("C did not open the confirmation")
	}
	a = press(t, a, "esc")
	if a.clearForm != nil {
		t.Fatal("esc did not close the confirmation")
	}
}

func TestSettings_InvalidLengthNotApplied(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "x", "j", "enter")
	if !a.settings.editing || a.settings.cursor != settingsFieldLength {
		t.Fatalf("not editing length field: %+v", a.settings)
	}
	a.settings.input.SetValue("45")
	a = press(t, a, "enter")

	if a.settings.saveErr == nil {
		t.Fatal("45-day length saved without error")
	}
	if a.cfg.General.DefaultLength != 30 {
		t.Errorf("default length = %d, want 30", a.cfg.General.DefaultLength)
	}
}

func TestSettings_SaveLength(t *testing.T) {
	a := newTestApp(t)
	a = press(t, a, "x", "j", "enter")
	a.settings.input.SetValue("60")
	a = press(t, a, "enter")

	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
	if a.length != 60 || a.cfg.General.DefaultLength != 60 {
		t.Errorf("length=%d cfg=%d, want 60", a.length, a.cfg.General.DefaultLength)
	}
	if !config.Exists() {
		t.Error("settings were not written to disk")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t)
	_ = a.tracker.SetDay(0, true, dec("500"))
	_ = a.tracker.SetDay(1, true, dec("-200"))
	a.recompute()

	for _, key := range []string{"d", "s", "x", "?"} {
		a = press(t, a, key)
		if out := a.View(); out == "" {
			t.Errorf("empty view after %q", key)
		}
		if key == "?" {
			a = press(t, a, "?")
		}
	}

	a.width = 40
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("narrow terminal message missing")
	}
}

func TestQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}
