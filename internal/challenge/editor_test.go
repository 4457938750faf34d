package challenge

import (
	"testing"
)

func TestEditor_SelectUsesCurrentAmount(t *testing.T) {
	tr, _ := newTracker(t)
	_ = tr.SetDay(2, true, dec("125.5"))

	var ed Editor
	if _, _, ok := ed.Editing(); ok {
		t.Fatal("new editor should be closed")
	}
	if err := ed.Select(tr, 2); err != nil {
		t.Fatalf("Select: %v", err)
	}

	idx, draft, ok := ed.Editing()
	if !ok || idx != 2 || draft != "125.5" {
		t.Fatalf("Editing() = (%d, %q, %v), want (2, \"125.5\", true)", idx, draft, ok)
	}
}

func TestEditor_SaveDoneCoercesDraft(t *testing.T) {
	tests := []struct {
		draft string
		want  string
	}{
		{"250", "250"},
		{" -80.5 ", "-80.5"},
		{"abc", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		tr, _ := newTracker(t)
		var ed Editor
		_ = ed.Select(tr, 0)
		ed.SetDraft(tt.draft)

		if err := ed.SaveDone(tr); err != nil {
			t.Fatalf("SaveDone(%q): %v", tt.draft, err)
		}
		if _, _, ok := ed.Editing(); ok {
			t.Fatalf("editor still open after SaveDone(%q)", tt.draft)
		}

		d, _ := tr.Day(0)
		if !d.Done || !d.Amount.Equal(dec(tt.want)) {
			t.Errorf("draft %q saved as %+v, want done with %s", tt.draft, d, tt.want)
		}
	}
}

func TestEditor_CancelDiscards(t *testing.T) {
	tr, kv := newTracker(t)
	var ed Editor

	_ = ed.Select(tr, 10)
	ed.SetDraft("999")
	ed.Cancel()

	if _, _, ok := ed.Editing(); ok {
		t.Fatal("editor still open after Cancel")
	}
	if d, _ := tr.Day(10); d.Done || !d.Amount.IsZero() {
		t.Fatalf("Cancel changed the day: %+v", d)
	}
	if _, ok, _ := kv.Get("work-challenge-all"); ok {
		t.Fatal("Cancel persisted the day store")
	}
}

func TestEditor_SelectOutOfRange(t *testing.T) {
	tr, _ := newTracker(t)
	var ed Editor
	if err := ed.Select(tr, 90); err == nil {
		t.Fatal("Select(90) returned nil error")
	}
	if _, _, ok := ed.Editing(); ok {
		t.Fatal("editor opened on invalid index")
	}
}

func TestEditor_ClosedOpsAreNoops(t *testing.T) {
	tr, kv := newTracker(t)
	var ed Editor

	ed.SetDraft("5")
	if err := ed.SaveDone(tr); err != nil {
		t.Fatalf("SaveDone on closed editor: %v", err)
	}
	if _, ok, _ := kv.Get("work-challenge-all"); ok {
		t.Fatal("closed editor persisted the day store")
	}
}
