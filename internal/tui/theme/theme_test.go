package theme

import "testing"

func TestByName_FallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("got %q, want tokyo-night", got)
	}
	if got := ByName("missing").Name; got != FlexokiDark.Name {
		t.Errorf("got %q, want %q", got, FlexokiDark.Name)
	}
}

func TestAmountColor(t *testing.T) {
	th := FlexokiDark
	if th.AmountColor(1) != th.GreenBright {
		t.Error("profit should use GreenBright")
	}
	if th.AmountColor(-1) != th.Red {
		t.Error("loss should use Red")
	}
	if th.AmountColor(0) != th.TextMuted {
		t.Error("flat should use TextMuted")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) || names[0] != "flexoki-dark" {
		t.Fatalf("Names() = %v", names)
	}
}
