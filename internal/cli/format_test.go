package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1300", "USD", "$1,300.00"},
		{"-42.5", "USD", "-$42.50"},
		{"0", "USD", "$0.00"},
		{"0.005", "USD", "$0.01"},
		{"1300", "INR", "₹1,300.00"},
		{"1300", "inr", "₹1,300.00"},
		{"1300", "", "₹1,300.00"},
		{"1300", "NOPE", "₹1,300.00"},
	}
	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.amount), tt.code)
		if got != tt.want {
			t.Errorf("FormatAmount(%s, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
		}
	}
}

func TestFormatSignedAmount(t *testing.T) {
	if got := FormatSignedAmount(decimal.NewFromInt(5), "USD"); got != "+$5.00" {
		t.Errorf("got %q, want +$5.00", got)
	}
	if got := FormatSignedAmount(decimal.Zero, "USD"); got != "$0.00" {
		t.Errorf("got %q, want $0.00", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
		-39000:  "-39,000",
	}
	for n, want := range tests {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	if got := FormatProgress(2.30769); got != "2.3%" {
		t.Errorf("got %q, want 2.3%%", got)
	}
	if got := FormatProgress(-5); got != "-5.0%" {
		t.Errorf("got %q, want -5.0%%", got)
	}
}

func TestRenderProgressBar_ClampsFill(t *testing.T) {
	neg := RenderProgressBar(-20, 10)
	if strings.Contains(neg, "█") {
		t.Errorf("negative progress drew a filled cell: %q", neg)
	}
	if !strings.Contains(neg, "-20.0%") {
		t.Errorf("negative progress label missing: %q", neg)
	}

	full := RenderProgressBar(100, 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("full bar = %q, want 10 filled cells", full)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{-100, 0, 100})
	if got != "▁▄█" {
		t.Errorf("got %q, want ▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render empty")
	}
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Day", "Amount"},
		Rows:    [][]string{{"1", "500"}, {"2", "-200"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
}

func TestFormatCompact(t *testing.T) {
	tests := map[string]string{
		"0":       "0",
		"500":     "500",
		"499.6":   "500",
		"-0.2":    "0",
		"-200":    "-200",
		"1300":    "1.3k",
		"13000":   "13k",
		"-25000":  "-25k",
		"2500000": "2.5M",
	}
	for in, want := range tests {
		if got := FormatCompact(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatCompact(%s) = %q, want %q", in, got, want)
		}
	}
}
