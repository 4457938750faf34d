package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))

	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	// Padding below the short card must still carry background styling
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("Line %d has NO ANSI codes - will show as black squares", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")

	want := lipgloss.Width(tallCard) + lipgloss.Width(shortCard)
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
}

func TestCardRowSkipsEmpty(t *testing.T) {
	card := ContentCard("Only", "x", 20)
	if got := CardRow([]string{"", card, ""}); got != card {
		t.Errorf("CardRow with empty entries = %q, want the single card", got)
	}
	if CardRow(nil) != "" {
		t.Error("CardRow(nil) should be empty")
	}
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	if len(got) != 3 || got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Errorf("LayoutRow(10, 3) = %v, want [4 3 3]", got)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow(10, 0) should be nil")
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	for active := range Tabs {
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators

		bar := RenderTabBar(active, 0)
		if got := lipgloss.Width(bar); got != want {
			t.Errorf("active=%d: rendered width %d, want %d (%q)", active, got, want, bar)
		}
	}
}

func TestGoalBarKeepsNegativeLabel(t *testing.T) {
	out := GoalBar(-12.5, 20)
	if !strings.Contains(out, "-12.5%") {
		t.Errorf("GoalBar(-12.5) = %q, want -12.5%% label", out)
	}
}

func TestSignedBarChartShowsLosses(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	out := SignedBarChart([]float64{500, -200, 0}, []string{"1", "2", "3"}, 40, 6)
	if !strings.Contains(out, "┼") {
		t.Fatalf("chart has no zero axis:\n%s", out)
	}
	axis := strings.Index(out, "┼")
	above, below := out[:axis], out[axis:]
	if !strings.Contains(above, "█") {
		t.Errorf("gain not drawn above the axis:\n%s", out)
	}
	if !strings.Contains(below, "█") {
		t.Errorf("loss not drawn below the axis:\n%s", out)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	if got := Sparkline([]float64{3, 3, 3}, theme.Active.Accent); got != "▁▁▁" {
		t.Errorf("got %q, want ▁▁▁", got)
	}
}
