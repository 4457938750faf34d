package components

import (
	"strings"

	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. flash is a transient
// message from the last action; isErr colors it as a warning.
func RenderStatusBar(width int, flash string, isErr bool, goalPct float64) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := " [?]help  [q]uit"
	leftW := lipgloss.Width(left)

	right := CompactGoalBar("goal", goalPct, 28) + lipgloss.NewStyle().Background(t.Surface).Render(" ")
	rightW := lipgloss.Width(right)

	mid := ""
	if flash != "" {
		color := t.GreenBright
		if isErr {
			color = t.Orange
		}
		room := width - leftW - rightW - 4
		if room > 0 {
			runes := []rune(flash)
			if len(runes) > room {
				flash = string(runes[:room-1]) + "…"
			}
			mid = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render("  " + flash)
		}
	}

	padding := width - leftW - lipgloss.Width(mid) - rightW
	if padding < 0 {
		padding = 0
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	bar := style.Render(left) + mid + bg.Render(strings.Repeat(" ", padding)) + right
	return lipgloss.NewStyle().Width(width).Background(t.Surface).Render(bar)
}
