package components

import (
	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// clampFill maps a 0-100 percentage onto a 0-1 bar fill.
func clampFill(pct float64) float64 {
	fill := pct / 100
	if fill < 0 {
		return 0
	}
	if fill > 1 {
		return 1
	}
	return fill
}

// GoalBar renders goal progress as a bar followed by the percentage.
// The fill is clamped to the bar; the label shows pct as given, including
// negative values.
func GoalBar(pct float64, width int) string {
	t := theme.Active
	color := t.ProgressColor(pct)

	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(clampFill(pct)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(cli.FormatProgress(pct))
}

// CompactGoalBar renders a status-bar-sized goal indicator.
func CompactGoalBar(label string, pct float64, width int) string {
	t := theme.Active
	color := t.ProgressColor(pct)

	barW := width - lipgloss.Width(label) - 8
	if barW < 4 {
		barW = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(label) +
		spaceStyle.Render(" ") +
		bar.ViewAs(clampFill(pct)) +
		spaceStyle.Render(" ") +
		pctStyle.Render(cli.FormatProgress(pct))
}
