package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/tui/components"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderStatsTab(cw int) string {
	t := theme.Active
	tot := a.totals
	cur := a.cfg.Display.Currency
	var b strings.Builder

	// Row 1: metric cards
	remaining := tot.Goal.Sub(tot.Total)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	cards := []components.Metric{
		{
			Label:      "Total",
			Value:      cli.FormatSignedAmount(tot.Total, cur),
			Delta:      cli.FormatSignedAmount(tot.AvgPerDay, cur) + "/day",
			ValueColor: t.AmountColor(tot.Total.Sign()),
		},
		{
			Label: "Days Done",
			Value: cli.FormatDays(tot.DaysDone, tot.Length),
			Delta: fmt.Sprintf("%d to go", tot.Length-tot.DaysDone),
		},
		{
			Label: "Wins / Losses",
			Value: fmt.Sprintf("%d / %d", tot.Wins, tot.Losses),
			Delta: winRate(tot.Wins, tot.Losses),
		},
		{
			Label: "Goal",
			Value: cli.FormatAmount(tot.Goal, cur),
			Delta: cli.FormatAmount(remaining, cur) + " left",
		},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: goal progress
	barW := components.CardInnerWidth(cw) - 10
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Goal Progress (%dd)", tot.Length),
		components.GoalBar(tot.GoalProgress, barW),
		cw,
	))
	b.WriteString("\n")

	// Row 3: daily amounts chart
	days := a.tracker.Days()
	prefix := days.Prefix(a.length)
	vals := make([]float64, len(prefix))
	labels := make([]string, len(prefix))
	running := make([]float64, len(prefix))
	sum := 0.0
	for i, d := range prefix {
		vals[i] = d.Amount.InexactFloat64()
		sum += vals[i]
		running[i] = sum
		if i == 0 || (i+1)%10 == 0 {
			labels[i] = strconv.Itoa(d.Day)
		}
	}
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard(
		"Daily Profit / Loss",
		components.SignedBarChart(vals, labels, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Row 4: averages + running total
	halves := components.LayoutRow(cw, 2)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amt := func(d decimal.Decimal) string {
		return lipgloss.NewStyle().Foreground(t.AmountColor(d.Sign())).Background(t.Surface).
			Render(cli.FormatSignedAmount(d, cur))
	}

	var avg strings.Builder
	avg.WriteString(labelStyle.Render("Per completed day: ") + amt(tot.AvgPerDone) + "\n")
	avg.WriteString(labelStyle.Render("Per challenge day: ") + amt(tot.AvgPerDay))

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Averages", avg.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Running Total", tailSparkline(running, cw), cw))
	} else {
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Averages", avg.String(), halves[0]),
			components.ContentCard("Running Total", tailSparkline(running, halves[1]), halves[1]),
		}))
	}

	return b.String()
}

func winRate(wins, losses int) string {
	n := wins + losses
	if n == 0 {
		return "no results yet"
	}
	return cli.FormatProgress(float64(wins)/float64(n)*100) + " win rate"
}

// tailSparkline draws the most recent values that fit in a card of outerWidth.
func tailSparkline(values []float64, outerWidth int) string {
	if w := components.CardInnerWidth(outerWidth); len(values) > w {
		values = values[len(values)-w:]
	}
	return components.Sparkline(values, theme.Active.Accent)
}
