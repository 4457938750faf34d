package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values. The lowest value maps
// to the shortest block, so a run of losses still reads as a dip.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// SignedBarChart renders one bar per value around a zero axis. Gains grow
// upward in the profit color, losses downward in the loss color.
func SignedBarChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(values, t.Accent)
	}

	peak, trough := 0.0, 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
		trough = math.Min(trough, v)
	}
	if peak == 0 && trough == 0 {
		peak = 1
	}

	// Split rows between the positive and negative halves in proportion
	// to their magnitude, keeping at least one row for a side that exists.
	span := peak - trough
	upRows := int(math.Round(float64(height) * peak / span))
	if peak > 0 && upRows < 1 {
		upRows = 1
	}
	downRows := height - upRows
	if trough < 0 && downRows < 1 {
		downRows = 1
		upRows = height - 1
	}

	labelW := max(len(formatChartLabel(peak)), len(formatChartLabel(trough))) + 1
	if labelW < 4 {
		labelW = 4
	}

	chartW := width - labelW - 1
	n := len(values)
	barW := 1
	gap := 0
	if n > 0 && chartW/n >= 3 {
		barW = chartW/n - 1
		gap = 1
	}
	if barW > 4 {
		barW = 4
	}
	if n*(barW+gap) > chartW {
		// Too many days for the width: keep the most recent that fit.
		keep := chartW / (barW + gap)
		if keep < 1 {
			keep = 1
		}
		values = values[n-keep:]
		if len(labels) == n {
			labels = labels[n-keep:]
		}
		n = keep
	}
	axisLen := n * (barW + gap)

	blocksUp := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	blocksDown := []rune{' ', '▔', '▔', '▀', '▀', '▀', '▀', '█', '█'}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(t.AmountColor(1)).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.AmountColor(-1)).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	cell := func(style lipgloss.Style, r rune) string {
		return style.Render(strings.Repeat(string(r), barW)) + blank.Render(strings.Repeat(" ", gap))
	}

	var b strings.Builder

	for row := upRows; row >= 1; row-- {
		rowTop := peak * float64(row) / float64(upRows)
		rowBottom := peak * float64(row-1) / float64(upRows)
		label := ""
		if row == upRows {
			label = formatChartLabel(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for _, v := range values {
			switch {
			case v >= rowTop:
				b.WriteString(cell(upStyle, '█'))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(cell(upStyle, blocksUp[idx]))
			default:
				b.WriteString(cell(blank, ' '))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("┼" + strings.Repeat("─", axisLen)))

	for row := 1; row <= downRows; row++ {
		rowTop := trough * float64(row-1) / float64(downRows)
		rowBottom := trough * float64(row) / float64(downRows)
		label := ""
		if row == downRows {
			label = formatChartLabel(trough)
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axisStyle.Render("│"))
		for _, v := range values {
			switch {
			case v <= rowBottom:
				b.WriteString(cell(downStyle, '█'))
			case v < rowTop:
				idx := int((rowTop - v) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(cell(downStyle, blocksDown[idx]))
			default:
				b.WriteString(cell(blank, ' '))
			}
		}
	}

	if len(labels) == n && n > 0 {
		buf := []byte(strings.Repeat(" ", axisLen))
		lastEnd := -1
		for i, lbl := range labels {
			pos := i * (barW + gap)
			end := pos + len(lbl)
			if pos <= lastEnd || end > axisLen {
				continue
			}
			copy(buf[pos:end], lbl)
			lastEnd = end + 1
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", labelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

func formatChartLabel(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%s%.0fM", sign, v/1e6)
		}
		return fmt.Sprintf("%s%.1fM", sign, v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%s%.0fk", sign, v/1e3)
		}
		return fmt.Sprintf("%s%.1fk", sign, v/1e3)
	case v >= 1:
		return fmt.Sprintf("%s%.0f", sign, v)
	case v == 0:
		return "0"
	default:
		return fmt.Sprintf("%s%.2f", sign, v)
	}
}
