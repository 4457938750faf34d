package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/tui/components"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// gridCols is the number of day cells per grid row.
const gridCols = 10

// updateDaysKeys handles grid navigation. ok is false for keys it ignores.
func (a App) updateDaysKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "h", "left":
		if a.cursor > 0 {
			a.cursor--
		}
	case "l", "right":
		if a.cursor < a.length-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor-gridCols >= 0 {
			a.cursor -= gridCols
		}
	case "j", "down":
		if a.cursor+gridCols < a.length {
			a.cursor += gridCols
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		a.cursor = a.length - 1
	case "enter", " ":
		m, cmd := a.openDialog(dialogDay)
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderDaysTab(cw int) string {
	t := theme.Active
	days := a.tracker.Days()
	prefix := days.Prefix(a.length)

	innerW := components.CardInnerWidth(cw)
	cellW := innerW / gridCols
	if cellW < 5 {
		cellW = 5
	}
	showAmount := cellW >= 10

	base := lipgloss.NewStyle().Background(t.Surface)
	gap := base.Render(strings.Repeat(" ", max(0, innerW-cellW*gridCols)))

	var grid strings.Builder
	for row := 0; row*gridCols < len(prefix); row++ {
		for col := 0; col < gridCols; col++ {
			i := row*gridCols + col
			if i >= len(prefix) {
				grid.WriteString(base.Render(strings.Repeat(" ", cellW)))
				continue
			}
			d := prefix[i]

			bg := t.Surface
			if d.Done {
				bg = t.AccentDim
			}
			if i == a.cursor {
				bg = t.SurfaceBright
			}

			dayStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(bg)
			if d.Done {
				dayStyle = dayStyle.Foreground(t.TextPrimary)
			}
			if i == a.cursor {
				dayStyle = dayStyle.Foreground(t.AccentBright).Bold(true)
			}
			amtStyle := lipgloss.NewStyle().Foreground(t.AmountColor(d.Amount.Sign())).Background(bg)

			label := fmt.Sprintf("%2d", d.Day)
			mark := " "
			if d.Done {
				mark = "✓"
			}
			text := dayStyle.Render(" " + label + mark)
			if showAmount {
				amt := ""
				if d.Done || !d.Amount.IsZero() {
					amt = cli.FormatCompact(d.Amount)
				}
				text += amtStyle.Render(fmt.Sprintf("%*s", cellW-5, truncStr(amt, cellW-5)))
			}
			if pad := cellW - lipgloss.Width(text); pad > 0 {
				text += lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", pad))
			}
			grid.WriteString(text)
		}
		grid.WriteString(gap)
		grid.WriteString("\n")
	}
	gridStr := strings.TrimSuffix(grid.String(), "\n")

	var b strings.Builder
	b.WriteString(components.ContentCard(fmt.Sprintf("%d-Day Challenge", a.length), gridStr, cw))
	b.WriteString("\n")
	b.WriteString(a.renderSelectedDay(cw))
	return b.String()
}

func (a App) renderSelectedDay(cw int) string {
	t := theme.Active
	d, err := a.tracker.Day(a.cursor)
	if err != nil {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	amtStyle := lipgloss.NewStyle().Foreground(t.AmountColor(d.Amount.Sign())).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	status := "not done"
	if d.Done {
		status = "done"
	}

	var body strings.Builder
	body.WriteString(labelStyle.Render("Status: "))
	body.WriteString(valueStyle.Render(status))
	body.WriteString(labelStyle.Render("   Amount: "))
	body.WriteString(amtStyle.Render(cli.FormatSignedAmount(d.Amount, a.cfg.Display.Currency)))
	body.WriteString("\n")
	body.WriteString(hintStyle.Render("[Enter] edit  [t] goal  [e] export  [i] import  [C] clear"))

	return components.ContentCard(fmt.Sprintf("Day %d", d.Day), body.String(), cw)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
