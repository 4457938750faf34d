// Package tui provides the interactive Bubble Tea dashboard for mchallenge.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/challenge"
	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/tui/components"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabDays = iota
	tabStats
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	tracker  *challenge.Tracker
	cfg      config.Config
	dataPath string

	// Active challenge length and its derived totals
	length int
	totals model.Totals

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Day grid
	cursor int

	// Modal text dialog (day editor, goal, import, export)
	editor challenge.Editor
	dialog dialogKind
	input  textinput.Model

	// Clear confirmation (huh form)
	clearForm *huh.Form
	clearOK   *bool

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Result of the last action, shown in the status bar
	flash    string
	flashErr bool
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model over an opened tracker.
func NewApp(tracker *challenge.Tracker, cfg config.Config, dataPath string, length int) App {
	if !model.ValidLength(length) {
		length = cfg.General.DefaultLength
	}
	if !model.ValidLength(length) {
		length = model.Lengths[0]
	}

	a := App{
		tracker:   tracker,
		cfg:       cfg,
		dataPath:  dataPath,
		length:    length,
		needSetup: !config.Exists(),
		clearOK:   new(bool),
		setupVals: &setupValues{},
	}
	a.recompute()
	if a.needSetup {
		a.setupForm = newSetupForm(a.cfg, a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return tea.Batch(tea.EnableMouseCellMotion, a.setupForm.Init())
	}
	return tea.EnableMouseCellMotion
}

func (a *App) recompute() {
	a.totals = a.tracker.Totals(a.length)
	if a.cursor >= a.length {
		a.cursor = a.length - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setLength(length int) {
	if !model.ValidLength(length) {
		return
	}
	a.length = length
	a.recompute()
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash = msg
	a.flashErr = isErr
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil || a.clearForm != nil || a.dialog != dialogNone {
			return a, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// Forms and dialogs own the keyboard while open
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.clearForm != nil {
			return a.updateClearForm(msg)
		}
		if a.dialog != dialogNone {
			return a.updateDialog(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "1", "2", "3":
			a.setLength(model.Lengths[key[0]-'1'])
			return a, nil
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "t":
			return a.openDialog(dialogGoal)
		case "e":
			return a.openDialog(dialogExport)
		case "i":
			return a.openDialog(dialogImport)
		case "C":
			return a.startClear()
		}

		if a.activeTab == tabDays {
			if next, cmd, ok := a.updateDaysKeys(key); ok {
				return next, cmd
			}
		}
		if a.activeTab == tabSettings {
			if next, cmd, ok := a.updateSettingsKeys(key); ok {
				return next, cmd
			}
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil
	}

	// Forward unhandled messages (cursor blinks, etc.) to whichever form is open
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.clearForm != nil {
		return a.updateClearForm(msg)
	}
	if a.dialog != dialogNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	if a.clearForm != nil {
		return a.viewOverlay(a.clearForm.View())
	}

	if a.dialog != dialogNone {
		return a.viewOverlay(a.renderDialog())
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  mchallenge needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewOverlay(body string) string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"d s x", "Jump to tab"},
			{"Tab", "Next tab"},
			{"h j k l", "Move in the day grid"},
			{"g G", "First / last day"},
			{"1 2 3", "30 / 60 / 90 day challenge"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter", "Edit day"},
			{"^n", "Save day as not done (in editor)"},
			{"Esc", "Cancel"},
			{"t", "Edit goal"},
			{"e", "Export all days"},
			{"i", "Import days"},
			{"C", "Clear all progress"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for si, sec := range sections {
		if si > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return a.viewOverlay(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + length selector
	filterRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		filterRowStyle.Render(components.RenderLengthPills(model.Lengths, a.length))

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.flash, a.flashErr, a.totals.GoalProgress)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabDays:
		content = a.renderDaysTab(cw)
	case tabStats:
		content = a.renderStatsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines, filled with background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
