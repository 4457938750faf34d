package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/challenge"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/source"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogDay
	dialogGoal
	dialogImport
	dialogExport
)

func newDialogInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

func (a App) openDialog(kind dialogKind) (tea.Model, tea.Cmd) {
	ti := newDialogInput()

	switch kind {
	case dialogDay:
		if err := a.editor.Select(a.tracker, a.cursor); err != nil {
			a.setFlash(err.Error(), true)
			return a, nil
		}
		_, draft, _ := a.editor.Editing()
		ti.Placeholder = "amount, e.g. 500 or -200"
		ti.SetValue(draft)
	case dialogGoal:
		ti.Placeholder = "goal amount"
		ti.SetValue(a.tracker.Goal(a.length).String())
	case dialogExport:
		ti.Placeholder = source.DefaultExportName
		ti.SetValue(source.DefaultExportName)
	case dialogImport:
		ti.Placeholder = "path/to/" + source.DefaultExportName
	}

	ti.Focus()
	a.dialog = kind
	a.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) closeDialog() App {
	a.dialog = dialogNone
	a.input.Blur()
	return a
}

func (a App) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.dialog == dialogDay {
			a.editor.Cancel()
		}
		return a.closeDialog(), nil
	case "ctrl+n":
		if a.dialog == dialogDay {
			index, _, _ := a.editor.Editing()
			if err := a.editor.SaveNotDone(a.tracker); err != nil {
				a.setFlash(fmt.Sprintf("Save failed: %s", err), true)
			} else {
				a.setFlash(fmt.Sprintf("Day %d marked not done", index+1), false)
			}
			a.recompute()
			return a.closeDialog(), nil
		}
	case "enter":
		a = a.submitDialog()
		a.recompute()
		return a.closeDialog(), nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) submitDialog() App {
	val := strings.TrimSpace(a.input.Value())

	switch a.dialog {
	case dialogDay:
		index, _, _ := a.editor.Editing()
		a.editor.SetDraft(val)
		if err := a.editor.SaveDone(a.tracker); err != nil {
			a.setFlash(fmt.Sprintf("Save failed: %s", err), true)
			return a
		}
		a.setFlash(fmt.Sprintf("Day %d saved", index+1), false)

	case dialogGoal:
		if err := a.tracker.SetGoal(a.length, model.ParseAmount(val)); err != nil {
			a.setFlash(fmt.Sprintf("Save failed: %s", err), true)
			return a
		}
		a.setFlash(fmt.Sprintf("%d-day goal updated", a.length), false)

	case dialogExport:
		path := val
		if path == "" {
			path = source.DefaultExportName
		}
		data, err := a.tracker.ExportBytes(source.DetectFormat(path))
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			a.setFlash(fmt.Sprintf("Export failed: %s", err), true)
			return a
		}
		a.setFlash(fmt.Sprintf("Exported %d days to %s", model.DayCount, path), false)

	case dialogImport:
		if val == "" {
			return a
		}
		data, err := os.ReadFile(val)
		if err != nil {
			a.setFlash(fmt.Sprintf("Import failed: %s", err), true)
			return a
		}
		if err := a.tracker.Import(data, source.DetectFormat(val)); err != nil {
			a.setFlash(source.ImportMessage(err), true)
			return a
		}
		a.setFlash(fmt.Sprintf("Imported %s", val), false)
	}
	return a
}

func (a App) renderDialog() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var title, hint string
	switch a.dialog {
	case dialogDay:
		index, _, _ := a.editor.Editing()
		title = fmt.Sprintf("Day %d", index+1)
		hint = "[Enter] done & save  [^n] not done  [Esc] cancel"
	case dialogGoal:
		title = fmt.Sprintf("Goal for %d days", a.length)
		hint = "[Enter] save  [Esc] cancel"
	case dialogExport:
		title = fmt.Sprintf("Export all %d days", model.DayCount)
		hint = "[Enter] write file (.yaml for YAML)  [Esc] cancel"
	case dialogImport:
		title = "Import days"
		hint = "[Enter] replace all days  [Esc] cancel"
	}

	return titleStyle.Render(title) + "\n\n" + a.input.View() + "\n\n" + hintStyle.Render(hint)
}

// ─── Clear confirmation ─────────────────────────────────────────

func (a App) startClear() (tea.Model, tea.Cmd) {
	*a.clearOK = false
	a.clearForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(challenge.ClearPrompt).
				Affirmative("Clear").
				Negative("Keep").
				Value(a.clearOK),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
	return a, a.clearForm.Init()
}

func (a App) updateClearForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.clearForm = nil
		return a, nil
	}

	form, cmd := a.clearForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.clearForm = f
	}

	switch a.clearForm.State {
	case huh.StateCompleted:
		return a.applyClear(*a.clearOK), nil
	case huh.StateAborted:
		a.clearForm = nil
		return a, nil
	}
	return a, cmd
}

// applyClear finishes the confirmation flow with the user's answer.
func (a App) applyClear(ok bool) App {
	a.clearForm = nil
	err := a.tracker.Clear(challenge.ConfirmFunc(func(string) bool { return ok }))
	switch {
	case err == nil:
		a.setFlash("All progress cleared", false)
	case ok:
		a.setFlash(fmt.Sprintf("Clear failed: %s", err), true)
	}
	a.recompute()
	return a
}
