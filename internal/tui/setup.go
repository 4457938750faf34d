package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/Rhymond/go-money"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	theme    string
	length   int
	currency string
}

// huhTheme styles huh forms with the active dashboard theme.
func huhTheme() *huh.Theme {
	t := theme.Active
	th := huh.ThemeBase()

	th.Focused.Title = th.Focused.Title.Foreground(t.AccentBright).Bold(true)
	th.Focused.Description = th.Focused.Description.Foreground(t.TextMuted)
	th.Focused.SelectSelector = th.Focused.SelectSelector.Foreground(t.Accent)
	th.Focused.SelectedOption = th.Focused.SelectedOption.Foreground(t.GreenBright)
	th.Focused.FocusedButton = th.Focused.FocusedButton.Foreground(t.Background).Background(t.Accent)
	th.Focused.BlurredButton = th.Focused.BlurredButton.Foreground(t.TextMuted).Background(t.SurfaceHover)
	th.Focused.ErrorMessage = th.Focused.ErrorMessage.Foreground(t.Orange)
	th.Blurred = th.Focused
	th.Blurred.Base = th.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	return th
}

func validateCurrency(s string) error {
	if money.GetCurrency(strings.ToUpper(strings.TrimSpace(s))) == nil {
		return errors.New("unknown ISO 4217 currency code")
	}
	return nil
}

func newSetupForm(cfg config.Config, vals *setupValues) *huh.Form {
	vals.theme = cfg.Appearance.Theme
	vals.length = cfg.General.DefaultLength
	vals.currency = cfg.Display.Currency

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	lengthOpts := make([]huh.Option[int], 0, len(model.Lengths))
	for _, l := range model.Lengths {
		lengthOpts = append(lengthOpts, huh.NewOption(strconv.Itoa(l)+" days", l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to mchallenge").
				Description("Track a 30, 60 or 90 day money challenge.\nA few quick choices and you're in."),
			huh.NewSelect[int]().
				Title("Default challenge length").
				Options(lengthOpts...).
				Value(&vals.length),
			huh.NewInput().
				Title("Currency").
				Description("ISO code used to display amounts, e.g. INR or USD").
				Validate(validateCurrency).
				Value(&vals.currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	).WithTheme(huhTheme()).WithShowHelp(true)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.setFlash(fmt.Sprintf("Could not save config: %s", err), true)
		} else {
			a.setFlash("Saved "+config.ConfigPath(), false)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, tea.EnableMouseCellMotion
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, tea.EnableMouseCellMotion
	}

	return a, cmd
}

// saveSetupConfig applies the form answers to the running app and writes them.
func (a *App) saveSetupConfig() error {
	cfg := a.cfg
	cfg.Appearance.Theme = a.setupVals.theme
	cfg.General.DefaultLength = a.setupVals.length
	cfg.Display.Currency = strings.ToUpper(strings.TrimSpace(a.setupVals.currency))

	theme.SetActive(cfg.Appearance.Theme)
	a.cfg = cfg
	a.setLength(cfg.General.DefaultLength)

	return config.Save(cfg)
}
