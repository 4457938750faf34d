package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/challenge"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagClearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every day of every challenge (goals are kept)",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&flagClearYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.tracker.Clear(clearConfirmer(flagClearYes))
	if errors.Is(err, challenge.ErrNotConfirmed) {
		fmt.Println("  Nothing cleared.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("  All progress cleared.")
	return nil
}

// clearConfirmer asks through a huh form unless the answer was given up front.
func clearConfirmer(yes bool) challenge.Confirmer {
	return challenge.ConfirmFunc(func(prompt string) bool {
		if yes {
			return true
		}
		ok := false
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Clear").
			Negative("Keep").
			Value(&ok).
			Run()
		return err == nil && ok
	})
}
