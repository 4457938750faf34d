package cmd

import (
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [amount]",
	Short: "Show or set the goal for the active challenge length",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGoal,
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	code := s.cfg.Display.Currency
	if len(args) == 0 {
		goals := s.tracker.Goals()
		fmt.Println()
		rows := make([][]string, 0, len(model.Lengths))
		for _, l := range model.Lengths {
			marker := ""
			if l == s.length {
				marker = "*"
			}
			rows = append(rows, []string{fmt.Sprintf("%d days%s", l, marker), cli.FormatAmount(goals.For(l), code)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "GOALS",
			Headers: []string{"Length", "Goal"},
			Rows:    rows,
		}))
		return nil
	}

	amount := model.ParseAmount(args[0])
	if err := s.tracker.SetGoal(s.length, amount); err != nil {
		return err
	}
	fmt.Printf("  %d-day goal set to %s\n", s.length, cli.FormatAmount(amount, code))
	return nil
}
