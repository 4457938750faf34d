package cmd

import (
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Challenge totals and goal progress",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	totals := s.tracker.Totals(s.length)
	fmt.Print(renderStatus(totals, s.cfg.Display.Currency))
	return nil
}

// renderStatus formats the totals block printed by `status` and the root command.
func renderStatus(t model.Totals, code string) string {
	out := "\n" + cli.RenderTitle(fmt.Sprintf("MONEY CHALLENGE  %d days", t.Length)) + "\n\n"

	rows := [][]string{
		{"Total", cli.RenderAmount(t.Total, code)},
		{"Goal", cli.FormatAmount(t.Goal, code)},
		{"Remaining", cli.FormatAmount(remaining(t), code)},
		{"---"},
		{"Days Done", cli.FormatDays(t.DaysDone, t.Length)},
		{"Wins", cli.FormatNumber(int64(t.Wins))},
		{"Losses", cli.FormatNumber(int64(t.Losses))},
		{"---"},
		{"Avg / Done Day", cli.RenderAmount(t.AvgPerDone, code)},
		{"Avg / Day", cli.RenderAmount(t.AvgPerDay, code)},
	}
	out += cli.RenderTable(cli.Table{Rows: rows})
	out += "\n  " + cli.RenderProgressBar(t.GoalProgress, 40) + "\n\n"
	return out
}

func remaining(t model.Totals) decimal.Decimal {
	r := t.Goal.Sub(t.Total)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
