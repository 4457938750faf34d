package cmd

import (
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagDaysAll bool

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Day-by-day table for the active challenge",
	RunE:  runDays,
}

func init() {
	daysCmd.Flags().BoolVarP(&flagDaysAll, "all", "a", false, "Include days that are not done")
	rootCmd.AddCommand(daysCmd)
}

func runDays(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	days := s.tracker.Days()
	rows := dayRows(days.Prefix(s.length), s.cfg.Display.Currency, flagDaysAll)
	if len(rows) == 0 {
		fmt.Println("\n  No days done yet. Record one with `mchallenge mark <day> <amount>`.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAYS  %d-day challenge", s.length)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Day", "Done", "Amount", "Running"},
		Rows:    rows,
	}))
	return nil
}

// dayRows builds table rows with a running total. Days that are not done are
// skipped unless all is set; the running total still includes their amount.
func dayRows(days []model.DayRecord, code string, all bool) [][]string {
	rows := make([][]string, 0, len(days))
	running := decimal.Zero
	for _, d := range days {
		running = running.Add(d.Amount)
		if !d.Done && !all {
			continue
		}
		done := "-"
		if d.Done {
			done = "yes"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", d.Day),
			done,
			cli.RenderAmount(d.Amount, code),
			cli.FormatAmount(running, code),
		})
	}
	return rows
}
