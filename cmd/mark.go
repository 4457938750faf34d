package cmd

import (
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/cli"
	"github.com/theirongolddev/mchallenge/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark <day> [amount]",
	Short: "Mark a day done with its profit or loss",
	Long: "Mark a day done. The amount may be negative (mchallenge mark 4 -80);\n" +
		"anything that is not a number is recorded as 0.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runMark,
}

var unmarkCmd = &cobra.Command{
	Use:   "unmark <day>",
	Short: "Mark a day not done and reset its amount",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnmark,
}

func init() {
	// Stop flag parsing at the day so negative amounts are read as arguments.
	markCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(unmarkCmd)
}

func runMark(_ *cobra.Command, args []string) error {
	idx, err := parseDay(args[0])
	if err != nil {
		return err
	}
	amount := decimal.Zero
	if len(args) > 1 {
		amount = model.ParseAmount(args[1])
	}
	return setDay(idx, true, amount)
}

func runUnmark(_ *cobra.Command, args []string) error {
	idx, err := parseDay(args[0])
	if err != nil {
		return err
	}
	return setDay(idx, false, decimal.Zero)
}

func setDay(idx int, done bool, amount decimal.Decimal) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.SetDay(idx, done, amount); err != nil {
		return err
	}

	code := s.cfg.Display.Currency
	if done {
		fmt.Printf("  Day %d done: %s\n", idx+1, cli.RenderAmount(amount, code))
	} else {
		fmt.Printf("  Day %d cleared\n", idx+1)
	}
	if idx >= s.length {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Day %d is outside the %d-day challenge", idx+1, s.length)))
	}

	t := s.tracker.Totals(s.length)
	fmt.Printf("  Total: %s  %s\n", cli.RenderAmount(t.Total, code), cli.FormatProgress(t.GoalProgress))
	return nil
}
