package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	cfg = setupWizard(os.Stdin, os.Stdout, cfg)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `mchallenge setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

// setupWizard walks through the prompts and returns the updated config.
// Blank or unrecognized answers keep the current value.
func setupWizard(in io.Reader, out io.Writer, cfg config.Config) config.Config {
	reader := bufio.NewReader(in)
	ask := func() string {
		fmt.Fprint(out, "     > ")
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Welcome to mchallenge!")
	fmt.Fprintln(out)

	// 1. Challenge length
	fmt.Fprintln(out, "  1. Default challenge length")
	fmt.Fprintln(out, "     (1) 30 days")
	fmt.Fprintln(out, "     (2) 60 days")
	fmt.Fprintln(out, "     (3) 90 days")
	fmt.Fprintf(out, "     Current: %d\n", cfg.General.DefaultLength)
	switch ask() {
	case "1":
		cfg.General.DefaultLength = 30
	case "2":
		cfg.General.DefaultLength = 60
	case "3":
		cfg.General.DefaultLength = 90
	}
	fmt.Fprintln(out)

	// 2. Currency
	fmt.Fprintln(out, "  2. Currency (ISO code, e.g. INR, USD, EUR)")
	fmt.Fprintf(out, "     Current: %s\n", cfg.Display.Currency)
	if code := strings.ToUpper(ask()); code != "" {
		if validateCurrency(code) == nil {
			cfg.Display.Currency = code
		} else {
			fmt.Fprintf(out, "     Unknown currency %q, keeping %s\n", code, cfg.Display.Currency)
		}
	}
	fmt.Fprintln(out)

	// 3. Theme
	names := theme.Names()
	fmt.Fprintln(out, "  3. Color theme")
	for i, name := range names {
		suffix := ""
		if name == cfg.Appearance.Theme {
			suffix = " [current]"
		}
		fmt.Fprintf(out, "     (%d) %s%s\n", i+1, name, suffix)
	}
	choice := ask()
	for i, name := range names {
		if choice == fmt.Sprintf("%d", i+1) || choice == name {
			cfg.Appearance.Theme = name
		}
	}

	return cfg
}

func validateCurrency(code string) error {
	cfg := config.DefaultConfig()
	cfg.Display.Currency = code
	return cfg.Validate()
}
