// Package cmd implements the mchallenge CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/pipeline"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  Invalid: %v\n", err)
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default length: %d days\n", cfg.General.DefaultLength)
	fmt.Printf("    Store:          %s\n", storePath(cfg))
	if cfg.General.DataPath == "" {
		fmt.Printf("                    (default %s)\n", pipeline.DataPath())
	}
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency: %s\n", cfg.Display.Currency)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:      %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Interval:     %s\n", cfg.Daemon.Interval())
	fmt.Printf("    Events limit: %d\n", cfg.Daemon.EventsLimit)
	fmt.Println()

	fmt.Println("  Run `mchallenge setup` to reconfigure.")
	return nil
}
