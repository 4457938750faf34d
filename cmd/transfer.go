package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/mchallenge/internal/source"

	"github.com/spf13/cobra"
)

var flagExportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all 90 days to a file (\"-\" for stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all days with a 90-day export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Output format: json or yaml (default from extension)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	path := source.DefaultExportName
	if len(args) == 1 {
		path = args[0]
	}

	format := source.DetectFormat(path)
	if flagExportFormat != "" {
		f, err := source.ParseFormat(flagExportFormat)
		if err != nil {
			return err
		}
		format = f
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if path == "-" {
		return s.tracker.Export(os.Stdout, format)
	}

	data, err := s.tracker.ExportBytes(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // exports are meant to be shared
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Printf("  Exported to %s\n", path)
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	path := args[0]

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // import path comes from the local user
	}
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tracker.Import(data, source.DetectFormat(path)); err != nil {
		s.logger.Debug("import rejected", "path", path, "err", err)
		if errors.Is(err, source.ErrFormat) || errors.Is(err, source.ErrParse) {
			return errors.New(source.ImportMessage(err))
		}
		return err
	}
	fmt.Printf("  Imported %s\n", path)
	return nil
}
