package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/theirongolddev/mchallenge/internal/challenge"
	"github.com/theirongolddev/mchallenge/internal/config"
	"github.com/theirongolddev/mchallenge/internal/logging"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/pipeline"
	"github.com/theirongolddev/mchallenge/internal/store"
	"github.com/theirongolddev/mchallenge/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagLength  int
	flagData    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "mchallenge",
	Short:         "Money challenge tracker",
	Long:          "Track a 30, 60 or 90 day profit/loss challenge against a money goal.",
	RunE:          runStatus,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagLength, "length", "l", 0, "Challenge length in days (30, 60 or 90)")
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Challenge store path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// session bundles what every command needs: config, logger, and the open tracker.
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	path    string
	length  int
	db      *store.DB
	tracker *challenge.Tracker
}

func (s *session) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// loadConfig reads the config file, falling back to defaults, and applies the theme.
func loadConfig(logger *slog.Logger) config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config unreadable, using defaults", "path", config.ConfigPath(), "err", err)
		cfg = config.DefaultConfig()
	}
	theme.SetActive(cfg.Appearance.Theme)
	return cfg
}

// storePath resolves the store location: flag, then config/env, then the XDG default.
func storePath(cfg config.Config) string {
	if flagData != "" {
		return flagData
	}
	if p := config.GetDataPath(cfg); p != "" {
		return p
	}
	return pipeline.DataPath()
}

// activeLength resolves the challenge length: flag, then config, then 30.
func activeLength(cfg config.Config) (int, error) {
	if flagLength != 0 {
		if !model.ValidLength(flagLength) {
			return 0, fmt.Errorf("--length %d: %w", flagLength, challenge.ErrInvalidLength)
		}
		return flagLength, nil
	}
	if model.ValidLength(cfg.General.DefaultLength) {
		return cfg.General.DefaultLength, nil
	}
	return model.Lengths[0], nil
}

// openSession is the shared setup path used by all store-backed commands.
func openSession() (*session, error) {
	logger := logging.New(os.Stderr, flagVerbose)
	cfg := loadConfig(logger)

	length, err := activeLength(cfg)
	if err != nil {
		return nil, err
	}

	path := storePath(cfg)
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening challenge store: %w", err)
	}
	logger.Debug("store opened", "path", path, "length", length)

	return &session{
		cfg:     cfg,
		logger:  logger,
		path:    path,
		length:  length,
		db:      db,
		tracker: challenge.Open(db, logger),
	}, nil
}

// parseDay converts a 1-based day argument to a slot index.
func parseDay(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid day %q", arg)
	}
	if n < 1 || n > model.DayCount {
		return 0, fmt.Errorf("day %d: %w", n, challenge.ErrIndexOutOfRange)
	}
	return n - 1, nil
}
