package pipeline

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/mchallenge/internal/logging"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/source"
	"github.com/theirongolddev/mchallenge/internal/store"
)

// Storage keys. Each holds one independent JSON blob.
const (
	DaysKey  = "work-challenge-all"
	GoalsKey = "work-challenge-goals"
)

// LoadDays reads the day blob. A missing or blank blob yields fresh zeroed days.
// A blob that cannot be decoded also yields fresh days, with a warning logged;
// the error is never surfaced.
func LoadDays(kv store.KV, logger *slog.Logger) model.Days {
	if logger == nil {
		logger = logging.Discard()
	}
	raw, ok, err := kv.Get(DaysKey)
	if err != nil {
		logger.Warn("reading stored challenge", "key", DaysKey, "err", err)
		return model.NewDays()
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return model.NewDays()
	}

	days, err := source.DecodeDays([]byte(raw), source.FormatJSON)
	if err != nil {
		logger.Warn("failed to parse stored challenge, starting fresh", "key", DaysKey, "err", err)
		return model.NewDays()
	}
	return days
}

// SaveDays overwrites the day blob with all model.DayCount records.
func SaveDays(kv store.KV, days model.Days) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encoding days: %w", err)
	}
	if err := kv.Set(DaysKey, string(data)); err != nil {
		return fmt.Errorf("saving days: %w", err)
	}
	return nil
}

// LoadGoals reads the goal blob, falling back to the defaults silently when it
// is missing or unreadable. Lengths absent from the blob keep their default.
func LoadGoals(kv store.KV) model.Goals {
	goals := model.DefaultGoals()

	raw, ok, err := kv.Get(GoalsKey)
	if err != nil || !ok {
		return goals
	}

	var stored model.Goals
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return goals
	}
	for k, v := range stored {
		goals[k] = v
	}
	return goals
}

// SaveGoals overwrites the goal blob.
func SaveGoals(kv store.KV, goals model.Goals) error {
	data, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encoding goals: %w", err)
	}
	if err := kv.Set(GoalsKey, string(data)); err != nil {
		return fmt.Errorf("saving goals: %w", err)
	}
	return nil
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mchallenge")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "mchallenge")
}

// DataPath returns the default path to the store database.
func DataPath() string {
	return filepath.Join(DataDir(), "challenge.db")
}
