package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/saad2128/jsonl-task-processor/internal/config"
	"github.com/saad2128/jsonl-task-processor/internal/db"
	"github.com/saad2128/jsonl-task-processor/internal/history"
	"github.com/saad2128/jsonl-task-processor/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `taskdist init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return logging.New(os.Stderr, verbose)
}

// openHistory opens the run history database named in the config.
func openHistory(cfg *config.Config) (*history.Store, *db.DB, error) {
	database, err := db.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening run history %s: %w", cfg.History.Path, err)
	}
	return history.NewStore(database), database, nil
}

// projectName derives a display name from the working directory.
func projectName() string {
	name := "Task Distribution"
	if wd, err := os.Getwd(); err == nil {
		if base := filepath.Base(wd); base != "." && base != string(filepath.Separator) && base != "" {
			name = base
		}
	}
	return name
}
