package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/saad2128/jsonl-task-processor/internal/notifications"
)

// EnvPrefix is the prefix of environment overrides, e.g. TASKDIST_OUTPUT_DIR.
const EnvPrefix = "TASKDIST_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TASKDIST_*). A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: TASKDIST_OUTPUT_DIR -> output_dir,
	// TASKDIST_HISTORY__ENABLED -> history.enabled.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. An empty
// roster is valid here; it is rejected later as zero capacity.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.TasksPerDeveloperPerDay <= 0 {
		return fmt.Errorf("tasks_per_developer_per_day must be positive")
	}

	if c.WorkingDaysPerWeek <= 0 || c.WorkingDaysPerWeek > 7 {
		return fmt.Errorf("working_days_per_week must be between 1 and 7")
	}

	for i, t := range c.Teams {
		if strings.TrimSpace(t.LeadName) == "" {
			return fmt.Errorf("teams[%d]: lead_name is required", i)
		}
		if t.NumDevelopers <= 0 {
			return fmt.Errorf("teams[%d] (%s): num_developers must be positive", i, t.LeadName)
		}
	}

	if err := c.RepoFilter().Validate(); err != nil {
		return fmt.Errorf("repos: %w", err)
	}

	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}

	for i, h := range c.Notifications.Webhooks {
		if h.URL == "" {
			return fmt.Errorf("notifications.webhooks[%d]: url is required", i)
		}
		if !notifications.ValidSeverity(notifications.Severity(h.MinSeverity)) {
			return fmt.Errorf("notifications.webhooks[%d]: unknown min_severity %q", i, h.MinSeverity)
		}
	}

	return nil
}
