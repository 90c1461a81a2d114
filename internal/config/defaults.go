package config

import (
	"path/filepath"

	"github.com/saad2128/jsonl-task-processor/internal/distribute"
	"github.com/saad2128/jsonl-task-processor/internal/notifications"
	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".taskdist.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:               "task_distribution",
		TasksPerDeveloperPerDay: distribute.DefaultWorkload.TasksPerDeveloperPerDay,
		WorkingDaysPerWeek:      distribute.DefaultWorkload.WorkingDaysPerWeek,
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(".taskdist", "history.db"),
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Workload returns the throughput settings as a distribute.Workload.
func (c *Config) Workload() distribute.Workload {
	return distribute.Workload{
		TasksPerDeveloperPerDay: c.TasksPerDeveloperPerDay,
		WorkingDaysPerWeek:      c.WorkingDaysPerWeek,
	}
}

// Roster builds the numbered team list, deriving each team's capacity.
func (c *Config) Roster() []distribute.Team {
	w := c.Workload()
	teams := make([]distribute.Team, len(c.Teams))
	for i, tc := range c.Teams {
		teams[i] = distribute.NewTeam(i+1, tc.LeadName, tc.NumDevelopers, w)
	}
	return teams
}

// RepoFilter returns the repository filter.
func (c *Config) RepoFilter() task.Filter {
	return task.Filter{Include: c.Repos.Include, Exclude: c.Repos.Exclude}
}

// Webhooks returns the configured notification targets.
func (c *Config) Webhooks() []notifications.Webhook {
	hooks := make([]notifications.Webhook, len(c.Notifications.Webhooks))
	for i, h := range c.Notifications.Webhooks {
		hooks[i] = notifications.Webhook{URL: h.URL, SeverityFilter: notifications.Severity(h.MinSeverity)}
	}
	return hooks
}
