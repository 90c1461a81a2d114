package config

// Config is the top-level taskdist configuration, corresponding to .taskdist.yml.
type Config struct {
	OutputDir               string        `yaml:"output_dir" koanf:"output_dir"`
	TasksPerDeveloperPerDay int           `yaml:"tasks_per_developer_per_day" koanf:"tasks_per_developer_per_day"`
	WorkingDaysPerWeek      int           `yaml:"working_days_per_week" koanf:"working_days_per_week"`
	Teams                   []TeamConfig  `yaml:"teams" koanf:"teams"`
	Repos                   RepoConfig    `yaml:"repos" koanf:"repos"`
	History                 HistoryConfig `yaml:"history" koanf:"history"`
	Server                  ServerConfig  `yaml:"server" koanf:"server"`
	Notifications           NotifyConfig  `yaml:"notifications" koanf:"notifications"`
}

// TeamConfig is one roster entry. Capacity is always derived, never stored.
type TeamConfig struct {
	LeadName      string `yaml:"lead_name" koanf:"lead_name"`
	NumDevelopers int    `yaml:"num_developers" koanf:"num_developers"`
}

// RepoConfig restricts which repositories are distributed.
type RepoConfig struct {
	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`
}

// HistoryConfig controls the SQLite run history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// ServerConfig holds settings for `taskdist serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// NotifyConfig lists webhooks told about finished runs.
type NotifyConfig struct {
	Webhooks []WebhookConfig `yaml:"webhooks" koanf:"webhooks"`
}

// WebhookConfig is one webhook target. MinSeverity is info, warning or
// critical; empty means info.
type WebhookConfig struct {
	URL         string `yaml:"url" koanf:"url"`
	MinSeverity string `yaml:"min_severity,omitempty" koanf:"min_severity"`
}
