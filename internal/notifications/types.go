package notifications

import "time"

// Severity indicates the importance of a notification.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// NotificationType categorises the event that triggered the notification.
type NotificationType string

const (
	TypeRunCompleted  NotificationType = "run_completed"
	TypeOverallocated NotificationType = "team_overallocated"
)

// Notification is a single event posted to webhooks.
type Notification struct {
	Type       NotificationType `json:"type"`
	Severity   Severity         `json:"severity"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	RunID      string           `json:"run_id,omitempty"`
	InputPath  string           `json:"input_path"`
	OutputDir  string           `json:"output_dir"`
	TotalTasks int              `json:"total_tasks"`
	TotalWeeks int              `json:"total_weeks"`
	Teams      []string         `json:"affected_teams,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Webhook is a delivery target with a minimum severity.
type Webhook struct {
	URL            string   `json:"url"`
	SeverityFilter Severity `json:"min_severity"`
}
