package history

import "time"

// Run summarises one recorded distribution run.
type Run struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	InputPath      string    `json:"input_path"`
	OutputDir      string    `json:"output_dir"`
	TotalTasks     int       `json:"total_tasks"`
	TotalWeeks     int       `json:"total_weeks"`
	TotalTeams     int       `json:"total_teams"`
	WeeklyCapacity int       `json:"weekly_capacity"`
	Utilization    float64   `json:"utilization"`
	SkippedLines   int       `json:"skipped_lines"`
	Overallocated  bool      `json:"overallocated"`
}

// Team is a roster entry as it was when the run was recorded.
type Team struct {
	TeamNumber     int    `json:"team_number"`
	LeadName       string `json:"lead_name"`
	NumDevelopers  int    `json:"num_developers"`
	WeeklyCapacity int    `json:"weekly_capacity"`
}

// Assignment is one repository placed on one team in one week.
type Assignment struct {
	RunID      string `json:"run_id"`
	Week       int    `json:"week"`
	TeamNumber int    `json:"team_number"`
	LeadName   string `json:"lead_name,omitempty"`
	Repo       string `json:"repo_name"`
	TaskCount  int    `json:"task_count"`
	MinSerial  int    `json:"min_serial"`
	MaxSerial  int    `json:"max_serial"`
	Rule       string `json:"rule"`
}

// RunDetail is a run with its roster and assignments.
type RunDetail struct {
	Run
	Teams       []Team       `json:"teams"`
	Assignments []Assignment `json:"assignments"`
}

// RunMeta carries the run facts that are not part of the plan.
type RunMeta struct {
	InputPath    string
	OutputDir    string
	SkippedLines int
}
