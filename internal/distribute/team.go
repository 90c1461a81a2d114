package distribute

import "math"

// Workload holds the throughput assumptions capacity is derived from.
type Workload struct {
	TasksPerDeveloperPerDay int `json:"tasks_per_developer_per_day"`
	WorkingDaysPerWeek      int `json:"working_days_per_week"`
}

// DefaultWorkload is five tasks per developer per day over a five-day week.
var DefaultWorkload = Workload{TasksPerDeveloperPerDay: 5, WorkingDaysPerWeek: 5}

// WeeklyCapacity returns how many tasks the given headcount finishes in a week.
func (w Workload) WeeklyCapacity(developers int) int {
	return developers * w.TasksPerDeveloperPerDay * w.WorkingDaysPerWeek
}

// DaysNeeded returns the working days one developer needs for the given
// number of tasks, rounded up.
func (w Workload) DaysNeeded(tasksPerDeveloper float64) int {
	if tasksPerDeveloper <= 0 || w.TasksPerDeveloperPerDay <= 0 {
		return 0
	}
	return int(math.Ceil(tasksPerDeveloper / float64(w.TasksPerDeveloperPerDay)))
}

// Team is one entry of the roster. Teams are immutable once built.
type Team struct {
	Number         int    `json:"team_number"`
	LeadName       string `json:"lead_name"`
	Developers     int    `json:"num_developers"`
	WeeklyCapacity int    `json:"weekly_capacity"`
}

// NewTeam builds a team with its capacity derived from the workload.
func NewTeam(number int, lead string, developers int, w Workload) Team {
	return Team{
		Number:         number,
		LeadName:       lead,
		Developers:     developers,
		WeeklyCapacity: w.WeeklyCapacity(developers),
	}
}

// TotalCapacity sums the weekly capacity of all teams.
func TotalCapacity(teams []Team) int {
	total := 0
	for _, t := range teams {
		total += t.WeeklyCapacity
	}
	return total
}
