package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/saad2128/jsonl-task-processor/internal/distribute"
)

// Report is the structured summary of a distribution run. It is derived
// entirely from the allocations and never feeds back into them.
type Report struct {
	GeneratedAt         time.Time           `json:"generated_at"`
	TotalTasks          int                 `json:"total_tasks"`
	TotalWeeks          int                 `json:"total_weeks"`
	Workload            distribute.Workload `json:"workload"`
	Teams               []distribute.Team   `json:"teams"`
	TotalWeeklyCapacity int                 `json:"total_weekly_capacity"`
	Weeks               []WeekReport        `json:"weekly_distributions"`
	TeamTotals          []TeamTotal         `json:"team_totals"`
	Overall             Utilization         `json:"overall"`
	Overallocations     []Overallocation    `json:"overallocations"`
}

// SerialRange is an inclusive range of serial numbers.
type SerialRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Utilization compares assigned work with nominal capacity.
type Utilization struct {
	Assigned int     `json:"assigned"`
	Capacity int     `json:"capacity"`
	Ratio    float64 `json:"ratio"`
}

// WeekReport covers one weekly batch.
type WeekReport struct {
	Week        int          `json:"week"`
	TotalTasks  int          `json:"total_tasks"`
	SerialRange *SerialRange `json:"serial_range"`
	Teams       []TeamWeek   `json:"teams"`
	Utilization Utilization  `json:"utilization"`
}

// TeamWeek holds one team's statistics for one week.
type TeamWeek struct {
	TeamNumber        int                    `json:"team_number"`
	LeadName          string                 `json:"lead_name"`
	NumDevelopers     int                    `json:"num_developers"`
	WeeklyCapacity    int                    `json:"weekly_capacity"`
	AssignedTasks     int                    `json:"assigned_tasks"`
	RemainingCapacity int                    `json:"remaining_capacity"`
	TasksPerDeveloper float64                `json:"tasks_per_developer"`
	DaysNeeded        int                    `json:"days_needed"`
	SerialRange       *SerialRange           `json:"serial_range"`
	Repositories      int                    `json:"repositories"`
	RepoDistribution  []distribute.RepoCount `json:"repo_distribution"`
	Overallocated     bool                   `json:"overallocated"`
}

// Usage is assigned tasks over weekly capacity.
func (tw TeamWeek) Usage() float64 {
	return ratio(tw.AssignedTasks, tw.WeeklyCapacity)
}

// TeamTotal sums a team's work over every week.
type TeamTotal struct {
	TeamNumber         int         `json:"team_number"`
	LeadName           string      `json:"lead_name"`
	Utilization        Utilization `json:"utilization"`
	Repositories       int         `json:"repositories"`
	OverallocatedWeeks int         `json:"overallocated_weeks"`
}

// Overallocation flags a team/week whose assignment exceeds capacity.
type Overallocation struct {
	Week       int      `json:"week"`
	TeamNumber int      `json:"team_number"`
	LeadName   string   `json:"lead_name"`
	Assigned   int      `json:"assigned"`
	Capacity   int      `json:"capacity"`
	Excess     int      `json:"excess"`
	Repos      []string `json:"overflow_repos"`
}

// Build folds the weekly allocations, in week order, into a report.
func Build(allocs []*distribute.Allocation, teams []distribute.Team, w distribute.Workload, generatedAt time.Time) *Report {
	r := &Report{
		GeneratedAt:         generatedAt,
		TotalWeeks:          len(allocs),
		Workload:            w,
		Teams:               teams,
		TotalWeeklyCapacity: distribute.TotalCapacity(teams),
		Weeks:               make([]WeekReport, 0, len(allocs)),
	}

	totals := make([]TeamTotal, len(teams))
	teamRepos := make([]map[string]bool, len(teams))
	for i, t := range teams {
		totals[i] = TeamTotal{TeamNumber: t.Number, LeadName: t.LeadName}
		teamRepos[i] = make(map[string]bool)
	}

	for _, alloc := range allocs {
		r.TotalTasks += alloc.TotalTasks
		wr := WeekReport{
			Week:       alloc.Week,
			TotalTasks: alloc.TotalTasks,
			Teams:      make([]TeamWeek, 0, len(alloc.Teams)),
		}
		if alloc.TotalTasks > 0 {
			wr.SerialRange = &SerialRange{Min: alloc.MinSerial, Max: alloc.MaxSerial}
		}

		for i, ta := range alloc.Teams {
			tw := teamWeek(ta, w)
			wr.Teams = append(wr.Teams, tw)
			wr.Utilization.Assigned += tw.AssignedTasks
			wr.Utilization.Capacity += tw.WeeklyCapacity

			if i < len(totals) {
				totals[i].Utilization.Assigned += tw.AssignedTasks
				totals[i].Utilization.Capacity += tw.WeeklyCapacity
				for _, rc := range tw.RepoDistribution {
					teamRepos[i][rc.Repo] = true
				}
				if tw.Overallocated {
					totals[i].OverallocatedWeeks++
				}
			}

			if tw.Overallocated {
				r.Overallocations = append(r.Overallocations, Overallocation{
					Week:       alloc.Week,
					TeamNumber: tw.TeamNumber,
					LeadName:   tw.LeadName,
					Assigned:   tw.AssignedTasks,
					Capacity:   tw.WeeklyCapacity,
					Excess:     -tw.RemainingCapacity,
					Repos:      overflowRepos(alloc, i),
				})
			}
		}
		wr.Utilization.Ratio = ratio(wr.Utilization.Assigned, wr.Utilization.Capacity)

		r.Overall.Assigned += wr.Utilization.Assigned
		r.Overall.Capacity += wr.Utilization.Capacity
		r.Weeks = append(r.Weeks, wr)
	}
	r.Overall.Ratio = ratio(r.Overall.Assigned, r.Overall.Capacity)

	for i := range totals {
		totals[i].Utilization.Ratio = ratio(totals[i].Utilization.Assigned, totals[i].Utilization.Capacity)
		totals[i].Repositories = len(teamRepos[i])
	}
	r.TeamTotals = totals
	return r
}

func teamWeek(ta distribute.TeamAllocation, w distribute.Workload) TeamWeek {
	var perDev float64
	if ta.Team.Developers > 0 {
		perDev = float64(ta.AssignedTasks) / float64(ta.Team.Developers)
	}

	repos := ta.RepoCounts()
	tw := TeamWeek{
		TeamNumber:        ta.Team.Number,
		LeadName:          ta.Team.LeadName,
		NumDevelopers:     ta.Team.Developers,
		WeeklyCapacity:    ta.Team.WeeklyCapacity,
		AssignedTasks:     ta.AssignedTasks,
		RemainingCapacity: ta.RemainingCapacity,
		TasksPerDeveloper: math.Round(perDev*10) / 10,
		DaysNeeded:        w.DaysNeeded(perDev),
		Repositories:      len(repos),
		RepoDistribution:  repos,
		Overallocated:     ta.Overallocated(),
	}
	if lo, hi, ok := ta.SerialRange(); ok {
		tw.SerialRange = &SerialRange{Min: lo, Max: hi}
	}
	return tw
}

// overflowRepos lists the repositories placed on team i by the overflow rule.
func overflowRepos(alloc *distribute.Allocation, i int) []string {
	var repos []string
	for _, p := range alloc.Placements {
		if p.TeamIndex == i && p.Rule == distribute.RuleOverflow {
			repos = append(repos, p.Repo)
		}
	}
	return repos
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// HasOverallocation reports whether any team/week exceeded its capacity.
func (r *Report) HasOverallocation() bool {
	return len(r.Overallocations) > 0
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
