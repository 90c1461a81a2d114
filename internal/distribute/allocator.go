package distribute

import (
	"errors"
	"sort"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// RepoGroup is the set of tasks of one repository within a batch. It is the
// unit of assignment and is never split across teams.
type RepoGroup struct {
	Repo      string
	Tasks     []task.Task
	MinSerial int
	MaxSerial int
}

// Count returns the number of tasks in the group.
func (g RepoGroup) Count() int { return len(g.Tasks) }

// GroupByRepo partitions tasks by repository, ordered by each group's lowest
// serial number. Tasks inside a group are in serial order.
func GroupByRepo(tasks []task.Task) []RepoGroup {
	index := make(map[string]int)
	var groups []RepoGroup
	for _, t := range tasks {
		i, ok := index[t.Repo]
		if !ok {
			i = len(groups)
			index[t.Repo] = i
			groups = append(groups, RepoGroup{Repo: t.Repo, MinSerial: t.Serial, MaxSerial: t.Serial})
		}
		g := &groups[i]
		g.Tasks = append(g.Tasks, t)
		g.MinSerial = min(g.MinSerial, t.Serial)
		g.MaxSerial = max(g.MaxSerial, t.Serial)
	}

	for i := range groups {
		sortBySerial(groups[i].Tasks)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MinSerial < groups[j].MinSerial
	})
	return groups
}

// Rule records which step of the allocation placed a repository.
type Rule int

const (
	// RuleCurrent means the team under the pointer had room.
	RuleCurrent Rule = iota
	// RuleAdvance means a later team had room and the pointer moved to it.
	RuleAdvance
	// RuleOverflow means no team from the pointer onwards had room and the
	// repository went to the team with the most remaining capacity.
	RuleOverflow
)

func (r Rule) String() string {
	switch r {
	case RuleCurrent:
		return "current"
	case RuleAdvance:
		return "advance"
	case RuleOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Placement is one repository-to-team decision.
type Placement struct {
	Repo      string
	TeamIndex int
	Count     int
	MinSerial int
	MaxSerial int
	Rule      Rule
}

// TeamAllocation is one team's share of a week.
type TeamAllocation struct {
	Team              Team
	Tasks             []task.Task
	AssignedTasks     int
	RemainingCapacity int
}

// Overallocated reports whether the team was given more than its capacity.
func (ta TeamAllocation) Overallocated() bool { return ta.RemainingCapacity < 0 }

// SerialRange returns the lowest and highest serial assigned to the team;
// ok is false when the team has no tasks.
func (ta TeamAllocation) SerialRange() (lo, hi int, ok bool) {
	if len(ta.Tasks) == 0 {
		return 0, 0, false
	}
	return ta.Tasks[0].Serial, ta.Tasks[len(ta.Tasks)-1].Serial, true
}

// RepoCounts returns the number of tasks per repository, sorted by name.
func (ta TeamAllocation) RepoCounts() []RepoCount {
	counts := make(map[string]int)
	for _, t := range ta.Tasks {
		counts[t.Repo]++
	}
	out := make([]RepoCount, 0, len(counts))
	for repo, n := range counts {
		out = append(out, RepoCount{Repo: repo, Tasks: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Repo < out[j].Repo })
	return out
}

// RepoCount pairs a repository with a task count.
type RepoCount struct {
	Repo  string `json:"repo_name"`
	Tasks int    `json:"tasks"`
}

// Allocation is the result of distributing one weekly batch.
type Allocation struct {
	Week       int
	TotalTasks int
	MinSerial  int
	MaxSerial  int
	Teams      []TeamAllocation
	Placements []Placement
}

var errNoTeams = errors.New("no teams to allocate to")

// Allocate distributes a batch over the roster. Every team starts the week
// at its full weekly capacity and the pointer starts at the first team;
// nothing carries over between calls.
func Allocate(batch Batch, teams []Team) (*Allocation, error) {
	if len(teams) == 0 {
		return nil, errNoTeams
	}

	alloc := &Allocation{
		Week:       batch.Week,
		TotalTasks: len(batch.Tasks),
		Teams:      make([]TeamAllocation, len(teams)),
	}
	alloc.MinSerial, alloc.MaxSerial = batch.SerialRange()
	for i, t := range teams {
		alloc.Teams[i] = TeamAllocation{Team: t, RemainingCapacity: t.WeeklyCapacity}
	}

	current := 0
	for _, g := range GroupByRepo(batch.Tasks) {
		var target int
		var rule Rule
		target, current, rule = pickTeam(alloc.Teams, current, g.Count())

		ta := &alloc.Teams[target]
		ta.Tasks = append(ta.Tasks, g.Tasks...)
		ta.AssignedTasks += g.Count()
		ta.RemainingCapacity -= g.Count()

		alloc.Placements = append(alloc.Placements, Placement{
			Repo:      g.Repo,
			TeamIndex: target,
			Count:     g.Count(),
			MinSerial: g.MinSerial,
			MaxSerial: g.MaxSerial,
			Rule:      rule,
		})
	}

	for i := range alloc.Teams {
		sortBySerial(alloc.Teams[i].Tasks)
	}
	return alloc, nil
}

// pickTeam chooses the team for a group of size need and returns the
// target index, the new pointer and the rule applied.
func pickTeam(teams []TeamAllocation, current, need int) (target, pointer int, rule Rule) {
	if teams[current].RemainingCapacity >= need {
		return current, current, RuleCurrent
	}
	for i := current + 1; i < len(teams); i++ {
		if teams[i].RemainingCapacity >= need {
			return i, i, RuleAdvance
		}
	}

	// Lowest index wins ties.
	best := 0
	for i := 1; i < len(teams); i++ {
		if teams[i].RemainingCapacity > teams[best].RemainingCapacity {
			best = i
		}
	}
	return best, current, RuleOverflow
}

func sortBySerial(tasks []task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Serial < tasks[j].Serial })
}
