package distribute

import (
	"fmt"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

type repoSize struct {
	repo  string
	count int
}

// makeTasks builds unsequenced tasks, count per repo, in the given order.
func makeTasks(sizes ...repoSize) []task.Task {
	var tasks []task.Task
	line := 1
	for _, s := range sizes {
		for i := 0; i < s.count; i++ {
			tasks = append(tasks, task.Task{
				Line:    line,
				Repo:    s.repo,
				HasRepo: true,
				Fields: map[string]string{
					task.RepoField: s.repo,
					"id":           fmt.Sprintf("%s-%d", s.repo, i),
				},
			})
			line++
		}
	}
	return tasks
}

func teamsWithCapacity(caps ...int) []Team {
	teams := make([]Team, len(caps))
	for i, c := range caps {
		teams[i] = Team{Number: i + 1, LeadName: fmt.Sprintf("Lead %d", i+1), Developers: 1, WeeklyCapacity: c}
	}
	return teams
}

func reposOf(ta TeamAllocation) []string {
	var repos []string
	for _, rc := range ta.RepoCounts() {
		repos = append(repos, rc.Repo)
	}
	return repos
}
