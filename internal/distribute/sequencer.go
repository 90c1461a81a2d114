package distribute

import (
	"sort"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// Sequence returns a copy of tasks sorted by repository name, ties kept in
// input order, with Serial set to 1..N. The input slice is not modified.
// Records without a repository fail the whole sequence with a
// *MissingRepoError.
func Sequence(tasks []task.Task) ([]task.Task, error) {
	var missing []int
	for _, t := range tasks {
		if !t.HasRepo {
			missing = append(missing, t.Line)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRepoError{Lines: missing}
	}

	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Repo < out[j].Repo
	})
	for i := range out {
		out[i].Serial = i + 1
	}
	return out, nil
}
