package task

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects tasks by repository name using doublestar globs. An empty
// Include list admits every repository.
type Filter struct {
	Include []string
	Exclude []string
}

// Validate reports the first malformed pattern.
func (f Filter) Validate() error {
	for _, p := range append(append([]string{}, f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid repository pattern %q", p)
		}
	}
	return nil
}

// IsZero reports whether the filter admits everything.
func (f Filter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Match reports whether a repository passes the filter.
func (f Filter) Match(repo string) bool {
	if len(f.Include) > 0 && !matchesAny(repo, f.Include) {
		return false
	}
	return !matchesAny(repo, f.Exclude)
}

// Apply returns the tasks that pass the filter and the number removed.
// Tasks without a repository are always kept so that sequencing can report
// them.
func (f Filter) Apply(tasks []Task) ([]Task, int) {
	if f.IsZero() {
		return tasks, 0
	}
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.HasRepo && !f.Match(t.Repo) {
			continue
		}
		kept = append(kept, t)
	}
	return kept, len(tasks) - len(kept)
}

func matchesAny(repo string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, repo); err == nil && ok {
			return true
		}
	}
	return false
}
