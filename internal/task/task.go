package task

// Field names with a fixed meaning. Every other key of an input record is
// opaque payload carried through to the output files untouched.
const (
	RepoField   = "repo_name"
	SerialField = "serial_no"
)

// Task is a single input record.
type Task struct {
	// Line is the 1-based line of the record in the input file.
	Line int
	// Repo is the value of the repo_name field. HasRepo is false when the
	// field is absent or null.
	Repo    string
	HasRepo bool
	// Fields holds every key of the record in its textual form.
	Fields map[string]string
	// Serial is the position in the global order, assigned by the
	// sequencer. Zero means not yet sequenced.
	Serial int
}

// Value returns the textual value of a column, or "" if the record does not
// carry it.
func (t Task) Value(column string) string {
	return t.Fields[column]
}

// Dataset is the parsed content of a JSONL input file.
type Dataset struct {
	// Columns is the union of all record keys in first-seen order.
	Columns []string
	Tasks   []Task
	// Skipped counts lines that were not valid JSON objects.
	Skipped int
}

// Repos returns the distinct repository names in the dataset, in
// first-seen order.
func (d *Dataset) Repos() []string {
	seen := make(map[string]bool)
	var repos []string
	for _, t := range d.Tasks {
		if !t.HasRepo || seen[t.Repo] {
			continue
		}
		seen[t.Repo] = true
		repos = append(repos, t.Repo)
	}
	return repos
}
