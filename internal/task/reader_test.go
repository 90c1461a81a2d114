package task

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPreservesKeyOrder(t *testing.T) {
	input := `{"id": 1, "repo_name": "beta", "title": "fix bug"}
{"repo_name": "alpha", "id": 2, "labels": ["a", "b"], "owner": null}
`
	ds, err := Read(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	wantCols := []string{"id", "repo_name", "title", "labels", "owner"}
	if strings.Join(ds.Columns, ",") != strings.Join(wantCols, ",") {
		t.Errorf("Columns = %v, want %v", ds.Columns, wantCols)
	}
	if len(ds.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(ds.Tasks))
	}

	first := ds.Tasks[0]
	if first.Repo != "beta" || !first.HasRepo {
		t.Errorf("first task repo = %q (has=%v), want beta", first.Repo, first.HasRepo)
	}
	if first.Line != 1 {
		t.Errorf("first task line = %d, want 1", first.Line)
	}
	if got := first.Value("title"); got != "fix bug" {
		t.Errorf("title = %q, want %q", got, "fix bug")
	}

	second := ds.Tasks[1]
	if got := second.Value("labels"); got != `["a", "b"]` {
		t.Errorf("labels = %q", got)
	}
	if got := second.Value("owner"); got != "" {
		t.Errorf("owner = %q, want empty for null", got)
	}
	if got := second.Value("title"); got != "" {
		t.Errorf("missing column should read as empty, got %q", got)
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"repo_name": "a"}`,
		`{"repo_name": "b"`,
		`not json at all`,
		`[1, 2, 3]`,
		``,
		`{"repo_name": "c"}`,
	}, "\n")

	ds, err := Read(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(ds.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(ds.Tasks))
	}
	if ds.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", ds.Skipped)
	}
	if ds.Tasks[1].Line != 6 {
		t.Errorf("line of last task = %d, want 6", ds.Tasks[1].Line)
	}
}

func TestReadMissingAndNullRepo(t *testing.T) {
	input := `{"title": "no repo"}
{"repo_name": null}
{"repo_name": 42}
{"repo_name": "esc\"aped"}`

	ds, err := Read(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	tests := []struct {
		repo    string
		hasRepo bool
	}{
		{"", false},
		{"", false},
		{"42", true},
		{`esc"aped`, true},
	}
	for i, tt := range tests {
		got := ds.Tasks[i]
		if got.Repo != tt.repo || got.HasRepo != tt.hasRepo {
			t.Errorf("task %d: repo=%q has=%v, want repo=%q has=%v", i, got.Repo, got.HasRepo, tt.repo, tt.hasRepo)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl"), nil)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "nope.jsonl") {
		t.Errorf("error should name the path, got: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.jsonl")
	if err := os.WriteFile(path, []byte(`{"repo_name":"x"}`+"\n"+`{"repo_name":"y"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := ReadFile(path, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := ds.Repos(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("Repos() = %v", got)
	}
}
