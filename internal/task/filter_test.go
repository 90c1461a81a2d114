package task

import "testing"

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		repo   string
		want   bool
	}{
		{"empty admits all", Filter{}, "org/repo", true},
		{"include hit", Filter{Include: []string{"org/*"}}, "org/repo", true},
		{"include miss", Filter{Include: []string{"org/*"}}, "other/repo", false},
		{"exclude hit", Filter{Exclude: []string{"**/archive-*"}}, "org/archive-old", false},
		{"exclude wins over include", Filter{Include: []string{"org/*"}, Exclude: []string{"org/legacy"}}, "org/legacy", false},
		{"doublestar across segments", Filter{Include: []string{"org/**"}}, "org/team/repo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.repo); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.repo, got, tt.want)
			}
		})
	}
}

func TestFilterApplyKeepsRepoless(t *testing.T) {
	tasks := []Task{
		{Repo: "keep/a", HasRepo: true},
		{Repo: "drop/b", HasRepo: true},
		{HasRepo: false},
	}
	f := Filter{Include: []string{"keep/*"}}

	kept, dropped := f.Apply(tasks)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(kept) != 2 || kept[0].Repo != "keep/a" || kept[1].HasRepo {
		t.Errorf("unexpected kept tasks: %+v", kept)
	}
}

func TestFilterValidate(t *testing.T) {
	if err := (Filter{Include: []string{"org/*"}}).Validate(); err != nil {
		t.Errorf("valid pattern rejected: %v", err)
	}
	if err := (Filter{Exclude: []string{"org/[abc"}}).Validate(); err == nil {
		t.Error("expected error for unterminated class")
	}
}
