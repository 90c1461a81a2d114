package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/saad2128/jsonl-task-processor/internal/distribute"
)

// scriptedPrompter replays answers, re-asking while validation fails the way
// promptui does.
type scriptedPrompter struct {
	answers  []string
	rejected int
}

func (s *scriptedPrompter) Ask(_ string, _ string, validate func(string) error) (string, error) {
	for len(s.answers) > 0 {
		a := s.answers[0]
		s.answers = s.answers[1:]
		if err := validate(a); err != nil {
			s.rejected++
			continue
		}
		return strings.TrimSpace(a), nil
	}
	return "", errors.New("out of answers")
}

func TestPromptRosterReprompts(t *testing.T) {
	p := &scriptedPrompter{answers: []string{
		"Ada Lovelace", "zero", "-2", "0", "3",
		"", "Grace", "1",
	}}
	var out bytes.Buffer

	teams, err := PromptRoster(p, 2, distribute.DefaultWorkload, &out)
	if err != nil {
		t.Fatalf("PromptRoster: %v", err)
	}
	if p.rejected != 4 {
		t.Errorf("rejected %d answers, want 4", p.rejected)
	}
	want := []TeamConfig{{"Ada Lovelace", 3}, {"Grace", 1}}
	for i := range want {
		if teams[i] != want[i] {
			t.Errorf("teams[%d] = %+v, want %+v", i, teams[i], want[i])
		}
	}
	if !strings.Contains(out.String(), "Team 1 - Lead: Ada Lovelace, Developers: 3, Weekly Capacity: 75 tasks") {
		t.Errorf("missing capacity echo in output:\n%s", out.String())
	}
}

func TestPromptRosterAborted(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"Ada"}}
	if _, err := PromptRoster(p, 1, distribute.DefaultWorkload, &bytes.Buffer{}); err == nil {
		t.Error("expected error when input ends early")
	}
}

func TestPromptTeamCount(t *testing.T) {
	p := &scriptedPrompter{answers: []string{"two", "-1", " 2 "}}
	n, err := PromptTeamCount(p)
	if err != nil {
		t.Fatalf("PromptTeamCount: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr bool
	}{
		{"team count zero", validateTeamCount, "0", false},
		{"team count negative", validateTeamCount, "-3", true},
		{"team count text", validateTeamCount, "abc", true},
		{"developers positive", validateDeveloperCount, "4", false},
		{"developers zero", validateDeveloperCount, "0", true},
		{"developers float", validateDeveloperCount, "2.5", true},
		{"lead name", validateLeadName, "Ada", false},
		{"lead blank", validateLeadName, "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
