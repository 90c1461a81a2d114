package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/saad2128/jsonl-task-processor/internal/distribute"
)

// Prompter asks one question and returns an answer accepted by validate.
// Implementations keep asking until the answer validates.
type Prompter interface {
	Ask(label, defaultValue string, validate func(string) error) (string, error)
}

// TerminalPrompter asks questions on the terminal with promptui.
type TerminalPrompter struct{}

// Ask implements Prompter. promptui re-prompts on its own while validate
// rejects the input.
func (TerminalPrompter) Ask(label, defaultValue string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  defaultValue,
		Validate: validate,
	}
	answer, err := p.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func validateTeamCount(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("please enter a valid number")
	}
	if n < 0 {
		return fmt.Errorf("number of teams cannot be negative")
	}
	return nil
}

func validateDeveloperCount(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("please enter a valid number")
	}
	if n <= 0 {
		return fmt.Errorf("number of developers must be positive")
	}
	return nil
}

func validateLeadName(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("lead name is required")
	}
	return nil
}

// PromptTeamCount asks how many teams to configure.
func PromptTeamCount(p Prompter) (int, error) {
	answer, err := p.Ask("Enter number of teams", "", validateTeamCount)
	if err != nil {
		return 0, fmt.Errorf("team count: %w", err)
	}
	return strconv.Atoi(strings.TrimSpace(answer))
}

// PromptRoster collects a lead name and developer count for each of count
// teams and echoes the derived capacity to out.
func PromptRoster(p Prompter, count int, w distribute.Workload, out io.Writer) ([]TeamConfig, error) {
	fmt.Fprintln(out, "\n=== Team Information Collection ===")

	teams := make([]TeamConfig, 0, count)
	for i := 1; i <= count; i++ {
		fmt.Fprintf(out, "\nTeam %d:\n", i)

		lead, err := p.Ask(fmt.Sprintf("Enter lead name for Team %d", i), "", validateLeadName)
		if err != nil {
			return nil, fmt.Errorf("team %d lead name: %w", i, err)
		}

		devStr, err := p.Ask(fmt.Sprintf("Enter number of developers for Team %d", i), "", validateDeveloperCount)
		if err != nil {
			return nil, fmt.Errorf("team %d developers: %w", i, err)
		}
		devs, _ := strconv.Atoi(strings.TrimSpace(devStr))

		tc := TeamConfig{LeadName: strings.TrimSpace(lead), NumDevelopers: devs}
		teams = append(teams, tc)

		fmt.Fprintf(out, "Team %d - Lead: %s, Developers: %d, Weekly Capacity: %d tasks\n",
			i, tc.LeadName, tc.NumDevelopers, w.WeeklyCapacity(tc.NumDevelopers))
	}
	return teams, nil
}

// RunWizard runs the interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(p Prompter, path string) (*Config, error) {
	fmt.Println("Welcome to taskdist! Let's configure your teams.")
	fmt.Println()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	outputDir, err := p.Ask("Output directory for weekly assignments", cfg.OutputDir, func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("output directory is required")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	count, err := PromptTeamCount(p)
	if err != nil {
		return nil, err
	}
	teams, err := PromptRoster(p, count, cfg.Workload(), os.Stdout)
	if err != nil {
		return nil, err
	}
	cfg.Teams = teams

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
