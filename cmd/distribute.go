package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/config"
	"github.com/saad2128/jsonl-task-processor/internal/distribute"
	"github.com/saad2128/jsonl-task-processor/internal/history"
	"github.com/saad2128/jsonl-task-processor/internal/notifications"
	"github.com/saad2128/jsonl-task-processor/internal/output"
	"github.com/saad2128/jsonl-task-processor/internal/progress"
	"github.com/saad2128/jsonl-task-processor/internal/report"
	"github.com/saad2128/jsonl-task-processor/internal/task"
)

func init() {
	rootCmd.Flags().String("output", "", "override the output directory")
	rootCmd.Flags().Int("teams", 0, "number of teams (skips the team-count prompt)")
	rootCmd.Flags().Bool("prompt", false, "collect the roster interactively even if the config lists teams")
	rootCmd.Flags().Bool("html", false, "also render the report as HTML")
	rootCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
}

func runDistribute(cmd *cobra.Command, args []string) error {
	input := args[0]
	if info, err := os.Stat(input); err != nil || info.IsDir() {
		return fmt.Errorf("input file %q not found", input)
	}
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		cfg.OutputDir = dir
	}

	teamCount := -1
	if cmd.Flags().Changed("teams") {
		teamCount, _ = cmd.Flags().GetInt("teams")
		if teamCount < 0 {
			return fmt.Errorf("--teams must not be negative")
		}
	}
	forcePrompt, _ := cmd.Flags().GetBool("prompt")
	withHTML, _ := cmd.Flags().GetBool("html")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading("=== JSONL Task Distribution Tool ==="))
	fmt.Fprintf(out, "\nProcessing file: %s\n", input)

	d := &distributor{
		cfg:         cfg,
		input:       input,
		teamCount:   teamCount,
		forcePrompt: forcePrompt,
		withHTML:    withHTML,
		prompter:    config.TerminalPrompter{},
		progress:    progress.NewReporter("Writing weeks"),
		out:         out,
		logger:      newLogger(),
		now:         time.Now,
	}

	res, err := d.run()
	if err != nil {
		return err
	}

	if cfg.History.Enabled && !noHistory {
		res.RunID = d.record(cmd.Context(), res)
	}
	d.notify(cmd.Context(), res)

	printSummary(out, res)
	return nil
}

// distributor runs the pipeline from input file to written artifacts.
type distributor struct {
	cfg         *config.Config
	input       string
	teamCount   int // -1 when the count should be prompted for
	forcePrompt bool
	withHTML    bool

	prompter config.Prompter
	progress progress.Reporter
	out      io.Writer
	logger   *slog.Logger
	now      func() time.Time
}

// distributeResult is everything a finished run produced.
type distributeResult struct {
	Plan        *distribute.Plan
	Report      *report.Report
	OutputDir   string
	InputPath   string
	CompleteCSV string
	SortedCSV   string
	Reports     output.ReportPaths
	WeekDirs    []string
	Parsed      int
	Repos       int
	Skipped     int
	Filtered    int
	RunID       string
}

// run reads and plans first and only then writes, so a run that fails
// validation leaves no files behind.
func (d *distributor) run() (*distributeResult, error) {
	ds, err := task.ReadFile(d.input, d.logger)
	if err != nil {
		return nil, err
	}
	if ds.Skipped > 0 {
		d.logger.Warn("malformed lines skipped", "count", ds.Skipped, "file", d.input)
	}

	tasks, filtered := d.cfg.RepoFilter().Apply(ds.Tasks)
	if filtered > 0 {
		d.logger.Info("tasks excluded by repository filter", "count", filtered)
	}

	teams, err := d.roster()
	if err != nil {
		return nil, err
	}

	total := distribute.TotalCapacity(teams)
	fmt.Fprintf(d.out, "\nTotal weekly capacity: %d tasks\n", total)
	fmt.Fprintf(d.out, "Total tasks to distribute: %d\n", len(tasks))
	if total > 0 {
		fmt.Fprintf(d.out, "Estimated weeks needed: %d\n", distribute.WeeksNeeded(len(tasks), total))
	}

	plan, err := distribute.NewPlan(tasks, teams)
	if err != nil {
		return nil, err
	}

	res := &distributeResult{
		Plan:      plan,
		OutputDir: d.cfg.OutputDir,
		InputPath: d.input,
		Parsed:    len(ds.Tasks),
		Repos:     len(ds.Repos()),
		Skipped:   ds.Skipped,
		Filtered:  filtered,
	}
	res.CompleteCSV, res.SortedCSV = output.InputArtifactPaths(d.input)

	w := output.NewWriter(d.cfg.OutputDir, ds.Columns, d.logger)
	if err := w.WriteTasks(res.CompleteCSV, ds.Tasks, false); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.CompleteCSV, err)
	}
	if err := w.WriteTasks(res.SortedCSV, plan.Tasks, true); err != nil {
		return nil, fmt.Errorf("writing %s: %w", res.SortedCSV, err)
	}

	d.progress.Start(len(plan.Allocations))
	for i, alloc := range plan.Allocations {
		dir, err := w.WriteWeek(alloc)
		if err != nil {
			d.progress.Finish()
			return nil, err
		}
		res.WeekDirs = append(res.WeekDirs, dir)
		d.progress.Update(i+1, fmt.Sprintf("week %d (%d tasks)", alloc.Week, alloc.TotalTasks))
	}
	d.progress.Finish()

	pruned, err := w.PruneWeeks(plan.Weeks())
	if err != nil {
		return nil, err
	}
	if len(pruned) > 0 {
		d.logger.Info("removed week folders left by an earlier run", "dirs", strings.Join(pruned, ","))
	}

	res.Report = report.Build(plan.Allocations, plan.Teams, d.cfg.Workload(), d.now())
	for _, o := range res.Report.Overallocations {
		d.logger.Warn("team over capacity",
			"week", o.Week,
			"team", o.TeamNumber,
			"lead", o.LeadName,
			"assigned", o.Assigned,
			"capacity", o.Capacity,
			"repos", strings.Join(o.Repos, ","),
		)
	}

	res.Reports, err = w.WriteReport(res.Report, d.withHTML, projectName())
	if err != nil {
		return nil, err
	}
	return res, nil
}

// roster returns the configured teams, or collects them interactively when
// the config has none, --prompt is set or --teams is given.
func (d *distributor) roster() ([]distribute.Team, error) {
	if len(d.cfg.Teams) > 0 && !d.forcePrompt && d.teamCount < 0 {
		teams := d.cfg.Roster()
		for _, t := range teams {
			fmt.Fprintf(d.out, "Team %d - Lead: %s, Developers: %d, Weekly Capacity: %d tasks\n",
				t.Number, t.LeadName, t.Developers, t.WeeklyCapacity)
		}
		return teams, nil
	}

	count := d.teamCount
	if count < 0 {
		n, err := config.PromptTeamCount(d.prompter)
		if err != nil {
			return nil, err
		}
		count = n
	}

	entries, err := config.PromptRoster(d.prompter, count, d.cfg.Workload(), d.out)
	if err != nil {
		return nil, err
	}
	d.cfg.Teams = entries
	return d.cfg.Roster(), nil
}

// record stores the run in the history database. Failures are logged and do
// not fail the run, whose artifacts are already on disk.
func (d *distributor) record(ctx context.Context, res *distributeResult) string {
	store, database, err := openHistory(d.cfg)
	if err != nil {
		d.logger.Warn("run history unavailable", "error", err)
		return ""
	}
	defer database.Close()

	id, err := store.Record(ctx, res.Plan, res.Report, history.RunMeta{
		InputPath:    res.InputPath,
		OutputDir:    res.OutputDir,
		SkippedLines: res.Skipped,
	})
	if err != nil {
		d.logger.Warn("recording run history failed", "error", err)
		return ""
	}
	d.logger.Debug("run recorded", "id", id, "db", database.Path())
	return id
}

// notify posts the run's notifications to the configured webhooks. Delivery
// failures are logged and do not fail the run.
func (d *distributor) notify(ctx context.Context, res *distributeResult) {
	hooks := d.cfg.Webhooks()
	if len(hooks) == 0 {
		return
	}
	notes := notifications.ForRun(res.Report, notifications.RunInfo{
		RunID:     res.RunID,
		InputPath: res.InputPath,
		OutputDir: res.OutputDir,
	})
	if err := notifications.NewDispatcher(hooks, d.logger).Dispatch(ctx, notes...); err != nil {
		d.logger.Warn("webhook delivery failed", "error", err)
	}
}

func printSummary(out io.Writer, res *distributeResult) {
	r := res.Report

	for i, week := range r.Weeks {
		fmt.Fprintf(out, "\nWeek %d (%d tasks) -> %s\n", week.Week, week.TotalTasks, res.WeekDirs[i])
		for _, tw := range week.Teams {
			mark := ""
			if tw.Overallocated {
				mark = " " + warnStyle.Render("[OVER CAPACITY]")
			}
			fmt.Fprintf(out, "  Team %d (%s): %d tasks%s\n", tw.TeamNumber, tw.LeadName, tw.AssignedTasks, mark)
			if tw.SerialRange != nil {
				fmt.Fprintf(out, "    Serial Range: %d-%d\n", tw.SerialRange.Min, tw.SerialRange.Max)
			} else {
				fmt.Fprintln(out, "    Serial Range: N/A")
			}
			fmt.Fprintf(out, "    Capacity: %d, Used: %d, Remaining: %d\n",
				tw.WeeklyCapacity, tw.AssignedTasks, tw.RemainingCapacity)
			fmt.Fprintf(out, "    Tasks per developer: %.1f, Days needed: %d\n", tw.TasksPerDeveloper, tw.DaysNeeded)
			if tw.Repositories > 0 {
				fmt.Fprintf(out, "    Repositories: %d repos\n", tw.Repositories)
			}
		}
	}

	fmt.Fprintln(out, "\n"+heading("=== Distribution Complete ==="))
	fmt.Fprintf(out, "Total tasks processed: %d\n", r.TotalTasks)
	fmt.Fprintf(out, "Repositories in input: %d\n", res.Repos)
	if res.Skipped > 0 {
		fmt.Fprintf(out, "Malformed lines skipped: %d\n", res.Skipped)
	}
	if res.Filtered > 0 {
		fmt.Fprintf(out, "Tasks excluded by filter: %d\n", res.Filtered)
	}
	fmt.Fprintf(out, "Weekly batches created: %d\n", r.TotalWeeks)
	fmt.Fprintf(out, "Teams configured: %d\n", len(r.Teams))
	fmt.Fprintf(out, "Output directory: %s%c\n", res.OutputDir, filepath.Separator)
	fmt.Fprintf(out, "Complete CSV file: %s\n", res.CompleteCSV)
	fmt.Fprintf(out, "Sorted CSV with serials: %s\n", res.SortedCSV)
	fmt.Fprintf(out, "Distribution report: %s\n", res.Reports.Markdown)
	fmt.Fprintf(out, "JSON report: %s\n", res.Reports.JSON)
	if res.Reports.HTML != "" {
		fmt.Fprintf(out, "HTML report: %s\n", res.Reports.HTML)
	}
	if res.RunID != "" {
		fmt.Fprintf(out, "Run recorded: %s\n", okStyle.Render(res.RunID))
	}

	fmt.Fprintln(out, "\n"+heading("=== Capacity Summary ==="))
	fmt.Fprintf(out, "Total weekly capacity: %d tasks\n", r.TotalWeeklyCapacity)
	fmt.Fprintf(out, "Estimated completion time: %d weeks\n", distribute.WeeksNeeded(r.TotalTasks, r.TotalWeeklyCapacity))
	for _, week := range r.Weeks {
		if week.SerialRange != nil {
			fmt.Fprintf(out, "Week %d: %d tasks (Serial: %d-%d)\n",
				week.Week, week.TotalTasks, week.SerialRange.Min, week.SerialRange.Max)
		}
	}
	if n := len(r.Overallocations); n > 0 {
		fmt.Fprintln(out, "\n"+warnStyle.Render(fmt.Sprintf("Warning: %d team-week(s) over capacity; see the report for details", n)))
	}
}
