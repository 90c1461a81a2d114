package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded distribution runs or show one run",
	Long: `Without arguments, lists the most recent runs recorded in the history
database. With a run id, prints that run's roster and every repository
assignment. With --repo, lists where a repository has been assigned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list (0 for all)")
	historyCmd.Flags().String("repo", "", "show the assignments of one repository across runs")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, database, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if repo, _ := cmd.Flags().GetString("repo"); repo != "" {
		assignments, err := store.RepoAssignments(ctx, repo)
		if err != nil {
			return err
		}
		if len(assignments) == 0 {
			fmt.Fprintf(out, "No assignments recorded for %s.\n", repo)
			return nil
		}
		printAssignments(out, assignments, true)
		return nil
	}

	if len(args) == 1 {
		detail, err := store.Get(ctx, args[0])
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("no recorded run with id %s", args[0])
		}
		if err != nil {
			return err
		}
		printRunDetail(out, detail)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	printRuns(out, runs)
	return nil
}

func printRuns(out io.Writer, runs []history.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tINPUT\tTASKS\tWEEKS\tTEAMS\tCAPACITY\tUTILIZATION\tOVER")
	for _, r := range runs {
		over := "-"
		if r.Overallocated {
			over = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.1f%%\t%s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.InputPath,
			r.TotalTasks, r.TotalWeeks, r.TotalTeams, r.WeeklyCapacity, r.Utilization*100, over)
	}
	w.Flush()
}

func printRunDetail(out io.Writer, d *history.RunDetail) {
	fmt.Fprintln(out, heading("Run "+d.ID))
	fmt.Fprintf(out, "Created: %s\n", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Input: %s\n", d.InputPath)
	fmt.Fprintf(out, "Output directory: %s\n", d.OutputDir)
	fmt.Fprintf(out, "Tasks: %d in %d week(s), %d malformed line(s) skipped\n", d.TotalTasks, d.TotalWeeks, d.SkippedLines)
	fmt.Fprintf(out, "Utilization: %.1f%% of %d tasks/week\n", d.Utilization*100, d.WeeklyCapacity)
	if d.Overallocated {
		fmt.Fprintln(out, warnStyle.Render("Over-allocated: at least one team exceeded its weekly capacity"))
	}

	fmt.Fprintln(out, "\n"+heading("Teams"))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tLEAD\tDEVELOPERS\tCAPACITY")
	for _, t := range d.Teams {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", t.TeamNumber, t.LeadName, t.NumDevelopers, t.WeeklyCapacity)
	}
	w.Flush()

	fmt.Fprintln(out, "\n"+heading("Assignments"))
	printAssignments(out, d.Assignments, false)
}

func printAssignments(out io.Writer, assignments []history.Assignment, withRun bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "WEEK\tTEAM\tLEAD\tREPOSITORY\tTASKS\tSERIALS\tRULE"
	if withRun {
		header = "RUN\t" + header
	}
	fmt.Fprintln(w, header)
	for _, a := range assignments {
		if withRun {
			fmt.Fprintf(w, "%s\t", a.RunID)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%d-%d\t%s\n",
			a.Week, a.TeamNumber, a.LeadName, a.Repo, a.TaskCount, a.MinSerial, a.MaxSerial, a.Rule)
	}
	w.Flush()
}
