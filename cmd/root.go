package cmd

import (
	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "taskdist <input.jsonl>",
	Short: "Distribute JSONL tasks across teams in capacity-bounded weekly batches",
	Long: `taskdist reads line-delimited JSON task records, numbers them in repository
order and splits them into weekly batches sized to the combined capacity of
your teams. Within each week whole repositories are assigned to teams, so no
repository is ever split across teams in the same week.

Per-team CSV files are written under week_N directories together with a
Markdown and JSON distribution report.`,
	Args: cobra.ExactArgs(1),
	RunE: runDistribute,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
