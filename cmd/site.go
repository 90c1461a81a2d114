package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/output"
	"github.com/saad2128/jsonl-task-processor/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site [dir]",
	Short: "Render an existing distribution report as HTML",
	Long: `Renders distribution_report.md from the output directory (or the given
directory) to a standalone distribution_report.html next to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSite,
}

func init() {
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir = cfg.OutputDir
	}

	src := filepath.Join(dir, output.ReportMarkdown)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return fmt.Errorf("report not found at %s\nRun `taskdist <input.jsonl>` first to create it", src)
	}

	dst := site.HTMLPath(src)
	if err := site.NewPageGenerator(projectName()).RenderFile(src, dst); err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HTML report generated: %s\n", dst)
	return nil
}
