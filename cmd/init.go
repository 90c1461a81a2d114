package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saad2128/jsonl-task-processor/internal/config"
	"github.com/saad2128/jsonl-task-processor/internal/distribute"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize taskdist configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to record your team roster and output settings and writes them to .taskdist.yml.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(config.TerminalPrompter{}, cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d team(s) saved to %s (total weekly capacity: %d tasks)\n",
			len(cfg.Teams), cfgFile, distribute.TotalCapacity(cfg.Roster()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
