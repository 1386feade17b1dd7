// cmd/root.go
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dev-mohitbeniwal/workbench/config"
	logger "github.com/dev-mohitbeniwal/workbench/logging"
)

var rootCmd = newRootCommand()

func Execute() error {
	return rootCmd.Execute()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbench",
		Short: "Data explorer service for Arvados clusters",
		Long: `Workbench serves the paginated, filterable lists behind the project,
search results and process panels of an Arvados workbench.

Every panel keeps its own page, sort, filters and search value; loads are
sent to the local cluster or, for search, to every configured cluster.`,
		Example: `  # Run the HTTP API
  workbench serve

  # Print the first page of the process list
  workbench list allProcessesPanel --search bwa`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		logger.InitLogger(config.GetString("log.dir"))
		return nil
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newListCommand())
	return cmd
}
