package cli

import (
	"github.com/glpipe/glpipe/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

var pipelineID int64

var repoCmd = &cobra.Command{
	Use:   "repo [path]",
	Short: "Show the GitLab project resolved from the origin remote",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).RepoURL(cmd.Context(), pathArg(args)))
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest [path]",
	Short: "Show the most recently updated pipeline",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).LatestPipeline(cmd.Context(), pathArg(args)))
	},
}

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [path]",
	Short: "Show a pipeline with jobs, traces and artifact metadata",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).PipelineDetails(cmd.Context(), pathArg(args), pipelineID))
	},
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func init() {
	pipelineCmd.Flags().Int64Var(&pipelineID, "id", 0, "pipeline id (default: latest)")

	rootCmd.AddCommand(repoCmd)
	rootCmd.AddCommand(latestCmd)
	rootCmd.AddCommand(pipelineCmd)
}
