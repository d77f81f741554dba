package cli

import (
	"github.com/glpipe/glpipe/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

var downloadTo string

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download job or pipeline artifact archives",
}

var downloadJobCmd = &cobra.Command{
	Use:   "job <job-id> [path]",
	Short: "Download the artifact archive of one job",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := jobIDArg(args)
		if err != nil {
			return err
		}

		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).DownloadJobArtifacts(cmd.Context(), pathArg(args[1:]), id, downloadTo))
		return nil
	},
}

var downloadPipelineCmd = &cobra.Command{
	Use:   "pipeline [path]",
	Short: "Download artifact archives for every job of a pipeline",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).DownloadPipelineArtifacts(cmd.Context(), pathArg(args), pipelineID, downloadTo))
	},
}

func init() {
	downloadCmd.PersistentFlags().StringVar(&downloadTo, "to", "", "target directory (default: <repo>/.glpipe/artifacts/job-<id>)")
	downloadPipelineCmd.Flags().Int64Var(&pipelineID, "id", 0, "pipeline id (default: latest)")

	downloadCmd.AddCommand(downloadJobCmd)
	downloadCmd.AddCommand(downloadPipelineCmd)
	rootCmd.AddCommand(downloadCmd)
}
