package cli

import (
	"fmt"
	"strconv"

	"github.com/glpipe/glpipe/internal/infrastructure/logging"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job <job-id> [path]",
	Short: "Show a single job",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := jobIDArg(args)
		if err != nil {
			return err
		}

		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).JobDetails(cmd.Context(), pathArg(args[1:]), id))
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs <job-id> [path]",
	Short: "Show the raw trace of a job",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := jobIDArg(args)
		if err != nil {
			return err
		}

		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).JobLogs(cmd.Context(), pathArg(args[1:]), id))
		return nil
	},
}

var artifactsCmd = &cobra.Command{
	Use:   "artifacts <job-id> [path]",
	Short: "List artifact metadata for a job",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := jobIDArg(args)
		if err != nil {
			return err
		}

		log := logging.New()
		defer func() { _ = log.Sync() }()

		printResult(loadService(log).JobArtifacts(cmd.Context(), pathArg(args[1:]), id))
		return nil
	},
}

func jobIDArg(args []string) (int64, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("job id must be numeric, got %q", args[0])
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(artifactsCmd)
}
