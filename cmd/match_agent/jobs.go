package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [id]",
	Short: "List stored job requirements",
	Long:  `List the stored job requirements newest first, or print one job when an id is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJobs,
}

var (
	jobsConfigPath string
	jobsLimit      int
)

func init() {
	jobsCmd.Flags().StringVar(&jobsConfigPath, "config", "", "Path to config.json file")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 0, "Maximum jobs to return (default 50)")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(jobsConfigPath)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job id %q", args[0])
		}
		job, err := rt.db.GetJob(ctx, id)
		if err != nil {
			return err
		}
		if job == nil {
			return fmt.Errorf("job %d not found", id)
		}
		return printJSON(job)
	}

	jobs, err := rt.db.ListJobs(ctx, jobsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("%d job(s)\n", len(jobs))
	return printJSON(jobs)
}
