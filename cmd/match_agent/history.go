package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Read the prediction ledger",
	Long:  `List past prediction records newest first, optionally filtered by candidate, job, or scoring model.`,
	RunE:  runHistory,
}

var (
	historyConfigPath  string
	historyCandidateID string
	historyJobID       int64
	historyModel       string
	historyLimit       int
	historyCompare     bool
)

func init() {
	historyCmd.Flags().StringVar(&historyConfigPath, "config", "", "Path to config.json file")
	historyCmd.Flags().StringVarP(&historyCandidateID, "candidate", "c", "", "Filter by candidate id")
	historyCmd.Flags().Int64VarP(&historyJobID, "job-id", "j", 0, "Filter by job id")
	historyCmd.Flags().StringVarP(&historyModel, "model", "m", "", "Filter by scoring model: rule-based or model-delegated")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum records to return (default 50)")
	historyCmd.Flags().BoolVar(&historyCompare, "compare-models", false, "Aggregate outcomes per scoring model instead of listing records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(historyConfigPath)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	if historyCompare {
		stats, err := rt.db.ModelComparison(ctx)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"models": stats})
	}

	filter := store.HistoryFilter{
		CandidateID: historyCandidateID,
		JobID:       historyJobID,
		Limit:       historyLimit,
	}
	if historyModel != "" {
		model, err := types.ParseModelKind(historyModel)
		if err != nil {
			return err
		}
		filter.Model = model
	}

	records, err := rt.db.History(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Printf("%d record(s)\n", len(records))
	return printJSON(records)
}
