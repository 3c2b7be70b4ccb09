package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score multiple candidates against one job",
	Long: `Score a set of candidates against one stored job with bounded concurrency and print the per-candidate outcomes as JSON.

Subjects come from a JSON file (--input, an array of {candidate_id, resume_text} objects), from stored candidate profiles (--candidates, comma-separated ids), or from the whole candidate store (--all-candidates).`,
	RunE: runBatch,
}

var (
	batchConfigPath  string
	batchJobID       int64
	batchInputPath   string
	batchCandidates  string
	batchAll         bool
	batchLimit       int
	batchModel       string
	batchModelName   string
	batchConcurrency int
	batchAPIKey      string
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	batchCmd.Flags().Int64VarP(&batchJobID, "job-id", "j", 0, "Job requirement id in the store (required)")
	batchCmd.Flags().StringVar(&batchInputPath, "input", "", "Path to JSON file with batch subjects (mutually exclusive with --candidates)")
	batchCmd.Flags().StringVar(&batchCandidates, "candidates", "", "Comma-separated candidate ids whose stored resumes are scored")
	batchCmd.Flags().BoolVar(&batchAll, "all-candidates", false, "Score every stored candidate profile")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "Maximum candidates with --all-candidates (default 200)")
	batchCmd.Flags().StringVarP(&batchModel, "model", "m", string(types.ModelRuleBased), "Scoring model: rule-based or model-delegated")
	batchCmd.Flags().StringVar(&batchModelName, "model-name", "", "Delegated backend model override")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Concurrent match operations (0 uses the configured default)")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = batchCmd.MarkFlagRequired("job-id")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(batchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = batchAPIKey
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.BatchConcurrency = batchConcurrency
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = batchVerbose
	}

	sources := 0
	for _, set := range []bool{batchInputPath != "", batchCandidates != "", batchAll} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("exactly one of --input, --candidates, or --all-candidates is required")
	}

	model, err := types.ParseModelKind(batchModel)
	if err != nil {
		return err
	}

	rt, err := buildRuntime(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	job, err := rt.db.GetJob(ctx, batchJobID)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("job %d not found", batchJobID)
	}

	subjects, err := loadSubjects(ctx, rt, batchInputPath, batchCandidates)
	if err != nil {
		return err
	}

	outcomes := rt.matcher.BatchScore(ctx, subjects, *job, model, batchModelName)

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d subjects failed\n", failed, len(outcomes))
	}

	return printJSON(map[string]any{
		"job_id":   job.ID,
		"outcomes": outcomes,
	})
}

// loadSubjects builds the batch subject list from the input file or from
// stored candidate profiles.
func loadSubjects(ctx context.Context, rt *runtime, inputPath, candidates string) ([]types.BatchSubject, error) {
	if batchAll {
		all, err := rt.db.ListCandidates(ctx, batchLimit)
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, fmt.Errorf("candidate store is empty")
		}
		subjects := make([]types.BatchSubject, len(all))
		for i, c := range all {
			subjects[i] = types.BatchSubject{CandidateID: c.ID, ResumeText: c.ResumeText}
		}
		return subjects, nil
	}

	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch input: %w", err)
		}
		var subjects []types.BatchSubject
		if err := json.Unmarshal(data, &subjects); err != nil {
			return nil, fmt.Errorf("failed to parse batch input JSON: %w", err)
		}
		if len(subjects) == 0 {
			return nil, fmt.Errorf("batch input contains no subjects")
		}
		return subjects, nil
	}

	var subjects []types.BatchSubject
	for _, id := range strings.Split(candidates, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		candidate, err := rt.db.GetCandidate(ctx, id)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			return nil, fmt.Errorf("candidate %s not found", id)
		}
		subjects = append(subjects, types.BatchSubject{
			CandidateID: candidate.ID,
			ResumeText:  candidate.ResumeText,
		})
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("no candidates resolved from --candidates")
	}
	return subjects, nil
}
