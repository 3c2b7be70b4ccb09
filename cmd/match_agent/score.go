package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against one job",
	Long: `Score a candidate resume against a job requirement and print the match result as JSON.

The job comes from the store (--job-id) or from a local JSON file (--job-file). The resume comes from a text file (--resume), or from the stored candidate profile when only --candidate is given.`,
	RunE: runScore,
}

var (
	scoreConfigPath  string
	scoreJobID       int64
	scoreJobFile     string
	scoreResumePath  string
	scoreCandidateID string
	scoreModel       string
	scoreModelName   string
	scoreAPIKey      string
	scoreDatabaseURL string
	scoreVerbose     bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().Int64VarP(&scoreJobID, "job-id", "j", 0, "Job requirement id in the store (mutually exclusive with --job-file)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job-file", "", "Path to a JSON job requirement file (mutually exclusive with --job-id)")
	scoreCmd.Flags().StringVarP(&scoreResumePath, "resume", "r", "", "Path to resume text file")
	scoreCmd.Flags().StringVarP(&scoreCandidateID, "candidate", "c", "", "Candidate id to attribute the prediction to")
	scoreCmd.Flags().StringVarP(&scoreModel, "model", "m", string(types.ModelRuleBased), "Scoring model: rule-based or model-delegated")
	scoreCmd.Flags().StringVar(&scoreModelName, "model-name", "", "Delegated backend model override (e.g. gemini-2.5-pro)")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCmd.Flags().StringVar(&scoreDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(scoreConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = scoreDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scoreVerbose
	}

	if (scoreJobID == 0) == (scoreJobFile == "") {
		return fmt.Errorf("exactly one of --job-id or --job-file is required")
	}

	model, err := types.ParseModelKind(scoreModel)
	if err != nil {
		return err
	}

	// The store is only mandatory when the job lives there.
	rt, err := buildRuntime(ctx, cfg, scoreJobFile == "")
	if err != nil {
		return err
	}
	defer rt.Close()

	job, err := resolveJob(ctx, rt, scoreJobID, scoreJobFile)
	if err != nil {
		return err
	}

	resumeText, err := resolveResume(ctx, rt, scoreResumePath, scoreCandidateID)
	if err != nil {
		return err
	}

	result, err := rt.matcher.Match(ctx, types.MatchRequest{
		CandidateID: scoreCandidateID,
		JobID:       job.ID,
		ResumeText:  resumeText,
		Model:       model,
		ModelName:   scoreModelName,
	}, *job)
	if err != nil {
		return err
	}

	return printJSON(result)
}

// resolveJob loads the job from the store by id or from a local JSON file.
func resolveJob(ctx context.Context, rt *runtime, jobID int64, jobFile string) (*types.JobRequirement, error) {
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		var job types.JobRequirement
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to parse job JSON: %w", err)
		}
		return &job, nil
	}

	job, err := rt.db.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("job %d not found", jobID)
	}
	return job, nil
}

// resolveResume reads the resume text from a file, or from the stored
// candidate profile when no file is given.
func resolveResume(ctx context.Context, rt *runtime, resumePath, candidateID string) (string, error) {
	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			return "", fmt.Errorf("failed to read resume file: %w", err)
		}
		return string(data), nil
	}

	if candidateID == "" || rt.db == nil {
		return "", fmt.Errorf("--resume is required (or --candidate with a configured database)")
	}

	candidate, err := rt.db.GetCandidate(ctx, candidateID)
	if err != nil {
		return "", err
	}
	if candidate == nil {
		return "", fmt.Errorf("candidate %s not found", candidateID)
	}
	return candidate.ResumeText, nil
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
