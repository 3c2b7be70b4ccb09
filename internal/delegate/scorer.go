// Package delegate implements the model-delegated scoring path: the resume
// and job context are submitted to an external AI backend, which is the sole
// source of scores. The response is normalized into the same MatchResult
// shape the rule-based path produces.
package delegate

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultTimeout bounds one remote scoring call. A timeout is mandatory on
// this boundary; expiry surfaces as ScoringUnavailableError.
const DefaultTimeout = 60 * time.Second

// DefaultPacingInterval is the minimal delay between remote calls.
const DefaultPacingInterval = 500 * time.Millisecond

// Scorer submits resumes to the remote scoring backend and normalizes the
// responses. It never falls back to local scoring: remote faults propagate
// and the orchestrator decides.
type Scorer struct {
	client  llm.Client
	logger  *zap.Logger
	timeout time.Duration
	pacer   *Pacer
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scorer) { s.timeout = d }
}

// WithPacer overrides the inter-call pacer.
func WithPacer(p *Pacer) Option {
	return func(s *Scorer) { s.pacer = p }
}

// NewScorer creates a delegated scorer over the given LLM client.
func NewScorer(client llm.Client, logger *zap.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		client:  client,
		logger:  logger,
		timeout: DefaultTimeout,
		pacer:   NewPacer(DefaultPacingInterval),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// remoteResponse mirrors the delegated scoring response contract. Every field
// is optional; absent fields normalize to zero values, never nulls.
type remoteResponse struct {
	OverallScore       int      `json:"overall_score"`
	SkillMatchPct      int      `json:"skill_match_pct"`
	ExperienceMatchPct int      `json:"experience_match_pct"`
	MatchedSkills      []string `json:"matched_skills"`
	MissingSkills      []string `json:"missing_skills"`
	Suggestions        string   `json:"suggestions"`
	ModelSummary       string   `json:"model_summary"`
}

// Analyze scores the resume against the job via the remote backend. The
// model parameter optionally names the backend model; empty uses the
// configured default.
func (s *Scorer) Analyze(ctx context.Context, resumeText string, job types.JobRequirement, model string) (types.MatchResult, error) {
	if err := s.pacer.Wait(ctx); err != nil {
		return types.MatchResult{}, &ScoringUnavailableError{Message: "pacing interrupted", Cause: err}
	}

	prompt := buildPrompt(resumeText, job)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.client.GenerateJSON(callCtx, prompt, model)
	if err != nil {
		return types.MatchResult{}, &ScoringUnavailableError{Message: "remote call failed", Cause: err}
	}

	s.logger.Debug("delegated scoring response received",
		zap.Int64("job_id", job.ID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(raw)),
	)

	result, err := normalizeResponse([]byte(raw))
	if err != nil {
		return types.MatchResult{}, err
	}
	return result, nil
}

// buildPrompt renders the embedded analysis template with the resume text and
// all job fields. Required skills are transmitted comma-joined, as authored.
func buildPrompt(resumeText string, job types.JobRequirement) string {
	template := prompts.MustGet("delegate.json", "analyze-resume")
	return prompts.Format(template, map[string]string{
		"JobTitle":        job.Title,
		"Company":         job.Company,
		"Description":     job.Description,
		"Location":        job.Location,
		"ExperienceLevel": string(job.ExperienceLevel),
		"RequiredSkills":  strings.Join(job.RequiredSkills, ", "),
		"Industry":        job.Industry,
		"EmploymentMode":  job.EmploymentMode,
		"ResumeText":      resumeText,
	})
}

// normalizeResponse validates and decodes the remote document into the shared
// MatchResult contract. Malformed or schema-violating documents mean no
// trustworthy score exists, which is a scoring-unavailable condition.
func normalizeResponse(doc []byte) (types.MatchResult, error) {
	if err := schemas.ValidateMatchResponse(doc); err != nil {
		return types.MatchResult{}, &ScoringUnavailableError{Message: "malformed remote response", Cause: err}
	}

	var resp remoteResponse
	if err := json.Unmarshal(doc, &resp); err != nil {
		return types.MatchResult{}, &ScoringUnavailableError{Message: "undecodable remote response", Cause: err}
	}

	return types.MatchResult{
		OverallScore:       clampPct(resp.OverallScore),
		SkillMatchPct:      clampPct(resp.SkillMatchPct),
		ExperienceMatchPct: clampPct(resp.ExperienceMatchPct),
		MatchedSkills:      ensureSlice(resp.MatchedSkills),
		MissingSkills:      ensureSlice(resp.MissingSkills),
		Suggestions:        resp.Suggestions,
		ModelSummary:       resp.ModelSummary,
	}, nil
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ensureSlice maps absent skill lists to empty sequences so nulls never cross
// the shared contract.
func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
