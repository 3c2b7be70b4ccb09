// Package match provides the orchestrator that selects a scoring path per
// request, guarantees a uniform result contract regardless of path, and
// forwards successful results to the prediction history ledger.
package match

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// DefaultRecordTimeout bounds the best-effort ledger write.
const DefaultRecordTimeout = 5 * time.Second

// DefaultBatchConcurrency bounds concurrent match operations in a batch run.
const DefaultBatchConcurrency = 4

// Ledger is the append-only prediction history store.
type Ledger interface {
	RecordPrediction(ctx context.Context, rec types.PredictionRecord) (uuid.UUID, error)
}

// DelegatedScorer is the model-delegated scoring path.
type DelegatedScorer interface {
	Analyze(ctx context.Context, resumeText string, job types.JobRequirement, model string) (types.MatchResult, error)
}

// Orchestrator routes match requests to the chosen scoring path. The two
// paths are explicit caller choices: a delegated-path failure propagates
// rather than silently degrading to rule-based scoring, because the caller
// did not ask for a materially different scoring method.
type Orchestrator struct {
	extractor     *extraction.Extractor
	delegated     DelegatedScorer
	ledger        Ledger
	logger        *zap.Logger
	recordTimeout time.Duration
	concurrency   int

	wg sync.WaitGroup
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecordTimeout overrides the ledger write timeout.
func WithRecordTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.recordTimeout = d }
}

// WithBatchConcurrency overrides the batch concurrency bound.
func WithBatchConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// New creates an orchestrator. The delegated scorer may be nil when no remote
// backend is configured; the ledger may be nil to disable persistence.
func New(extractor *extraction.Extractor, delegated DelegatedScorer, ledger Ledger, logger *zap.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		extractor:     extractor,
		delegated:     delegated,
		ledger:        ledger,
		logger:        logger,
		recordTimeout: DefaultRecordTimeout,
		concurrency:   DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Match scores one resume against one job via the requested path and returns
// the uniform MatchResult. On success the outcome is handed to the ledger
// asynchronously: a persistence failure is logged and never masks the score.
func (o *Orchestrator) Match(ctx context.Context, req types.MatchRequest, job types.JobRequirement) (types.MatchResult, error) {
	var result types.MatchResult

	switch req.Model {
	case types.ModelRuleBased:
		features := o.extractor.Extract(req.ResumeText)
		result = scoring.Score(features, job)

	case types.ModelDelegated:
		if o.delegated == nil {
			return types.MatchResult{}, &UnknownModelError{Choice: string(req.Model), Reason: "no delegated scoring backend configured"}
		}
		var err error
		result, err = o.delegated.Analyze(ctx, req.ResumeText, job, req.ModelName)
		if err != nil {
			return types.MatchResult{}, err
		}

	default:
		return types.MatchResult{}, &UnknownModelError{Choice: string(req.Model)}
	}

	o.recordAsync(req.CandidateID, job, req.Model, result)
	return result, nil
}

// recordAsync enqueues the ledger write without blocking the caller's
// response. The write gets its own bounded context, detached from the request.
func (o *Orchestrator) recordAsync(candidateID string, job types.JobRequirement, model types.ModelKind, result types.MatchResult) {
	if o.ledger == nil {
		return
	}

	rec := types.PredictionRecord{
		CandidateID: candidateID,
		JobID:       job.ID,
		JobTitle:    job.Title,
		ModelUsed:   model,
		Result:      result,
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), o.recordTimeout)
		defer cancel()

		id, err := o.ledger.RecordPrediction(ctx, rec)
		if err != nil {
			o.logger.Warn("prediction history write failed",
				zap.Int64("job_id", rec.JobID),
				zap.String("candidate_id", rec.CandidateID),
				zap.String("model", string(rec.ModelUsed)),
				zap.Error(err),
			)
			return
		}
		o.logger.Debug("prediction recorded",
			zap.String("record_id", id.String()),
			zap.Int64("job_id", rec.JobID),
			zap.String("model", string(rec.ModelUsed)),
		)
	}()
}

// Flush waits for in-flight ledger writes to settle. Intended for shutdown
// and tests.
func (o *Orchestrator) Flush() {
	o.wg.Wait()
}
