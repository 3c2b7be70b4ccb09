package match

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/types"
)

// BatchOutcome is the per-candidate result of a batch scoring run. A failed
// subject carries its error; it does not abort the rest of the batch.
type BatchOutcome struct {
	CandidateID string            `json:"candidate_id"`
	Result      types.MatchResult `json:"result"`
	Err         error             `json:"-"`
	Error       string            `json:"error,omitempty"`
}

// BatchScore issues one independent match operation per subject against the
// job, with bounded concurrency. Pacing between remote-model calls is applied
// inside the delegated scorer, so a batch cannot overwhelm the backend.
// Outcomes are returned in subject order.
func (o *Orchestrator) BatchScore(ctx context.Context, subjects []types.BatchSubject, job types.JobRequirement, model types.ModelKind, modelName string) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(subjects))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, subject := range subjects {
		g.Go(func() error {
			req := types.MatchRequest{
				CandidateID: subject.CandidateID,
				JobID:       job.ID,
				ResumeText:  subject.ResumeText,
				Model:       model,
				ModelName:   modelName,
			}

			result, err := o.Match(gCtx, req, job)
			outcome := BatchOutcome{CandidateID: subject.CandidateID, Result: result, Err: err}
			if err != nil {
				outcome.Error = err.Error()
			}
			outcomes[i] = outcome
			return nil
		})
	}

	// Goroutines never return errors; Wait is used only as a barrier.
	_ = g.Wait()
	return outcomes
}
