package match

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/delegate"
	"github.com/jonathan/resume-matcher/internal/types"
)

// flakyDelegate fails for resumes containing a marker string and counts
// concurrent callers.
type flakyDelegate struct {
	mu         sync.Mutex
	inFlight   int
	maxInUse   int
	failMarker string
}

func (f *flakyDelegate) Analyze(_ context.Context, resumeText string, _ types.JobRequirement, _ string) (types.MatchResult, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInUse {
		f.maxInUse = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.failMarker != "" && strings.Contains(resumeText, f.failMarker) {
		return types.MatchResult{}, &delegate.ScoringUnavailableError{Message: "remote call failed"}
	}
	return types.MatchResult{OverallScore: 75}, nil
}

func TestBatchScore_OutcomesInSubjectOrder(t *testing.T) {
	ledger := &fakeLedger{}
	o := newOrchestrator(nil, ledger)

	subjects := []types.BatchSubject{
		{CandidateID: "a", ResumeText: "Python and SQL, 6 years of experience"},
		{CandidateID: "b", ResumeText: "AWS only"},
		{CandidateID: "c", ResumeText: ""},
	}

	outcomes := o.BatchScore(context.Background(), subjects, sampleJob(), types.ModelRuleBased, "")

	require.Len(t, outcomes, 3)
	assert.Equal(t, "a", outcomes[0].CandidateID)
	assert.Equal(t, "b", outcomes[1].CandidateID)
	assert.Equal(t, "c", outcomes[2].CandidateID)
	for _, outcome := range outcomes {
		assert.NoError(t, outcome.Err)
	}
	assert.Greater(t, outcomes[0].Result.OverallScore, outcomes[2].Result.OverallScore)

	o.Flush()
	assert.Len(t, ledger.all(), 3, "every successful outcome lands in the ledger")
}

func TestBatchScore_PartialFailureDoesNotAbortBatch(t *testing.T) {
	ledger := &fakeLedger{}
	delegated := &flakyDelegate{failMarker: "POISON"}
	o := newOrchestrator(delegated, ledger)

	subjects := []types.BatchSubject{
		{CandidateID: "ok-1", ResumeText: "fine"},
		{CandidateID: "bad", ResumeText: "POISON"},
		{CandidateID: "ok-2", ResumeText: "fine"},
	}

	outcomes := o.BatchScore(context.Background(), subjects, sampleJob(), types.ModelDelegated, "")

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.True(t, delegate.IsScoringUnavailable(outcomes[1].Err))
	assert.NotEmpty(t, outcomes[1].Error)
	assert.NoError(t, outcomes[2].Err)

	o.Flush()
	assert.Len(t, ledger.all(), 2, "only the successful outcomes are recorded")
}

func TestBatchScore_BoundedConcurrency(t *testing.T) {
	delegated := &flakyDelegate{}
	o := newOrchestrator(delegated, nil, WithBatchConcurrency(2))

	subjects := make([]types.BatchSubject, 12)
	for i := range subjects {
		subjects[i] = types.BatchSubject{CandidateID: "c", ResumeText: "fine"}
	}

	o.BatchScore(context.Background(), subjects, sampleJob(), types.ModelDelegated, "")

	assert.LessOrEqual(t, delegated.maxInUse, 2)
	o.Flush()
}

func TestBatchScore_EmptySubjects(t *testing.T) {
	o := newOrchestrator(nil, nil)

	outcomes := o.BatchScore(context.Background(), nil, sampleJob(), types.ModelRuleBased, "")

	assert.Empty(t, outcomes)
}
