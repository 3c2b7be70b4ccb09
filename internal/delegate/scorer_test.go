package delegate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/types"
)

// fakeClient is an in-memory llm.Client for testing the scorer without a
// remote backend.
type fakeClient struct {
	response   string
	err        error
	block      bool
	calls      int
	lastPrompt string
	lastModel  string
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt, model string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastModel = model
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func testJob() types.JobRequirement {
	return types.JobRequirement{
		ID:              42,
		Title:           "Data Engineer",
		Company:         "Acme",
		Description:     "Build pipelines",
		Location:        "Remote",
		Industry:        "Logistics",
		EmploymentMode:  "Full-time",
		RequiredSkills:  []string{"Python", "SQL", "Spark"},
		ExperienceLevel: types.LevelMid,
	}
}

func newTestScorer(client *fakeClient, opts ...Option) *Scorer {
	base := []Option{WithPacer(NewPacer(0))}
	return NewScorer(client, zap.NewNop(), append(base, opts...)...)
}

func TestScorer_Analyze_Success(t *testing.T) {
	client := &fakeClient{response: `{
		"overall_score": 82,
		"skill_match_pct": 90,
		"experience_match_pct": 70,
		"matched_skills": ["Python", "SQL"],
		"missing_skills": ["Spark"],
		"suggestions": "Learn Spark.",
		"model_summary": "Strong data background."
	}`}
	scorer := newTestScorer(client)

	result, err := scorer.Analyze(context.Background(), "resume text", testJob(), "")

	require.NoError(t, err)
	assert.Equal(t, 82, result.OverallScore)
	assert.Equal(t, 90, result.SkillMatchPct)
	assert.Equal(t, 70, result.ExperienceMatchPct)
	assert.Equal(t, []string{"Python", "SQL"}, result.MatchedSkills)
	assert.Equal(t, []string{"Spark"}, result.MissingSkills)
	assert.Equal(t, "Learn Spark.", result.Suggestions)
	assert.Equal(t, "Strong data background.", result.ModelSummary)
}

func TestScorer_Analyze_PromptContainsJobContext(t *testing.T) {
	client := &fakeClient{response: `{}`}
	scorer := newTestScorer(client)

	_, err := scorer.Analyze(context.Background(), "my resume body", testJob(), "gemini-2.5-pro")

	require.NoError(t, err)
	assert.Contains(t, client.lastPrompt, "Data Engineer")
	assert.Contains(t, client.lastPrompt, "Acme")
	assert.Contains(t, client.lastPrompt, "Python, SQL, Spark", "skills are comma-joined as authored")
	assert.Contains(t, client.lastPrompt, "my resume body")
	assert.Equal(t, "gemini-2.5-pro", client.lastModel)
}

func TestScorer_Analyze_RemoteFailure(t *testing.T) {
	cause := errors.New("backend down")
	client := &fakeClient{err: cause}
	scorer := newTestScorer(client)

	_, err := scorer.Analyze(context.Background(), "resume", testJob(), "")

	require.Error(t, err)
	assert.True(t, IsScoringUnavailable(err), "remote failure must surface as scoring unavailable")
	assert.ErrorIs(t, err, cause)
}

func TestScorer_Analyze_MalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"Not JSON", "the model apologizes profusely"},
		{"Wrong field type", `{"overall_score": "very high"}`},
		{"Score out of schema range", `{"overall_score": 9000}`},
		{"JSON array instead of object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response}
			scorer := newTestScorer(client)

			_, err := scorer.Analyze(context.Background(), "resume", testJob(), "")

			require.Error(t, err)
			assert.True(t, IsScoringUnavailable(err))
		})
	}
}

func TestScorer_Analyze_AbsentFieldsNormalizeToZeroValues(t *testing.T) {
	client := &fakeClient{response: `{}`}
	scorer := newTestScorer(client)

	result, err := scorer.Analyze(context.Background(), "resume", testJob(), "")

	require.NoError(t, err)
	assert.Equal(t, 0, result.OverallScore)
	assert.NotNil(t, result.MatchedSkills, "absent lists become empty, never null")
	assert.NotNil(t, result.MissingSkills)
	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, "", result.Suggestions)
}

func TestScorer_Analyze_Timeout(t *testing.T) {
	client := &fakeClient{block: true}
	scorer := newTestScorer(client, WithTimeout(10*time.Millisecond))

	_, err := scorer.Analyze(context.Background(), "resume", testJob(), "")

	require.Error(t, err)
	assert.True(t, IsScoringUnavailable(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNormalizeResponse_ClampsOutOfRangeValues(t *testing.T) {
	result, err := normalizeResponse([]byte(`{
		"overall_score": 100,
		"skill_match_pct": 0,
		"experience_match_pct": 100
	}`))

	require.NoError(t, err)
	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, 0, result.SkillMatchPct)
	assert.Equal(t, 100, result.ExperienceMatchPct)
}

func TestIsScoringUnavailable(t *testing.T) {
	base := &ScoringUnavailableError{Message: "remote call failed", Cause: errors.New("boom")}

	assert.True(t, IsScoringUnavailable(base))
	assert.True(t, IsScoringUnavailable(fmt.Errorf("match: %w", base)), "detected through wrapping")
	assert.False(t, IsScoringUnavailable(errors.New("other")))
	assert.False(t, IsScoringUnavailable(nil))
	assert.ErrorIs(t, base, base.Cause)
}
