package scoring

import (
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func features(skills []string, years int) types.ResumeFeatures {
	return types.ResumeFeatures{Skills: skills, YearsExperience: years}
}

func TestScore_PartialSkillMatch(t *testing.T) {
	f := features([]string{"Python", "SQL"}, 5)
	job := types.JobRequirement{
		RequiredSkills:  []string{"Python", "SQL", "AWS"},
		ExperienceLevel: types.LevelSenior,
	}

	result := Score(f, job)

	assert.Equal(t, 67, result.SkillMatchPct, "2 of 3 skills should round to 67")
	assert.Equal(t, 100, result.ExperienceMatchPct)
	assert.Equal(t, 77, result.OverallScore)
	assert.Equal(t, []string{"Python", "SQL"}, result.MatchedSkills)
	assert.Equal(t, []string{"AWS"}, result.MissingSkills)
}

func TestScore_NoSkillsNoExperience(t *testing.T) {
	f := features([]string{}, 0)
	job := types.JobRequirement{
		RequiredSkills:  []string{"Go", "Kubernetes"},
		ExperienceLevel: types.LevelSenior,
	}

	result := Score(f, job)

	assert.Equal(t, 0, result.SkillMatchPct)
	assert.Equal(t, 10, result.ExperienceMatchPct)
	assert.Equal(t, 3, result.OverallScore)
	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.MissingSkills)
}

func TestScore_EmptyRequiredSkills(t *testing.T) {
	f := features([]string{"Python"}, 3)
	job := types.JobRequirement{ExperienceLevel: types.LevelMid}

	result := Score(f, job)

	assert.Equal(t, 0, result.SkillMatchPct, "no required skills means no skill signal")
	assert.Equal(t, 100, result.ExperienceMatchPct)
	assert.Equal(t, 30, result.OverallScore)
	assert.NotNil(t, result.MatchedSkills)
	assert.NotNil(t, result.MissingSkills)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestScore_PreservesJobAuthoredCasingAndOrder(t *testing.T) {
	f := features([]string{"Python", "SQL"}, 0)
	job := types.JobRequirement{
		RequiredSkills:  []string{"  sql ", "PYTHON", "aws"},
		ExperienceLevel: types.LevelEntry,
	}

	result := Score(f, job)

	assert.Equal(t, []string{"sql", "PYTHON"}, result.MatchedSkills,
		"matched skills keep job-authored casing and order, trimmed")
	assert.Equal(t, []string{"aws"}, result.MissingSkills)
}

func TestScore_BlankRequiredEntriesDropped(t *testing.T) {
	f := features([]string{"Python"}, 0)
	job := types.JobRequirement{
		RequiredSkills:  []string{"Python", "", "   "},
		ExperienceLevel: types.LevelEntry,
	}

	result := Score(f, job)

	assert.Equal(t, 100, result.SkillMatchPct, "blank entries should not dilute the ratio")
	assert.Equal(t, []string{"Python"}, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestScore_Idempotent(t *testing.T) {
	f := features([]string{"Python", "Docker"}, 2)
	job := types.JobRequirement{
		RequiredSkills:  []string{"Python", "Docker", "AWS", "Terraform"},
		ExperienceLevel: types.LevelSenior,
	}

	first := Score(f, job)
	second := Score(f, job)

	assert.Equal(t, first, second, "identical inputs must produce identical results")
}

func TestExperienceMatchPct(t *testing.T) {
	tests := []struct {
		name     string
		years    int
		required int
		expected int
	}{
		{"Meets threshold exactly", 5, 5, 100},
		{"Exceeds threshold", 8, 5, 100},
		{"Zero threshold always full", 0, 0, 100},
		{"Years against zero threshold", 3, 0, 100},
		{"Partial credit scaled", 2, 5, 28},
		{"Partial credit near threshold", 4, 5, 56},
		{"Partial credit mid level", 1, 2, 35},
		{"Zero years against real threshold", 0, 5, 10},
		{"Zero years against mid threshold", 0, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, experienceMatchPct(tt.years, tt.required))
		})
	}
}

func TestBuildSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		skillPct int
		expPct   int
		missing  []string
		expected string
	}{
		{
			name:     "Low skill with missing and low experience",
			skillPct: 40,
			expPct:   50,
			missing:  []string{"AWS", "Docker", "Kubernetes", "Terraform"},
			expected: SuggestionUpskill +
				" Focus on learning: AWS, Docker, Kubernetes." +
				" " + SuggestionExperience,
		},
		{
			name:     "Strong fit",
			skillPct: 80,
			expPct:   90,
			missing:  nil,
			expected: SuggestionStrongFit,
		},
		{
			name:     "Only missing skills",
			skillPct: 60,
			expPct:   80,
			missing:  []string{"GraphQL"},
			expected: "Focus on learning: GraphQL.",
		},
		{
			name:     "Nothing applies falls back",
			skillPct: 60,
			expPct:   75,
			missing:  nil,
			expected: SuggestionFallback,
		},
		{
			name:     "Strong fit with a missing skill still names it",
			skillPct: 75,
			expPct:   100,
			missing:  []string{"Spark"},
			expected: "Focus on learning: Spark. " + SuggestionStrongFit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildSuggestions(tt.skillPct, tt.expPct, tt.missing))
		})
	}
}
