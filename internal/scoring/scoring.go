// Package scoring implements the deterministic rule-based resume-to-job
// scorer. Given extracted resume features and a job requirement it produces a
// skill-match percentage, an experience-match percentage, and a weighted
// overall score, together with advisory suggestion text.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Weights for the overall score. Skills are the stronger fit signal; tenure
// is a secondary proxy.
const (
	skillWeight      = 0.7
	experienceWeight = 0.3
)

// requiredYears maps a job's experience level to the years threshold it
// implies.
var requiredYears = map[types.ExperienceLevel]int{
	types.LevelEntry:       0,
	types.LevelMid:         2,
	types.LevelSenior:      5,
	types.LevelUnspecified: 0,
}

// Score computes a MatchResult from resume features and a job requirement.
// It is pure and idempotent: identical inputs produce identical results.
func Score(features types.ResumeFeatures, job types.JobRequirement) types.MatchResult {
	matched, missing := partitionSkills(features, job.RequiredSkills)

	required := len(matched) + len(missing)
	skillPct := 0
	if required > 0 {
		skillPct = round(100 * float64(len(matched)) / float64(required))
	}

	expPct := experienceMatchPct(features.YearsExperience, requiredYears[job.ExperienceLevel])

	overall := round(skillWeight*float64(skillPct) + experienceWeight*float64(expPct))

	return types.MatchResult{
		OverallScore:       overall,
		SkillMatchPct:      skillPct,
		ExperienceMatchPct: expPct,
		MatchedSkills:      matched,
		MissingSkills:      missing,
		Suggestions:        buildSuggestions(skillPct, expPct, missing),
	}
}

// partitionSkills splits the job's required skills into matched and missing,
// preserving the job-authored order and casing. Entries are trimmed and empty
// ones discarded; membership is checked case-insensitively.
func partitionSkills(features types.ResumeFeatures, requiredSkills []string) (matched, missing []string) {
	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0, len(requiredSkills))
	for _, raw := range requiredSkills {
		skill := strings.TrimSpace(raw)
		if skill == "" {
			continue
		}
		if features.HasSkill(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}

// experienceMatchPct maps resume years against the required threshold.
// Meeting or exceeding the threshold (or a zero threshold) is a full match.
// Partial tenure earns scaled credit capped at 80; zero tenure against a real
// threshold earns a floor credit of 10.
func experienceMatchPct(resumeYears, required int) int {
	switch {
	case resumeYears >= required:
		return 100
	case required > 0 && resumeYears > 0:
		pct := round(70 * float64(resumeYears) / float64(required))
		if pct > 80 {
			pct = 80
		}
		return pct
	default:
		return 10
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
