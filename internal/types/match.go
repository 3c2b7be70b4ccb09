// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ModelKind identifies which scoring path produced a result.
type ModelKind string

const (
	// ModelRuleBased is the deterministic, locally computed scoring path
	ModelRuleBased ModelKind = "rule-based"
	// ModelDelegated defers scoring to an external AI capability
	ModelDelegated ModelKind = "model-delegated"
)

// ParseModelKind parses a caller-supplied model choice. The choice is an
// explicit enum: unknown values are an input error, never a silent default.
func ParseModelKind(s string) (ModelKind, error) {
	switch ModelKind(strings.TrimSpace(strings.ToLower(s))) {
	case ModelRuleBased:
		return ModelRuleBased, nil
	case ModelDelegated:
		return ModelDelegated, nil
	default:
		return "", fmt.Errorf("unknown model choice %q (expected %q or %q)", s, ModelRuleBased, ModelDelegated)
	}
}

// ExperienceLevel is the seniority band a job posting asks for.
type ExperienceLevel string

const (
	// LevelEntry requires no prior experience
	LevelEntry ExperienceLevel = "entry"
	// LevelMid requires a couple of years of experience
	LevelMid ExperienceLevel = "mid"
	// LevelSenior requires substantial experience
	LevelSenior ExperienceLevel = "senior"
	// LevelUnspecified is used when the posting does not state a level
	LevelUnspecified ExperienceLevel = "unspecified"
)

// ParseExperienceLevel maps loosely-authored level strings from the job store
// onto the canonical enum. Substring matching mirrors how postings are
// authored in practice ("Mid-Level", "Senior (5+ years)").
func ParseExperienceLevel(raw string) ExperienceLevel {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "senior"):
		return LevelSenior
	case strings.Contains(lower, "mid"):
		return LevelMid
	case strings.Contains(lower, "entry"):
		return LevelEntry
	default:
		return LevelUnspecified
	}
}

// ResumeFeatures is the structured feature set extracted from raw resume text.
// Created once per resume and never mutated after extraction.
type ResumeFeatures struct {
	RawText string `json:"raw_text"`
	// Skills holds canonical skill names in lexicon order, deduplicated.
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience"`
}

// HasSkill reports whether the feature set contains the skill, compared
// case-insensitively.
func (f ResumeFeatures) HasSkill(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, s := range f.Skills {
		if strings.ToLower(s) == lower {
			return true
		}
	}
	return false
}

// JobRequirement is a job posting as read from the external job store,
// translated into a typed record at the boundary. Read-only to the core.
type JobRequirement struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company,omitempty"`
	// Description is the full posting text, forwarded to the delegated scorer.
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Industry    string `json:"industry,omitempty"`
	// EmploymentMode is e.g. "remote", "hybrid", "on-site".
	EmploymentMode string `json:"employment_mode,omitempty"`
	// RequiredSkills preserves the job-authored order and casing; entries may
	// contain duplicates or surrounding whitespace. The scorer trims.
	RequiredSkills  []string        `json:"required_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}

// MatchResult is the uniform outcome of one scoring run, regardless of which
// path produced it. Constructed fresh per run and never mutated.
type MatchResult struct {
	OverallScore       int `json:"overall_score"`
	SkillMatchPct      int `json:"skill_match_pct"`
	ExperienceMatchPct int `json:"experience_match_pct"`
	// MatchedSkills is a subset of the job's required skills, original casing
	// and order preserved.
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Suggestions   string   `json:"suggestions"`
	// ModelSummary carries the delegated model's free-text suitability
	// summary; empty on the rule-based path.
	ModelSummary string `json:"model_summary,omitempty"`
}

// PredictionRecord is the persisted outcome of one scoring run. Records are
// append-only; retention is an external data-governance concern.
type PredictionRecord struct {
	ID          uuid.UUID   `json:"id"`
	CandidateID string      `json:"candidate_id,omitempty"`
	JobID       int64       `json:"job_id"`
	JobTitle    string      `json:"job_title,omitempty"`
	ModelUsed   ModelKind   `json:"model_used"`
	Result      MatchResult `json:"result"`
	CreatedAt   time.Time   `json:"created_at"`
}
