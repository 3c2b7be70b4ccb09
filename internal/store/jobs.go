package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-matcher/internal/types"
)

// jobColumns is the select list shared by the job queries.
const jobColumns = `id, title, COALESCE(company, ''), COALESCE(description, ''),
	COALESCE(location, ''), COALESCE(industry, ''), COALESCE(employment_mode, ''),
	COALESCE(experience_level, ''), COALESCE(required_skills, ''), created_at`

// GetJob retrieves a job posting by ID, translated into a typed requirement
// record. Returns (nil, nil) when no such job exists.
func (db *DB) GetJob(ctx context.Context, id int64) (*types.JobRequirement, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job %d: %w", id, err)
	}
	return job, nil
}

// ListJobs retrieves recent job postings, newest first.
func (db *DB) ListJobs(ctx context.Context, limit int) ([]types.JobRequirement, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobRequirement
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// AllRequiredSkills collects every skill token that appears in the job
// store's required-skills columns, trimmed, for merging into the lexicon.
func (db *DB) AllRequiredSkills(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT COALESCE(required_skills, '') FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to read job skills: %w", err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var joined string
		if err := rows.Scan(&joined); err != nil {
			return nil, fmt.Errorf("failed to scan job skills: %w", err)
		}
		for _, s := range strings.Split(joined, ",") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
	}
	return skills, rows.Err()
}

// scanJob translates one loosely-typed job row into a JobRequirement.
// required_skills is stored comma-joined as authored; the split preserves
// entry order and original casing (the scorer trims).
func scanJob(row pgx.Row) (*types.JobRequirement, error) {
	var job types.JobRequirement
	var levelRaw, skillsRaw string

	err := row.Scan(&job.ID, &job.Title, &job.Company, &job.Description,
		&job.Location, &job.Industry, &job.EmploymentMode,
		&levelRaw, &skillsRaw, &job.CreatedAt)
	if err != nil {
		return nil, err
	}

	job.ExperienceLevel = types.ParseExperienceLevel(levelRaw)
	job.RequiredSkills = splitSkills(skillsRaw)
	return &job, nil
}

// splitSkills splits a comma-joined skills column without trimming entries,
// keeping the authored sequence intact. An empty column yields an empty
// sequence, not nil.
func splitSkills(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return []string{}
	}
	return strings.Split(joined, ",")
}
