package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/types"
)

// RecordPrediction appends one scoring run to the prediction history ledger
// and returns the new record ID. The ledger is append-only: records are never
// updated or deleted by the core, and uniqueness is not enforced: repeated
// runs per (candidate, job, model) are retained for trend analytics.
func (db *DB) RecordPrediction(ctx context.Context, rec types.PredictionRecord) (uuid.UUID, error) {
	matchedJSON, err := json.Marshal(rec.Result.MatchedSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	missingJSON, err := json.Marshal(rec.Result.MissingSkills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal missing skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO prediction_history
		   (candidate_id, job_id, job_title, model_used,
		    overall_score, skill_match_pct, experience_match_pct,
		    matched_skills, missing_skills, suggestions, model_summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		nullableText(rec.CandidateID), rec.JobID, rec.JobTitle, string(rec.ModelUsed),
		rec.Result.OverallScore, rec.Result.SkillMatchPct, rec.Result.ExperienceMatchPct,
		matchedJSON, missingJSON, rec.Result.Suggestions, rec.Result.ModelSummary,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record prediction: %w", err)
	}
	return id, nil
}

// HistoryFilter holds optional filters for reading the ledger.
type HistoryFilter struct {
	CandidateID string
	JobID       int64
	Model       types.ModelKind
	Limit       int
}

// History retrieves prediction records matching the filter, newest first.
// Each call re-runs the query, so readers can restart at will.
func (db *DB) History(ctx context.Context, filter HistoryFilter) ([]types.PredictionRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	query := `SELECT id, COALESCE(candidate_id, ''), job_id, COALESCE(job_title, ''),
		model_used, overall_score, skill_match_pct, experience_match_pct,
		matched_skills, missing_skills, COALESCE(suggestions, ''),
		COALESCE(model_summary, ''), created_at
		FROM prediction_history WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.CandidateID != "" {
		query += fmt.Sprintf(" AND candidate_id = $%d", argNum)
		args = append(args, filter.CandidateID)
		argNum++
	}
	if filter.JobID != 0 {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filter.JobID)
		argNum++
	}
	if filter.Model != "" {
		query += fmt.Sprintf(" AND model_used = $%d", argNum)
		args = append(args, string(filter.Model))
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filter.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var records []types.PredictionRecord
	for rows.Next() {
		var rec types.PredictionRecord
		var modelRaw string
		var matchedJSON, missingJSON []byte

		err := rows.Scan(&rec.ID, &rec.CandidateID, &rec.JobID, &rec.JobTitle,
			&modelRaw, &rec.Result.OverallScore, &rec.Result.SkillMatchPct,
			&rec.Result.ExperienceMatchPct, &matchedJSON, &missingJSON,
			&rec.Result.Suggestions, &rec.Result.ModelSummary, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}

		rec.ModelUsed = types.ModelKind(modelRaw)
		rec.Result.MatchedSkills = decodeSkills(matchedJSON)
		rec.Result.MissingSkills = decodeSkills(missingJSON)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ModelStats aggregates ledger scores for one scoring model.
type ModelStats struct {
	Model       types.ModelKind `json:"model"`
	Predictions int64           `json:"predictions"`
	AvgScore    float64         `json:"avg_score"`
	MinScore    int             `json:"min_score"`
	MaxScore    int             `json:"max_score"`
	AvgSkillPct float64         `json:"avg_skill_pct"`
	AvgExperPct float64         `json:"avg_experience_pct"`
}

// ModelComparison aggregates the ledger per scoring model, best average
// first, for cross-model analytics.
func (db *DB) ModelComparison(ctx context.Context) ([]ModelStats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT model_used, COUNT(*),
		        AVG(overall_score), MIN(overall_score), MAX(overall_score),
		        AVG(skill_match_pct), AVG(experience_match_pct)
		 FROM prediction_history
		 GROUP BY model_used
		 ORDER BY AVG(overall_score) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate model stats: %w", err)
	}
	defer rows.Close()

	var stats []ModelStats
	for rows.Next() {
		var s ModelStats
		var modelRaw string
		if err := rows.Scan(&modelRaw, &s.Predictions, &s.AvgScore,
			&s.MinScore, &s.MaxScore, &s.AvgSkillPct, &s.AvgExperPct); err != nil {
			return nil, fmt.Errorf("failed to scan model stats: %w", err)
		}
		s.Model = types.ModelKind(modelRaw)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// decodeSkills unwraps a JSONB skill list, mapping NULL or garbage to an
// empty sequence so nulls never reach the shared contract.
func decodeSkills(doc []byte) []string {
	if len(doc) == 0 {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal(doc, &skills); err != nil || skills == nil {
		return []string{}
	}
	return skills
}

// nullableText maps an empty string to NULL for optional text columns.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
