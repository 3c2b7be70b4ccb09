package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Candidate is a candidate profile as read from the external candidate store.
// The core only consumes the resume text; the rest is pass-through metadata.
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	ResumeText string `json:"resume_text"`
}

// GetCandidate retrieves a candidate by ID. Returns (nil, nil) when no such
// candidate exists.
func (db *DB) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(resume_text, '')
		 FROM candidates WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.ResumeText)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate %s: %w", id, err)
	}
	return &c, nil
}

// ListCandidates retrieves candidate profiles for batch scoring.
func (db *DB) ListCandidates(ctx context.Context, limit int) ([]Candidate, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, COALESCE(name, ''), COALESCE(email, ''), COALESCE(resume_text, '')
		 FROM candidates ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ResumeText); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
