package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance for request types.
var validate = validator.New()

// MatchRequest is the caller's request to score one resume against one job.
type MatchRequest struct {
	CandidateID string `json:"candidate_id,omitempty"`
	JobID       int64  `json:"job_id" validate:"required,gt=0"`
	ResumeText  string `json:"resume_text"`
	// Model selects the scoring path: "rule-based" or "model-delegated".
	Model ModelKind `json:"model" validate:"required,oneof=rule-based model-delegated"`
	// ModelName optionally overrides the delegated backend model
	// (e.g. "gemini-2.5-pro"). Ignored on the rule-based path.
	ModelName string `json:"model_name,omitempty"`
}

// Validate checks the request against its validation tags.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// BatchMatchRequest scores a set of candidates against one job.
type BatchMatchRequest struct {
	JobID     int64          `json:"job_id" validate:"required,gt=0"`
	Model     ModelKind      `json:"model" validate:"required,oneof=rule-based model-delegated"`
	ModelName string         `json:"model_name,omitempty"`
	Subjects  []BatchSubject `json:"subjects" validate:"required,min=1,dive"`
}

// BatchSubject is one candidate within a batch scoring request.
type BatchSubject struct {
	CandidateID string `json:"candidate_id"`
	ResumeText  string `json:"resume_text"`
}

// Validate checks the request against its validation tags.
func (r *BatchMatchRequest) Validate() error {
	return validate.Struct(r)
}
