package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/delegate"
	"github.com/jonathan/resume-matcher/internal/match"
	"github.com/jonathan/resume-matcher/internal/store"
	"github.com/jonathan/resume-matcher/internal/types"
)

// handleMatch scores one resume against one job.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	job, err := s.db.GetJob(ctx, req.JobID)
	if err != nil {
		s.logger.Error("job lookup failed", zap.Int64("job_id", req.JobID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "job lookup failed")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	// An omitted resume with a known candidate falls back to the stored one.
	if req.ResumeText == "" && req.CandidateID != "" {
		candidate, err := s.db.GetCandidate(ctx, req.CandidateID)
		if err != nil {
			s.logger.Error("candidate lookup failed", zap.String("candidate_id", req.CandidateID), zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "candidate lookup failed")
			return
		}
		if candidate == nil {
			s.errorResponse(w, http.StatusNotFound, "candidate not found")
			return
		}
		req.ResumeText = candidate.ResumeText
	}

	result, err := s.orchestrator.Match(ctx, req, *job)
	if err != nil {
		s.matchError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleBatchMatch scores a set of candidates against one job.
func (s *Server) handleBatchMatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	job, err := s.db.GetJob(ctx, req.JobID)
	if err != nil {
		s.logger.Error("job lookup failed", zap.Int64("job_id", req.JobID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "job lookup failed")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	for i, subject := range req.Subjects {
		if subject.ResumeText != "" || subject.CandidateID == "" {
			continue
		}
		candidate, err := s.db.GetCandidate(ctx, subject.CandidateID)
		if err != nil {
			s.logger.Error("candidate lookup failed", zap.String("candidate_id", subject.CandidateID), zap.Error(err))
			s.errorResponse(w, http.StatusInternalServerError, "candidate lookup failed")
			return
		}
		if candidate != nil {
			req.Subjects[i].ResumeText = candidate.ResumeText
		}
	}

	outcomes := s.orchestrator.BatchScore(ctx, req.Subjects, *job, req.Model, req.ModelName)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":   job.ID,
		"outcomes": outcomes,
	})
}

// handleHistory reads the prediction ledger, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.HistoryFilter{
		CandidateID: q.Get("candidate_id"),
	}
	if raw := q.Get("job_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job_id")
			return
		}
		filter.JobID = id
	}
	if raw := q.Get("model"); raw != "" {
		model, err := types.ParseModelKind(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Model = model
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	records, err := s.db.History(r.Context(), filter)
	if err != nil {
		s.logger.Error("history query failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "history query failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

// handleModelComparison aggregates ledger outcomes per scoring model.
func (s *Server) handleModelComparison(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.ModelComparison(r.Context())
	if err != nil {
		s.logger.Error("model comparison query failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "model comparison query failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"models": stats})
}

// handleListJobs lists stored job requirements, newest first.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	jobs, err := s.db.ListJobs(r.Context(), limit)
	if err != nil {
		s.logger.Error("job list query failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "job list query failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

// handleGetJob fetches one job requirement by id.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.logger.Error("job lookup failed", zap.Int64("job_id", id), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "job lookup failed")
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleHealth reports service and database liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// matchError maps scoring failures to HTTP statuses. A delegated backend
// outage is surfaced as 503 rather than silently downgrading to the rule
// path.
func (s *Server) matchError(w http.ResponseWriter, err error) {
	var unknown *match.UnknownModelError
	switch {
	case delegate.IsScoringUnavailable(err):
		s.logger.Warn("delegated scoring unavailable", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &unknown):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("match failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "match failed")
	}
}
