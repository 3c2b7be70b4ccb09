package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/delegate"
	"github.com/jonathan/resume-matcher/internal/match"
)

// Handler tests below exercise the request decode and error mapping layers,
// which fail before any store access. Paths that need a live database are
// covered by integration runs against a provisioned schema.

func newTestServer() *Server {
	return &Server{logger: zap.NewNop()}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestHandleMatch_InvalidJSON(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader("{boom"))
	rec := httptest.NewRecorder()
	s.handleMatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON body", decodeError(t, rec))
}

func TestHandleMatch_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Missing job id", `{"resume_text": "x", "model": "rule-based"}`},
		{"Unknown model", `{"job_id": 1, "resume_text": "x", "model": "fancy"}`},
		{"Missing model", `{"job_id": 1, "resume_text": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()

			req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.handleMatch(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestHandleBatchMatch_ValidationFailure(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/match/batch",
		strings.NewReader(`{"job_id": 1, "model": "rule-based", "subjects": []}`))
	rec := httptest.NewRecorder()
	s.handleBatchMatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchError_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "Scoring unavailable maps to 503",
			err:      &delegate.ScoringUnavailableError{Message: "remote call failed"},
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Unknown model maps to 400",
			err:      &match.UnknownModelError{Choice: "fancy"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "Anything else maps to 500",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()

			rec := httptest.NewRecorder()
			s.matchError(rec, tt.err)

			assert.Equal(t, tt.expected, rec.Code)
			assert.NotEmpty(t, decodeError(t, rec))
		})
	}
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.7:54321"
	assert.Equal(t, "192.0.2.7", s.extractClientID(req))

	req.RemoteAddr = "unparseable"
	assert.Equal(t, "unparseable", s.extractClientID(req))
}
