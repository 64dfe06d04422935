package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hireloop/evalboard/internal/auth"
	"github.com/hireloop/evalboard/internal/domain/model"
)

// SessionDependencies defines the interface for session bootstrapping.
type SessionDependencies interface {
	StartSession(ctx context.Context, ident auth.Identity, evaluationID int) (model.Attempt, error)
}

// SessionsHandler handles session bootstrap requests.
type SessionsHandler struct {
	deps SessionDependencies
	auth auth.Resolver
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies, resolver auth.Resolver) *SessionsHandler {
	return &SessionsHandler{deps: deps, auth: resolver}
}

// sessionRequest mirrors the OpenAPI schema for POST /sessions.
type sessionRequest struct {
	EvaluationID int `json:"evaluation_id"`
}

func (s sessionRequest) validate() error {
	if s.EvaluationID <= 0 {
		return errors.New("missing evaluation_id")
	}
	return nil
}

type sessionResponse struct {
	AttemptID    int       `json:"attempt_id"`
	CandidateID  int       `json:"candidate_id"`
	EvaluationID int       `json:"evaluation_id"`
	TakenAt      time.Time `json:"taken_at"`
}

// HandlePostSession handles POST /sessions requests. It resolves the
// caller's candidate row and opens a fresh attempt on the evaluation.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ident, err := h.auth.Resolve(r)
	if err != nil {
		writeUnauthenticated(w, err)
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	attempt, err := h.deps.StartSession(r.Context(), ident, req.EvaluationID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		AttemptID:    attempt.ID,
		CandidateID:  attempt.CandidateID,
		EvaluationID: attempt.EvaluationID,
		TakenAt:      attempt.TakenAt,
	})
}
